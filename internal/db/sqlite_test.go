package db

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/cora-hours/internal/model"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func sampleEntry() model.Entry {
	return model.Entry{
		ID:            12,
		ConsultantID:  5,
		Consultant:    "Ana Perez",
		Username:      "ana.perez",
		Team:          "FI",
		Date:          "2024-01-10T00:00:00",
		Client:        "ACME",
		Module:        "FI",
		ClientCase:    "C-1",
		InternalCase:  "I-2",
		EscalatedCase: "S-3",
		Task:          "Soporte",
		Start:         "08:00",
		End:           "10:30",
		Hours:         2.5,
		BillableHours: 2,
		ExtraHours:    "No",
		TotalHours:    2.5,
		Shift:         "08:00-18:00",
		Description:   "closing",
		Locked:        true,
	}
}

func TestUpsertAndEntries(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := sampleEntry()
	require.NoError(t, repo.Upsert(ctx, e))

	got, err := repo.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	want := e
	want.Date = "2024-01-10"
	assert.Equal(t, want, got[0])
}

func TestUpsertReplaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := sampleEntry()
	require.NoError(t, repo.Upsert(ctx, e))

	e.Client = "Globex"
	e.Locked = false
	require.NoError(t, repo.Upsert(ctx, e))

	got, err := repo.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Globex", got[0].Client)
	assert.False(t, got[0].Locked)
}

func TestUpsertInvalidDate(t *testing.T) {
	repo := newTestRepo(t)
	err := repo.Upsert(context.Background(), model.Entry{ID: 1, Date: "tomorrow"})
	assert.Error(t, err)
}

func TestEntriesOrdering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, e := range []model.Entry{
		{ID: 3, Date: "2024-01-11", Start: "08:00", End: "09:00"},
		{ID: 2, Date: "2024-01-10", Start: "11:00", End: "12:00"},
		{ID: 1, Date: "2024-01-10", Start: "09:00", End: "10:00"},
	} {
		require.NoError(t, repo.Upsert(ctx, e))
	}

	got, err := repo.Entries(ctx)
	require.NoError(t, err)
	ids := make([]int64, len(got))
	for i, e := range got {
		ids[i] = e.ID
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleEntry()))
	require.NoError(t, repo.Delete(ctx, 12))
	require.NoError(t, repo.Delete(ctx, 99))

	got, err := repo.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEntriesQueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS registro")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	repo, err := NewWithDB(sqlDB)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FROM registro ORDER BY")).
		WillReturnError(errors.New("disk I/O error"))

	_, err = repo.Entries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying entries")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrationError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("read-only database"))

	_, err = NewWithDB(sqlDB)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running migrations")
}

func TestDeleteError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	repo, err := NewWithDB(sqlDB)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM registro WHERE id = ?")).
		WithArgs(int64(4)).
		WillReturnError(errors.New("locked"))

	err = repo.Delete(context.Background(), 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#4")
	require.NoError(t, mock.ExpectationsWereMet())
}
