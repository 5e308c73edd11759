package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/cora-hours/internal/hours"
	"github.com/Tiliavir/cora-hours/internal/model"
	"github.com/Tiliavir/cora-hours/internal/shift"
)

func TestExitCode(t *testing.T) {
	conflict := &hours.ConflictError{Existing: shift.Entry{ID: 1}}

	assert.Equal(t, 1, exitCode(classify(conflict)))
	assert.Equal(t, 1, exitCode(classify(fmt.Errorf("wrapped: %w", hours.ErrMissingTimes))))
	assert.Equal(t, 2, exitCode(classify(errors.New("disk full"))))
	assert.Equal(t, 2, exitCode(classify(hours.ErrOffline)))
	assert.Equal(t, 1, exitCode(classify(usageError(errors.New("bad flag")))))
	assert.Equal(t, 1, exitCode(errors.New("unknown command")))
	assert.NoError(t, classify(nil))
}

func TestPeriodResolve(t *testing.T) {
	fixed := time.Date(2024, 1, 10, 15, 0, 0, 0, time.Local)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	day := func(s string) time.Time {
		d, err := time.ParseInLocation("2006-01-02", s, time.Local)
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		name     string
		flags    periodFlags
		fallback string
		from     string
		to       string
		label    string
	}{
		{"fallback day", periodFlags{}, "day", "2024-01-10", "2024-01-10", "2024-01-10"},
		{"fallback week", periodFlags{}, "week", "2024-01-08", "2024-01-14", "Week 2024-W02"},
		{"week flag", periodFlags{week: true}, "day", "2024-01-08", "2024-01-14", "Week 2024-W02"},
		{"month", periodFlags{month: "2024-02"}, "week", "2024-02-01", "2024-02-29", "February 2024"},
		{"date", periodFlags{date: "2023-12-31", week: true}, "week", "2023-12-31", "2023-12-31", "2023-12-31"},
		{"from only", periodFlags{from: "2024-01-01"}, "week", "2024-01-01", "2024-01-10", "2024-01-01 to 2024-01-10"},
		{"from and to", periodFlags{from: "2024-01-01", to: "2024-01-03"}, "week", "2024-01-01", "2024-01-03", "2024-01-01 to 2024-01-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.flags.resolve(tt.fallback)
			require.NoError(t, err)
			assert.Equal(t, tt.label, p.Label)
			assert.True(t, p.From.Equal(day(tt.from)), "from = %v", p.From)
			assert.Equal(t, tt.to, p.To.Format("2006-01-02"))
			assert.Equal(t, 23, p.To.Hour())
		})
	}

	all, err := periodFlags{all: true}.resolve("week")
	require.NoError(t, err)
	assert.True(t, all.IsAll())

	for _, bad := range []periodFlags{
		{date: "10/01/2024"},
		{to: "2024-01-03"},
		{from: "2024-01-05", to: "2024-01-03"},
		{month: "2024-13"},
	} {
		_, err := bad.resolve("week")
		assert.Error(t, err, "%+v", bad)
		assert.Equal(t, 1, exitCode(err))
	}
}

// fakeCORA is an in-memory CORA API.
type fakeCORA struct {
	mu      sync.Mutex
	nextID  int64
	entries []model.Entry
}

func (f *fakeCORA) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/api")
	switch {
	case r.Method == http.MethodGet && path == "/registros":
		_ = json.NewEncoder(w).Encode(f.entries)

	case r.Method == http.MethodPost && path == "/registrar-hora":
		var p model.Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = fmt.Fprint(w, `{"mensaje": "Campos obligatorios faltantes"}`)
			return
		}
		f.nextID++
		p.Entry.ID = f.nextID
		f.entries = append(f.entries, p.Entry)
		w.WriteHeader(http.StatusCreated)
		_, _ = fmt.Fprint(w, `{"mensaje": "Registro guardado correctamente"}`)

	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/eliminar-registro/"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(path, "/eliminar-registro/"), 10, 64)
		for i, e := range f.entries {
			if e.ID == id {
				f.entries = append(f.entries[:i], f.entries[i+1:]...)
				_, _ = fmt.Fprint(w, `{"mensaje": "Registro eliminado"}`)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprint(w, `{"mensaje": "Registro no encontrado"}`)

	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprint(w, `{"error": "not found"}`)
	}
}

func (f *fakeCORA) snapshot() []model.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Entry(nil), f.entries...)
}

// resetFlags restores every flag to its default between runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, baseURL, backend string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, k := range []string{"CORA_API_URL", "CORA_API_TOKEN", "CORA_USER", "CORA_CONSULTANT_ID", "CORA_SHIFT", "CORA_STORAGE_BACKEND", "CORA_DATA_DIR", "CORA_DB_PATH"} {
		t.Setenv(k, "")
	}

	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`
[api]
base_url = %q

[session]
consultor_id = 5
usuario = "ana.perez"
nombre = "Ana Perez"
horario = "08:00-18:00"
modulos = ["FI"]

[storage]
backend = %q
dir = %q
db_path = %q
`, baseURL, backend, filepath.Join(dir, "entries"), filepath.Join(dir, "cora.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCalcCommand(t *testing.T) {
	path := writeConfig(t, "http://localhost:5000/api", "files")

	out, err := execute(t, "--config", path, "--no-color", "calc", "23:00", "01:00", "--shift", "22:00-06:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Hours:       0 (0m)")
	assert.Contains(t, out, "Extra hours: No")

	out, err = execute(t, "--config", path, "--no-color", "calc", "07:30", "09:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Hours:       1.5 (1h 30m)")
	assert.Contains(t, out, "Shift:       08:00-18:00")
	assert.Contains(t, out, "Extra hours: Yes")

	_, err = execute(t, "--config", path, "calc", "7:30", "09:00")
	assert.Error(t, err)
}

func TestWorkflow(t *testing.T) {
	for _, backend := range []string{"files", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			api := &fakeCORA{}
			srv := httptest.NewServer(api)
			t.Cleanup(srv.Close)
			path := writeConfig(t, srv.URL+"/api", backend)
			base := []string{"--config", path, "--no-color"}
			run := func(args ...string) (string, error) {
				return execute(t, append(append([]string{}, base...), args...)...)
			}

			out, err := run("log", "--date", "2024-01-10", "--start", "08:00", "--end", "10:00", "--client", "ACME", "--task", "Soporte")
			require.NoError(t, err)
			assert.Contains(t, out, "Registered 08:00-10:00 on 2024-01-10 (2h 0m, extra hours: No)")
			require.Len(t, api.snapshot(), 1)
			assert.Equal(t, "FI", api.snapshot()[0].Module)

			_, err = run("log", "--date", "2024-01-10", "--start", "09:30", "--end", "11:00")
			require.Error(t, err)
			var conflict *hours.ConflictError
			assert.ErrorAs(t, err, &conflict)
			assert.Equal(t, 1, exitCode(err))
			assert.Len(t, api.snapshot(), 1)

			out, err = run("log", "--date", "2024-01-10", "--start", "18:00", "--end", "19:30", "--dry-run")
			require.NoError(t, err)
			assert.Contains(t, out, `"horasAdicionales": "Yes"`)
			assert.Len(t, api.snapshot(), 1)

			out, err = run("check", "10:00", "11:00", "--date", "2024-01-10")
			require.NoError(t, err)
			assert.Contains(t, out, "is free")

			out, err = run("check", "11:00", "09:00", "--date", "2024-01-10")
			assert.ErrorIs(t, err, hours.ErrEndNotAfterStart)
			assert.Equal(t, 1, exitCode(err))
			assert.NotContains(t, out, "is free")

			out, err = run("check", "09:00", "11:00", "--date", "2024-1-10")
			assert.ErrorIs(t, err, hours.ErrInvalidDate)
			assert.Equal(t, 1, exitCode(err))
			assert.NotContains(t, out, "is free")

			out, err = run("list", "--date", "2024-01-10")
			require.NoError(t, err)
			assert.Contains(t, out, "08:00-10:00  #1")

			out, err = run("report", "--from", "2024-01-08", "--to", "2024-01-14", "--format", "csv")
			require.NoError(t, err)
			assert.Equal(t, "date,hours,entries,extra,status\n2024-01-10,2,1,0,warn\n", out)

			out, err = run("calendar", "--month", "2024-01")
			require.NoError(t, err)
			assert.Contains(t, out, "January 2024")

			out, err = run("export", "--all", "--format", "json")
			require.NoError(t, err)
			var exported []model.Entry
			require.NoError(t, json.Unmarshal([]byte(out), &exported))
			require.Len(t, exported, 1)

			out, err = run("delete", "1")
			require.NoError(t, err)
			assert.Contains(t, out, "Deleted entry #1")
			assert.Empty(t, api.snapshot())

			_, err = run("delete", "1")
			assert.ErrorIs(t, err, hours.ErrEntryNotFound)

			out, err = run("--offline", "list", "--all")
			require.NoError(t, err)
			assert.Contains(t, out, "No entries found.")

			_, err = run("--offline", "sync")
			assert.ErrorIs(t, err, hours.ErrOffline)
		})
	}
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "cora", "config.toml")

	out, err := execute(t, "--config", path, "--no-color", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	_, err = execute(t, "--config", path, "config", "init")
	assert.Error(t, err)

	out, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[storage]")
	assert.Contains(t, out, "files")
}
