// Package db provides the SQLite entry cache.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Tiliavir/cora-hours/internal/model"
	"github.com/Tiliavir/cora-hours/internal/timecalc"
)

const columns = `id, consultor_id, consultor, usuario_consultor, equipo, fecha, cliente, modulo,
	nro_caso_cliente, nro_caso_interno, nro_caso_escalado, tipo_tarea, hora_inicio, hora_fin,
	tiempo_invertido, tiempo_facturable, horas_adicionales, total_horas, horario_trabajo,
	descripcion, bloqueado`

// SQLite caches entries in a single table keyed by the API id.
type SQLite struct {
	db *sql.DB
}

// New opens the database at path and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s, err := NewWithDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an open database and runs migrations.
func NewWithDB(db *sql.DB) (*SQLite, error) {
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Entries returns every cached entry ordered by date, start time and id.
func (s *SQLite) Entries(ctx context.Context) ([]model.Entry, error) {
	query := `SELECT ` + columns + ` FROM registro ORDER BY fecha, hora_inicio, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.Entry
	for rows.Next() {
		var (
			e      model.Entry
			locked int
		)
		if err := rows.Scan(
			&e.ID,
			&e.ConsultantID,
			&e.Consultant,
			&e.Username,
			&e.Team,
			&e.Date,
			&e.Client,
			&e.Module,
			&e.ClientCase,
			&e.InternalCase,
			&e.EscalatedCase,
			&e.Task,
			&e.Start,
			&e.End,
			&e.Hours,
			&e.BillableHours,
			&e.ExtraHours,
			&e.TotalHours,
			&e.Shift,
			&e.Description,
			&locked,
		); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		e.Locked = locked != 0
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	return entries, nil
}

// Upsert inserts e or replaces the row with the same id.
func (s *SQLite) Upsert(ctx context.Context, e model.Entry) error {
	date := timecalc.DateKey(e.Date)
	if _, err := timecalc.ParseDate(date); err != nil {
		return fmt.Errorf("entry #%d: %w", e.ID, err)
	}

	query := `
		INSERT INTO registro (` + columns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			consultor_id = excluded.consultor_id,
			consultor = excluded.consultor,
			usuario_consultor = excluded.usuario_consultor,
			equipo = excluded.equipo,
			fecha = excluded.fecha,
			cliente = excluded.cliente,
			modulo = excluded.modulo,
			nro_caso_cliente = excluded.nro_caso_cliente,
			nro_caso_interno = excluded.nro_caso_interno,
			nro_caso_escalado = excluded.nro_caso_escalado,
			tipo_tarea = excluded.tipo_tarea,
			hora_inicio = excluded.hora_inicio,
			hora_fin = excluded.hora_fin,
			tiempo_invertido = excluded.tiempo_invertido,
			tiempo_facturable = excluded.tiempo_facturable,
			horas_adicionales = excluded.horas_adicionales,
			total_horas = excluded.total_horas,
			horario_trabajo = excluded.horario_trabajo,
			descripcion = excluded.descripcion,
			bloqueado = excluded.bloqueado
	`

	locked := 0
	if e.Locked {
		locked = 1
	}
	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.ConsultantID,
		e.Consultant,
		e.Username,
		e.Team,
		date,
		e.Client,
		e.Module,
		e.ClientCase,
		e.InternalCase,
		e.EscalatedCase,
		e.Task,
		e.Start,
		e.End,
		e.Hours,
		e.BillableHours,
		e.ExtraHours,
		e.TotalHours,
		e.Shift,
		e.Description,
		locked,
	)
	if err != nil {
		return fmt.Errorf("upserting entry #%d: %w", e.ID, err)
	}
	return nil
}

// Delete removes the entry with the given id. Unknown ids are not an error.
func (s *SQLite) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM registro WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting entry #%d: %w", id, err)
	}
	return nil
}
