package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS registro (
			id                 INTEGER PRIMARY KEY,
			consultor_id       INTEGER NOT NULL DEFAULT 0,
			consultor          TEXT NOT NULL DEFAULT '',
			usuario_consultor  TEXT NOT NULL DEFAULT '',
			equipo             TEXT NOT NULL DEFAULT '',
			fecha              TEXT NOT NULL,
			cliente            TEXT NOT NULL DEFAULT '',
			modulo             TEXT NOT NULL DEFAULT '',
			nro_caso_cliente   TEXT NOT NULL DEFAULT '',
			nro_caso_interno   TEXT NOT NULL DEFAULT '',
			nro_caso_escalado  TEXT NOT NULL DEFAULT '',
			tipo_tarea         TEXT NOT NULL DEFAULT '',
			hora_inicio        TEXT NOT NULL,
			hora_fin           TEXT NOT NULL,
			tiempo_invertido   REAL NOT NULL DEFAULT 0,
			tiempo_facturable  REAL NOT NULL DEFAULT 0,
			horas_adicionales  TEXT NOT NULL DEFAULT '',
			total_horas        REAL NOT NULL DEFAULT 0,
			horario_trabajo    TEXT NOT NULL DEFAULT '',
			descripcion        TEXT NOT NULL DEFAULT '',
			bloqueado          INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_registro_fecha ON registro(fecha);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating registro table: %w", err)
	}

	return nil
}
