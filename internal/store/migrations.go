package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sessions table - one recorded capture take
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			fps REAL NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			baked_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Session frames table - tracker output per frame, as JSON
		`CREATE TABLE IF NOT EXISTS session_frames (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			sequence INTEGER NOT NULL,
			timestamp_ms INTEGER NOT NULL,
			data TEXT NOT NULL,
			UNIQUE(session_id, sequence)
		)`,

		// Rig results table - baked rig descriptor per frame, as JSON
		`CREATE TABLE IF NOT EXISTS rig_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			sequence INTEGER NOT NULL,
			data TEXT NOT NULL,
			UNIQUE(session_id, sequence)
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_session_frames_session_id ON session_frames(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rig_results_session_id ON rig_results(session_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
