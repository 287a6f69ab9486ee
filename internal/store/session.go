package store

import (
	"database/sql"
	"errors"
	"time"
)

// Session is one recorded capture take.
type Session struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	FPS       float64    `json:"fps"`
	Frames    int        `json:"frames"`
	BakedAt   *time.Time `json:"bakedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

const sessionColumns = `id, name, fps, frames, baked_at, created_at, updated_at`

// Create inserts a new session.
func (r *SessionRepository) Create(s *Session) error {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, name, fps, frames, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.FPS, s.Frames, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	s, err := scanSession(r.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// List retrieves all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(`SELECT ` + sessionColumns + ` FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Update saves the name and frame rate of an existing session.
func (r *SessionRepository) Update(s *Session) error {
	s.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE sessions SET name = ?, fps = ?, updated_at = ? WHERE id = ?`,
		s.Name, s.FPS, s.UpdatedAt, s.ID,
	)
	if err != nil {
		return err
	}
	return affectedOne(result)
}

// Delete removes a session along with its frames and results.
func (r *SessionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOne(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	s := &Session{}
	var baked sql.NullTime

	if err := row.Scan(&s.ID, &s.Name, &s.FPS, &s.Frames, &baked, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}

	if baked.Valid {
		t := baked.Time
		s.BakedAt = &t
	}
	return s, nil
}
