package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ayusman/rigkit/internal/landmark"
)

// FrameRepository stores the tracker output recorded for a session.
type FrameRepository struct {
	db *sql.DB
}

// Frames returns the frame repository for this store.
func (s *Store) Frames() *FrameRepository {
	return &FrameRepository{db: s.db}
}

// Append adds frames to the end of a session in a single transaction and
// updates the session frame count. It returns the sequence number of the
// first appended frame.
func (r *FrameRepository) Append(sessionID string, frames []landmark.Frame) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var next int
	err = tx.QueryRow(`SELECT frames FROM sessions WHERE id = ?`, sessionID).Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`INSERT INTO session_frames (session_id, sequence, timestamp_ms, data) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, f := range frames {
		data, err := json.Marshal(f)
		if err != nil {
			return 0, fmt.Errorf("encode frame %d: %w", i, err)
		}
		if _, err := stmt.Exec(sessionID, next+i, f.Timestamp, string(data)); err != nil {
			return 0, err
		}
	}

	_, err = tx.Exec(`UPDATE sessions SET frames = ?, updated_at = ? WHERE id = ?`,
		next+len(frames), time.Now(), sessionID)
	if err != nil {
		return 0, err
	}

	return next, tx.Commit()
}

// List returns up to limit frames of a session starting at sequence from,
// in recording order. A limit of 0 or less returns every remaining frame.
func (r *FrameRepository) List(sessionID string, from, limit int) ([]landmark.Frame, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.Query(
		`SELECT data FROM session_frames
		 WHERE session_id = ? AND sequence >= ?
		 ORDER BY sequence
		 LIMIT ?`,
		sessionID, from, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []landmark.Frame
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var f landmark.Frame
		if err := json.Unmarshal([]byte(data), &f); err != nil {
			return nil, fmt.Errorf("decode frame: %w", err)
		}
		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return frames, nil
}

// Count returns how many frames a session holds.
func (r *FrameRepository) Count(sessionID string) (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM session_frames WHERE session_id = ?`, sessionID).Scan(&n)
	return n, err
}
