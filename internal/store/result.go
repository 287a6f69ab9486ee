package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ayusman/rigkit/internal/rig"
)

// ResultRepository stores baked rig results.
type ResultRepository struct {
	db *sql.DB
}

// Results returns the result repository for this store.
func (s *Store) Results() *ResultRepository {
	return &ResultRepository{db: s.db}
}

// Replace swaps the baked results of a session for results, indexed by
// frame sequence, and stamps the session as baked.
func (r *ResultRepository) Replace(sessionID string, results []rig.Result) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.Exec(`UPDATE sessions SET baked_at = ?, updated_at = ? WHERE id = ?`, now, now, sessionID)
	if err != nil {
		return err
	}
	if err := affectedOne(res); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM rig_results WHERE session_id = ?`, sessionID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO rig_results (session_id, sequence, data) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, result := range results {
		data, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("encode result %d: %w", i, err)
		}
		if _, err := stmt.Exec(sessionID, i, string(data)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// List returns the baked results of a session in frame order.
func (r *ResultRepository) List(sessionID string) ([]rig.Result, error) {
	rows, err := r.db.Query(
		`SELECT data FROM rig_results WHERE session_id = ? ORDER BY sequence`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []rig.Result
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		result, err := decodeResult(data)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// Get returns the baked result for one frame.
func (r *ResultRepository) Get(sessionID string, sequence int) (rig.Result, error) {
	var data string
	err := r.db.QueryRow(
		`SELECT data FROM rig_results WHERE session_id = ? AND sequence = ?`,
		sessionID, sequence,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return rig.Result{}, ErrNotFound
	}
	if err != nil {
		return rig.Result{}, err
	}
	return decodeResult(data)
}

func decodeResult(data string) (rig.Result, error) {
	var result rig.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return rig.Result{}, fmt.Errorf("decode result: %w", err)
	}
	return result, nil
}
