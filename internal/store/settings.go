package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ayusman/rigkit/internal/rig"
)

// rigConfigKey holds the solver options as JSON.
const rigConfigKey = "rig.config"

// SettingsRepository reads and writes key-value settings.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get returns the value stored under key.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, err
}

// Set stores value under key, replacing any previous value.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Delete removes key.
func (r *SettingsRepository) Delete(key string) error {
	result, err := r.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	if err != nil {
		return err
	}
	return affectedOne(result)
}

// RigConfig returns the saved solver options. Fields that were never saved
// keep their value from def.
func (r *SettingsRepository) RigConfig(def rig.Config) (rig.Config, error) {
	value, err := r.Get(rigConfigKey)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}

	cfg := def
	if err := json.Unmarshal([]byte(value), &cfg); err != nil {
		return def, fmt.Errorf("decode %s: %w", rigConfigKey, err)
	}
	return cfg, nil
}

// SaveRigConfig persists the solver options.
func (r *SettingsRepository) SaveRigConfig(cfg rig.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return r.Set(rigConfigKey, string(data))
}
