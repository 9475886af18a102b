package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ashureev/scaffolder/internal/domain"
	_ "modernc.org/sqlite"
)

var _ Repository = (*SQLiteStore)(nil)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// modernc applies _pragma values on every new pooled connection.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db, now: time.Now}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS user_profiles (
		user_name TEXT PRIMARY KEY,
		emp_state INTEGER NOT NULL DEFAULT 1,
		ase_state INTEGER NOT NULL DEFAULT 1,
		int_state INTEGER NOT NULL DEFAULT 1,
		last_updated INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveProfile upserts by user name. Levels are clamped to the valid range
// before they are written.
func (s *SQLiteStore) SaveProfile(ctx context.Context, profile *domain.UserProfile) error {
	query := `
	INSERT INTO user_profiles (user_name, emp_state, ase_state, int_state, last_updated)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(user_name) DO UPDATE SET
		emp_state = excluded.emp_state,
		ase_state = excluded.ase_state,
		int_state = excluded.int_state,
		last_updated = excluded.last_updated`

	level := profile.Level.Clamped()
	updated := s.now().Unix()

	_, err := s.db.ExecContext(ctx, query,
		profile.UserName, level.EmpState, level.AseState, level.IntState, updated,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	profile.Level = level
	profile.LastUpdated = time.Unix(updated, 0)
	return nil
}

// GetProfile retrieves a profile by user name.
func (s *SQLiteStore) GetProfile(ctx context.Context, userName string) (*domain.UserProfile, error) {
	query := `
		SELECT user_name, emp_state, ase_state, int_state, last_updated
		FROM user_profiles WHERE user_name = ?`

	var p domain.UserProfile
	var updated int64
	err := s.db.QueryRowContext(ctx, query, userName).Scan(
		&p.UserName, &p.Level.EmpState, &p.Level.AseState, &p.Level.IntState, &updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile row: %w", err)
	}

	p.LastUpdated = time.Unix(updated, 0)
	return &p, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
