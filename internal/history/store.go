// Package history persists the conversation for the single-assistant
// deployment. The store is an explicitly owned object: constructed at
// startup, flushed synchronously on every mutation, closed on shutdown.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/emptyteabot/mind-os/internal/domain"
	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed, append-only conversation log. The system
// turn is pinned at position 0 and overwritten on every startup; user
// and assistant turns grow without bound (no compaction or cap).
type Store struct {
	db *sql.DB
	mu sync.Mutex // serializes position allocation on append
}

// NewSQLite opens (or creates) the conversation database at dbPath.
func NewSQLite(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode for single-writer durability without long lock stalls.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS messages (
		position INTEGER PRIMARY KEY,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// PinSystem writes the system turn at position 0, replacing whatever
// text a previous run pinned there.
func (s *Store) PinSystem(ctx context.Context, prompt string) error {
	query := `
	INSERT INTO messages (position, role, content, created_at)
	VALUES (0, ?, ?, ?)
	ON CONFLICT(position) DO UPDATE SET
		role = excluded.role,
		content = excluded.content,
		created_at = excluded.created_at`

	if _, err := s.db.ExecContext(ctx, query, domain.RoleSystem, prompt, time.Now().Unix()); err != nil {
		return fmt.Errorf("pin system turn: %w", err)
	}
	return nil
}

// Append adds a turn after the current last position.
func (s *Store) Append(ctx context.Context, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
	INSERT INTO messages (position, role, content, created_at)
	SELECT COALESCE(MAX(position), 0) + 1, ?, ?, ? FROM messages`

	if _, err := s.db.ExecContext(ctx, query, role, content, time.Now().Unix()); err != nil {
		return fmt.Errorf("append %s turn: %w", role, err)
	}
	return nil
}

// Messages returns every turn in position order, system turn first.
func (s *Store) Messages(ctx context.Context) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT role, content FROM messages ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.Role, &msg.Content); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
