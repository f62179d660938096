// Package usage provides per-client daily usage tracking and quota gating.
package usage

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/emptyteabot/mind-os/internal/domain"
)

// Store persists usage records as a single JSON file. It is best-effort
// by contract: a missing or corrupt file loads as empty, and write
// failures never block the request path. It is not safe for concurrent
// multi-process writers; single-process deployments serialize access
// through the Gate.
type Store struct {
	path string
}

// NewStore creates a file-backed usage store at the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads all usage records. Read failures degrade to an empty map.
func (s *Store) Load() map[string]domain.UsageRecord {
	records := make(map[string]domain.UsageRecord)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("usage file unreadable, starting empty", "path", s.path, "error", err)
		}
		return records
	}

	if err := json.Unmarshal(data, &records); err != nil {
		slog.Warn("usage file corrupt, starting empty", "path", s.path, "error", err)
		return make(map[string]domain.UsageRecord)
	}

	return records
}

// Save writes all usage records. Failures are logged and swallowed.
func (s *Store) Save(records map[string]domain.UsageRecord) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		slog.Warn("failed to encode usage records", "error", err)
		return
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		slog.Warn("failed to write usage file", "path", s.path, "error", err)
	}
}
