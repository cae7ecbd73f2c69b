package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/coinop-logan/personal-finance-display/internal/core"
)

// JSONStore keeps the collection in one indented JSON file. Reads that
// fail for any reason (missing file, permissions, corrupt JSON) yield an
// empty collection: the display stays available and the next successful
// save rewrites the document in full.
type JSONStore struct {
	mu   sync.Mutex
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Load(ctx context.Context) (core.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.WarnContext(ctx, "Data file unreadable, starting empty",
				"path", s.path, "error", err)
		}
		return core.Collection{}, nil
	}

	var c core.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		slog.WarnContext(ctx, "Data file corrupt, starting empty",
			"path", s.path, "error", err)
		return core.Collection{}, nil
	}
	return c, nil
}

// Save writes the document through a temp file and rename so a crash
// mid-write never leaves a truncated collection behind.
func (s *JSONStore) Save(ctx context.Context, c core.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace data file: %w", err)
	}

	slog.DebugContext(ctx, "Collection saved", "path", s.path, "entries", len(c))
	return nil
}
