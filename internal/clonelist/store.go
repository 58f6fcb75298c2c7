package clonelist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"retool/internal/logging"
	"retool/internal/textutil"
)

// Store loads clone lists from a directory of <catalog name>.json files.
type Store struct {
	dir    string
	logger *slog.Logger
	mu     sync.RWMutex
	cache  map[string]cachedList
}

type cachedList struct {
	loaded time.Time
	list   List
}

// NewStore returns a store backed by dir. An empty dir yields a nil store,
// which loads nothing.
func NewStore(dir string, logger *slog.Logger) *Store {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{dir: trimmed, logger: logger, cache: make(map[string]cachedList)}
}

// Path returns the file consulted for catalogName.
func (s *Store) Path(catalogName string) string {
	return filepath.Join(s.dir, textutil.SanitizeFileName(catalogName)+".json")
}

// Load returns the clone list for catalogName. A missing file is not an
// error and yields an empty list with found false.
func (s *Store) Load(ctx context.Context, catalogName string) (List, bool, error) {
	if s == nil || strings.TrimSpace(catalogName) == "" {
		return List{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return List{}, false, err
	}
	path := s.Path(catalogName)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return List{}, false, nil
		}
		return List{}, false, fmt.Errorf("stat clone list: %w", err)
	}

	s.mu.RLock()
	cached, ok := s.cache[path]
	s.mu.RUnlock()
	if ok && cached.loaded.Equal(info.ModTime()) {
		return cached.list, true, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return List{}, false, fmt.Errorf("read clone list: %w", err)
	}
	list, err := Parse(data)
	if err != nil {
		return List{}, false, fmt.Errorf("%s: %w", path, err)
	}

	s.mu.Lock()
	s.cache[path] = cachedList{loaded: info.ModTime(), list: list}
	s.mu.Unlock()
	s.logger.Info("loaded clone list",
		slog.String("path", path),
		slog.Int("pairs", len(list.Pairs())),
		slog.Int("compilations", len(list.Compilations)),
	)
	return list, true, nil
}
