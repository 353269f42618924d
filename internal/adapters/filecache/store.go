package filecache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/sys/atomicwriter"
	"go.uber.org/zap"

	"mtgmcp/internal/ports"
)

const (
	fileExt      = ".json"
	similarDir   = "similar"
	dirPerm      = 0o755
	filePerm     = 0o644
	maxKeyLength = 200
)

// Store is a flat directory of JSON files, one per key.
// Writes replace the whole file atomically; there is no cross-process locking.
type Store struct {
	dir    string
	logger *zap.Logger
}

var _ ports.BlobStore = (*Store)(nil)

// NewStore creates a store rooted at dir. The directory is not created until Ensure.
func NewStore(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger}
}

// Sub returns a store for a subdirectory sharing this store's logger
func (s *Store) Sub(name string) *Store {
	return &Store{dir: filepath.Join(s.dir, name), logger: s.logger}
}

// Dir returns the directory backing the store
func (s *Store) Dir() string {
	return s.dir
}

// Ensure creates the store directory if needed. Safe to call repeatedly.
func (s *Store) Ensure() error {
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", s.dir, err)
	}
	return nil
}

// Path returns the file that backs key
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

// Get reads the bytes stored under key. Missing files are a silent miss;
// any other read error is logged and also reported as a miss.
func (s *Store) Get(key string) ([]byte, bool) {
	if !validKey(key) {
		s.logger.Warn("cache key rejected", zap.String("key", key))
		return nil, false
	}

	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Put replaces the value under key. Failures are logged and dropped.
func (s *Store) Put(key string, value []byte) {
	if !validKey(key) {
		s.logger.Warn("cache key rejected", zap.String("key", key))
		return
	}

	if err := atomicwriter.WriteFile(s.Path(key), value, filePerm); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Count returns the number of entries directly under the store directory
func (s *Store) Count() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	n := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), fileExt) {
			n++
		}
	}
	return n, nil
}

// Clear removes every entry directly under the store directory
func (s *Store) Clear() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", e.Name(), err)
		}
		removed++
	}
	return removed, nil
}

// validKey rejects keys that would escape the directory or exceed filename limits
func validKey(key string) bool {
	if key == "" || key == "." || key == ".." || len(key) > maxKeyLength {
		return false
	}
	return !strings.ContainsAny(key, `/\`)
}
