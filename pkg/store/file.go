package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	entryExt = ".json"
	tempExt  = ".tmp"
)

// FileStore keeps one JSON file per solution under a directory, sharded by
// the first two hex digits of the hashed key. It is the CLI's default store.
type FileStore struct {
	dir string
}

// NewFileStore opens a file store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// solutionFile is the on-disk form of one entry. Key is kept so a file that
// does not belong to the requested key is never served.
type solutionFile struct {
	Key       string     `json:"key"`
	StoredAt  time.Time  `json:"stored_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Data      []byte     `json:"data"`
}

func (f *solutionFile) expired(now time.Time) bool {
	return f.ExpiresAt != nil && now.After(*f.ExpiresAt)
}

// Dir returns the store directory.
func (s *FileStore) Dir() string { return s.dir }

// Get returns the stored solution for key. Unreadable, foreign and expired
// files count as misses and are removed.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := s.path(key)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read solution %s: %w", path, err)
	}

	var f solutionFile
	if err := json.Unmarshal(raw, &f); err != nil || f.Key != key || f.expired(time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return f.Data, true, nil
}

// Set writes the solution for key. A zero ttl keeps it until cleared. The
// file is written next to its final path and renamed into place.
func (s *FileStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	now := time.Now().UTC()
	f := solutionFile{Key: key, StoredAt: now, Data: data}
	if ttl > 0 {
		exp := now.Add(ttl)
		f.ExpiresAt = &exp
	}
	raw, err := json.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encode solution: %w", err)
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create shard dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "*"+tempExt)
	if err != nil {
		return fmt.Errorf("write solution: %w", err)
	}
	_, werr := tmp.Write(raw)
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Rename(tmp.Name(), path)
	}
	if werr != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write solution: %w", werr)
	}
	return nil
}

// Delete removes the solution for key. A missing entry is not an error.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete solution: %w", err)
	}
	return nil
}

// Clear removes every stored solution and any half-written temporary file,
// then drops the emptied shard directories. It returns the number of
// solutions removed.
func (s *FileStore) Clear() (int, error) {
	n := 0
	var shards []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case d.IsDir():
			if path != s.dir {
				shards = append(shards, path)
			}
			return nil
		case strings.HasSuffix(path, entryExt):
			n++
		case !strings.HasSuffix(path, tempExt):
			return nil
		}
		return os.Remove(path)
	})
	for _, dir := range shards {
		_ = os.Remove(dir) // fails while other files remain
	}
	return n, err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) path(key string) string {
	name := Hash([]byte(key))
	return filepath.Join(s.dir, name[:2], name+entryExt)
}

var _ Store = (*FileStore)(nil)
