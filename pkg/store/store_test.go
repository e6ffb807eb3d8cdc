package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/srgsearch/pkg/config"
	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
	"github.com/matzehuels/srgsearch/pkg/observability"
	"github.com/matzehuels/srgsearch/pkg/srg"
)

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	data, hit, err := s.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullStore.Get should always return miss")
	}

	if err := s.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = s.Get(ctx, "key"); hit {
		t.Error("NullStore should not store data")
	}
	if err := s.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, err := s.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v", hit, err)
	}

	want := []byte(`{"rows":[[0,1],[1,0]]}`)
	if err := s.Set(ctx, "k", want, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, hit, err := s.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v", hit, err)
	}
	if string(got) != string(want) {
		t.Errorf("Get = %s, want %s", got, want)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := s.Get(ctx, "k"); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func TestFileStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := s.Get(ctx, "k"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileStoreCorruptEntry(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := s.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := s.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileStoreClear(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := s.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := s.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if _, hit, _ := s.Get(ctx, "a"); hit {
		t.Error("entries should be gone after Clear")
	}
}

func TestFileStoreClearRemovesTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "a", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	shard := filepath.Dir(s.path("a"))
	leftover := filepath.Join(shard, "123456.tmp")
	if err := os.WriteFile(leftover, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := s.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Clear() = %d, want 1 (temp files are not solutions)", n)
	}
	if _, err := os.Stat(leftover); !os.IsNotExist(err) {
		t.Error("leftover temp file should be removed")
	}
	if _, err := os.Stat(shard); !os.IsNotExist(err) {
		t.Error("empty shard directory should be removed")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("store dir should remain: %v", err)
	}
}

func TestFileStoreForeignEntry(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "other", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	// a file for "other" placed at the path of "k"
	if err := os.MkdirAll(filepath.Dir(s.path("k")), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(s.path("other"), s.path("k")); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := s.Get(ctx, "k"); hit || err != nil {
		t.Errorf("foreign entry: hit %v, err %v", hit, err)
	}
}

func TestSolutionKey(t *testing.T) {
	spec := srg.Spec{N: 10, K: 3, Lambda: 0, Mu: 1}
	seeds := srg.RowSet{{0, 1, 0, 0, 1, 1, 0, 0, 0, 0}}

	k1 := SolutionKey(spec, seeds)
	if k1 != SolutionKey(spec, seeds.Clone()) {
		t.Error("SolutionKey should be deterministic")
	}
	if len(k1) != 64 {
		t.Errorf("key length = %d, want 64", len(k1))
	}
	if err := srgerrors.ValidateStoreKey(k1); err != nil {
		t.Errorf("key should pass ValidateStoreKey: %v", err)
	}
	if k1 == SolutionKey(spec, nil) {
		t.Error("seeds should change the key")
	}
	other := spec
	other.Mu = 2
	if k1 == SolutionKey(other, seeds) {
		t.Error("parameters should change the key")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestUnavailable(t *testing.T) {
	if Unavailable(nil) != nil {
		t.Error("Unavailable(nil) should return nil")
	}

	cause := errors.New("connection reset")
	err := Unavailable(cause)
	if !IsTransient(err) {
		t.Error("IsTransient should be true for a wrapped error")
	}
	if !errors.Is(err, ErrBackend) || !errors.Is(err, cause) {
		t.Error("errors.Is should match both ErrBackend and the cause")
	}
	if err.Error() != "store backend unavailable: connection reset" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if IsTransient(cause) {
		t.Error("IsTransient should be false for a plain error")
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	permanent := errors.New("bad document")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"permanent error", 5, permanent, 1, permanent},
		{"recovers", 1, Unavailable(permanent), 2, nil},
		{"exhausted", 5, Unavailable(permanent), 3, ErrBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, 3, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry(ctx, func() error {
		return Unavailable(errors.New("timeout"))
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

type countingStoreHooks struct {
	observability.NoopStoreHooks
	hits, misses, sets int
}

func (h *countingStoreHooks) OnStoreHit(context.Context, string)      { h.hits++ }
func (h *countingStoreHooks) OnStoreMiss(context.Context, string)     { h.misses++ }
func (h *countingStoreHooks) OnStoreSet(context.Context, string, int) { h.sets++ }

func TestWithHooks(t *testing.T) {
	hooks := &countingStoreHooks{}
	observability.SetStoreHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := WithHooks(fs, "file")

	_, _, _ = s.Get(ctx, "k")
	_ = s.Set(ctx, "k", []byte("v"), 0)
	_, _, _ = s.Get(ctx, "k")

	if hooks.misses != 1 || hooks.sets != 1 || hooks.hits != 1 {
		t.Errorf("hooks = %+v", hooks)
	}
	if Unwrap(s) != Store(fs) {
		t.Error("Unwrap should return the file store")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default().Store

	cfg.Backend = config.BackendNone
	s, err := Open(ctx, cfg, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*NullStore); !ok {
		t.Errorf("none backend = %T", s)
	}

	cfg.Backend = config.BackendFile
	dir := t.TempDir()
	s, err = Open(ctx, cfg, dir)
	if err != nil {
		t.Fatal(err)
	}
	fs, ok := Unwrap(s).(*FileStore)
	if !ok || fs.Dir() != dir {
		t.Errorf("file backend = %T", Unwrap(s))
	}

	cfg.Backend = "s3"
	if _, err := Open(ctx, cfg, dir); !srgerrors.Is(err, srgerrors.ErrCodeInvalidInput) {
		t.Errorf("unknown backend error = %v", err)
	}
}
