package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "artifact:svg", []byte("<svg/>"), TTLArtifact); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "artifact:svg")
	if err != nil || hit || data != nil {
		t.Errorf("Get after Set = %q, %v, %v; want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, "artifact:svg"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestIsNull(t *testing.T) {
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		c    Cache
		want bool
	}{
		{"null", NewNullCache(), true},
		{"null pointer", &NullCache{}, true},
		{"nil", nil, true},
		{"file", fc, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNull(tt.c); got != tt.want {
				t.Errorf("IsNull() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Scale: 2})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if ak1 != k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"}) {
		t.Error("ArtifactKey should be deterministic")
	}
	if k.ArtifactKey("hash456", ArtifactKeyOpts{Format: "svg"}) == ak1 {
		t.Error("Different input hashes should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:") || len(ak1) != len("artifact:")+64 {
		t.Errorf("ArtifactKey unexpected: %s", ak1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "user:123:")

	opts := ArtifactKeyOpts{Format: "pdf"}
	key := scoped.ArtifactKey("abc", opts)
	if key != "user:123:"+inner.ArtifactKey("abc", opts) {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	if key != "prefix:"+NewDefaultKeyer().ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"}) {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Fatalf("Get(k) = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %s, want %s", c.Dir(), dir)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir should be empty, has %d entries", len(entries))
	}

	gone, err := NewFileCache(filepath.Join(dir, "sub"))
	if err != nil {
		t.Fatal(err)
	}
	_ = os.RemoveAll(gone.Dir())
	if n, err := gone.Clear(); n != 0 || err != nil {
		t.Errorf("Clear on missing dir = %d, %v", n, err)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("wrapped error should be retryable")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("Retryable should unwrap to ErrNetwork")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("message = %q", err.Error())
	}
	if IsRetryable(ErrNetwork) {
		t.Error("unwrapped error should not be retryable")
	}
}

func TestBackoffRetry(t *testing.T) {
	b := Backoff{Attempts: 3, Delay: time.Millisecond}
	errRefused := errors.New("connection refused")

	tests := []struct {
		name      string
		failFirst int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"first try", 0, nil, 1, nil},
		{"not retryable", 3, errRefused, 1, errRefused},
		{"recovers", 2, Retryable(ErrNetwork), 3, nil},
		{"exhausted", 5, Retryable(ErrNetwork), 3, ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Retry(context.Background(), func() error {
				calls++
				if calls <= tt.failFirst {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := DialBackoff.Retry(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0 for a done context", calls)
	}
}
