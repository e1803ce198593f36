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

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = (%v, %v, %v), want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "solution:a"); hit {
		t.Fatal("empty cache reported a hit")
	}
	if err := c.Set(ctx, "solution:a", []byte(`{"size":120}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "solution:a")
	if err != nil || !hit {
		t.Fatalf("Get = (hit %v, err %v), want hit", hit, err)
	}
	if string(data) != `{"size":120}` {
		t.Errorf("data = %s", data)
	}

	if err := c.Delete(ctx, "solution:a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "solution:a"); hit {
		t.Error("deleted entry still present")
	}
	if err := c.Delete(ctx, "solution:a"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry reported as hit")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Errorf("expired entry not removed: %v", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get = (hit %v, err %v), want silent miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("columns"))
	if h1 != Hash([]byte("columns")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("rows")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash) = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	a := k.SolutionKey("abc", 100)
	b := k.SolutionKey("abc", 101)
	if a == b {
		t.Error("sizes should produce different solution keys")
	}
	if !strings.HasPrefix(a, "solution:") {
		t.Errorf("SolutionKey = %q, want solution: prefix", a)
	}
	if got := k.BoundsKey("abc"); got != "bounds:abc" {
		t.Errorf("BoundsKey = %q", got)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "api:")
	if got := scoped.BoundsKey("abc"); got != "api:bounds:abc" {
		t.Errorf("BoundsKey = %q", got)
	}
	want := "api:" + NewDefaultKeyer().SolutionKey("abc", 7)
	if got := scoped.SolutionKey("abc", 7); got != want {
		t.Errorf("SolutionKey = %q, want %q", got, want)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	err := Retryable(ErrBackend)
	if !IsRetryable(err) {
		t.Error("IsRetryable(Retryable(err)) = false")
	}
	if !errors.Is(err, ErrBackend) {
		t.Error("Retryable should unwrap to the cause")
	}
	if IsRetryable(ErrBackend) {
		t.Error("plain error reported retryable")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"first try", 0, nil, 1, nil},
		{"permanent stops", 5, permanent, 1, permanent},
		{"recovers", 2, Retryable(ErrBackend), 3, nil},
		{"exhausted", 5, Retryable(ErrBackend), 3, ErrBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, time.Microsecond, func() error {
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
				t.Errorf("err = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryWithBackoffCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, time.Hour, func() error { return Retryable(ErrBackend) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
