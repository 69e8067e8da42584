package watch

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Watcher:
// - New rejects an empty file list and a non-positive debounce
// - A write to a watched file triggers one callback with that file
// - Writes to other files in the same directory are ignored
// - Callback errors are logged and watching continues
// - Run returns nil when the context is cancelled

type recorder struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (r *recorder) onChange(changed []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, changed)
	return r.err
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func startWatcher(t *testing.T, paths []string, rec *recorder, logger *log.Logger) context.CancelFunc {
	t.Helper()
	w, err := New(paths, 20*time.Millisecond, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, rec.onChange) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("Run did not return after cancel")
		}
		w.Close()
	})
	return cancel
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, time.Second, nil)
	assert.Error(t, err)

	_, err = New([]string{"a.c"}, 0, nil)
	assert.Error(t, err)
}

func TestRun_ReportsChangedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.c")
	require.NoError(t, os.WriteFile(target, []byte("/** a */"), 0o644))

	rec := &recorder{}
	startWatcher(t, []string{target}, rec, log.New(io.Discard, "", 0))

	require.NoError(t, os.WriteFile(target, []byte("/** b */"), 0o644))

	require.Eventually(t, func() bool { return len(rec.snapshot()) > 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{target}, rec.snapshot()[0])
}

func TestRun_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.c")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	rec := &recorder{}
	startWatcher(t, []string{target}, rec, log.New(io.Discard, "", 0))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.c"), []byte("y"), 0o644))

	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestRun_LogsCallbackErrors(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.c")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	var mu sync.Mutex
	var logged []byte
	logger := log.New(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		logged = append(logged, p...)
		return len(p), nil
	}), "", 0)

	rec := &recorder{err: errors.New("boom")}
	startWatcher(t, []string{target}, rec, logger)

	require.NoError(t, os.WriteFile(target, []byte("y"), 0o644))
	require.Eventually(t, func() bool { return len(rec.snapshot()) > 0 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(target, []byte("z"), 0o644))
	require.Eventually(t, func() bool { return len(rec.snapshot()) > 1 }, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, string(logged), "regenerate failed: boom")
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
