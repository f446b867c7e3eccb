package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, path string, debounce time.Duration) *Watcher {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	w, err := New(path, debounce, logger)
	require.NoError(t, err)
	return w
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vn_script.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	w := newTestWatcher(t, path, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(`{"a": {"dialogue": [], "choices": []}}`), 0o644))

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("Expected a change notification")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vn_script.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	w := newTestWatcher(t, path, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o644))

	select {
	case <-w.Changes():
		t.Fatal("Did not expect a notification for another file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vn_script.json")
	w := newTestWatcher(t, path, 50*time.Millisecond)
	defer w.Close()

	for i := 0; i < 5; i++ {
		w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	}

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("Expected one notification after the burst")
	}

	select {
	case <-w.Changes():
		t.Fatal("Expected the burst to collapse into a single notification")
	case <-time.After(150 * time.Millisecond):
	}
}
