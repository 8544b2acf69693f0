package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o600))

	w, err := New(Config{Path: path, DebounceDur: 50 * time.Millisecond})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	ch, err := w.Start()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("a: 2\n"), 0o600))

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("expected change notification")
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o600))

	w, err := New(Config{Path: path, DebounceDur: 100 * time.Millisecond})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	ch, err := w.Start()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("a: 2\n"), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("expected change notification")
	}

	// The burst collapsed into a single notification.
	select {
	case <-ch:
		t.Fatal("expected a single debounced notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o600))

	w, err := New(Config{Path: path, DebounceDur: 50 * time.Millisecond})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	ch, err := w.Start()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("b: 1\n"), 0o600))

	select {
	case <-ch:
		t.Fatal("unrelated file must not notify")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/tmp/config.yaml")
	require.Equal(t, "/tmp/config.yaml", cfg.Path)
	require.Equal(t, 500*time.Millisecond, cfg.DebounceDur)
}
