package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/retainer/internal/config"
	"github.com/raoulx24/retainer/internal/logging"
	"github.com/raoulx24/retainer/internal/mailbox"
	"github.com/raoulx24/retainer/internal/worker"
)

func watchConfig(mode string, dirs ...string) *config.Config {
	cfg := &config.Config{
		Watch: config.WatchConfig{
			Mode:         mode,
			PollInterval: 20 * time.Millisecond,
			Debounce:     10 * time.Millisecond,
		},
	}
	for _, d := range dirs {
		cfg.Paths = append(cfg.Paths, config.PathConfig{Path: d, FilePattern: "{year}"})
	}
	return cfg
}

func start(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})
}

func write(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestScanChangesWithListing(t *testing.T) {
	dir := t.TempDir()
	empty, err := scan(dir)
	require.NoError(t, err)

	write(t, filepath.Join(dir, "2021"))
	one, err := scan(dir)
	require.NoError(t, err)
	assert.NotEqual(t, empty, one)

	again, err := scan(dir)
	require.NoError(t, err)
	assert.Equal(t, one, again)

	write(t, filepath.Join(dir, ".retainer-probe-1234"))
	withProbe, err := scan(dir)
	require.NoError(t, err)
	assert.Equal(t, one, withProbe)

	_, err = scan(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestPollingEnqueuesOnChange(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	write(t, filepath.Join(a, "2020"))

	mb := mailbox.New[worker.Job]()
	start(t, New(watchConfig("poll", a, b), logging.Discard(), mb))

	// the baseline scan must not trigger a pass
	time.Sleep(60 * time.Millisecond)
	assert.False(t, mb.HasJob())

	write(t, filepath.Join(b, "2021"))

	assert.Eventually(t, mb.HasJob, 2*time.Second, 10*time.Millisecond)
	job := mb.TryTake()
	require.NotNil(t, job)
	assert.Equal(t, worker.TriggerWatch, job.Reason)
}

func TestFsNotifyEnqueuesOnChange(t *testing.T) {
	dir := t.TempDir()
	mb := mailbox.New[worker.Job]()
	start(t, New(watchConfig("fsnotify", dir), logging.Discard(), mb))

	// give the watcher time to register the directory
	time.Sleep(50 * time.Millisecond)
	write(t, filepath.Join(dir, "2022"))

	assert.Eventually(t, mb.HasJob, 2*time.Second, 10*time.Millisecond)
}

func TestOffModeNeverEnqueues(t *testing.T) {
	dir := t.TempDir()
	mb := mailbox.New[worker.Job]()
	start(t, New(watchConfig("off", dir), logging.Discard(), mb))

	write(t, filepath.Join(dir, "2022"))
	time.Sleep(60 * time.Millisecond)
	assert.False(t, mb.HasJob())
}

func TestUnknownMode(t *testing.T) {
	w := New(watchConfig("sometimes", t.TempDir()), logging.Discard(), mailbox.New[worker.Job]())
	err := w.Start(context.Background())
	assert.ErrorContains(t, err, "unknown watch mode")
}

func TestUpdateConfigSwitchesMode(t *testing.T) {
	dir := t.TempDir()
	mb := mailbox.New[worker.Job]()
	w := New(watchConfig("off", dir), logging.Discard(), mb)
	start(t, w)

	w.UpdateConfig(watchConfig("poll", dir))
	time.Sleep(60 * time.Millisecond)

	write(t, filepath.Join(dir, "2023"))
	assert.Eventually(t, mb.HasJob, 2*time.Second, 10*time.Millisecond)
}

func TestUpdateConfigForgetsRemovedDirs(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	w := New(watchConfig("poll", a, b), logging.Discard(), mailbox.New[worker.Job]())
	w.detect(context.Background())
	assert.Len(t, w.signatures, 2)

	w.UpdateConfig(watchConfig("poll", a))
	assert.Len(t, w.signatures, 1)
	assert.Equal(t, []string{a}, w.dirs)
}
