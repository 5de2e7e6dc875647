package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFSReadDirSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.tar", "a.tar", "b.tar"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d"), 0o755))

	names, err := New().ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.tar", "b.tar", "c.tar", "d"}, names)
}

func TestOSFSReadDirMissing(t *testing.T) {
	_, err := New().ReadDir(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, IsNotExist(err))
}

func TestOSFSRemove(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "old.tar")
	sub := filepath.Join(dir, "old-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(sub, "nested"), 0o755))

	f := New()
	ctx := context.Background()

	info, err := f.Stat(sub)
	require.NoError(t, err)
	assert.True(t, info.IsDir)

	require.NoError(t, f.Remove(ctx, file))
	require.NoError(t, f.RemoveAll(ctx, sub))

	_, err = f.Stat(file)
	assert.True(t, IsNotExist(err))
	_, err = f.Stat(sub)
	assert.True(t, IsNotExist(err))

	err = f.Remove(ctx, file)
	require.Error(t, err)
	assert.True(t, IsNotExist(err))
}

func TestRetryTransient(t *testing.T) {
	retryBase = time.Millisecond
	t.Cleanup(func() { retryBase = 100 * time.Millisecond })

	calls := 0
	err := retry(context.Background(), "op", func() error {
		calls++
		if calls < 3 {
			return syscall.EBUSY
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = retry(context.Background(), "op", func() error {
		calls++
		return syscall.EAGAIN
	})
	assert.ErrorIs(t, err, syscall.EAGAIN)
	assert.Equal(t, maxRetries, calls)
}

func TestRetryPermanent(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	err := retry(context.Background(), "op", func() error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestRetryCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry(ctx, "op", func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
