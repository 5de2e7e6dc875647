package mailbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutOverwrites(t *testing.T) {
	mb := New[int]()
	assert.False(t, mb.HasJob())

	mb.Put(1)
	mb.Put(2)
	assert.True(t, mb.HasJob())

	j := mb.TryTake()
	require.NotNil(t, j)
	assert.Equal(t, 2, *j)
	assert.Nil(t, mb.TryTake())
}

func TestTakeReturnsPendingJob(t *testing.T) {
	mb := New[string]()
	mb.Put("cron")

	j, ok := mb.Take(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "cron", j)
	assert.False(t, mb.HasJob())
}

func TestTakeWaitsForPut(t *testing.T) {
	mb := New[string]()
	got := make(chan string, 1)

	go func() {
		j, _ := mb.Take(context.Background())
		got <- j
	}()

	time.Sleep(20 * time.Millisecond)
	mb.Put("watch")

	select {
	case j := <-got:
		assert.Equal(t, "watch", j)
	case <-time.After(time.Second):
		t.Fatal("Take did not return after Put")
	}
}

func TestTakeStopsOnCancel(t *testing.T) {
	mb := New[int]()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan bool, 1)
	go func() {
		_, ok := mb.Take(ctx)
		done <- ok
	}()

	cancel()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Take did not return after cancel")
	}
}

func TestStaleSignalDoesNotReturnEmptyJob(t *testing.T) {
	mb := New[int]()
	mb.Put(7)
	require.NotNil(t, mb.TryTake()) // leaves the wake-up signal behind

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, ok := mb.Take(ctx)
	assert.False(t, ok)
}
