package writeback_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amirasaad/crowdfund/pkg/testutils"
	"github.com/amirasaad/crowdfund/pkg/writeback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func task(name string, run func(ctx context.Context) error) writeback.Task {
	return writeback.Task{Family: "test", Name: name, Run: run}
}

func TestQueue_FlushWaitsForSubmittedTasks(t *testing.T) {
	q := writeback.New(2, 8, testutils.NewLogger())
	defer q.Close(context.Background()) //nolint:errcheck

	var ran atomic.Int32
	for range 5 {
		require.NoError(t, q.Submit(context.Background(), task("count", func(context.Context) error {
			time.Sleep(5 * time.Millisecond)
			ran.Add(1)
			return nil
		})))
	}

	require.NoError(t, q.Flush(context.Background()))
	assert.Equal(t, int32(5), ran.Load())
	assert.Zero(t, q.Pending())
}

func TestQueue_FlushOnIdleQueueReturns(t *testing.T) {
	q := writeback.New(1, 1, testutils.NewLogger())
	defer q.Close(context.Background()) //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, q.Flush(ctx))
}

func TestQueue_FailedTaskDoesNotStopWorkers(t *testing.T) {
	q := writeback.New(1, 4, testutils.NewLogger())
	defer q.Close(context.Background()) //nolint:errcheck

	var ok atomic.Bool
	require.NoError(t, q.Submit(context.Background(), task("fail", func(context.Context) error {
		return errors.New("disk full")
	})))
	require.NoError(t, q.Submit(context.Background(), task("panic", func(context.Context) error {
		panic("boom")
	})))
	require.NoError(t, q.Submit(context.Background(), task("ok", func(context.Context) error {
		ok.Store(true)
		return nil
	})))

	require.NoError(t, q.Flush(context.Background()))
	assert.True(t, ok.Load())
}

func TestQueue_SubmitBlocksWhenFull(t *testing.T) {
	q := writeback.New(1, 1, testutils.NewLogger())
	release := make(chan struct{})
	started := make(chan struct{})

	block := func(context.Context) error {
		<-release
		return nil
	}
	require.NoError(t, q.Submit(context.Background(), task("running", func(ctx context.Context) error {
		close(started)
		return block(ctx)
	})))
	<-started
	require.NoError(t, q.Submit(context.Background(), task("buffered", block)))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := q.Submit(ctx, task("overflow", block))
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.NoError(t, q.Close(context.Background()))
	assert.Zero(t, q.Pending())
}

func TestQueue_SubmitAfterClose(t *testing.T) {
	q := writeback.New(1, 1, testutils.NewLogger())
	require.NoError(t, q.Close(context.Background()))
	require.NoError(t, q.Close(context.Background()))

	err := q.Submit(context.Background(), task("late", func(context.Context) error { return nil }))
	require.ErrorIs(t, err, writeback.ErrClosed)
}

func TestQueue_CloseDrainsPendingTasks(t *testing.T) {
	q := writeback.New(1, 16, testutils.NewLogger())

	var ran atomic.Int32
	for range 10 {
		require.NoError(t, q.Submit(context.Background(), task("count", func(context.Context) error {
			ran.Add(1)
			return nil
		})))
	}

	require.NoError(t, q.Close(context.Background()))
	assert.Equal(t, int32(10), ran.Load())
}

func TestQueue_CloseTimeoutCancelsRunningTasks(t *testing.T) {
	q := writeback.New(1, 4, testutils.NewLogger())
	started := make(chan struct{})
	cancelled := make(chan struct{})
	var skipped atomic.Bool

	require.NoError(t, q.Submit(context.Background(), task("slow", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	})))
	require.NoError(t, q.Submit(context.Background(), task("queued", func(context.Context) error {
		skipped.Store(true)
		return nil
	})))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := q.Close(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("running task was not cancelled")
	}
	require.NoError(t, q.Flush(context.Background()))
	assert.False(t, skipped.Load(), "queued task should be dropped after shutdown")
}

func TestQueue_CloseTimeoutWaitsForCancelledTasksToReturn(t *testing.T) {
	q := writeback.New(1, 4, testutils.NewLogger())
	started := make(chan struct{})
	var returned atomic.Bool

	require.NoError(t, q.Submit(context.Background(), task("slow", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		// Still touching the store after cancellation.
		time.Sleep(50 * time.Millisecond)
		returned.Store(true)
		return ctx.Err()
	})))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, q.Close(ctx), context.DeadlineExceeded)

	assert.True(t, returned.Load(), "Close returned while a cancelled task was still running")
	assert.Zero(t, q.Pending())
}

func TestQueue_TaskContextIgnoresSubmitterCancellation(t *testing.T) {
	q := writeback.New(1, 1, testutils.NewLogger())
	defer q.Close(context.Background()) //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	var taskErr atomic.Value
	require.NoError(t, q.Submit(ctx, task("detached", func(taskCtx context.Context) error {
		time.Sleep(10 * time.Millisecond)
		if err := taskCtx.Err(); err != nil {
			taskErr.Store(err)
		}
		return nil
	})))
	cancel()

	require.NoError(t, q.Flush(context.Background()))
	assert.Nil(t, taskErr.Load())
}
