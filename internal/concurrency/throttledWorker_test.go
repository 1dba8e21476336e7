package concurrency_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wheelibin/hadash/internal/concurrency"
)

func Test_ThrottledWorker(t *testing.T) {

	t.Run("should run jobs in the order they were queued", func(t *testing.T) {
		t.Parallel()
		// arrange
		var (
			mu   sync.Mutex
			done []int
		)
		finished := make(chan struct{})
		worker := concurrency.NewThrottledWorker(1000, 10, func(_ context.Context, n int) {
			mu.Lock()
			defer mu.Unlock()
			done = append(done, n)
			if len(done) == 5 {
				close(finished)
			}
		})
		for i := 1; i <= 5; i++ {
			assert.NoError(t, worker.Enqueue(i))
		}

		// act
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go worker.Run(ctx)

		// assert
		select {
		case <-finished:
		case <-time.After(2 * time.Second):
			t.Fatal("jobs did not finish")
		}
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []int{1, 2, 3, 4, 5}, done)
	})

	t.Run("should refuse jobs when the queue is full", func(t *testing.T) {
		t.Parallel()
		worker := concurrency.NewThrottledWorker(1, 2, func(context.Context, string) {})

		assert.NoError(t, worker.Enqueue("a"))
		assert.NoError(t, worker.Enqueue("b"))
		assert.ErrorIs(t, worker.Enqueue("c"), concurrency.ErrQueueFull)
	})

	t.Run("should stop when the context is cancelled", func(t *testing.T) {
		t.Parallel()
		worker := concurrency.NewThrottledWorker(1, 2, func(context.Context, string) {})
		ctx, cancel := context.WithCancel(context.Background())
		stopped := make(chan struct{})

		go func() {
			worker.Run(ctx)
			close(stopped)
		}()
		cancel()

		select {
		case <-stopped:
		case <-time.After(time.Second):
			t.Fatal("worker did not stop")
		}
	})
}
