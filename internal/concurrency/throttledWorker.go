package concurrency

import (
	"context"
	"errors"

	"golang.org/x/time/rate"
)

var ErrQueueFull = errors.New("worker queue is full")

// runs queued jobs one at a time, in order, no faster than the limiter allows
type ThrottledWorker[T any] struct {
	jobCallback func(ctx context.Context, arg T)
	jobs        chan T
	limiter     *rate.Limiter
}

func NewThrottledWorker[T any](ratePerSecond float64, queueSize int, jobCallback func(ctx context.Context, arg T)) *ThrottledWorker[T] {
	burst := int(ratePerSecond)
	if burst < 1 {
		burst = 1
	}
	return &ThrottledWorker[T]{
		jobCallback: jobCallback,
		jobs:        make(chan T, queueSize),
		limiter:     rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

// queues a job without blocking
func (w *ThrottledWorker[T]) Enqueue(arg T) error {
	select {
	case w.jobs <- arg:
		return nil
	default:
		return ErrQueueFull
	}
}

// drains the queue until ctx is done
func (w *ThrottledWorker[T]) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case arg := <-w.jobs:
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			w.jobCallback(ctx, arg)
		}
	}
}
