package resilience

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	pool := NewWorkerPool(4, 8)

	var counter int64
	for i := 0; i < 100; i++ {
		err := pool.Submit(context.Background(), func() {
			atomic.AddInt64(&counter, 1)
		})
		assert.NoError(t, err)
	}

	pool.Close()
	pool.Wait()

	assert.Equal(t, int64(100), atomic.LoadInt64(&counter))
}

func TestWorkerPool_SubmitAfterClose(t *testing.T) {
	pool := NewWorkerPool(1, 1)
	pool.Close()
	pool.Wait()

	err := pool.Submit(context.Background(), func() {})
	assert.ErrorIs(t, err, ErrWorkerPoolClosed)
}

func TestWorkerPool_SubmitHonorsContext(t *testing.T) {
	pool := NewWorkerPool(1, 1)

	block := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	_ = pool.Submit(context.Background(), func() {
		defer wg.Done()
		<-block
	})
	// Fill the queue so the next submit must block.
	_ = pool.Submit(context.Background(), func() {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pool.Submit(ctx, func() {})
	assert.ErrorIs(t, err, context.Canceled)

	close(block)
	wg.Wait()
	pool.Close()
	pool.Wait()
}

func TestWorkerPool_CloseDuringSubmitDoesNotPanic(t *testing.T) {
	// Race Close against Submit repeatedly; a submit either enqueues or
	// reports the pool closed, it never sends on a closed channel.
	for i := 0; i < 200; i++ {
		pool := NewWorkerPool(1, 1)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := pool.Submit(context.Background(), func() {}); err != nil {
				assert.ErrorIs(t, err, ErrWorkerPoolClosed)
			}
		}()

		pool.Close()
		wg.Wait()
		pool.Wait()
	}
}

func TestWorkerPool_NilTaskIgnored(t *testing.T) {
	pool := NewWorkerPool(1, 1)
	assert.NoError(t, pool.Submit(context.Background(), nil))
	pool.Close()
	pool.Wait()
}
