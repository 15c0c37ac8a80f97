package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestPool_RunExecutesJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPool(2, zerolog.Nop())
	p.Start(ctx)

	ran := false
	if err := p.Run(ctx, func() { ran = true }); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !ran {
		t.Fatalf("job did not run")
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const workers = 2
	p := NewPool(workers, zerolog.Nop())
	p.Start(ctx)

	var running, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Run(ctx, func() {
				n := atomic.AddInt32(&running, 1)
				for {
					old := atomic.LoadInt32(&peak)
					if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&running, -1)
			})
		}()
	}
	wg.Wait()

	if peak > workers {
		t.Fatalf("expected at most %d concurrent jobs, saw %d", workers, peak)
	}
}

func TestPool_RecoversPanic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPool(1, zerolog.Nop())
	p.Start(ctx)

	if err := p.Run(ctx, func() { panic("boom") }); err == nil {
		t.Fatalf("expected error from panicking job")
	}
	// The worker must survive the panic.
	if err := p.Run(ctx, func() {}); err != nil {
		t.Fatalf("run after panic: %v", err)
	}
}

func TestPool_RunAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPool(1, zerolog.Nop())
	p.Start(ctx)
	cancel()

	deadline := time.After(time.Second)
	for {
		err := p.Run(context.Background(), func() {})
		if errors.Is(err, ErrPoolStopped) {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected ErrPoolStopped, got %v", err)
		default:
		}
	}
}

func TestNewPool_DefaultWorkers(t *testing.T) {
	if p := NewPool(0, zerolog.Nop()); p.Workers() <= 0 {
		t.Fatalf("expected positive default worker count")
	}
}
