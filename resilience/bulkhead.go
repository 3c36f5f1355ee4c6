package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrBulkheadFull is returned when no slot is free and waiting is off.
	ErrBulkheadFull = errors.New("bulkhead is full")
	// ErrBulkheadTimeout is returned when no slot freed up within MaxWait.
	// It matches ErrBulkheadFull under errors.Is.
	ErrBulkheadTimeout = fmt.Errorf("%w: wait timed out", ErrBulkheadFull)
)

// BulkheadConfig configures a bulkhead.
type BulkheadConfig struct {
	// Name prefixes rejection errors, e.g. "ffmpeg".
	Name string
	// MaxConcurrent is the number of slots. Defaults to 4.
	MaxConcurrent int
	// MaxWait is how long a caller queues for a slot. 0 rejects at once.
	MaxWait time.Duration
	// OnReject is called with the time spent queueing before rejection.
	OnReject func(name string, waited time.Duration)
}

// Bulkhead caps concurrent work with a counting semaphore, so a burst of
// uploads cannot start more decoder subprocesses than the host can run.
type Bulkhead struct {
	config  BulkheadConfig
	sem     chan struct{}
	waiting atomic.Int32
}

// NewBulkhead creates a bulkhead.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 4
	}
	return &Bulkhead{
		config: config,
		sem:    make(chan struct{}, config.MaxConcurrent),
	}
}

// Execute runs fn while holding a slot.
func (b *Bulkhead) Execute(ctx context.Context, fn func() error) error {
	release, err := b.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

// Acquire takes a slot and returns the function that gives it back. The
// release function is safe to call more than once.
func (b *Bulkhead) Acquire(ctx context.Context) (func(), error) {
	start := time.Now()
	if err := b.take(ctx); err != nil {
		if b.config.OnReject != nil {
			b.config.OnReject(b.config.Name, time.Since(start))
		}
		if b.config.Name != "" {
			err = fmt.Errorf("%s: %w", b.config.Name, err)
		}
		return nil, err
	}
	var once sync.Once
	return func() { once.Do(func() { <-b.sem }) }, nil
}

func (b *Bulkhead) take(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		return nil
	default:
	}
	if b.config.MaxWait <= 0 {
		return ErrBulkheadFull
	}

	b.waiting.Add(1)
	defer b.waiting.Add(-1)
	timer := time.NewTimer(b.config.MaxWait)
	defer timer.Stop()
	select {
	case b.sem <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrBulkheadTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InUse returns the number of held slots.
func (b *Bulkhead) InUse() int {
	return len(b.sem)
}

// Waiting returns the number of callers queued for a slot.
func (b *Bulkhead) Waiting() int {
	return int(b.waiting.Load())
}

// MaxConcurrent returns the slot count.
func (b *Bulkhead) MaxConcurrent() int {
	return b.config.MaxConcurrent
}
