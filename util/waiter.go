package util

import (
	"fmt"
	"sync"
	"time"
)

// Waiter monitors liveness of a periodic value producer
type Waiter struct {
	mu      sync.Mutex
	started time.Time
	updated time.Time
	timeout time.Duration
}

// NewWaiter creates a waiter with the given staleness timeout. Until the
// first update the timeout counts from creation.
func NewWaiter(timeout time.Duration) *Waiter {
	return &Waiter{
		started: time.Now(),
		timeout: timeout,
	}
}

// Update resets the timeout counter
func (w *Waiter) Update() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.updated = time.Now()
}

// Overdue returns an error if the last update is older than the timeout
func (w *Waiter) Overdue() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	since := w.updated
	if since.IsZero() {
		since = w.started
	}

	if elapsed := time.Since(since); w.timeout != 0 && elapsed > w.timeout {
		return fmt.Errorf("overdue: %v", elapsed)
	}

	return nil
}
