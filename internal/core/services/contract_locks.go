package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aqsaty/installment_app/internal/apperrors"
)

// contractLocks serializes mutations per contract. Redistribution and payment
// application read the whole installment set before writing it back, so two
// concurrent edits to the same contract must not interleave. Different
// contracts proceed in parallel.
type contractLocks struct {
	mu      sync.Mutex
	sems    map[string]*contractSem
	timeout time.Duration
}

// contractSem is one contract's lock slot plus the count of holders and
// waiters referencing it. Entries are evicted once nothing references them,
// so the map does not grow with every contract ID ever touched.
type contractSem struct {
	slot chan struct{}
	refs int
}

func newContractLocks(timeout time.Duration) *contractLocks {
	return &contractLocks{
		sems:    make(map[string]*contractSem),
		timeout: timeout,
	}
}

// acquire takes the exclusive lock for a contract, waiting at most the
// configured timeout. On timeout it fails with ErrContractBusy, which callers
// treat as retryable. The returned release function must be called exactly
// once.
func (l *contractLocks) acquire(ctx context.Context, contractID string) (func(), error) {
	l.mu.Lock()
	sem, ok := l.sems[contractID]
	if !ok {
		sem = &contractSem{slot: make(chan struct{}, 1)}
		l.sems[contractID] = sem
	}
	sem.refs++
	l.mu.Unlock()

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case sem.slot <- struct{}{}:
		return func() {
			<-sem.slot
			l.unref(contractID, sem)
		}, nil
	case <-timer.C:
		l.unref(contractID, sem)
		return nil, fmt.Errorf("contract %s: %w", contractID, apperrors.ErrContractBusy)
	case <-ctx.Done():
		l.unref(contractID, sem)
		return nil, ctx.Err()
	}
}

// unref drops one reference and removes the map entry once no holder or
// waiter is left on it.
func (l *contractLocks) unref(contractID string, sem *contractSem) {
	l.mu.Lock()
	sem.refs--
	if sem.refs == 0 {
		delete(l.sems, contractID)
	}
	l.mu.Unlock()
}
