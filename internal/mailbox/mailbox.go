// Package mailbox provides a single-slot buffer where the latest value
// wins. It is NOT a queue: while the worker is busy, a newer deployment
// bundle simply replaces the one still waiting.
package mailbox

import "context"

type Mailbox[T any] struct {
	ch chan T
}

func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{ch: make(chan T, 1)}
}

// Put stores a value, replacing any value already waiting. It never
// blocks.
func (m *Mailbox[T]) Put(v T) {
	for {
		select {
		case m.ch <- v:
			return
		default:
		}
		// Slot occupied: drop the stale value and retry.
		select {
		case <-m.ch:
		default:
		}
	}
}

// Take blocks until a value is available or ctx is done.
func (m *Mailbox[T]) Take(ctx context.Context) (T, bool) {
	select {
	case v := <-m.ch:
		return v, true
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}
