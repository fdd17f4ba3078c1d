// Package events serializes asynchronous completions onto the frame goroutine.
package events

import "sync"

// Queue collects callbacks posted from any goroutine. Drain runs them in FIFO
// order on the caller's goroutine, once per frame.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// Post enqueues fn. It is safe for concurrent use.
func (q *Queue) Post(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Drain runs every callback queued before the call and returns how many ran.
// Callbacks posted while draining wait for the next Drain.
func (q *Queue) Drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Len returns the number of callbacks waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
