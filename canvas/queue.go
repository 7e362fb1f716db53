package canvas

import "context"

// Queue serialises asynchronous completions onto the goroutine that owns a
// Handler. Work started with Go runs in the background; the completion it
// returns only runs when the owner calls Pump or Wait.
//
// Go, Pump, Wait and Pending must all be called from the owning goroutine.
type Queue struct {
	ch      chan func()
	pending int
}

// NewQueue creates a queue that buffers up to size completions before
// background work blocks on posting.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan func(), size)}
}

// Go runs work on a new goroutine. The function it returns, if non-nil, is
// executed later on the owning goroutine.
func (q *Queue) Go(work func() func()) {
	q.pending++
	go func() {
		done := work()
		q.ch <- func() {
			q.pending--
			if done != nil {
				done()
			}
		}
	}()
}

// Post schedules fn to run on the owning goroutine. It is safe to call from
// any goroutine.
func (q *Queue) Post(fn func()) {
	q.ch <- fn
}

// Pending returns the number of Go calls whose completion has not run yet.
func (q *Queue) Pending() int { return q.pending }

// Pump runs every completion that is ready without blocking and returns how
// many ran.
func (q *Queue) Pump() int {
	n := 0
	for {
		select {
		case fn := <-q.ch:
			fn()
			n++
		default:
			return n
		}
	}
}

// Wait runs completions until no Go work is outstanding or ctx is done.
func (q *Queue) Wait(ctx context.Context) error {
	for q.pending > 0 {
		select {
		case fn := <-q.ch:
			fn()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	q.Pump()
	return nil
}
