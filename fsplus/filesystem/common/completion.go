package common

import "sync"

// Completion delivers the result of an asynchronous operation exactly once.
// The first Finish wins; later calls are ignored.
type Completion[T any] struct {
	once sync.Once
	ch   chan T
}

// NewCompletion creates a Completion whose channel is buffered so that
// Finish never blocks on a caller that has stopped listening.
func NewCompletion[T any]() *Completion[T] {
	return &Completion[T]{ch: make(chan T, 1)}
}

// Finish publishes v and closes the channel. It reports whether v was the
// value delivered.
func (c *Completion[T]) Finish(v T) bool {
	delivered := false
	c.once.Do(func() {
		c.ch <- v
		close(c.ch)
		delivered = true
	})
	return delivered
}

// Done returns the channel that receives the single result
func (c *Completion[T]) Done() <-chan T {
	return c.ch
}
