package queue

import "errors"

var (
	// ErrQueueFull is returned when an enqueue would exceed capacity.
	ErrQueueFull = errors.New("queue is full")
	// ErrQueueClosed is returned for operations on a closed queue.
	ErrQueueClosed = errors.New("queue is closed")
)
