package pool

import "sync"

// message is a queued item. Terminate messages carry no job.
type message struct {
	job       Job
	finish    bool
	terminate bool
}

// queue is an unbounded FIFO. Producers never block; consumers block in pop
// until an item is available.
type queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []message
	closed bool
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends a message. Pushing into a closed queue panics.
func (q *queue) push(m message) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		panic("pool: job submitted to a closed pool")
	}
	q.items = append(q.items, m)
	q.cond.Signal()
}

// seal appends messages and closes the queue against further pushes
func (q *queue) seal(messages ...message) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, messages...)
	q.closed = true
	q.cond.Broadcast()
}

// pop removes the oldest message, blocking while the queue is empty
func (q *queue) pop() message {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		q.cond.Wait()
	}

	m := q.items[0]
	q.items[0] = message{}
	q.items = q.items[1:]
	return m
}

// len returns the number of queued messages
func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
