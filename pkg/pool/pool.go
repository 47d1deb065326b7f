// Package pool runs jobs on a fixed set of goroutines sharing one FIFO queue.
//
// A worker runs ordinary jobs until it claims a finish job; it runs that job
// and exits. Callers that want every worker to report completion submit
// exactly one finish job per worker after their last ordinary job. Close
// sends one terminate message per worker and waits for all of them, so no
// goroutine outlives the pool.
package pool

import (
	"fmt"
	"sync"

	"github.com/df07/go-chunk-raytracer/pkg/log"
)

var logger = log.New("pool")

// Job is a unit of work. The argument is the id of the worker running it.
type Job func(worker int)

// Pool is a fixed set of worker goroutines
type Pool struct {
	size      int
	queue     *queue
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New starts n workers. n must be positive.
func New(n int) *Pool {
	if n <= 0 {
		panic(fmt.Sprintf("pool: worker count must be positive, got %d", n))
	}

	p := &Pool{size: n, queue: newQueue()}
	for id := 0; id < n; id++ {
		p.wg.Add(1)
		go p.run(id)
	}

	logger.Debugf("started %d workers", n)
	return p
}

// Size returns the number of workers
func (p *Pool) Size() int {
	return p.size
}

// Pending returns the number of queued messages not yet claimed
func (p *Pool) Pending() int {
	return p.queue.len()
}

// Execute queues an ordinary job
func (p *Pool) Execute(job Job) {
	if job == nil {
		panic("pool: nil job")
	}
	p.queue.push(message{job: job})
}

// Finish queues a job after which the worker that runs it exits
func (p *Pool) Finish(job Job) {
	if job == nil {
		panic("pool: nil job")
	}
	p.queue.push(message{job: job, finish: true})
}

// Close sends one terminate message per worker and waits until every worker
// has exited. Workers that already ran a finish job are simply joined.
// Jobs queued before Close still run. Close is idempotent.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		terminate := make([]message, p.size)
		for i := range terminate {
			terminate[i] = message{terminate: true}
		}
		p.queue.seal(terminate...)
		p.wg.Wait()
		logger.Debugf("joined %d workers", p.size)
	})
}

func (p *Pool) run(id int) {
	defer p.wg.Done()

	for {
		m := p.queue.pop()
		if m.terminate {
			return
		}
		m.job(id)
		if m.finish {
			return
		}
	}
}
