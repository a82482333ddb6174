// Package pool runs a fixed set of workers over a FIFO queue of work items.
// The queue is filled single-threaded before the workers start; one mutex
// serializes dequeues and progress sampling, while items themselves execute
// outside the lock.
package pool

import (
	"sync"

	"github.com/AnyUserName/domscale/internal/progress"
)

// Item is one unit of queued work. A failing item affects only itself; its
// error is captured and the remaining items still run.
type Item interface {
	Run() error
}

// Pool is the worker pool. Zero value is not usable; create with New.
type Pool struct {
	workers int
	tracker *progress.Tracker

	mu    sync.Mutex
	queue []Item
	errs  []error
}

// New creates a pool of the given worker count. tracker may be nil to
// disable progress reporting.
func New(workers int, tracker *progress.Tracker) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers, tracker: tracker}
}

// Push appends an item to the queue tail. Must only be called before Run:
// the queue has no producer side once workers are draining it.
func (p *Pool) Push(it Item) {
	p.queue = append(p.queue, it)
}

// Run starts the workers, blocks until the queue is empty and every
// in-flight item has finished, and returns the errors the items produced,
// in completion order.
func (p *Pool) Run() []error {
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.drain()
		}()
	}
	wg.Wait()
	return p.errs
}

// drain is one worker's loop: take the queue head, run it unlocked, repeat
// until the queue is empty.
func (p *Pool) drain() {
	p.mu.Lock()
	for len(p.queue) > 0 {
		if p.tracker != nil {
			p.tracker.Sample(len(p.queue))
		}

		it := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		err := it.Run()

		p.mu.Lock()
		if err != nil {
			p.errs = append(p.errs, err)
		}
	}
	p.mu.Unlock()
}
