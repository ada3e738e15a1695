// Package worker provides the bounded background pools the two-phase
// admission path and the notification boundary run on. The queue is bounded
// so backpressure is explicit; the overflow policy is part of the pool's
// contract because the two consumers need opposite behavior: a bid
// persistence task must never be dropped (it runs on the caller instead),
// while a missed notification is acceptable.
package worker

import (
	"sync"

	"auction-engine/utils"
)

// Task is one unit of background work.
type Task func()

// OverflowPolicy selects what Submit does when the queue is full.
type OverflowPolicy int

const (
	// RunOnCaller executes the task synchronously on the submitting
	// goroutine when the queue is full. Nothing is lost; the caller pays
	// the latency.
	RunOnCaller OverflowPolicy = iota
	// Discard drops the task when the queue is full.
	Discard
)

// Pool is a fixed-size worker pool over a bounded task queue.
type Pool struct {
	name     string
	tasks    chan Task
	policy   OverflowPolicy
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewPool creates and starts a pool with the given worker count and queue
// capacity.
func NewPool(name string, workers, queueSize int, policy OverflowPolicy) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	p := &Pool{
		name:   name,
		tasks:  make(chan Task, queueSize),
		policy: policy,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.execute(task)
	}
}

// execute runs one task, containing panics so a bad task cannot kill a
// worker.
func (p *Pool) execute(task Task) {
	defer func() {
		if r := recover(); r != nil {
			utils.Error("worker task panicked", map[string]any{
				"pool":  p.name,
				"panic": r,
			})
		}
	}()
	task()
}

// Submit enqueues a task. When the queue is full the overflow policy decides:
// RunOnCaller executes it inline and returns true; Discard drops it and
// returns false.
func (p *Pool) Submit(task Task) bool {
	select {
	case p.tasks <- task:
		return true
	default:
	}

	switch p.policy {
	case RunOnCaller:
		utils.Warn("worker queue full, running task on caller", map[string]any{"pool": p.name})
		p.execute(task)
		return true
	default:
		utils.Warn("worker queue full, task discarded", map[string]any{"pool": p.name})
		return false
	}
}

// QueueDepth returns the number of tasks waiting in the queue.
func (p *Pool) QueueDepth() int {
	return len(p.tasks)
}

// Stop closes the queue and waits for in-flight tasks to finish. Safe to call
// more than once.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.tasks)
	})
	p.wg.Wait()
}
