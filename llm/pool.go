package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var ErrPoolClosed = errors.New("worker pool is closed")

// Job is a blocking unit of work, typically one model completion.
type Job func(ctx context.Context) (string, error)

type result struct {
	text string
	err  error
}

type task struct {
	ctx    context.Context
	job    Job
	result chan result
}

// Pool runs blocking model calls on a fixed set of workers so request
// goroutines only wait on a result channel.
type Pool struct {
	jobs   chan task
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewPool(ctx context.Context, maxWorkers, queueSize int) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 2
	}
	if queueSize < 1 {
		queueSize = 100
	}

	poolCtx, cancel := context.WithCancel(ctx)

	pool := &Pool{
		jobs:   make(chan task, queueSize),
		ctx:    poolCtx,
		cancel: cancel,
	}

	for i := 0; i < maxWorkers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case t := <-p.jobs:
			t.result <- p.run(t)
		}
	}
}

func (p *Pool) run(t task) (res result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("model job panicked", "panic", r)
			res = result{err: fmt.Errorf("model job panicked: %v", r)}
		}
	}()

	text, err := t.job(t.ctx)

	return result{text: text, err: err}
}

// Do queues job and waits for its outcome. It blocks while the queue is full
// (backpressure) and gives up when ctx is cancelled or the pool is stopped.
func (p *Pool) Do(ctx context.Context, job Job) (string, error) {
	t := task{
		ctx:    ctx,
		job:    job,
		result: make(chan result, 1),
	}

	select {
	case p.jobs <- t:
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.ctx.Done():
		return "", ErrPoolClosed
	}

	select {
	case res := <-t.result:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.ctx.Done():
		return "", ErrPoolClosed
	}
}

// Stop signals workers to exit; jobs already running finish on their own.
func (p *Pool) Stop() {
	p.cancel()
}

func (p *Pool) Wait() {
	p.wg.Wait()
}
