// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// runnerCapacity is the bounded capacity of the runner job queue.
const runnerCapacity = 8

const (
	runnerRunning uint32 = iota
	runnerClosing
	runnerClosed
)

// job is one unit of work for a Runner.
type job struct {
	fn   func(Context[Activated]) error
	done chan error
}

// Runner confines an engine to one OS thread. A dedicated goroutine,
// locked to its thread, holds the activation and runs submitted jobs
// in order. Jobs travel through a bounded lock-free SPSC queue;
// producers are serialized by a mutex.
type Runner struct {
	e   *Engine
	log *zap.Logger

	mu    sync.Mutex
	jobs  lfq.SPSC[job]
	slot  job
	state atomix.Uint32

	exit chan struct{}
	err  error
}

// NewRunner starts a runner that owns e. The engine must be idle; it is
// closed together with the runner.
func NewRunner(e *Engine) (*Runner, error) {
	r := &Runner{e: e, log: e.log, exit: make(chan struct{})}
	r.jobs.Init(runnerCapacity)
	ready := make(chan error, 1)
	go r.work(ready)
	if err := <-ready; err != nil {
		<-r.exit
		return nil, err
	}
	return r, nil
}

// activate runs on the worker goroutine and turns an activation panic
// into an error.
func (r *Runner) activate() (a *Activation, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("prolog: runner activate: %v", p)
		}
	}()
	return r.e.Activate(), nil
}

func (r *Runner) work(ready chan<- error) {
	defer close(r.exit)
	a, err := r.activate()
	ready <- err
	if err != nil {
		return
	}
	r.log.Debug("runner started", zap.Uint32("serial", r.e.serial))

	var bo iox.Backoff
	for {
		j, err := r.jobs.Dequeue()
		if err == nil {
			bo.Reset()
			r.run(a, j)
			continue
		}
		if r.state.Load() == runnerClosing {
			// Jobs enqueued before the state change are still run.
			for {
				j, err := r.jobs.Dequeue()
				if err != nil {
					break
				}
				r.run(a, j)
			}
			break
		}
		bo.Wait()
	}
	r.err = r.release(a)
}

// run runs one job. Frames and queries the job leaves open, whether it
// returns or panics, are discarded before its result is delivered.
func (r *Runner) run(a *Activation, j job) {
	var err error
	defer func() {
		if p := recover(); p != nil {
			r.log.Warn("runner job panicked", zap.Uint32("serial", r.e.serial), zap.Any("panic", p))
			err = fmt.Errorf("%w: %v", ErrJobPanicked, p)
		}
		if n := a.unwind(); n > 0 {
			r.log.Warn("runner job left scopes open", zap.Uint32("serial", r.e.serial), zap.Int("scopes", n))
		}
		j.done <- err
	}()
	err = j.fn(a.Context())
}

func (r *Runner) release(a *Activation) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("prolog: runner deactivate: %v", p)
		}
	}()
	a.Release()
	return nil
}

// TryDo submits fn without blocking. It returns iox.ErrWouldBlock when
// the queue is full and ErrRunnerClosed after Close. The returned
// channel receives the result of fn.
func (r *Runner) TryDo(fn func(Context[Activated]) error) (<-chan error, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Load() != runnerRunning {
		return nil, ErrRunnerClosed
	}
	r.slot = job{fn: fn, done: make(chan error, 1)}
	if err := r.jobs.Enqueue(&r.slot); err != nil {
		return nil, err
	}
	return r.slot.done, nil
}

// Do runs fn on the runner thread and waits for its result. While the
// queue is full it backs off with iox.Backoff. Cancelling ctx stops the
// wait, not the job.
func (r *Runner) Do(ctx context.Context, fn func(Context[Activated]) error) error {
	var bo iox.Backoff
	for {
		done, err := r.TryDo(fn)
		if err == nil {
			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if !errors.Is(err, iox.ErrWouldBlock) {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		bo.Wait()
	}
}

// Close stops accepting jobs, runs the queued ones, deactivates the
// engine on the runner thread and closes it. Close is idempotent.
func (r *Runner) Close() error {
	r.mu.Lock()
	first := r.state.CompareAndSwap(runnerRunning, runnerClosing)
	r.mu.Unlock()
	<-r.exit
	if !first {
		return nil
	}
	err := multierr.Append(r.err, r.e.Close())
	r.state.Store(runnerClosed)
	r.log.Debug("runner closed", zap.Uint32("serial", r.e.serial), zap.Error(err))
	return err
}
