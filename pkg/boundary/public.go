package boundary

import (
	"context"

	. "github.com/black-desk/lib/go/errwrap"
)

// Call queues a call for the callee.
func (f *Function) Call(ctx context.Context, call Call, mode CallMode) (err error) {
	f.lock.RLock()
	defer f.lock.RUnlock()

	if f.released {
		err = ErrReleased
		return
	}

	switch mode {
	case CallModeBlocking:
		select {
		case f.queue <- call:
		case <-f.done:
			err = ErrExecutorExited
			return
		case <-ctx.Done():
			err = context.Cause(ctx)
			return
		}
	case CallModeNonBlocking:
		select {
		case f.queue <- call:
		default:
			err = ErrQueueFull
			return
		}
	default:
		err = &ErrUnknownCallMode{Mode: mode}
		return
	}

	f.metrics.QueueDepth.Set(float64(len(f.queue)))
	return
}

// Release stops accepting calls.
// Calls already queued are still handed to the callee.
// It must not be called from the callee.
func (f *Function) Release() {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.released {
		return
	}

	f.released = true
	close(f.queue)

	f.log.Debugw("Threadsafe function released.")
}

// Run invokes the callee for every queued call.
// It returns nil once the function is released and the queue is drained.
func (f *Function) Run(ctx context.Context) (err error) {
	defer Wrap(&err, "run threadsafe function")

	if !f.running.CompareAndSwap(false, true) {
		err = ErrAlreadyRunning
		return
	}
	defer close(f.done)

	for {
		select {
		case call, ok := <-f.queue:
			if !ok {
				f.log.Debugw("Threadsafe function drained.")
				return
			}

			f.metrics.QueueDepth.Set(float64(len(f.queue)))
			f.invoke(call)
		case <-ctx.Done():
			err = context.Cause(ctx)
			return
		}
	}
}

// Done is closed after Run returns.
func (f *Function) Done() <-chan struct{} {
	return f.done
}
