package fsnotifier

import (
	"context"

	"github.com/black-desk/fsnotifier/pkg/boundary"
	"github.com/black-desk/fsnotifier/pkg/decoder"
	"github.com/black-desk/fsnotifier/pkg/dispatch"
	"github.com/sourcegraph/conc/pool"
)

func (w *Watcher) isClosed() bool {
	w.lock.Lock()
	defer w.lock.Unlock()

	return w.closed
}

func (w *Watcher) wrapRegistration(err *error) {
	if *err == nil {
		return
	}

	*err = &ErrRegistration{Cause: *err}
}

func (w *Watcher) start(callee boundary.Callee) (err error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.closed {
		err = ErrClosed
		return
	}

	if w.pool != nil {
		err = ErrHandlerRegistered
		return
	}

	var dec *decoder.Decoder
	dec, err = decoder.New(
		w.registry.Reader(),
		decoder.WithNamePolicy(w.policy),
		decoder.WithLogger(w.log),
	)
	if err != nil {
		return
	}

	var fn *boundary.Function
	fn, err = boundary.New(
		w.dropAfterClose(callee),
		boundary.WithQueueSize(w.queueSize),
		boundary.WithLogger(w.log),
		boundary.WithMetrics(w.metrics),
	)
	if err != nil {
		return
	}

	var d *dispatch.Dispatcher
	d, err = dispatch.New(
		dispatch.WithSource(dec),
		dispatch.WithFunction(fn),
		dispatch.WithForget(w.registry.Forget),
		dispatch.WithClosed(w.isClosed),
		dispatch.WithLogger(w.log),
		dispatch.WithMetrics(w.metrics),
	)
	if err != nil {
		return
	}

	// Neither goroutine follows w.ctx:
	// cancelling it closes the channel,
	// and the loop has to deliver that failure before the executor stops.
	ctx := context.WithoutCancel(w.ctx)

	p := pool.New().WithErrors()
	p.Go(func() error { return w.runHandler(ctx, fn) })
	p.Go(func() error { return w.runDispatcher(ctx, d) })
	w.pool = p

	go func() {
		w.loopErr = p.Wait()
		close(w.done)
	}()

	return
}

// dropAfterClose keeps events queued before Close away from the handler.
// The failure call still goes through.
func (w *Watcher) dropAfterClose(callee boundary.Callee) boundary.Callee {
	return func(call boundary.Call) {
		if call.Err == nil && w.isClosed() {
			w.log.Debugw("Event dropped, watcher closed.")
			return
		}

		callee(call)
	}
}

func (w *Watcher) runHandler(ctx context.Context, fn *boundary.Function) (err error) {
	defer w.log.Debugw("Handler executor exited.")

	w.log.Debugw("Start handler executor.")

	return fn.Run(ctx)
}

func (w *Watcher) runDispatcher(ctx context.Context, d *dispatch.Dispatcher) (err error) {
	defer w.log.Debugw("Dispatch loop exited.",
		"state", d.State(),
	)

	w.log.Debugw("Start dispatch loop.")

	return d.Run(ctx)
}
