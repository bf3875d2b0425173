package dispatch

import (
	"context"
	"os"

	"github.com/black-desk/fsnotifier/pkg/decoder"
	. "github.com/black-desk/lib/go/errwrap"
)

// Run delivers events until the event source fails
// or the channel is reported closed.
// The failure is delivered as the last call,
// then the function is released and the failure returned.
func (d *Dispatcher) Run(ctx context.Context) (err error) {
	defer Wrap(&err, "run dispatch loop")

	if !d.running.CompareAndSwap(false, true) {
		err = ErrAlreadyRunning
		return
	}

	defer d.fn.Release()

	d.state.Store(uint32(StateRunning))
	d.log.Debugw("Dispatch loop started.")

	for ev, decodeErr := range d.source.All() {
		if decodeErr != nil {
			err = d.fail(ctx, decodeErr)
			return
		}

		if d.closed != nil && d.closed() {
			err = d.fail(ctx, &decoder.ErrRead{Cause: os.ErrClosed})
			return
		}

		err = d.deliver(ctx, ev)
		if err != nil {
			d.state.Store(uint32(StateCanceled))
			return
		}
	}

	err = d.fail(ctx, ErrEndOfStream)
	return
}

func (d *Dispatcher) State() State {
	return State(d.state.Load())
}
