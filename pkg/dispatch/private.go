package dispatch

import (
	"context"
	"errors"

	"github.com/black-desk/fsnotifier/pkg/boundary"
	"github.com/black-desk/fsnotifier/pkg/decoder"
	"github.com/black-desk/fsnotifier/pkg/metrics"
	"github.com/black-desk/fsnotifier/pkg/types"
)

// Args of every call, in order:
// name (String or Null), mask, cookie, watch descriptor.
func eventArgs(ev *types.Event) []boundary.Value {
	return []boundary.Value{
		boundary.StringOrNull(ev.Name),
		boundary.Number(ev.Mask),
		boundary.Number(ev.Cookie),
		boundary.Number(uint32(ev.WD)),
	}
}

func failureArgs() []boundary.Value {
	return []boundary.Value{
		boundary.Null{},
		boundary.Number(0),
		boundary.Number(0),
		boundary.Null{},
	}
}

func (d *Dispatcher) deliver(ctx context.Context, ev *types.Event) (err error) {
	err = d.fn.Call(ctx, boundary.Call{Args: eventArgs(ev)}, boundary.CallModeBlocking)
	if err != nil {
		return
	}

	d.metrics.Events.Inc()

	if flags := ev.Mask & types.EventFlagBits; flags != 0 {
		d.log.Debugw("Event carries kernel flags.",
			"wd", ev.WD,
			"flags", flags,
		)
	}

	if ev.Mask.Has(types.InQOverflow) {
		d.metrics.Overflows.Inc()
		d.log.Warnw("Kernel event queue overflowed, events were lost.")
	}

	if ev.Mask.Has(types.InIgnored) && d.forget != nil {
		d.forget(ev.WD)
	}

	return
}

func (d *Dispatcher) fail(ctx context.Context, cause error) (err error) {
	state := StateTerminatedOnDecodeError
	reason := metrics.ReasonDecode

	var readErr *decoder.ErrRead
	if errors.As(cause, &readErr) || errors.Is(cause, ErrEndOfStream) {
		state = StateTerminatedOnChannelError
		reason = metrics.ReasonRead
	}

	d.metrics.Failures.WithLabelValues(reason).Inc()

	err = &ErrTerminated{Cause: cause}

	d.log.Debugw("Dispatch loop terminating.",
		"state", state,
		"error", cause,
	)

	callErr := d.fn.Call(ctx, boundary.Call{
		Err:  err,
		Args: failureArgs(),
	}, boundary.CallModeBlocking)
	if callErr != nil {
		d.log.Warnw("Failed to deliver the terminating failure.",
			"error", callErr,
		)
		state = StateCanceled
	}

	d.state.Store(uint32(state))
	return
}
