package dispatch

import (
	"sync/atomic"

	"github.com/black-desk/fsnotifier/pkg/interfaces"
	"github.com/black-desk/fsnotifier/pkg/metrics"
	"github.com/black-desk/fsnotifier/pkg/types"
	. "github.com/black-desk/lib/go/errwrap"
	"go.uber.org/zap"
)

// Dispatcher forwards events from an event source
// to a threadsafe function, one at a time and in order.
type Dispatcher struct {
	source  interfaces.EventSource
	fn      interfaces.Function
	forget  func(types.WatchDescriptor)
	closed  func() bool
	log     *zap.SugaredLogger
	metrics *metrics.Metrics

	state   atomic.Uint32
	running atomic.Bool
}

func New(opts ...Opt) (ret *Dispatcher, err error) {
	defer Wrap(&err, "create dispatch loop")

	d := &Dispatcher{}
	for i := range opts {
		d, err = opts[i](d)
		if err != nil {
			return
		}
	}

	if d.source == nil {
		err = ErrSourceMissing
		return
	}

	if d.fn == nil {
		err = ErrFunctionMissing
		return
	}

	if d.log == nil {
		d.log = zap.NewNop().Sugar()
	}

	if d.metrics == nil {
		d.metrics, err = metrics.New()
		if err != nil {
			return
		}
	}

	ret = d

	d.log.Debugw("Create a new dispatch loop.")

	return
}

type Opt func(d *Dispatcher) (ret *Dispatcher, err error)

func WithSource(source interfaces.EventSource) Opt {
	return func(d *Dispatcher) (ret *Dispatcher, err error) {
		if source == nil {
			err = ErrSourceMissing
			return
		}

		d.source = source
		ret = d
		return
	}
}

func WithFunction(fn interfaces.Function) Opt {
	return func(d *Dispatcher) (ret *Dispatcher, err error) {
		if fn == nil {
			err = ErrFunctionMissing
			return
		}

		d.fn = fn
		ret = d
		return
	}
}

// WithForget sets the function called with the descriptor
// of every IN_IGNORED event, after the event is delivered.
func WithForget(forget func(types.WatchDescriptor)) Opt {
	return func(d *Dispatcher) (ret *Dispatcher, err error) {
		d.forget = forget
		ret = d
		return
	}
}

// WithClosed sets the function reporting whether the channel was closed.
// Once it returns true the loop fails with os.ErrClosed
// instead of delivering the events still buffered.
func WithClosed(closed func() bool) Opt {
	return func(d *Dispatcher) (ret *Dispatcher, err error) {
		if closed == nil {
			err = ErrClosedFuncMissing
			return
		}

		d.closed = closed
		ret = d
		return
	}
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(d *Dispatcher) (ret *Dispatcher, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		d.log = log
		ret = d
		return
	}
}

func WithMetrics(m *metrics.Metrics) Opt {
	return func(d *Dispatcher) (ret *Dispatcher, err error) {
		if m == nil {
			err = ErrMetricsMissing
			return
		}

		d.metrics = m
		ret = d
		return
	}
}
