package boundary

import (
	"sync"
	"sync/atomic"

	"github.com/black-desk/fsnotifier/pkg/metrics"
	. "github.com/black-desk/lib/go/errwrap"
	"go.uber.org/zap"
)

const DefaultQueueSize = 64

// Function hands calls from any goroutine
// to a callee running on the single goroutine that executes Run,
// in the order they were queued.
type Function struct {
	callee    Callee
	queueSize int
	log       *zap.SugaredLogger
	metrics   *metrics.Metrics

	queue chan Call
	done  chan struct{}

	lock     sync.RWMutex
	released bool
	running  atomic.Bool
}

//go:generate go run github.com/rjeczalik/interfaces/cmd/interfacer@v0.3.0 -for github.com/black-desk/fsnotifier/pkg/boundary.Function -as interfaces.Function -o ../interfaces/function.go

func New(callee Callee, opts ...Opt) (ret *Function, err error) {
	defer Wrap(&err, "create threadsafe function")

	if callee == nil {
		err = ErrCalleeMissing
		return
	}

	f := &Function{
		callee:    callee,
		queueSize: DefaultQueueSize,
		done:      make(chan struct{}),
	}
	for i := range opts {
		f, err = opts[i](f)
		if err != nil {
			return
		}
	}

	if f.log == nil {
		f.log = zap.NewNop().Sugar()
	}

	if f.metrics == nil {
		f.metrics, err = metrics.New()
		if err != nil {
			return
		}
	}

	f.queue = make(chan Call, f.queueSize)

	ret = f

	f.log.Debugw("Create a new threadsafe function.",
		"queue size", f.queueSize,
	)

	return
}

type Opt func(f *Function) (ret *Function, err error)

// WithQueueSize sets how many calls may wait for the callee.
// Zero makes every blocking call wait until the callee takes it.
func WithQueueSize(size int) Opt {
	return func(f *Function) (ret *Function, err error) {
		if size < 0 {
			err = &ErrInvalidQueueSize{Size: size}
			return
		}

		f.queueSize = size
		ret = f
		return
	}
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(f *Function) (ret *Function, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		f.log = log
		ret = f
		return
	}
}

func WithMetrics(m *metrics.Metrics) Opt {
	return func(f *Function) (ret *Function, err error) {
		if m == nil {
			err = ErrMetricsMissing
			return
		}

		f.metrics = m
		ret = f
		return
	}
}
