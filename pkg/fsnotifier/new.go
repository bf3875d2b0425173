package fsnotifier

import (
	"context"
	"sync"

	"github.com/black-desk/fsnotifier/pkg/boundary"
	"github.com/black-desk/fsnotifier/pkg/interfaces"
	"github.com/black-desk/fsnotifier/pkg/metrics"
	"github.com/black-desk/fsnotifier/pkg/registry"
	"github.com/black-desk/fsnotifier/pkg/types"
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Watcher watches paths with one inotify instance
// and delivers their events to a single handler.
type Watcher struct {
	registry interfaces.Registry

	ctx       context.Context
	policy    types.NamePolicy
	queueSize int
	initFn    func() (int, error)
	log       *zap.SugaredLogger
	metrics   *metrics.Metrics

	lock    sync.Mutex
	pool    *pool.ErrorPool
	closed  bool
	stop    func() bool
	done    chan struct{}
	loopErr error
}

type Opt = (func(*Watcher) (*Watcher, error))

// New opens a notification channel.
// It fails with *registry.ErrChannelInit if the kernel refuses to.
func New(opts ...Opt) (ret *Watcher, err error) {
	defer Wrap(&err, "create new watcher")

	w := &Watcher{
		queueSize: boundary.DefaultQueueSize,
		done:      make(chan struct{}),
	}
	for i := range opts {
		w, err = opts[i](w)
		if err != nil {
			w = nil
			return
		}
	}

	if w.log == nil {
		w.log = zap.NewNop().Sugar()
	}

	if w.metrics == nil {
		w.metrics, err = metrics.New()
		if err != nil {
			return
		}
	}

	if w.ctx == nil {
		w.ctx = context.Background()
	}

	registryOpts := []registry.Opt{
		registry.WithLogger(w.log),
		registry.WithMetrics(w.metrics),
	}
	if w.initFn != nil {
		registryOpts = append(registryOpts, registry.WithInitFunc(w.initFn))
	}

	var r *registry.Registry
	r, err = registry.New(registryOpts...)
	if err != nil {
		return
	}
	w.registry = r

	w.stop = context.AfterFunc(w.ctx, func() {
		w.log.Debugw("Context done, closing watcher.",
			"cause", context.Cause(w.ctx),
		)
		_ = w.Close()
	})

	ret = w

	w.log.Debugw("Create a new watcher.",
		"name policy", w.policy,
		"queue size", w.queueSize,
	)

	return
}

// WithContext closes the watcher when ctx is done.
func WithContext(ctx context.Context) Opt {
	return func(w *Watcher) (ret *Watcher, err error) {
		if ctx == nil {
			err = ErrContextMissing
			return
		}

		w.ctx = ctx
		ret = w
		return
	}
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(w *Watcher) (ret *Watcher, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		w.log = log
		ret = w
		return
	}
}

func WithMetrics(m *metrics.Metrics) Opt {
	return func(w *Watcher) (ret *Watcher, err error) {
		if m == nil {
			err = ErrMetricsMissing
			return
		}

		w.metrics = m
		ret = w
		return
	}
}

func WithNamePolicy(p types.NamePolicy) Opt {
	return func(w *Watcher) (ret *Watcher, err error) {
		if p != types.NamePolicyLenient && p != types.NamePolicyStrict {
			err = &types.ErrUnknownNamePolicy{Name: p.String()}
			return
		}

		w.policy = p
		ret = w
		return
	}
}

// WithQueueSize sets how many calls may wait for the handler
// before the dispatch loop blocks.
func WithQueueSize(size int) Opt {
	return func(w *Watcher) (ret *Watcher, err error) {
		if size < 0 {
			err = &boundary.ErrInvalidQueueSize{Size: size}
			return
		}

		w.queueSize = size
		ret = w
		return
	}
}

// WithInitFunc replaces inotify_init1(2), see registry.WithInitFunc.
func WithInitFunc(fn func() (int, error)) Opt {
	return func(w *Watcher) (ret *Watcher, err error) {
		if fn == nil {
			err = ErrInitFuncMissing
			return
		}

		w.initFn = fn
		ret = w
		return
	}
}
