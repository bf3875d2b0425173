package registry

import (
	"os"
	"sync"

	"github.com/black-desk/fsnotifier/pkg/metrics"
	"github.com/black-desk/fsnotifier/pkg/types"
	. "github.com/black-desk/lib/go/errwrap"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Registry owns one inotify instance
// and the watches registered on it.
type Registry struct {
	lock   sync.Mutex
	file   *os.File
	paths  map[types.WatchDescriptor]string
	closed bool

	initFn  func() (int, error)
	log     *zap.SugaredLogger
	metrics *metrics.Metrics
}

//go:generate go run github.com/rjeczalik/interfaces/cmd/interfacer@v0.3.0 -for github.com/black-desk/fsnotifier/pkg/registry.Registry -as interfaces.Registry -o ../interfaces/registry.go

func New(opts ...Opt) (ret *Registry, err error) {
	defer Wrap(&err, "create watch registry")

	r := &Registry{
		paths: map[types.WatchDescriptor]string{},
	}
	for i := range opts {
		r, err = opts[i](r)
		if err != nil {
			return
		}
	}

	if r.log == nil {
		r.log = zap.NewNop().Sugar()
	}

	if r.metrics == nil {
		r.metrics, err = metrics.New()
		if err != nil {
			return
		}
	}

	if r.initFn == nil {
		r.initFn = inotifyInit
	}

	var fd int
	fd, err = r.initFn()
	if err != nil {
		err = &ErrChannelInit{Cause: err}
		return
	}

	// The descriptor is non-blocking,
	// so os.NewFile hands it to the runtime poller:
	// Read parks the goroutine and Close wakes it up.
	r.file = os.NewFile(uintptr(fd), "inotify")

	ret = r

	r.log.Debugw("Notification channel opened.",
		"fd", fd,
	)

	return
}

func inotifyInit() (int, error) {
	return unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
}

type Opt func(r *Registry) (ret *Registry, err error)

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(r *Registry) (ret *Registry, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		r.log = log
		ret = r
		return
	}
}

func WithMetrics(m *metrics.Metrics) Opt {
	return func(r *Registry) (ret *Registry, err error) {
		if m == nil {
			err = ErrMetricsMissing
			return
		}

		r.metrics = m
		ret = r
		return
	}
}

// WithInitFunc replaces inotify_init1(2).
// The function must return a non-blocking descriptor.
func WithInitFunc(fn func() (int, error)) Opt {
	return func(r *Registry) (ret *Registry, err error) {
		if fn == nil {
			err = ErrInitFuncMissing
			return
		}

		r.initFn = fn
		ret = r
		return
	}
}
