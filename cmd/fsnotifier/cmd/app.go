package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/black-desk/fsnotifier/pkg/fsnotifier"
	"github.com/black-desk/fsnotifier/pkg/fsnotifier/config"
	"github.com/black-desk/fsnotifier/pkg/types"
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

type app struct {
	watcher  *fsnotifier.Watcher
	registry *prometheus.Registry
	cfg      *config.Config
	log      *zap.SugaredLogger
	out      io.Writer
}

func runApp(cfg *config.Config, log *zap.SugaredLogger, out io.Writer) (err error) {
	ctx, cancel := signalContext()
	defer cancel()

	var a *app
	a, err = injectedApp(ctx, cfg, log)
	if err != nil {
		return
	}
	a.out = out

	err = a.run(ctx)
	if err == nil {
		return
	}

	log.Debugw(
		"Watcher exited with error.",
		"error", err,
	)

	var cancelBySignal *ErrCancelBySignal
	if errors.As(err, &cancelBySignal) {
		log.Infow("Signal received, exiting...",
			"signal", cancelBySignal.Signal,
		)
		err = nil
		return
	}

	return
}

func (a *app) run(ctx context.Context) (err error) {
	defer Wrap(&err, "run fsnotifier")

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError()

	p.Go(a.runWatcher)

	if a.cfg.Metrics != nil {
		p.Go(a.runMetricsServer)
	}

	err = p.Wait()
	if cause := context.Cause(ctx); cause != nil {
		err = cause
	}
	return
}

func (a *app) runWatcher(ctx context.Context) (err error) {
	defer a.log.Debugw("Watcher exited.")

	a.log.Debugw("Start watcher.",
		"watches", a.watcher.Len(),
	)

	stop := context.AfterFunc(ctx, func() {
		_ = a.watcher.Close()
	})
	defer stop()

	err = a.watcher.OnEvent(a.handle)
	if err != nil {
		return
	}

	return a.watcher.Wait()
}

func (a *app) runMetricsServer(ctx context.Context) (err error) {
	defer a.log.Debugw("Metrics server exited.")

	server := &http.Server{
		Addr: a.cfg.Metrics.Listen,
		Handler: promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{
			Registry: a.registry,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := context.AfterFunc(ctx, func() {
		_ = server.Close()
	})
	defer stop()

	a.log.Infow("Start metrics server.",
		"listen", a.cfg.Metrics.Listen,
	)

	err = server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		err = ctx.Err()
	}
	return
}

func (a *app) handle(err error, ev *types.Event) {
	if err != nil {
		a.log.Errorw("Watcher terminated.",
			"error", err,
		)
		return
	}

	path, _ := a.watcher.Path(ev.WD)
	if ev.Name != nil {
		path = filepath.Join(path, *ev.Name)
	}

	a.log.Infow("Event received.",
		"path", path,
		"mask", ev.Mask,
		"cookie", ev.Cookie,
	)

	if a.out == nil {
		return
	}

	if ev.Cookie != 0 {
		fmt.Fprintf(a.out, "%s\t%s\t%d\n", ev.Mask, path, ev.Cookie)
		return
	}

	fmt.Fprintf(a.out, "%s\t%s\n", ev.Mask, path)
}
