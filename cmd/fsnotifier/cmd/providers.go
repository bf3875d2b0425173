package cmd

import (
	"context"

	"github.com/black-desk/fsnotifier/pkg/fsnotifier"
	"github.com/black-desk/fsnotifier/pkg/fsnotifier/config"
	"github.com/black-desk/fsnotifier/pkg/metrics"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func providePrometheusRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideMetrics(reg *prometheus.Registry) (*metrics.Metrics, error) {
	return metrics.New(metrics.WithRegisterer(reg))
}

func provideWatcher(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.SugaredLogger,
	m *metrics.Metrics,
) (
	ret *fsnotifier.Watcher, err error,
) {
	var w *fsnotifier.Watcher
	w, err = fsnotifier.New(
		fsnotifier.WithContext(ctx),
		fsnotifier.WithLogger(logger),
		fsnotifier.WithMetrics(m),
		fsnotifier.WithNamePolicy(cfg.Policy),
		fsnotifier.WithQueueSize(cfg.QueueSize),
	)
	if err != nil {
		return
	}

	for i := range cfg.Watches {
		_, err = w.Watch(cfg.Watches[i].Path, cfg.Watches[i].Mask)
		if err != nil {
			_ = w.Close()
			return
		}

		logger.Infow("Watching.",
			"path", cfg.Watches[i].Path,
			"mask", cfg.Watches[i].Mask,
		)
	}

	ret = w
	return
}

func provideApp(
	w *fsnotifier.Watcher,
	reg *prometheus.Registry,
	cfg *config.Config,
	logger *zap.SugaredLogger,
) *app {
	return &app{
		watcher:  w,
		registry: reg,
		cfg:      cfg,
		log:      logger,
	}
}

var set = wire.NewSet(
	provideApp,
	provideMetrics,
	providePrometheusRegistry,
	provideWatcher,
)
