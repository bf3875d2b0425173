// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics holds the prometheus collectors shared by the registry,
// the dispatch loop and the boundary executor of one watcher.
package metrics

import (
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fsnotifier"

const (
	ReasonRead   = "read"
	ReasonDecode = "decode"
)

type Metrics struct {
	Watches       prometheus.Gauge
	Events        prometheus.Counter
	Overflows     prometheus.Counter
	Failures      *prometheus.CounterVec
	QueueDepth    prometheus.Gauge
	HandlerPanics prometheus.Counter

	reg    prometheus.Registerer
	labels prometheus.Labels
}

type Opt func(m *Metrics) (ret *Metrics, err error)

// New creates the collectors.
// They are only registered when WithRegisterer is given.
func New(opts ...Opt) (ret *Metrics, err error) {
	defer Wrap(&err, "create metrics")

	m := &Metrics{}
	for i := range opts {
		m, err = opts[i](m)
		if err != nil {
			return
		}
	}

	m.Watches = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "watches",
		Help:        "Number of watches currently registered.",
		ConstLabels: m.labels,
	})
	m.Events = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "events_total",
		Help:        "Number of events handed to the handler queue.",
		ConstLabels: m.labels,
	})
	m.Overflows = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "queue_overflows_total",
		Help:        "Number of IN_Q_OVERFLOW events reported by the kernel.",
		ConstLabels: m.labels,
	})
	m.Failures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "failures_total",
		Help:        "Number of failures that terminated the dispatch loop.",
		ConstLabels: m.labels,
	}, []string{"reason"})
	m.QueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "handler_queue_depth",
		Help:        "Number of calls waiting for the handler.",
		ConstLabels: m.labels,
	})
	m.HandlerPanics = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "handler_panics_total",
		Help:        "Number of recovered handler panics.",
		ConstLabels: m.labels,
	})

	if m.reg != nil {
		for _, c := range m.Collectors() {
			err = m.reg.Register(c)
			if err != nil {
				return
			}
		}
	}

	ret = m
	return
}

func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Watches,
		m.Events,
		m.Overflows,
		m.Failures,
		m.QueueDepth,
		m.HandlerPanics,
	}
}

// Unregister removes the collectors from the registerer given to New.
func (m *Metrics) Unregister() {
	if m.reg == nil {
		return
	}

	for _, c := range m.Collectors() {
		m.reg.Unregister(c)
	}
}

func WithRegisterer(reg prometheus.Registerer) Opt {
	return func(m *Metrics) (ret *Metrics, err error) {
		if reg == nil {
			err = ErrRegistererMissing
			return
		}

		m.reg = reg
		ret = m
		return
	}
}

// WithLabels sets constant labels,
// needed when several watchers share one registerer.
func WithLabels(labels prometheus.Labels) Opt {
	return func(m *Metrics) (ret *Metrics, err error) {
		m.labels = labels
		ret = m
		return
	}
}
