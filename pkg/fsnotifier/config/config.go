// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"github.com/black-desk/fsnotifier/pkg/types"
	"go.uber.org/zap"
)

type Config struct {
	Version string `yaml:"version" validate:"required,eq=1"`

	// NamePolicy decides what happens to a name
	// that is not valid UTF-8.
	// "lenient" delivers the event without a name,
	// "strict" terminates the watcher.
	NamePolicy string `yaml:"name-policy" validate:"omitempty,oneof=lenient strict"`
	// QueueSize is how many events may wait for the handler.
	// 0 means the default.
	QueueSize int      `yaml:"queue-size" validate:"gte=0"`
	Metrics   *Metrics `yaml:"metrics"`
	Watches   []*Watch `yaml:"watches" validate:"required,min=1,dive,required"`

	Policy types.NamePolicy `yaml:"-"`

	log *zap.SugaredLogger `yaml:"-"`
	raw []byte
}

type Metrics struct {
	// Listen is the address of the prometheus endpoint.
	Listen string `yaml:"listen" validate:"required,hostname_port"`
}

// Watch describes one watched path.
type Watch struct {
	Path string `yaml:"path" validate:"required"`
	// Events are inotify event names like "create" or "IN_MOVED_TO".
	// Empty means all events.
	Events []string `yaml:"events" validate:"dive,required"`

	Mask types.Mask `yaml:"-"`
}
