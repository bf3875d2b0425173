// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"path/filepath"

	"github.com/black-desk/fsnotifier/pkg/types"
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/go-playground/validator/v10"
)

func (c *Config) check() (err error) {
	defer Wrap(&err, "check configuration")

	var validator = validator.New()
	err = validator.Struct(c)
	if err != nil {
		err = fmt.Errorf("validator: %w", err)
		return
	}

	c.Policy, err = types.ParseNamePolicy(c.NamePolicy)
	if err != nil {
		return
	}

	if c.QueueSize == 0 {
		c.QueueSize = DefaultQueueSize
	}

	for i := range c.Watches {
		err = c.Watches[i].check()
		if err != nil {
			return
		}

		c.log.Debugw("Watch configured.",
			"path", c.Watches[i].Path,
			"mask", c.Watches[i].Mask,
		)
	}

	return
}

func (w *Watch) check() (err error) {
	defer Wrap(&err, "check watch %s", w.Path)

	if len(w.Events) == 0 {
		w.Mask = types.InAllEvents
	} else {
		w.Mask, err = types.ParseMask(w.Events...)
		if err != nil {
			return
		}
	}

	w.Path, err = filepath.Abs(w.Path)
	if err != nil {
		return
	}

	return
}
