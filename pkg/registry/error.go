// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package registry

import (
	"errors"
	"fmt"

	"github.com/black-desk/fsnotifier/pkg/types"
)

var (
	ErrLoggerMissing   = errors.New("logger is missing.")
	ErrMetricsMissing  = errors.New("metrics is missing.")
	ErrInitFuncMissing = errors.New("init function is missing.")
	ErrChannelClosed   = errors.New("notification channel is closed.")
)

// ErrChannelInit means the kernel refused to create an inotify instance,
// usually because of EMFILE (max_user_instances) or ENFILE.
type ErrChannelInit struct {
	Cause error
}

func (e *ErrChannelInit) Error() string {
	return fmt.Sprintf("failed to open notification channel: %v", e.Cause)
}

func (e *ErrChannelInit) Unwrap() error {
	return e.Cause
}

type ErrWatch struct {
	Path  string
	Cause error
}

func (e *ErrWatch) Error() string {
	return fmt.Sprintf("failed to watch %s: %v", e.Path, e.Cause)
}

func (e *ErrWatch) Unwrap() error {
	return e.Cause
}

type ErrUnwatch struct {
	WD    types.WatchDescriptor
	Cause error
}

func (e *ErrUnwatch) Error() string {
	return fmt.Sprintf("failed to unwatch descriptor %d: %v", e.WD, e.Cause)
}

func (e *ErrUnwatch) Unwrap() error {
	return e.Cause
}
