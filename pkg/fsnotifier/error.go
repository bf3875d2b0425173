// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package fsnotifier

import (
	"errors"
	"fmt"
)

var (
	ErrContextMissing    = errors.New("context is missing.")
	ErrLoggerMissing     = errors.New("logger is missing.")
	ErrMetricsMissing    = errors.New("metrics is missing.")
	ErrInitFuncMissing   = errors.New("init function is missing.")
	ErrHandlerMissing    = errors.New("handler is missing.")
	ErrHandlerRegistered = errors.New("a handler is already registered.")
	ErrClosed            = errors.New("inotify instance was closed.")
)

type ErrRegistration struct {
	Cause error
}

func (e *ErrRegistration) Error() string {
	return fmt.Sprintf("failed to register handler: %v", e.Cause)
}

func (e *ErrRegistration) Unwrap() error {
	return e.Cause
}
