// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dispatch

import (
	"errors"
	"fmt"
)

var (
	ErrSourceMissing     = errors.New("event source is missing.")
	ErrFunctionMissing   = errors.New("threadsafe function is missing.")
	ErrClosedFuncMissing = errors.New("closed function is missing.")
	ErrLoggerMissing     = errors.New("logger is missing.")
	ErrMetricsMissing    = errors.New("metrics is missing.")
	ErrAlreadyRunning    = errors.New("dispatch loop is already running.")
	ErrEndOfStream       = errors.New("event source ended.")
)

// ErrTerminated is delivered to the handler as the last call.
// No event follows it.
type ErrTerminated struct {
	Cause error
}

func (e *ErrTerminated) Error() string {
	return fmt.Sprintf("event dispatch terminated: %v", e.Cause)
}

func (e *ErrTerminated) Unwrap() error {
	return e.Cause
}
