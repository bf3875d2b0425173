// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package boundary

import (
	"errors"
	"fmt"
)

var (
	ErrCalleeMissing  = errors.New("callee is missing.")
	ErrLoggerMissing  = errors.New("logger is missing.")
	ErrMetricsMissing = errors.New("metrics is missing.")
	ErrReleased       = errors.New("threadsafe function is released.")
	ErrQueueFull      = errors.New("call queue is full.")
	ErrExecutorExited = errors.New("threadsafe function executor exited.")
	ErrAlreadyRunning = errors.New("threadsafe function is already running.")
)

type ErrInvalidQueueSize struct {
	Size int
}

func (e *ErrInvalidQueueSize) Error() string {
	return fmt.Sprintf("invalid queue size %d.", e.Size)
}

type ErrUnknownCallMode struct {
	Mode CallMode
}

func (e *ErrUnknownCallMode) Error() string {
	return fmt.Sprintf("unknown call mode %d.", e.Mode)
}
