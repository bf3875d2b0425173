// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package decoder

import (
	"errors"
	"fmt"

	"github.com/black-desk/fsnotifier/pkg/types"
)

var (
	ErrReaderMissing = errors.New("reader is missing.")
	ErrLoggerMissing = errors.New("logger is missing.")
	ErrSequenceInUse = errors.New("event sequence is already being consumed.")
)

// ErrRead means the notification channel can not be read any more.
// Cause is io.EOF or os.ErrClosed when the channel was closed.
type ErrRead struct {
	Cause error
}

func (e *ErrRead) Error() string {
	return fmt.Sprintf("failed to read notification channel: %v", e.Cause)
}

func (e *ErrRead) Unwrap() error {
	return e.Cause
}

type ErrNameDecode struct {
	WD   types.WatchDescriptor
	Mask types.Mask
	Raw  []byte
}

func (e *ErrNameDecode) Error() string {
	return fmt.Sprintf(
		"name %q of event (wd: %d, mask: %s) is not valid UTF-8.",
		e.Raw, e.WD, e.Mask,
	)
}

type ErrRecordTooLarge struct {
	Size int
}

func (e *ErrRecordTooLarge) Error() string {
	return fmt.Sprintf(
		"record of %d bytes does not fit in the %d bytes read buffer.",
		e.Size, BufferSize,
	)
}
