// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package types

import "fmt"

type ErrUnknownMaskName struct {
	Name string
}

func (e *ErrUnknownMaskName) Error() string {
	return fmt.Sprintf("unknown inotify event name %q.", e.Name)
}

type ErrUnknownNamePolicy struct {
	Name string
}

func (e *ErrUnknownNamePolicy) Error() string {
	return fmt.Sprintf("unknown name policy %q.", e.Name)
}
