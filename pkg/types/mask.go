// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package types

import "golang.org/x/sys/unix"

// Mask is an inotify bitset.
// On the watch side it selects the events a caller wants to be told about,
// on the event side it describes what happened.
// Values are identical to the ones in inotify(7),
// so they can be tested bitwise against numbers from other sources.
type Mask uint32

// Events.
const (
	InAccess       Mask = unix.IN_ACCESS
	InModify       Mask = unix.IN_MODIFY
	InAttrib       Mask = unix.IN_ATTRIB
	InCloseWrite   Mask = unix.IN_CLOSE_WRITE
	InCloseNowrite Mask = unix.IN_CLOSE_NOWRITE
	InOpen         Mask = unix.IN_OPEN
	InMovedFrom    Mask = unix.IN_MOVED_FROM
	InMovedTo      Mask = unix.IN_MOVED_TO
	InCreate       Mask = unix.IN_CREATE
	InDelete       Mask = unix.IN_DELETE
	InDeleteSelf   Mask = unix.IN_DELETE_SELF
	InMoveSelf     Mask = unix.IN_MOVE_SELF

	InMove      = InMovedFrom | InMovedTo
	InClose     = InCloseWrite | InCloseNowrite
	InAllEvents = InAccess | InModify | InAttrib |
		InCloseWrite | InCloseNowrite | InOpen |
		InMovedFrom | InMovedTo | InCreate |
		InDelete | InDeleteSelf | InMoveSelf
)

// Watch options, only meaningful when adding a watch.
const (
	InOnlyDir    Mask = unix.IN_ONLYDIR
	InDontFollow Mask = unix.IN_DONT_FOLLOW
	InExclUnlink Mask = unix.IN_EXCL_UNLINK
	InMaskAdd    Mask = unix.IN_MASK_ADD
	InOneShot    Mask = unix.IN_ONESHOT
)

// Flags set by the kernel on delivered events.
const (
	InUnmount   Mask = unix.IN_UNMOUNT
	InQOverflow Mask = unix.IN_Q_OVERFLOW
	InIgnored   Mask = unix.IN_IGNORED
	InIsDir     Mask = unix.IN_ISDIR
)

// WatchMaskBits is every bit accepted when adding a watch.
const WatchMaskBits = InAllEvents |
	InOnlyDir | InDontFollow | InExclUnlink | InMaskAdd | InOneShot

// EventFlagBits is every flag the kernel may add to a delivered event.
const EventFlagBits = InUnmount | InQOverflow | InIgnored | InIsDir

// Truncate drops every bit that is not a recognized watch bit.
func (m Mask) Truncate() Mask {
	return m & WatchMaskBits
}

// Has reports whether all bits of x are set in m.
func (m Mask) Has(x Mask) bool {
	return m&x == x
}
