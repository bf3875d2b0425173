// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package boundary

import "fmt"

type Kind uint8

const (
	KindString Kind = iota // string
	KindNumber             // number
	KindNull               // null
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindNull:
		return "null"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is an argument that can be handed to the callee.
// The set of implementations is closed:
// String, Number and Null.
type Value interface {
	Kind() Kind
	value()
}

type String string

type Number uint32

type Null struct{}

func (String) Kind() Kind { return KindString }
func (Number) Kind() Kind { return KindNumber }
func (Null) Kind() Kind   { return KindNull }

func (String) value() {}
func (Number) value() {}
func (Null) value()   {}

// Match calls the function for the case v holds.
func Match[T any](
	v Value,
	onString func(String) T,
	onNumber func(Number) T,
	onNull func() T,
) T {
	switch v := v.(type) {
	case String:
		return onString(v)
	case Number:
		return onNumber(v)
	case Null:
		return onNull()
	}

	panic(fmt.Sprintf("this should never happened: unexpected value %T", v))
}

// StringOrNull turns an optional string into a Value.
func StringOrNull(s *string) Value {
	if s == nil {
		return Null{}
	}
	return String(*s)
}

// Call is one invocation of the callee.
// Err is set for failure shaped calls.
type Call struct {
	Err  error
	Args []Value
}

type Callee func(call Call)

type CallMode uint8

const (
	// CallModeBlocking waits until the call is queued.
	CallModeBlocking CallMode = iota // blocking
	// CallModeNonBlocking fails with ErrQueueFull
	// if the queue has no room.
	CallModeNonBlocking // non-blocking
)
