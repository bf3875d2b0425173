package types

import (
	"fmt"
	"strings"
)

var maskNames = []struct {
	mask Mask
	name string
}{
	{InAccess, "access"},
	{InModify, "modify"},
	{InAttrib, "attrib"},
	{InCloseWrite, "close_write"},
	{InCloseNowrite, "close_nowrite"},
	{InOpen, "open"},
	{InMovedFrom, "moved_from"},
	{InMovedTo, "moved_to"},
	{InCreate, "create"},
	{InDelete, "delete"},
	{InDeleteSelf, "delete_self"},
	{InMoveSelf, "move_self"},
	{InUnmount, "unmount"},
	{InQOverflow, "q_overflow"},
	{InIgnored, "ignored"},
	{InOnlyDir, "onlydir"},
	{InDontFollow, "dont_follow"},
	{InExclUnlink, "excl_unlink"},
	{InMaskAdd, "mask_add"},
	{InIsDir, "isdir"},
	{InOneShot, "oneshot"},
}

// Aliases accepted by ParseMask only.
var maskAliases = map[string]Mask{
	"move":       InMove,
	"close":      InClose,
	"all_events": InAllEvents,
	"all":        InAllEvents,
}

func (m Mask) String() string {
	if m == 0 {
		return "0"
	}

	var names []string
	rest := m
	for i := range maskNames {
		if m&maskNames[i].mask == 0 {
			continue
		}
		names = append(names, maskNames[i].name)
		rest &^= maskNames[i].mask
	}

	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}

	return strings.Join(names, "|")
}

// ParseMask turns names like "create" or "IN_CLOSE_WRITE"
// into a mask.
func ParseMask(names ...string) (ret Mask, err error) {
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.TrimPrefix(key, "in_")

		if m, ok := maskAliases[key]; ok {
			ret |= m
			continue
		}

		found := false
		for i := range maskNames {
			if maskNames[i].name != key {
				continue
			}
			ret |= maskNames[i].mask
			found = true
			break
		}

		if !found {
			err = &ErrUnknownMaskName{Name: name}
			return
		}
	}

	return
}

func (p NamePolicy) String() string {
	switch p {
	case NamePolicyLenient:
		return "lenient"
	case NamePolicyStrict:
		return "strict"
	}
	return fmt.Sprintf("NamePolicy(%d)", uint8(p))
}

// ParseNamePolicy is the inverse of NamePolicy.String.
// An empty string means NamePolicyLenient.
func ParseNamePolicy(s string) (NamePolicy, error) {
	switch s {
	case "", "lenient":
		return NamePolicyLenient, nil
	case "strict":
		return NamePolicyStrict, nil
	}
	return 0, &ErrUnknownNamePolicy{Name: s}
}
