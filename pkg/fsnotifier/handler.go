package fsnotifier

import (
	"github.com/black-desk/fsnotifier/pkg/boundary"
	"github.com/black-desk/fsnotifier/pkg/types"
)

// Handler receives events.
// name is nil for events about the watched path itself.
// A call with a non nil err is the last one:
// the watcher delivers nothing after it.
type Handler func(err error, name *string, mask types.Mask, cookie uint32)

// EventHandler receives events like Handler.
// ev is nil when err is not.
type EventHandler func(err error, ev *types.Event)

func (h Handler) callee() boundary.Callee {
	return func(call boundary.Call) {
		if call.Err != nil {
			h(call.Err, nil, 0, 0)
			return
		}

		ev := unpack(call.Args)
		h(nil, ev.Name, ev.Mask, ev.Cookie)
	}
}

func (h EventHandler) callee() boundary.Callee {
	return func(call boundary.Call) {
		if call.Err != nil {
			h(call.Err, nil)
			return
		}

		h(nil, unpack(call.Args))
	}
}

func stringArg(v boundary.Value) *string {
	return boundary.Match(v,
		func(s boundary.String) *string {
			str := string(s)
			return &str
		},
		func(boundary.Number) *string { return nil },
		func() *string { return nil },
	)
}

func numberArg(v boundary.Value) uint32 {
	return boundary.Match(v,
		func(boundary.String) uint32 { return 0 },
		func(n boundary.Number) uint32 { return uint32(n) },
		func() uint32 { return 0 },
	)
}

// unpack is the inverse of the argument list built by the dispatch loop:
// name, mask, cookie, watch descriptor.
func unpack(args []boundary.Value) *types.Event {
	ev := &types.Event{}

	for i := range args {
		switch i {
		case 0:
			ev.Name = stringArg(args[i])
		case 1:
			ev.Mask = types.Mask(numberArg(args[i]))
		case 2:
			ev.Cookie = numberArg(args[i])
		case 3:
			ev.WD = types.WatchDescriptor(int32(numberArg(args[i])))
		}
	}

	return ev
}
