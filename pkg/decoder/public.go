package decoder

import (
	"iter"

	"github.com/black-desk/fsnotifier/pkg/types"
)

// Next returns the next event,
// reading from the underlying reader only when
// no complete record is buffered.
// After the first error every call returns that error.
func (d *Decoder) Next() (ev *types.Event, err error) {
	if d.failed != nil {
		err = d.failed
		return
	}

	defer func() {
		if err == nil {
			return
		}
		d.failed = err
	}()

	for {
		ev, err = d.decode()
		if err != nil || ev != nil {
			return
		}

		err = d.fill()
		if err != nil {
			return
		}
	}
}

// All returns the event sequence.
// It ends after yielding the first error.
// Only one sequence of a decoder may be iterated at a time.
func (d *Decoder) All() iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		if !d.inUse.CompareAndSwap(false, true) {
			yield(nil, ErrSequenceInUse)
			return
		}
		defer d.inUse.Store(false)

		for {
			ev, err := d.Next()
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}
