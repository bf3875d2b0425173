package decoder

import (
	"io"
	"sync/atomic"

	"github.com/black-desk/fsnotifier/pkg/types"
	. "github.com/black-desk/lib/go/errwrap"
	"go.uber.org/zap"
)

// BufferSize is the capacity of the read buffer.
// It holds at least one record with a NAME_MAX long name.
const BufferSize = 4096

// Decoder turns the byte stream of an inotify file descriptor
// into events.
type Decoder struct {
	r      io.Reader
	policy types.NamePolicy
	log    *zap.SugaredLogger

	buf        [BufferSize]byte
	start, end int
	// Error returned by the last read,
	// kept until the bytes read with it are decoded.
	pending error
	// Terminal error, returned by every later call.
	failed error

	inUse atomic.Bool
}

//go:generate go run github.com/rjeczalik/interfaces/cmd/interfacer@v0.3.0 -for github.com/black-desk/fsnotifier/pkg/decoder.Decoder -as interfaces.EventSource -o ../interfaces/eventsource.go

func New(r io.Reader, opts ...Opt) (ret *Decoder, err error) {
	defer Wrap(&err, "create event decoder")

	if r == nil {
		err = ErrReaderMissing
		return
	}

	d := &Decoder{r: r}
	for i := range opts {
		d, err = opts[i](d)
		if err != nil {
			return
		}
	}

	if d.log == nil {
		d.log = zap.NewNop().Sugar()
	}

	ret = d

	d.log.Debugw("Create a new event decoder.",
		"name policy", d.policy,
	)

	return
}

type Opt func(d *Decoder) (ret *Decoder, err error)

func WithNamePolicy(p types.NamePolicy) Opt {
	return func(d *Decoder) (ret *Decoder, err error) {
		if p != types.NamePolicyLenient && p != types.NamePolicyStrict {
			err = &types.ErrUnknownNamePolicy{Name: p.String()}
			return
		}

		d.policy = p
		ret = d
		return
	}
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(d *Decoder) (ret *Decoder, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		d.log = log
		ret = d
		return
	}
}
