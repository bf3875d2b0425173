package decoder

import (
	"bytes"
	"encoding/binary"
	"io"
	"unicode/utf8"

	"github.com/black-desk/fsnotifier/pkg/types"
	"golang.org/x/sys/unix"
)

const maxEmptyReads = 100

// decode parses one record from the buffer.
// It returns nil without error if no complete record is buffered.
func (d *Decoder) decode() (ev *types.Event, err error) {
	data := d.buf[d.start:d.end]
	if len(data) < unix.SizeofInotifyEvent {
		return
	}

	// struct inotify_event, see inotify(7).
	nameLen := binary.NativeEndian.Uint32(data[12:16])
	size := unix.SizeofInotifyEvent + int(nameLen)
	if size > BufferSize {
		err = &ErrRecordTooLarge{Size: size}
		return
	}

	if len(data) < size {
		return
	}

	ev = &types.Event{
		WD:     types.WatchDescriptor(int32(binary.NativeEndian.Uint32(data[0:4]))),
		Mask:   types.Mask(binary.NativeEndian.Uint32(data[4:8])),
		Cookie: binary.NativeEndian.Uint32(data[8:12]),
	}

	d.start += size
	if d.start == d.end {
		d.start, d.end = 0, 0
	}

	ev.Name, err = d.decodeName(ev, data[unix.SizeofInotifyEvent:size])
	if err != nil {
		ev = nil
		return
	}

	return
}

func (d *Decoder) decodeName(ev *types.Event, raw []byte) (name *string, err error) {
	// The name is NUL terminated and padded with NULs.
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}

	if len(raw) == 0 {
		return
	}

	if utf8.Valid(raw) {
		str := string(raw)
		name = &str
		return
	}

	if d.policy == types.NamePolicyStrict {
		err = &ErrNameDecode{
			WD:   ev.WD,
			Mask: ev.Mask,
			Raw:  bytes.Clone(raw),
		}
		return
	}

	d.log.Debugw("Drop name which is not valid UTF-8.",
		"wd", ev.WD,
		"mask", ev.Mask,
		"raw", raw,
	)

	return
}

// fill moves the unparsed tail of the buffer to the front
// and reads more bytes after it.
func (d *Decoder) fill() (err error) {
	if d.pending != nil {
		err = &ErrRead{Cause: d.pending}
		return
	}

	if d.start > 0 {
		d.end = copy(d.buf[:], d.buf[d.start:d.end])
		d.start = 0
	}

	for range maxEmptyReads {
		var n int
		n, err = d.r.Read(d.buf[d.end:])
		d.end += n

		if n > 0 {
			d.pending = err
			err = nil
			return
		}

		if err != nil {
			err = &ErrRead{Cause: err}
			return
		}
	}

	err = &ErrRead{Cause: io.ErrNoProgress}
	return
}
