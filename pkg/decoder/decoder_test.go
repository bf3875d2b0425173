package decoder_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	. "github.com/black-desk/fsnotifier/pkg/decoder"
	"github.com/black-desk/fsnotifier/pkg/types"
	. "github.com/black-desk/lib/go/gomega-helper"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/sys/unix"
)

// record encodes a struct inotify_event,
// padding the name to a multiple of 16 bytes like the kernel does.
func record(wd int32, mask types.Mask, cookie uint32, name string) []byte {
	nameLen := 0
	if name != "" {
		nameLen = (len(name) + 1 + 15) / 16 * 16
	}

	buf := make([]byte, unix.SizeofInotifyEvent+nameLen)
	binary.NativeEndian.PutUint32(buf[0:4], uint32(wd))
	binary.NativeEndian.PutUint32(buf[4:8], uint32(mask))
	binary.NativeEndian.PutUint32(buf[8:12], cookie)
	binary.NativeEndian.PutUint32(buf[12:16], uint32(nameLen))
	copy(buf[unix.SizeofInotifyEvent:], name)
	return buf
}

func collect(d *Decoder) (events []*types.Event, err error) {
	for ev, e := range d.All() {
		if e != nil {
			err = e
			return
		}
		events = append(events, ev)
	}
	return
}

func ptr(s string) *string {
	return &s
}

var _ = Describe("Event decoder", func() {
	var stream []byte

	BeforeEach(func() {
		stream = bytes.Join([][]byte{
			record(1, types.InModify, 0, "a.txt"),
			record(1, types.InDelete, 0, "a.txt"),
			record(2, types.InMovedFrom, 42, "old"),
			record(2, types.InMovedTo, 42, "a-name-that-is-longer-than-sixteen-bytes"),
			record(3, types.InDeleteSelf, 0, ""),
			record(3, types.InIgnored, 0, ""),
		}, nil)
	})

	expected := []*types.Event{
		{WD: 1, Mask: types.InModify, Name: ptr("a.txt")},
		{WD: 1, Mask: types.InDelete, Name: ptr("a.txt")},
		{WD: 2, Mask: types.InMovedFrom, Cookie: 42, Name: ptr("old")},
		{WD: 2, Mask: types.InMovedTo, Cookie: 42, Name: ptr("a-name-that-is-longer-than-sixteen-bytes")},
		{WD: 3, Mask: types.InDeleteSelf},
		{WD: 3, Mask: types.InIgnored},
	}

	DescribeTable("reading records",
		func(wrap func(io.Reader) io.Reader) {
			d, err := New(wrap(bytes.NewReader(stream)))
			Expect(err).To(Succeed())

			events, err := collect(d)
			Expect(err).To(MatchErr(new(ErrRead)))
			Expect(err).To(MatchErr(io.EOF))
			Expect(events).To(Equal(expected))
		},
		Entry("in one read", func(r io.Reader) io.Reader { return r }),
		Entry("one byte at a time", iotest.OneByteReader),
		Entry("half a buffer at a time", iotest.HalfReader),
		Entry("with data and error together", iotest.DataErrReader),
	)

	It("should keep returning the terminal error", func() {
		d, err := New(bytes.NewReader(nil))
		Expect(err).To(Succeed())

		_, first := d.Next()
		_, second := d.Next()
		Expect(first).To(MatchErr(io.EOF))
		Expect(second).To(BeIdenticalTo(first))
	})

	It("should fail on a record larger than the buffer", func() {
		head := record(1, types.InCreate, 0, "")
		binary.NativeEndian.PutUint32(head[12:16], BufferSize)

		d, err := New(bytes.NewReader(head))
		Expect(err).To(Succeed())

		_, err = d.Next()
		Expect(err).To(MatchErr(new(ErrRecordTooLarge)))
	})

	It("should fail on a reader that never makes progress", func() {
		d, err := New(iotest.ErrReader(nil))
		Expect(err).To(Succeed())

		_, err = d.Next()
		Expect(err).To(MatchErr(io.ErrNoProgress))
	})

	It("should report the read error", func() {
		cause := errors.New("boom")
		d, err := New(io.MultiReader(
			bytes.NewReader(record(1, types.InOpen, 0, "")),
			iotest.ErrReader(cause),
		))
		Expect(err).To(Succeed())

		events, err := collect(d)
		Expect(events).To(HaveLen(1))
		Expect(err).To(MatchErr(cause))
	})

	It("should allow only one live sequence", func() {
		d, err := New(bytes.NewReader(stream))
		Expect(err).To(Succeed())

		var inner error
		for range d.All() {
			for _, err := range d.All() {
				inner = err
			}
			break
		}
		Expect(inner).To(MatchErr(ErrSequenceInUse))
	})

	Context("with a name that is not valid UTF-8", func() {
		BeforeEach(func() {
			stream = bytes.Join([][]byte{
				record(1, types.InCreate, 0, "bad\xff\xfe"),
				record(1, types.InCreate, 0, "good"),
			}, nil)
		})

		It("should deliver a nil name by default", func() {
			d, err := New(bytes.NewReader(stream))
			Expect(err).To(Succeed())

			events, err := collect(d)
			Expect(err).To(MatchErr(io.EOF))
			Expect(events).To(Equal([]*types.Event{
				{WD: 1, Mask: types.InCreate},
				{WD: 1, Mask: types.InCreate, Name: ptr("good")},
			}))
		})

		It("should fail with the strict policy", func() {
			d, err := New(
				bytes.NewReader(stream),
				WithNamePolicy(types.NamePolicyStrict),
			)
			Expect(err).To(Succeed())

			events, err := collect(d)
			Expect(events).To(BeEmpty())
			Expect(err).To(MatchErr(new(ErrNameDecode)))

			var nameErr *ErrNameDecode
			Expect(errors.As(err, &nameErr)).To(BeTrue())
			Expect(nameErr.Raw).To(Equal([]byte("bad\xff\xfe")))
		})
	})

	It("should reject bad options", func() {
		_, err := New(nil)
		Expect(err).To(MatchErr(ErrReaderMissing))

		_, err = New(bytes.NewReader(nil), WithNamePolicy(types.NamePolicy(9)))
		Expect(err).To(MatchErr(new(types.ErrUnknownNamePolicy)))
	})
})

func TestDecoder(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Event Decoder Suite")
}
