package dispatch_test

import (
	"context"
	"errors"
	"io"
	"iter"
	"os"
	"testing"

	"github.com/black-desk/fsnotifier/pkg/boundary"
	"github.com/black-desk/fsnotifier/pkg/decoder"
	. "github.com/black-desk/fsnotifier/pkg/dispatch"
	"github.com/black-desk/fsnotifier/pkg/metrics"
	"github.com/black-desk/fsnotifier/pkg/types"
	. "github.com/black-desk/lib/go/gomega-helper"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sourcegraph/conc/pool"
)

type fakeSource struct {
	events []*types.Event
	err    error
}

func (s *fakeSource) Next() (*types.Event, error) {
	if len(s.events) == 0 {
		return nil, s.err
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

func (s *fakeSource) All() iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		for {
			ev, err := s.Next()
			if ev == nil && err == nil {
				return
			}
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}

func ptr(s string) *string {
	return &s
}

var _ = Describe("Dispatch loop", func() {
	var (
		source    *fakeSource
		fn        *boundary.Function
		m         *metrics.Metrics
		d         *Dispatcher
		calls     []boundary.Call
		forgotten []types.WatchDescriptor
		runErr    error
		err       error
	)

	BeforeEach(func() {
		calls = nil
		forgotten = nil

		source = &fakeSource{
			events: []*types.Event{
				{WD: 1, Mask: types.InModify, Name: ptr("a")},
				{WD: 1, Mask: types.InDelete, Name: ptr("a")},
				{WD: 2, Mask: types.InMovedFrom, Cookie: 7, Name: ptr("b")},
				{WD: 2, Mask: types.InMovedTo, Cookie: 7, Name: ptr("c")},
				{WD: 3, Mask: types.InIgnored},
				{Mask: types.InQOverflow, WD: -1},
			},
		}

		m, err = metrics.New()
		Expect(err).To(Succeed())

		fn, err = boundary.New(func(call boundary.Call) {
			calls = append(calls, call)
		}, boundary.WithQueueSize(0))
		Expect(err).To(Succeed())
	})

	JustBeforeEach(func() {
		d, err = New(
			WithSource(source),
			WithFunction(fn),
			WithMetrics(m),
			WithForget(func(wd types.WatchDescriptor) {
				forgotten = append(forgotten, wd)
			}),
		)
		Expect(err).To(Succeed())
		Expect(d.State()).To(Equal(StatePending))

		p := pool.New().WithErrors()
		p.Go(func() error { return fn.Run(context.Background()) })
		runErr = d.Run(context.Background())
		Expect(p.Wait()).To(Succeed())
	})

	expectEvents := func() {
		Expect(len(calls)).To(BeNumerically(">=", 6))
		Expect(calls[0]).To(Equal(boundary.Call{Args: []boundary.Value{
			boundary.String("a"), boundary.Number(types.InModify),
			boundary.Number(0), boundary.Number(1),
		}}))
		Expect(calls[1].Args[1]).To(Equal(boundary.Number(types.InDelete)))
		Expect(calls[2].Args[2]).To(Equal(boundary.Number(7)))
		Expect(calls[3].Args[2]).To(Equal(boundary.Number(7)))
		Expect(calls[4].Args[0]).To(Equal(boundary.Null{}))
		for _, call := range calls[:6] {
			Expect(call.Err).To(BeNil())
		}
	}

	Context("when the source ends", func() {
		It("should deliver every event in order", expectEvents)

		It("should deliver exactly one failure at the end", func() {
			Expect(calls).To(HaveLen(7))
			last := calls[6]
			Expect(last.Err).To(MatchErr(new(ErrTerminated)))
			Expect(last.Err).To(MatchErr(ErrEndOfStream))
			Expect(last.Args[0]).To(Equal(boundary.Null{}))
			Expect(runErr).To(MatchErr(ErrEndOfStream))
			Expect(d.State()).To(Equal(StateTerminatedOnChannelError))
		})

		It("should forget descriptors of ignored watches", func() {
			Expect(forgotten).To(Equal([]types.WatchDescriptor{3}))
		})

		It("should count events", func() {
			Expect(testutil.ToFloat64(m.Events)).To(Equal(6.0))
			Expect(testutil.ToFloat64(m.Overflows)).To(Equal(1.0))
			Expect(testutil.ToFloat64(
				m.Failures.WithLabelValues(metrics.ReasonRead),
			)).To(Equal(1.0))
		})

		It("should release the function", func() {
			Expect(fn.Call(context.Background(), boundary.Call{}, boundary.CallModeBlocking)).
				To(MatchErr(boundary.ErrReleased))
		})

		It("should refuse to run again", func() {
			Expect(d.Run(context.Background())).To(MatchErr(ErrAlreadyRunning))
		})
	})

	Context("when the channel is closed", func() {
		BeforeEach(func() {
			source.err = &decoder.ErrRead{Cause: io.EOF}
		})

		It("should terminate on channel error", func() {
			expectEvents()
			Expect(calls).To(HaveLen(7))
			Expect(calls[6].Err).To(MatchErr(new(decoder.ErrRead)))
			Expect(d.State()).To(Equal(StateTerminatedOnChannelError))
		})
	})

	Context("when a name can not be decoded", func() {
		BeforeEach(func() {
			source.err = &decoder.ErrNameDecode{WD: 1, Raw: []byte{0xff}}
		})

		It("should terminate on decode error", func() {
			Expect(calls).To(HaveLen(7))
			Expect(calls[6].Err).To(MatchErr(new(decoder.ErrNameDecode)))
			Expect(runErr).To(MatchErr(new(ErrTerminated)))
			Expect(d.State()).To(Equal(StateTerminatedOnDecodeError))
			Expect(testutil.ToFloat64(
				m.Failures.WithLabelValues(metrics.ReasonDecode),
			)).To(Equal(1.0))
		})
	})
})

var _ = Describe("Dispatch loop over a closed channel", func() {
	It("should fail instead of delivering buffered events", func() {
		var calls []boundary.Call
		fn, err := boundary.New(func(call boundary.Call) {
			calls = append(calls, call)
		}, boundary.WithQueueSize(0))
		Expect(err).To(Succeed())

		checks := 0
		d, err := New(
			WithSource(&fakeSource{events: []*types.Event{
				{WD: 1, Mask: types.InCreate, Name: ptr("a")},
				{WD: 1, Mask: types.InCreate, Name: ptr("b")},
				{WD: 1, Mask: types.InCreate, Name: ptr("c")},
				{WD: 1, Mask: types.InCreate, Name: ptr("d")},
			}}),
			WithFunction(fn),
			WithClosed(func() bool {
				checks++
				return checks > 2
			}),
		)
		Expect(err).To(Succeed())

		p := pool.New().WithErrors()
		p.Go(func() error { return fn.Run(context.Background()) })
		runErr := d.Run(context.Background())
		Expect(p.Wait()).To(Succeed())

		Expect(calls).To(HaveLen(3))
		Expect(calls[0].Args[0]).To(Equal(boundary.String("a")))
		Expect(calls[1].Args[0]).To(Equal(boundary.String("b")))
		Expect(calls[2].Err).To(MatchErr(new(decoder.ErrRead)))
		Expect(calls[2].Err).To(MatchErr(os.ErrClosed))
		Expect(runErr).To(MatchErr(os.ErrClosed))
		Expect(d.State()).To(Equal(StateTerminatedOnChannelError))
	})

	It("should reject a nil closed function", func() {
		_, err := New(WithClosed(nil))
		Expect(err).To(MatchErr(ErrClosedFuncMissing))
	})
})

var _ = Describe("Dispatch loop without a running handler", func() {
	It("should stop when its context is done", func() {
		fn, err := boundary.New(func(boundary.Call) {}, boundary.WithQueueSize(0))
		Expect(err).To(Succeed())

		d, err := New(
			WithSource(&fakeSource{events: []*types.Event{{WD: 1}}}),
			WithFunction(fn),
		)
		Expect(err).To(Succeed())

		ctx, cancel := context.WithCancelCause(context.Background())
		cause := errors.New("stop")
		cancel(cause)

		Expect(d.Run(ctx)).To(MatchErr(cause))
		Expect(d.State()).To(Equal(StateCanceled))
	})

	It("should reject missing options", func() {
		_, err := New()
		Expect(err).To(MatchErr(ErrSourceMissing))

		_, err = New(WithSource(&fakeSource{}))
		Expect(err).To(MatchErr(ErrFunctionMissing))
	})
})

func TestDispatch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dispatch Loop Suite")
}
