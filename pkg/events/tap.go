package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/offlinefirst/keytap/pkg/keys"
)

const defaultQueueSize = 256

// Options controls tap behaviour.
type Options struct {
	Source   EventSource
	Resolver *keys.Resolver
	Clock    func() time.Time
	// QueueSize bounds the records waiting for the sink.
	QueueSize int
	// MaxEvents stops the capture after that many records; zero means no limit.
	MaxEvents int
}

// Tap resolves raw transitions into KeyEvent records and hands them to a sink.
type Tap struct {
	source    EventSource
	resolver  *keys.Resolver
	clock     func() time.Time
	queueSize int
	maxEvents int
}

// EventSource emits raw key transitions. Stream blocks until the context is
// done, the source is exhausted, or emit returns an error, which Stream must
// return unchanged.
type EventSource interface {
	Stream(ctx context.Context, emit func(RawKey) error) error
}

// EventSourceFunc adapts a function literal to the EventSource interface.
type EventSourceFunc func(ctx context.Context, emit func(RawKey) error) error

// Stream calls the underlying function.
func (f EventSourceFunc) Stream(ctx context.Context, emit func(RawKey) error) error {
	return f(ctx, emit)
}

// Sink receives finished records in arrival order.
type Sink interface {
	WriteEvent(KeyEvent) error
}

// SinkFunc adapts a function literal to the Sink interface.
type SinkFunc func(KeyEvent) error

// WriteEvent calls the underlying function.
func (f SinkFunc) WriteEvent(e KeyEvent) error {
	return f(e)
}

// Result summarises a capture session.
type Result struct {
	EventCount   int
	DownCount    int
	UpCount      int
	Stages       map[keys.Stage]int
	CaptureStart time.Time
	CaptureEnd   time.Time
	// LimitReached is set when MaxEvents stopped the capture.
	LimitReached bool
}

// NewTap validates options and constructs a tap instance.
func NewTap(opts Options) (*Tap, error) {
	if opts.Source == nil {
		return nil, errors.New("event source must not be nil")
	}
	if opts.QueueSize < 0 {
		return nil, errors.New("queue size must not be negative")
	}
	if opts.MaxEvents < 0 {
		return nil, errors.New("max events must not be negative")
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = keys.NewResolver(nil)
	}
	queue := opts.QueueSize
	if queue == 0 {
		queue = defaultQueueSize
	}
	return &Tap{
		source:    opts.Source,
		resolver:  resolver,
		clock:     clock,
		queueSize: queue,
		maxEvents: opts.MaxEvents,
	}, nil
}

// Build resolves one raw transition into a record. It runs on the goroutine
// that delivered the transition so layout state is read where it lives.
func (t *Tap) Build(raw RawKey) KeyEvent {
	ts := raw.Time
	if ts.IsZero() {
		ts = t.clock()
	}
	res := t.resolver.Explain(raw.VK, raw.Scan)
	return KeyEvent{
		Timestamp: ts.UTC(),
		Device:    raw.Device,
		VK:        raw.VK,
		Scan:      raw.Scan,
		Flags:     raw.Flags,
		Direction: raw.Flags.Direction(),
		KeyName:   res.Name,
		Stage:     res.Stage,
	}
}

// Capture streams the source until it ends, the context is cancelled, the
// event limit is reached, or the sink fails. Resolution happens inline on the
// source goroutine; a second goroutine drains the bounded queue into the sink.
func (t *Tap) Capture(ctx context.Context, sink Sink) (Result, error) {
	if sink == nil {
		return Result{}, errors.New("sink must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	result := Result{
		Stages:       make(map[keys.Stage]int),
		CaptureStart: t.clock().UTC(),
	}
	queue := make(chan KeyEvent, t.queueSize)
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(queue)
		delivered := 0
		err := t.source.Stream(gctx, func(raw RawKey) error {
			if err := gctx.Err(); err != nil {
				return err
			}
			event := t.Build(raw)
			select {
			case queue <- event:
			case <-gctx.Done():
				return gctx.Err()
			}
			delivered++
			if t.maxEvents > 0 && delivered >= t.maxEvents {
				return errLimitReached
			}
			return nil
		})
		if errors.Is(err, errLimitReached) {
			result.LimitReached = true
			return nil
		}
		return err
	})

	group.Go(func() error {
		for event := range queue {
			if err := sink.WriteEvent(event); err != nil {
				return fmt.Errorf("write event: %w", err)
			}
			result.EventCount++
			result.Stages[event.Stage]++
			if event.Direction == DirectionUp {
				result.UpCount++
			} else {
				result.DownCount++
			}
			result.CaptureEnd = event.Timestamp
		}
		return nil
	})

	err := group.Wait()
	if result.CaptureEnd.IsZero() {
		result.CaptureEnd = t.clock().UTC()
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			return result, err
		}
		return result, fmt.Errorf("stream events: %w", err)
	}
	return result, nil
}
