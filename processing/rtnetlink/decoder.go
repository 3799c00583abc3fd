package rtnetlink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mdlayher/netlink"
	"github.com/scitags/nlmon-go/enrichment"
	"github.com/scitags/nlmon-go/types"
)

// Clock returns the value of the stamp field in milliseconds.
type Clock func() int64

// MessageError describes why a message didn't make it into a record. Err is
// always one of our sentinel errors, possibly wrapped.
type MessageError struct {
	Group string
	Event string
	Err   error
}

func (e *MessageError) Error() string {
	return fmt.Sprintf("error decoding %s: %v", e.Event, e.Err)
}

func (e *MessageError) Unwrap() error {
	return e.Err
}

// Decoder turns netlink messages into records based on a Registry.
type Decoder struct {
	registry *Registry
	prober   enrichment.Prober
	clock    Clock
}

type Option func(*Decoder)

// WithProber sets the prober used to enrich link records.
func WithProber(p enrichment.Prober) Option {
	return func(d *Decoder) {
		d.prober = p
	}
}

// WithClock overrides the monotonic clock used for the stamp field.
func WithClock(c Clock) Option {
	return func(d *Decoder) {
		d.clock = c
	}
}

func NewDecoder(r *Registry, opts ...Option) *Decoder {
	d := &Decoder{
		registry: r,
		prober:   enrichment.Disabled{},
		clock:    MonotonicMillis,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Decoder) Registry() *Registry {
	return d.registry
}

// Decode returns the record for m. Messages whose type no group handles
// yield (nil, nil). Any error is a *MessageError.
func (d *Decoder) Decode(m netlink.Message) (*types.Record, error) {
	g, kind, ok := d.registry.Dispatch(uint16(m.Header.Type))
	if !ok {
		slog.Log(context.Background(), types.LevelTrace, "ignoring message", "type", m.Header.Type)
		return nil, nil
	}

	stamp := d.clock()
	event := kind.Prefix() + g.Name

	if len(m.Data) < g.HeaderLen {
		return nil, &MessageError{Group: g.Name, Event: event,
			Err: fmt.Errorf("%w: got %d bytes, need %d", ErrShortHeader, len(m.Data), g.HeaderLen)}
	}

	r := types.NewRecord(8)
	r.SetInt(types.StampKey, stamp)
	r.SetString(types.EventKey, event)

	msg := Message{
		Kind:   kind,
		Body:   m.Data,
		Prober: d.prober,
	}
	if err := g.Decode(&msg, r); err != nil {
		return nil, &MessageError{Group: g.Name, Event: event, Err: err}
	}

	slog.Log(context.Background(), types.LevelTrace, "decoded message", "event", event, "fields", r.Len())

	return r, nil
}

//go:generate go tool golang.org/x/tools/cmd/stringer -type=DropReason -linecomment

// DropReason classifies why a message didn't produce a record.
type DropReason int

const (
	ReasonOther      DropReason = iota // other
	ReasonFiltered                     // filtered
	ReasonMalformed                    // malformed
	ReasonMismatch                     // mismatch
	ReasonHeader                       // header
	ReasonEnrichment                   // enrichment

	// The kernel dropped notifications before we could read them.
	ReasonOverrun // overrun
)

// Reason classifies a decoding error for reporting purposes.
func Reason(err error) DropReason {
	switch {
	case errors.Is(err, ErrFiltered):
		return ReasonFiltered
	case errors.Is(err, ErrMalformedAttribute):
		return ReasonMalformed
	case errors.Is(err, ErrAttributeTypeMismatch), errors.Is(err, ErrUnsupportedFamily):
		return ReasonMismatch
	case errors.Is(err, ErrShortHeader):
		return ReasonHeader
	case errors.Is(err, ErrEnrichment):
		return ReasonEnrichment
	}
	return ReasonOther
}
