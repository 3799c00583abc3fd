package netlink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mdlayher/netlink"
	"github.com/scitags/nlmon-go/processing/rtnetlink"
	"github.com/scitags/nlmon-go/types"
	"golang.org/x/sys/unix"
)

var (
	ErrNoGroups     = errors.New("no netlink groups")
	ErrUnknownGroup = rtnetlink.ErrUnknownGroup
	ErrClosed       = errors.New("session is closed")

	// ErrOverrun is returned when the kernel reports NLMSG_OVERRUN.
	ErrOverrun = errors.New("netlink overrun")

	// ErrKernel wraps the errno carried by an NLMSG_ERROR message.
	ErrKernel = errors.New("kernel reported an error")
)

// Session owns a NETLINK_ROUTE socket bound to a set of groups and turns
// whatever arrives on it into records. A Session is meant to be driven
// from a single goroutine, but Close can be called from anywhere.
type Session struct {
	decoder  *rtnetlink.Decoder
	registry *rtnetlink.Registry
	groups   []rtnetlink.Group
	family   *types.Family
	observer Observer

	sock Socket
	buf  []byte

	closeOnce sync.Once
	closeErr  error
	closed    atomic.Bool
}

type Option func(*Session)

// WithObserver sets the Observer notified of each message.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o == nil {
			o = nopObserver{}
		}
		s.observer = o
	}
}

// withSocket replaces the NETLINK_ROUTE socket. It's meant for tests.
func withSocket(sock Socket) Option {
	return func(s *Session) {
		s.sock = sock
	}
}

// Open binds a NETLINK_ROUTE socket to the groups in c. A nil c implies
// DefaultConfig.
func Open(c *Config, d *rtnetlink.Decoder, opts ...Option) (*Session, error) {
	if c == nil {
		c = &DefaultConfig
	}

	if c.BufferSize < headerLen {
		return nil, fmt.Errorf("buffer size %d can't hold a netlink header", c.BufferSize)
	}

	s := &Session{
		decoder:  d,
		registry: d.Registry(),
		observer: nopObserver{},
		buf:      make([]byte, c.BufferSize),
	}
	for _, opt := range opts {
		opt(s)
	}

	if c.DumpFamily != "" {
		f, ok := types.ParseFamily(c.DumpFamily)
		if !ok {
			return nil, fmt.Errorf("unknown dump family %q", c.DumpFamily)
		}
		s.family = &f
	}

	groups, err := s.registry.Select(c.Groups...)
	if err != nil {
		return nil, err
	}
	s.groups = groups

	var mask uint32
	for _, g := range groups {
		mask |= g.Multicast
	}
	if mask == 0 {
		return nil, ErrNoGroups
	}

	if s.sock == nil {
		sock, err := dial(mask)
		if err != nil {
			return nil, err
		}
		s.sock = sock
	}

	slog.Debug("opened netlink session", "groups", s.Groups(), "mask", fmt.Sprintf("%#x", mask))

	return s, nil
}

func (s *Session) String() string {
	return "rtnetlink session"
}

// Groups returns the names of the bound groups.
func (s *Session) Groups() []string {
	names := make([]string, 0, len(s.groups))
	for _, g := range s.groups {
		names = append(names, g.Name)
	}
	return names
}

// Poll waits up to timeout for something to be received. Lost
// notifications are reported to the Observer and Poll reports the socket
// as ready so that the caller goes on receiving.
func (s *Session) Poll(timeout time.Duration) (bool, error) {
	if s.closed.Load() {
		return false, ErrClosed
	}

	ready, err := s.sock.Poll(timeout)
	if isOverflow(err) {
		s.overflow(err)
		return true, nil
	}
	if err != nil {
		if s.closed.Load() {
			return false, ErrClosed
		}
		return false, fmt.Errorf("error polling: %w", err)
	}
	return ready, nil
}

// Receive reads every datagram currently queued and returns the records
// they produced in arrival order. It returns once reading would block or
// when the kernel signals the end of a dump. Lost notifications end the
// cycle too, but aren't an error: the next cycle carries on.
func (s *Session) Receive() ([]*types.Record, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	var records []*types.Record
	for {
		n, err := s.sock.Recv(s.buf)
		if errors.Is(err, ErrWouldBlock) {
			return records, nil
		}
		if isOverflow(err) {
			s.overflow(err)
			return records, nil
		}
		if err != nil {
			if s.closed.Load() {
				return records, ErrClosed
			}
			return records, fmt.Errorf("error receiving: %w", err)
		}

		msgs, err := splitMessages(s.buf[:n])
		if err != nil {
			slog.Warn("dropping the rest of a datagram", "err", err)
			s.observer.Dropped("", rtnetlink.ReasonMalformed.String())
		}

		done, err := s.handle(msgs, &records)
		if err != nil || done {
			return records, err
		}
	}
}

// handle decodes every message in msgs, appending records to out. It
// returns true when the current cycle is over.
func (s *Session) handle(msgs []netlink.Message, out *[]*types.Record) (bool, error) {
	for _, m := range msgs {
		switch m.Header.Type {
		case netlink.Noop:
			continue

		case netlink.Done:
			return true, nil

		case netlink.Overrun:
			return true, ErrOverrun

		case netlink.Error:
			code, err := errorCode(m)
			if err != nil {
				return true, err
			}
			switch unix.Errno(code) {
			case 0:
				continue
			case unix.EBUSY, unix.EAGAIN, unix.EINTR:
				slog.Debug("kernel asked us to retry", "errno", unix.Errno(code))
				return true, nil
			}
			return true, fmt.Errorf("%w: %w", ErrKernel, unix.Errno(code))
		}

		r, err := s.decoder.Decode(m)
		if err != nil {
			s.drop(err)
			continue
		}
		if r == nil {
			continue
		}

		s.observer.Record(r.Event())
		*out = append(*out, r)
	}
	return false, nil
}

func (s *Session) drop(err error) {
	group := ""
	var me *rtnetlink.MessageError
	if errors.As(err, &me) {
		group = me.Group
	}

	reason := rtnetlink.Reason(err)
	if reason == rtnetlink.ReasonFiltered {
		slog.Log(context.Background(), types.LevelTrace, "message filtered", "group", group, "err", err)
	} else {
		slog.Warn("dropping message", "group", group, "reason", reason, "err", err)
	}
	s.observer.Dropped(group, reason.String())
}

// isOverflow reports whether err means notifications were lost while the
// socket itself is still fine.
func isOverflow(err error) bool {
	return errors.Is(err, ErrOverflow) || errors.Is(err, unix.ENOBUFS)
}

func (s *Session) overflow(err error) {
	slog.Warn("the kernel dropped notifications, the receive buffer is full", "err", err)
	s.observer.Dropped("", rtnetlink.ReasonOverrun.String())
}

// Dump requests a dump of each named group in registry order, draining the
// replies of one group before moving on to the next one. No names dumps
// every bound group.
func (s *Session) Dump(names ...string) ([]*types.Record, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	groups := s.groups
	if len(names) > 0 {
		var err error
		if groups, err = s.registry.Select(names...); err != nil {
			return nil, err
		}
	}

	var records []*types.Record
	for _, g := range groups {
		family := g.DumpFamily
		if s.family != nil {
			family = *s.family
		}

		req, err := dumpRequest(g.GetType, family)
		if err != nil {
			return records, fmt.Errorf("error building the %s dump request: %w", g.Name, err)
		}

		slog.Debug("requesting dump", "group", g.Name, "type", g.GetType, "family", family)
		if err := s.sock.Send(req); err != nil {
			return records, fmt.Errorf("error requesting the %s dump: %w", g.Name, err)
		}

		rs, err := s.Receive()
		records = append(records, rs...)
		if err != nil {
			return records, fmt.Errorf("error receiving the %s dump: %w", g.Name, err)
		}
	}

	return records, nil
}

// Query dumps every bound group.
func (s *Session) Query() ([]*types.Record, error) {
	return s.Dump()
}

// Close closes the underlying socket. Only the first call does anything.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.closeErr = s.sock.Close()
		slog.Debug("closed netlink session")
	})
	return s.closeErr
}
