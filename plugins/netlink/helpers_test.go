package netlink

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/josharian/native"
	"github.com/mdlayher/netlink"
	"github.com/scitags/nlmon-go/processing/rtnetlink"
	"github.com/scitags/nlmon-go/types"
)

func init() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelError,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time.
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			// Remove the directory from the source's filename.
			if a.Key == slog.SourceKey {
				source := a.Value.Any().(*slog.Source)
				source.File = filepath.Base(source.File)
			}
			return a
		},
	}))

	slog.SetDefault(logger)
}

// fakeSocket hands out queued datagrams. Replies registered for a request
// type are queued whenever such a request is sent. Errors in recvErrs are
// returned once, on the Recv call with that (1-based) number.
type fakeSocket struct {
	queue    [][]byte
	replies  map[uint16][][]byte
	sent     [][]byte
	recvErr  error
	recvErrs map[int]error
	recvs    int
	pollErr  error
	closes   int
}

func (s *fakeSocket) Send(b []byte) error {
	s.sent = append(s.sent, append([]byte(nil), b...))
	t := native.Endian.Uint16(b[4:6])
	s.queue = append(s.queue, s.replies[t]...)
	return nil
}

func (s *fakeSocket) Recv(b []byte) (int, error) {
	s.recvs++
	if err, ok := s.recvErrs[s.recvs]; ok {
		return 0, err
	}
	if s.recvErr != nil {
		return 0, s.recvErr
	}
	if len(s.queue) == 0 {
		return 0, ErrWouldBlock
	}
	d := s.queue[0]
	s.queue = s.queue[1:]
	return copy(b, d), nil
}

func (s *fakeSocket) Poll(time.Duration) (bool, error) {
	if err := s.pollErr; err != nil {
		s.pollErr = nil
		return false, err
	}
	return len(s.queue) > 0, nil
}

func (s *fakeSocket) Close() error {
	s.closes++
	return nil
}

type countingObserver struct {
	records []string
	dropped []string
}

func (o *countingObserver) Record(event string) {
	o.records = append(o.records, event)
}

func (o *countingObserver) Dropped(group, reason string) {
	o.dropped = append(o.dropped, group+"/"+reason)
}

func openFake(t *testing.T, c *Config, sock *fakeSocket, opts ...Option) *Session {
	t.Helper()

	d := rtnetlink.NewDecoder(rtnetlink.DefaultRegistry(), rtnetlink.WithClock(func() int64 { return 0 }))

	s, err := Open(c, d, append([]Option{withSocket(sock)}, opts...)...)
	if err != nil {
		t.Fatalf("error opening the session: %v", err)
	}
	return s
}

// nlmsg lays out a netlink message; the body must be 4-byte aligned.
func nlmsg(t *testing.T, typ uint16, flags netlink.HeaderFlags, body ...[]byte) []byte {
	t.Helper()

	var data []byte
	for _, b := range body {
		data = append(data, b...)
	}

	m := netlink.Message{
		Header: netlink.Header{
			Length: uint32(headerLen + len(data)),
			Type:   netlink.HeaderType(typ),
			Flags:  flags,
		},
		Data: data,
	}
	b, err := m.MarshalBinary()
	if err != nil {
		t.Fatalf("error marshalling message: %v", err)
	}
	return b
}

func datagram(msgs ...[]byte) []byte {
	var d []byte
	for _, m := range msgs {
		d = append(d, m...)
	}
	return d
}

func attrs(t *testing.T, fn func(ae *netlink.AttributeEncoder)) []byte {
	t.Helper()

	ae := netlink.NewAttributeEncoder()
	fn(ae)
	b, err := ae.Encode()
	if err != nil {
		t.Fatalf("error encoding attributes: %v", err)
	}
	return b
}

func linkMsg(t *testing.T, typ uint16, index int32, name string) []byte {
	hdr := make([]byte, 16)
	native.Endian.PutUint32(hdr[4:8], uint32(index))
	native.Endian.PutUint32(hdr[8:12], rtnetlink.IFF_UP)

	return nlmsg(t, typ, netlink.Multi, hdr, attrs(t, func(ae *netlink.AttributeEncoder) {
		ae.String(rtnetlink.IFLA_IFNAME, name)
	}))
}

func addrMsg(t *testing.T, typ uint16, index uint32, ip [4]byte) []byte {
	hdr := make([]byte, 8)
	hdr[0] = uint8(types.IPv4)
	hdr[1] = 24
	native.Endian.PutUint32(hdr[4:8], index)

	return nlmsg(t, typ, 0, hdr, attrs(t, func(ae *netlink.AttributeEncoder) {
		ae.Bytes(rtnetlink.IFA_LOCAL, ip[:])
	}))
}

func routeMsg(t *testing.T, kind uint8) []byte {
	hdr := make([]byte, 12)
	hdr[0] = uint8(types.IPv4)
	hdr[1] = 8
	hdr[7] = kind

	return nlmsg(t, rtnetlink.RTM_NEWROUTE, 0, hdr, attrs(t, func(ae *netlink.AttributeEncoder) {
		ae.Bytes(rtnetlink.RTA_DST, []byte{10, 0, 0, 0})
	}))
}

func errMsg(t *testing.T, errno int32) []byte {
	b := make([]byte, 4+headerLen)
	native.Endian.PutUint32(b[0:4], uint32(-errno))
	return nlmsg(t, uint16(netlink.Error), 0, b)
}

func doneMsg(t *testing.T) []byte {
	return nlmsg(t, uint16(netlink.Done), netlink.Multi, make([]byte, 4))
}

func events(rs []*types.Record) []string {
	evs := []string{}
	for _, r := range rs {
		v, _ := r.Get("name")
		if v == nil {
			v, _ = r.Get("ip")
		}
		if v == nil {
			v, _ = r.Get("dst")
		}
		evs = append(evs, r.Event()+":"+toString(v))
	}
	return evs
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}
