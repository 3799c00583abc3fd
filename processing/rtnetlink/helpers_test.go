package rtnetlink

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/josharian/native"
	"github.com/mdlayher/netlink"
	"github.com/scitags/nlmon-go/enrichment"
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

func encodeAttrs(t *testing.T, fn func(ae *netlink.AttributeEncoder)) []byte {
	t.Helper()

	ae := netlink.NewAttributeEncoder()
	fn(ae)

	b, err := ae.Encode()
	if err != nil {
		t.Fatalf("error encoding attributes: %v", err)
	}
	return b
}

// rawAttr lays out an attribute by hand so that lengths can lie.
func rawAttr(length, typ uint16, payload []byte) []byte {
	b := make([]byte, 4, 4+len(payload))
	native.Endian.PutUint16(b[0:2], length)
	native.Endian.PutUint16(b[2:4], typ)
	return append(b, payload...)
}

func ifInfoMsg(family uint8, index int32, flags uint32) []byte {
	b := make([]byte, sizeofIfInfoMsg)
	b[0] = family
	native.Endian.PutUint32(b[4:8], uint32(index))
	native.Endian.PutUint32(b[8:12], flags)
	return b
}

func ifAddrMsg(family, prefixLen uint8, index uint32) []byte {
	b := make([]byte, sizeofIfAddrMsg)
	b[0] = family
	b[1] = prefixLen
	native.Endian.PutUint32(b[4:8], index)
	return b
}

func rtMsg(family, dstLen, srcLen, scope, kind uint8) []byte {
	b := make([]byte, sizeofRtMsg)
	b[0] = family
	b[1] = dstLen
	b[2] = srcLen
	b[6] = scope
	b[7] = kind
	return b
}

func ndMsg(family uint8, index int32, state uint16) []byte {
	b := make([]byte, sizeofNdMsg)
	b[0] = family
	native.Endian.PutUint32(b[4:8], uint32(index))
	native.Endian.PutUint16(b[8:10], state)
	return b
}

func message(typ uint16, parts ...[]byte) netlink.Message {
	var data []byte
	for _, p := range parts {
		data = append(data, p...)
	}
	return netlink.Message{
		Header: netlink.Header{
			Length: uint32(16 + len(data)),
			Type:   netlink.HeaderType(typ),
		},
		Data: data,
	}
}

func fixedClock(ms int64) Clock {
	return func() int64 { return ms }
}

type fakeProber struct {
	calls    []string
	settings *enrichment.LinkSettings
	err      error
}

func (p *fakeProber) String() string {
	return "fake prober"
}

func (p *fakeProber) ProbeLink(name string) (*enrichment.LinkSettings, error) {
	p.calls = append(p.calls, name)
	return p.settings, p.err
}
