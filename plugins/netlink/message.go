package netlink

import (
	"errors"
	"fmt"

	"github.com/josharian/native"
	"github.com/mdlayher/netlink"
	"github.com/scitags/nlmon-go/types"
)

const (
	// sizeof(struct nlmsghdr)
	headerLen = 16

	// NLMSG_ALIGNTO
	alignTo = 4

	// sizeof(struct nlmsghdr) + sizeof(struct rtgenmsg), aligned
	dumpRequestLen = headerLen + alignTo
)

var errTruncatedMessage = errors.New("truncated netlink message")

func align(n int) int {
	return (n + alignTo - 1) &^ (alignTo - 1)
}

// splitMessages breaks a datagram into the netlink messages it carries. On a
// malformed header it returns the messages found so far alongside an error.
// The returned messages' data points into b.
func splitMessages(b []byte) ([]netlink.Message, error) {
	var msgs []netlink.Message

	for off := 0; off < len(b); {
		rem := len(b) - off
		if rem < headerLen {
			return msgs, fmt.Errorf("%w: %d trailing bytes at offset %d", errTruncatedMessage, rem, off)
		}

		l := int(native.Endian.Uint32(b[off : off+4]))
		if l < headerLen || l > rem {
			return msgs, fmt.Errorf("%w: length %d at offset %d with %d bytes left", errTruncatedMessage, l, off, rem)
		}

		msgs = append(msgs, netlink.Message{
			Header: netlink.Header{
				Length:   uint32(l),
				Type:     netlink.HeaderType(native.Endian.Uint16(b[off+4 : off+6])),
				Flags:    netlink.HeaderFlags(native.Endian.Uint16(b[off+6 : off+8])),
				Sequence: native.Endian.Uint32(b[off+8 : off+12]),
				PID:      native.Endian.Uint32(b[off+12 : off+16]),
			},
			Data: b[off+headerLen : off+l : off+l],
		})

		off += align(l)
	}

	return msgs, nil
}

// errorCode extracts the errno carried by an NLMSG_ERROR message as a positive
// number. A 0 means the message is an acknowledgement.
func errorCode(m netlink.Message) (int, error) {
	if len(m.Data) < 4 {
		return 0, fmt.Errorf("%w: NLMSG_ERROR carries %d bytes", errTruncatedMessage, len(m.Data))
	}
	return -int(int32(native.Endian.Uint32(m.Data[:4]))), nil
}

// dumpRequest builds a request asking the kernel to dump every object of
// type t. The sequence number and port ID are both left as 0.
func dumpRequest(t uint16, family types.Family) ([]byte, error) {
	m := netlink.Message{
		Header: netlink.Header{
			Length: dumpRequestLen,
			Type:   netlink.HeaderType(t),
			Flags:  netlink.Request | netlink.Dump,
		},
		// struct rtgenmsg plus padding
		Data: []byte{uint8(family), 0, 0, 0},
	}
	return m.MarshalBinary()
}
