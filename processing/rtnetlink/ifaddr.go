package rtnetlink

import (
	"fmt"

	"github.com/josharian/native"
	"github.com/scitags/nlmon-go/types"
)

// struct ifaddrmsg {
//	__u8  ifa_family;
//	__u8  ifa_prefixlen;
//	__u8  ifa_flags;
//	__u8  ifa_scope;
//	__u32 ifa_index;
// };
func decodeIfAddr(m *Message, r *types.Record) error {
	family := types.Family(m.Body[0])
	if family != types.IPv4 && family != types.IPv6 {
		return fmt.Errorf("%w: %d", ErrUnsupportedFamily, family)
	}

	r.SetInt("index", int64(native.Endian.Uint32(m.Body[4:8])))
	r.SetString("family", family.String())

	// Point-to-point links carry both the local and the peer address. We
	// keep whichever comes last.
	return ForEach(m.Body, sizeofIfAddrMsg, func(a Attribute) error {
		switch a.Type {
		case IFA_LOCAL, IFA_ADDRESS:
			ip, err := IP(a, family)
			if err != nil {
				return err
			}
			r.SetString("ip", ip)
		}
		return nil
	})
}
