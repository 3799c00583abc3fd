package rtnetlink

import (
	"fmt"

	"github.com/josharian/native"
	"github.com/scitags/nlmon-go/types"
)

// struct ndmsg {
//	__u8  ndm_family;
//	__u8  ndm_pad1;
//	__u16 ndm_pad2;
//	__s32 ndm_ifindex;
//	__u16 ndm_state;
//	__u8  ndm_flags;
//	__u8  ndm_type;
// };
func decodeNeigh(m *Message, r *types.Record) error {
	family := types.Family(m.Body[0])
	index := int32(native.Endian.Uint32(m.Body[4:8]))
	state := native.Endian.Uint16(m.Body[8:10])

	name, ok := nudStateName[state]
	if !ok {
		return fmt.Errorf("%w: neighbour state %#x", ErrFiltered, state)
	}

	r.SetInt("index", int64(index))
	r.SetString("state", name)

	return ForEach(m.Body, sizeofNdMsg, func(a Attribute) error {
		switch a.Type {
		case NDA_DST:
			ip, err := IP(a, family)
			if err != nil {
				return err
			}
			r.SetString("ip", ip)
		case NDA_LLADDR:
			r.SetString("hwaddr", HardwareAddr(a))
		case NDA_PROBES:
			probes, err := Uint32(a)
			if err != nil {
				return err
			}
			r.SetInt("probes", int64(probes))
		}
		return nil
	})
}
