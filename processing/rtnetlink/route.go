package rtnetlink

import (
	"fmt"

	"github.com/scitags/nlmon-go/types"
)

// struct rtmsg {
//	unsigned char rtm_family;
//	unsigned char rtm_dst_len;
//	unsigned char rtm_src_len;
//	unsigned char rtm_tos;
//	unsigned char rtm_table;
//	unsigned char rtm_protocol;
//	unsigned char rtm_scope;
//	unsigned char rtm_type;
//	unsigned      rtm_flags;
// };
func decodeRoute(m *Message, r *types.Record) error {
	var (
		family = types.Family(m.Body[0])
		dstLen = m.Body[1]
		srcLen = m.Body[2]
		scope  = m.Body[6]
		kind   = m.Body[7]
	)

	if kind != RTN_UNICAST {
		return fmt.Errorf("%w: route type %d", ErrFiltered, kind)
	}

	r.SetInt("scope", int64(scope))

	return ForEach(m.Body, sizeofRtMsg, func(a Attribute) error {
		var (
			key string
			v   string
			err error
		)
		switch a.Type {
		case RTA_SRC:
			key = "src"
			v, err = CIDR(a, family, srcLen)
		case RTA_DST:
			key = "dst"
			v, err = CIDR(a, family, dstLen)
		case RTA_GATEWAY:
			key = "gateway"
			v, err = IP(a, family)
		default:
			return nil
		}
		if err != nil {
			return err
		}
		r.SetString(key, v)
		return nil
	})
}
