package rtnetlink

import (
	"fmt"
	"log/slog"

	"github.com/josharian/native"
	"github.com/scitags/nlmon-go/types"
)

// struct ifinfomsg {
//	unsigned char  ifi_family;
//	unsigned char  __ifi_pad;
//	unsigned short ifi_type;
//	int            ifi_index;
//	unsigned       ifi_flags;
//	unsigned       ifi_change;
// };
func decodeLink(m *Message, r *types.Record) error {
	index := int32(native.Endian.Uint32(m.Body[4:8]))
	flags := native.Endian.Uint32(m.Body[8:12])

	r.SetInt("index", int64(index))
	r.SetBool("up", flags&IFF_UP != 0)
	r.SetBool("running", flags&IFF_RUNNING != 0)

	var name string
	err := ForEach(m.Body, sizeofIfInfoMsg, func(a Attribute) error {
		switch a.Type {
		case IFLA_MTU:
			mtu, err := Uint32(a)
			if err != nil {
				return err
			}
			r.SetInt("mtu", int64(mtu))
		case IFLA_IFNAME:
			s, err := String(a)
			if err != nil {
				return err
			}
			name = s
			r.SetString("name", name)
		case IFLA_ADDRESS:
			r.SetString("hwaddr", HardwareAddr(a))
		}
		return nil
	})
	if err != nil {
		return err
	}

	if m.Kind != types.Create || flags&IFF_RUNNING == 0 || name == "" || m.Prober == nil {
		return nil
	}

	settings, err := m.Prober.ProbeLink(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEnrichment, err)
	}
	if settings == nil {
		slog.Debug("no link settings available", "name", name)
		return nil
	}
	settings.Merge(r)

	return nil
}
