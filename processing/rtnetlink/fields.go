package rtnetlink

import (
	"bytes"
	"fmt"
	"net"
	"net/netip"
	"strconv"

	"github.com/josharian/native"
	"github.com/scitags/nlmon-go/types"
)

// Uint32 decodes a native-endian u32 attribute (MNL_TYPE_U32).
func Uint32(a Attribute) (uint32, error) {
	if len(a.Payload) != 4 {
		return 0, fmt.Errorf("%w: u32 attribute %d carries %d bytes", ErrAttributeTypeMismatch, a.Type, len(a.Payload))
	}
	return native.Endian.Uint32(a.Payload), nil
}

// String decodes a string attribute (MNL_TYPE_STRING). The payload may or
// may not be NUL-terminated; anything after the first NUL is ignored.
func String(a Attribute) (string, error) {
	if len(a.Payload) == 0 {
		return "", fmt.Errorf("%w: empty string attribute %d", ErrAttributeTypeMismatch, a.Type)
	}
	s := a.Payload
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return string(s), nil
}

// IP decodes an address attribute whose width depends on family.
func IP(a Attribute, family types.Family) (string, error) {
	want := family.AddrLen()
	if want == 0 {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedFamily, family)
	}
	if len(a.Payload) != want {
		return "", fmt.Errorf("%w: %s address attribute %d carries %d bytes", ErrAttributeTypeMismatch, family, a.Type, len(a.Payload))
	}
	return FormatIP(a.Payload), nil
}

// CIDR decodes an address attribute and appends the prefix length.
func CIDR(a Attribute, family types.Family, prefixLen uint8) (string, error) {
	ip, err := IP(a, family)
	if err != nil {
		return "", err
	}
	return ip + "/" + strconv.Itoa(int(prefixLen)), nil
}

// HardwareAddr decodes a link-layer address (MNL_TYPE_BINARY). Any length is
// accepted as not every link type carries a MAC-48.
func HardwareAddr(a Attribute) string {
	return FormatHardwareAddr(a.Payload)
}

// FormatIP renders a 4 or 16 byte address in dotted or colon notation as
// inet_ntop(3) would. Other lengths render as an empty string.
func FormatIP(b []byte) string {
	switch len(b) {
	case 4:
		return netip.AddrFrom4([4]byte(b)).String()
	case 16:
		return netip.AddrFrom16([16]byte(b)).String()
	}
	return ""
}

// FormatHardwareAddr renders b as lower-case colon-separated hex octets.
func FormatHardwareAddr(b []byte) string {
	return net.HardwareAddr(b).String()
}
