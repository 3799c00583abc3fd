package rtnetlink

import (
	"errors"
	"testing"

	"github.com/josharian/native"
	"github.com/scitags/nlmon-go/types"
)

func TestUint32(t *testing.T) {
	p := make([]byte, 4)
	native.Endian.PutUint32(p, 1500)

	v, err := Uint32(Attribute{Type: IFLA_MTU, Payload: p})
	if err != nil || v != 1500 {
		t.Errorf("got (%d, %v); want (1500, nil)", v, err)
	}

	for _, l := range []int{0, 3, 5, 8} {
		if _, err := Uint32(Attribute{Type: IFLA_MTU, Payload: make([]byte, l)}); !errors.Is(err, ErrAttributeTypeMismatch) {
			t.Errorf("%d byte payload: got error %v; want %v", l, err, ErrAttributeTypeMismatch)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		want    string
		wantErr error
	}{
		{"terminated", []byte("eth0\x00"), "eth0", nil},
		{"unterminated", []byte("eth0"), "eth0", nil},
		{"garbageAfterNul", []byte("lo\x00xx"), "lo", nil},
		{"onlyNul", []byte{0}, "", nil},
		{"empty", []byte{}, "", ErrAttributeTypeMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := String(Attribute{Type: IFLA_IFNAME, Payload: tc.payload})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got error %v; want %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("got %q; want %q", got, tc.want)
			}
		})
	}
}

func TestIP(t *testing.T) {
	v6 := []byte{0xfe, 0x80, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}

	tests := []struct {
		name    string
		payload []byte
		family  types.Family
		want    string
		wantErr error
	}{
		{"ipv4", []byte{192, 168, 1, 1}, types.IPv4, "192.168.1.1", nil},
		{"ipv6", v6, types.IPv6, "fe80::1", nil},
		{"v4InV6", []byte{10, 0, 0, 1}, types.IPv6, "", ErrAttributeTypeMismatch},
		{"v6InV4", v6, types.IPv4, "", ErrAttributeTypeMismatch},
		{"unspec", []byte{10, 0, 0, 1}, types.Unspec, "", ErrUnsupportedFamily},
		{"bridge", []byte{10, 0, 0, 1}, types.Family(7), "", ErrUnsupportedFamily},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := IP(Attribute{Type: RTA_DST, Payload: tc.payload}, tc.family)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got error %v; want %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("got %q; want %q", got, tc.want)
			}
		})
	}
}

func TestCIDR(t *testing.T) {
	got, err := CIDR(Attribute{Type: RTA_DST, Payload: []byte{10, 1, 0, 0}}, types.IPv4, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "10.1.0.0/16" {
		t.Errorf("got %q; want %q", got, "10.1.0.0/16")
	}

	if _, err := CIDR(Attribute{Type: RTA_DST, Payload: []byte{10}}, types.IPv4, 8); !errors.Is(err, ErrAttributeTypeMismatch) {
		t.Errorf("got error %v; want %v", err, ErrAttributeTypeMismatch)
	}
}

func TestHardwareAddr(t *testing.T) {
	tests := []struct {
		payload []byte
		want    string
	}{
		{[]byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}, "aa:bb:cc:dd:ee:ff"},
		{[]byte{0x00, 0x0a}, "00:0a"},
		{make([]byte, 20), "00:00:00:00:00:00:00:00:00:00:00:00:00:00:00:00:00:00:00:00"},
		{nil, ""},
	}

	for _, tc := range tests {
		if got := HardwareAddr(Attribute{Type: IFLA_ADDRESS, Payload: tc.payload}); got != tc.want {
			t.Errorf("HardwareAddr(%x) = %q; want %q", tc.payload, got, tc.want)
		}
	}
}

func TestFormatIP(t *testing.T) {
	if got := FormatIP([]byte{127, 0, 0, 1}); got != "127.0.0.1" {
		t.Errorf("got %q; want 127.0.0.1", got)
	}
	if got := FormatIP([]byte{1, 2, 3}); got != "" {
		t.Errorf("got %q; want an empty string", got)
	}
}
