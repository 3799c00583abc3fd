package types

import "strings"

// Family is an address family as found in rtnetlink headers.
type Family uint8

// EventKind tells creation and deletion notifications apart.
type EventKind int

// Values follow the Linux ABI so they can be compared against rtnetlink
// headers on any GOOS (AF_INET6 differs on BSDs).
const (
	Unspec Family = 0
	IPv4   Family = 2
	IPv6   Family = 10
)

const (
	Create EventKind = iota
	Delete
)

var (
	familyMap = map[string]Family{
		"UNSPEC": Unspec,
		"INET":   IPv4,
		"INET6":  IPv6,
		"IPV4":   IPv4,
		"IPV6":   IPv6,
	}

	// Tags emitted on records as the 'family' field.
	ylimafMap = map[Family]string{
		Unspec: "AF_UNSPEC",
		IPv4:   "AF_INET",
		IPv6:   "AF_INET6",
	}

	kindMap = map[EventKind]string{
		Create: "new",
		Delete: "del",
	}
)

func (f Family) String() string {
	s, ok := ylimafMap[f]
	if !ok {
		return "AF_UNKNOWN"
	}
	return s
}

// AddrLen returns the length of an address of family f, or 0 if f doesn't
// carry IP addresses.
func (f Family) AddrLen() int {
	switch f {
	case IPv4:
		return 4
	case IPv6:
		return 16
	}
	return 0
}

// ParseFamily accepts inet, inet6, unspec (and ipv4, ipv6) in any case with an
// optional AF_ prefix.
func ParseFamily(family string) (Family, bool) {
	f, ok := familyMap[strings.TrimPrefix(strings.ToUpper(family), "AF_")]
	return f, ok
}

// Prefix is prepended to the group name to build the event field.
func (k EventKind) Prefix() string {
	return kindMap[k]
}

func (k EventKind) String() string {
	return kindMap[k]
}
