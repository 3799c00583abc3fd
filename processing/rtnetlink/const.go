package rtnetlink

// All of these constants' names make the linter complain, but we inherited
// them from the kernel's UAPI headers, so we will keep them as they are...
// They're spelled out here instead of pulled from golang.org/x/sys/unix so
// that decoding works (and can be tested) on any GOOS.
const (
	// Message types; include/uapi/linux/rtnetlink.h
	RTM_NEWLINK  uint16 = 16
	RTM_DELLINK  uint16 = 17
	RTM_GETLINK  uint16 = 18
	RTM_NEWADDR  uint16 = 20
	RTM_DELADDR  uint16 = 21
	RTM_GETADDR  uint16 = 22
	RTM_NEWROUTE uint16 = 24
	RTM_DELROUTE uint16 = 25
	RTM_GETROUTE uint16 = 26
	RTM_NEWNEIGH uint16 = 28
	RTM_DELNEIGH uint16 = 29
	RTM_GETNEIGH uint16 = 30

	// Legacy multicast group bitmasks as accepted by bind(2) in nl_groups.
	RTMGRP_LINK        uint32 = 0x1
	RTMGRP_NEIGH       uint32 = 0x4
	RTMGRP_IPV4_IFADDR uint32 = 0x10
	RTMGRP_IPV4_ROUTE  uint32 = 0x40

	// Interface flags; include/uapi/linux/if.h
	IFF_UP      uint32 = 0x1
	IFF_RUNNING uint32 = 0x40

	// Link attributes; include/uapi/linux/if_link.h
	IFLA_ADDRESS uint16 = 1
	IFLA_IFNAME  uint16 = 3
	IFLA_MTU     uint16 = 4

	// Address attributes; include/uapi/linux/if_addr.h
	IFA_ADDRESS uint16 = 1
	IFA_LOCAL   uint16 = 2

	// Route attributes and types
	RTA_DST     uint16 = 1
	RTA_SRC     uint16 = 2
	RTA_GATEWAY uint16 = 5
	RTN_UNICAST uint8  = 1

	// Neighbour attributes; include/uapi/linux/neighbour.h
	NDA_DST    uint16 = 1
	NDA_LLADDR uint16 = 2
	NDA_PROBES uint16 = 4

	// Neighbour cache states
	NUD_INCOMPLETE uint16 = 0x01
	NUD_REACHABLE  uint16 = 0x02
	NUD_STALE      uint16 = 0x04
	NUD_DELAY      uint16 = 0x08
	NUD_PROBE      uint16 = 0x10
	NUD_FAILED     uint16 = 0x20
	NUD_NOARP      uint16 = 0x40
	NUD_PERMANENT  uint16 = 0x80

	// Attribute type flag bits stripped before comparing type codes.
	NLA_F_NESTED        uint16 = 1 << 15
	NLA_F_NET_BYTEORDER uint16 = 1 << 14
	NLA_TYPE_MASK       uint16 = ^(NLA_F_NESTED | NLA_F_NET_BYTEORDER)

	// IFNAMSIZ includes the trailing NUL.
	IFNAMSIZ = 16
)

// Sizes of the fixed headers preceding the attribute stream.
const (
	sizeofIfInfoMsg = 16 // struct ifinfomsg
	sizeofIfAddrMsg = 8  // struct ifaddrmsg
	sizeofRtMsg     = 12 // struct rtmsg
	sizeofNdMsg     = 12 // struct ndmsg
)

// Only these states make it into records. Anything else (incomplete,
// delay, noarp or combinations of bits) is dropped.
var nudStateName = map[uint16]string{
	NUD_REACHABLE: "reachable",
	NUD_STALE:     "stale",
	NUD_PROBE:     "probe",
	NUD_FAILED:    "failed",
	NUD_PERMANENT: "permanent",
}
