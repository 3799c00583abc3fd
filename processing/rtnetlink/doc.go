// Package rtnetlink decodes rtnetlink(7) messages into ordered event
// records. It knows nothing about sockets: callers feed it one netlink
// message at a time (see plugins/netlink for the session driving it).
//
// Decoding is table driven. A Registry holds an ordered list of Groups,
// each describing a family of messages (link, ifaddr, route and neigh by
// default) through its create, delete and dump request codes, the multicast
// group delivering its notifications and the DecodeFunc turning the message
// body into record fields. Dispatch picks the first group whose create or
// delete code matches the incoming nlmsg_type, so adding support for a new
// kind of message is a matter of appending a Group.
//
// Message bodies are a fixed, type-specific header (struct ifinfomsg,
// ifaddrmsg, rtmsg or ndmsg) followed by a stream of attributes laid out as
// described in netlink(7):
//
//	+----------+----------+------------------+---------+
//	| nla_len  | nla_type | payload          | padding |
//	| (16 bit) | (16 bit) | (nla_len - 4 B)  | (to 4B) |
//	+----------+----------+------------------+---------+
//
// The AttributeWalker iterates over that stream validating every length
// before slicing, so a corrupted message yields ErrMalformedAttribute rather
// than a panic. Be sure to check rtnetlink(7) and include/uapi/linux/rtnetlink.h
// for the header layouts:
//
// 0: https://man7.org/linux/man-pages/man7/rtnetlink.7.html
//
// 1: https://elixir.bootlin.com/linux/v6.12.4/source/include/uapi/linux/rtnetlink.h
package rtnetlink
