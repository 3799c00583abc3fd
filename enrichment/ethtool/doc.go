// Package ethtool probes link negotiation results (speed, duplex and
// autonegotiation) through the SIOCETHTOOL ioctl. Check ethtool(8) and
// include/uapi/linux/ethtool.h for the ETHTOOL_GSET command we issue:
//
// 0: https://elixir.bootlin.com/linux/v6.12.4/source/include/uapi/linux/ethtool.h
//
// Every probe opens and closes its own control socket. Probes are only ever
// triggered by a link coming up, so we'd rather not keep a descriptor open
// for the whole lifetime of a session.
package ethtool
