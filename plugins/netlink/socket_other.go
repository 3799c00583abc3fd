//go:build !linux

package netlink

import "errors"

var ErrUnsupported = errors.New("netlink sessions are only supported on Linux")

func dial(groups uint32) (Socket, error) {
	return nil, ErrUnsupported
}
