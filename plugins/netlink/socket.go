package netlink

import (
	"errors"
	"time"
)

var (
	// ErrWouldBlock is returned by Socket.Recv when no datagram is queued.
	ErrWouldBlock = errors.New("operation would block")

	// ErrOverflow is returned by Socket.Recv and Socket.Poll when the
	// kernel dropped notifications because the receive buffer was full
	// (ENOBUFS). The socket is still usable afterwards.
	ErrOverflow = errors.New("receive buffer overflowed")
)

// Socket is the datagram transport a Session works on top of.
type Socket interface {
	// Send writes a single datagram addressed to the kernel.
	Send(b []byte) error

	// Recv reads a single datagram into b without blocking, returning
	// ErrWouldBlock if there's nothing to read.
	Recv(b []byte) (int, error)

	// Poll waits up to timeout for a datagram to be available. A negative
	// timeout waits forever.
	//
	// Both Recv and Poll return ErrOverflow if notifications were lost.
	Poll(timeout time.Duration) (bool, error)

	Close() error
}
