//go:build linux

package netlink

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

// routeSocket is a NETLINK_ROUTE socket bound to a set of multicast groups.
// We rely on mdlayher/netlink for dialling, binding and integrating the
// descriptor with the runtime's poller, but we read and write raw datagrams
// ourselves: our messages must leave with sequence number 0 and we want
// every message exactly as the kernel sent it.
type routeSocket struct {
	conn *netlink.Conn
	rc   syscall.RawConn
}

// dial opens the NETLINK_ROUTE socket. The descriptor is both non-blocking
// and close-on-exec.
func dial(groups uint32) (Socket, error) {
	conn, err := netlink.Dial(unix.NETLINK_ROUTE, &netlink.Config{Groups: groups})
	if err != nil {
		return nil, fmt.Errorf("error dialling NETLINK_ROUTE: %w", err)
	}

	rc, err := conn.SyscallConn()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error getting the raw connection: %w", err)
	}

	return &routeSocket{conn: conn, rc: rc}, nil
}

func (s *routeSocket) Send(b []byte) error {
	var serr error
	if err := s.rc.Control(func(fd uintptr) {
		serr = unix.Sendto(int(fd), b, 0, &unix.SockaddrNetlink{Family: unix.AF_NETLINK})
	}); err != nil {
		return err
	}
	return serr
}

func (s *routeSocket) Recv(b []byte) (int, error) {
	var (
		n    int
		rerr error
	)
	if err := s.rc.Control(func(fd uintptr) {
		n, _, rerr = unix.Recvfrom(int(fd), b, unix.MSG_DONTWAIT)
	}); err != nil {
		return 0, err
	}

	if errors.Is(rerr, unix.EAGAIN) || errors.Is(rerr, unix.EWOULDBLOCK) || errors.Is(rerr, unix.EINTR) {
		return 0, ErrWouldBlock
	}
	if errors.Is(rerr, unix.ENOBUFS) {
		return 0, ErrOverflow
	}
	if rerr != nil {
		return 0, os.NewSyscallError("recvfrom", rerr)
	}
	return n, nil
}

// Poll peeks at the receive queue through the runtime's poller so that
// closing the socket from another goroutine unblocks a pending Poll.
func (s *routeSocket) Poll(timeout time.Duration) (bool, error) {
	deadline := time.Time{}
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
	}
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return false, fmt.Errorf("error setting the read deadline: %w", err)
	}

	var (
		peek  [1]byte
		ready bool
		perr  error
	)
	err := s.rc.Read(func(fd uintptr) bool {
		_, _, perr = unix.Recvfrom(int(fd), peek[:], unix.MSG_PEEK|unix.MSG_DONTWAIT)
		if errors.Is(perr, unix.EAGAIN) || errors.Is(perr, unix.EINTR) {
			return false
		}
		ready = perr == nil
		return true
	})
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if errors.Is(perr, unix.ENOBUFS) {
		return false, ErrOverflow
	}
	if perr != nil {
		return false, os.NewSyscallError("recvfrom", perr)
	}
	return ready, nil
}

func (s *routeSocket) Close() error {
	return s.conn.Close()
}
