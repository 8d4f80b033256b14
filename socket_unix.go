//go:build linux || darwin

package fastping

import (
	"net/netip"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

type unixOpener struct{}

func newPlatformOpener() Opener {
	return unixOpener{}
}

func (unixOpener) Open(kind SocketKind) (Socket, error) {
	var typ, proto int
	switch kind {
	case SocketStream:
		typ, proto = unix.SOCK_STREAM, unix.IPPROTO_TCP
	case SocketDatagram:
		typ, proto = unix.SOCK_DGRAM, unix.IPPROTO_UDP
	case SocketRawICMP:
		typ, proto = unix.SOCK_RAW, unix.IPPROTO_ICMP
	default:
		return nil, errors.Wrapf(ErrSocketCreate, "unknown socket kind (%v)", kind)
	}
	fd, err := openSocket(unix.AF_INET, typ, proto)
	if err != nil {
		if kind == SocketRawICMP && (err == unix.EPERM || err == unix.EACCES) {
			return nil, errors.Wrap(ErrPrivilege, err.Error())
		}
		return nil, errors.Wrapf(ErrSocketCreate, "%v socket: %v", kind, err)
	}
	return &unixSocket{fd: fd}, nil
}

type unixSocket struct {
	fd int
}

func sockaddr(dst netip.AddrPort) unix.Sockaddr {
	return &unix.SockaddrInet4{
		Port: int(dst.Port()),
		Addr: dst.Addr().As4(),
	}
}

func (s *unixSocket) SetNonblock() error {
	return unix.SetNonblock(s.fd, true)
}

func (s *unixSocket) Connect(dst netip.AddrPort) (bool, error) {
	err := unix.Connect(s.fd, sockaddr(dst))
	switch err {
	case nil:
		return false, nil
	case unix.EINPROGRESS, unix.EALREADY, unix.EINTR:
		return true, nil
	case unix.ECONNREFUSED:
		return false, errors.Wrap(ErrRefused, err.Error())
	}
	return false, err
}

func (s *unixSocket) SendTo(b []byte, dst netip.AddrPort) error {
	return unix.Sendto(s.fd, b, 0, sockaddr(dst))
}

func (s *unixSocket) Receive(b []byte) (int, error) {
	n, _, err := unix.Recvfrom(s.fd, b, 0)
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		return 0, errWouldBlock
	}
	return n, err
}

func (s *unixSocket) WaitReadable(timeout time.Duration) (bool, error) {
	return s.poll(unix.POLLIN, timeout)
}

func (s *unixSocket) WaitWritable(timeout time.Duration) (bool, error) {
	return s.poll(unix.POLLOUT, timeout)
}

// poll waits for events, resuming after EINTR with the time left.
func (s *unixSocket) poll(events int16, timeout time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)
	for {
		left := time.Until(deadline)
		if left < 0 {
			left = 0
		}
		fds := []unix.PollFd{{Fd: int32(s.fd), Events: events}}
		n, err := unix.Poll(fds, pollMillis(left))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		if n == 0 {
			return false, nil
		}
		// POLLERR/POLLHUP also end the wait; the caller inspects the socket.
		return fds[0].Revents&(events|unix.POLLERR|unix.POLLHUP) != 0, nil
	}
}

// pollMillis rounds up so a sub-millisecond remainder still waits.
func pollMillis(d time.Duration) int {
	ms := d / time.Millisecond
	if d%time.Millisecond != 0 {
		ms++
	}
	return int(ms)
}

func (s *unixSocket) ConnectError() error {
	errno, err := unix.GetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return err
	}
	switch unix.Errno(errno) {
	case 0:
		return nil
	case unix.ECONNREFUSED:
		return errors.Wrap(ErrRefused, unix.Errno(errno).Error())
	}
	return unix.Errno(errno)
}

func (s *unixSocket) Close() error {
	if s.fd < 0 {
		return nil
	}
	err := unix.Close(s.fd)
	s.fd = -1
	return err
}
