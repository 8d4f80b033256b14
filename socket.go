package fastping

import (
	"net/netip"
	"time"

	"github.com/pkg/errors"
)

type SocketKind uint8

const (
	SocketStream SocketKind = iota + 1
	SocketDatagram
	SocketRawICMP
)

func (k SocketKind) String() string {
	switch k {
	case SocketStream:
		return "stream"
	case SocketDatagram:
		return "datagram"
	case SocketRawICMP:
		return "raw-icmp"
	}
	return "unknown"
}

// Socket is the capability set the probe strategies are written against.
// Implementations are not safe for concurrent use.
type Socket interface {
	SetNonblock() error
	// Connect starts a connect. inProgress is true when completion must be
	// awaited with WaitWritable.
	Connect(dst netip.AddrPort) (inProgress bool, err error)
	SendTo(b []byte, dst netip.AddrPort) error
	// Receive reads one datagram. n may be zero.
	Receive(b []byte) (n int, err error)
	// WaitReadable and WaitWritable block for at most timeout and report
	// whether the socket became ready.
	WaitReadable(timeout time.Duration) (bool, error)
	WaitWritable(timeout time.Duration) (bool, error)
	// ConnectError returns the pending error of a completed non-blocking connect.
	ConnectError() error
	Close() error
}

// Opener creates IPv4 sockets.
type Opener interface {
	Open(kind SocketKind) (Socket, error)
}

// errWouldBlock is returned by Receive when no datagram is queued.
var errWouldBlock = errors.New("operation would block")
