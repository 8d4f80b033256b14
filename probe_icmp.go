package fastping

import (
	"net/netip"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

type detectICMP struct {
	opener Opener
	strict bool
	id     uint16
	seq    *atomic.Uint32
}

func (d *detectICMP) nextSeq() uint16 {
	return uint16(d.seq.Add(1))
}

// detect sends one Echo Request on a raw socket. Without strict matching any
// datagram read within the timeout counts as a reply.
func (d *detectICMP) detect(dst netip.AddrPort, timeout time.Duration) (time.Duration, error) {
	sock, err := d.opener.Open(SocketRawICMP)
	if err != nil {
		return 0, err
	}
	defer sock.Close()
	if err = sock.SetNonblock(); err != nil {
		return 0, errors.Wrapf(ErrSocketCreate, "set nonblock: %v", err)
	}

	pkt := packetICMPEcho(d.id, d.nextSeq())
	var accept func([]byte) bool
	if d.strict {
		accept = func(b []byte) bool {
			rcv, err := deconstructICMP(b)
			return err == nil && rcv.isReplyTo(d.id, dst.Addr())
		}
	}

	start := time.Now()
	if err = sock.SendTo(pkt, dst); err != nil {
		return 0, errors.Wrapf(err, "icmp send %v", dst.Addr())
	}
	elapsed, err := awaitDatagram(sock, start, timeout, accept)
	if err != nil {
		return 0, errors.Wrapf(err, "icmp echo %v", dst.Addr())
	}
	return elapsed, nil
}
