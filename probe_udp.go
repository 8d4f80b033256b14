package fastping

import (
	"net/netip"
	"time"

	"github.com/pkg/errors"
)

var udpPayload = []byte("fastping_test")

type detectUDP struct {
	opener Opener
}

// detect sends one datagram and waits for any datagram back. A silent port
// runs into the timeout; there is no explicit rejection for UDP.
func (d *detectUDP) detect(dst netip.AddrPort, timeout time.Duration) (time.Duration, error) {
	sock, err := d.opener.Open(SocketDatagram)
	if err != nil {
		return 0, err
	}
	defer sock.Close()
	if err = sock.SetNonblock(); err != nil {
		return 0, errors.Wrapf(ErrSocketCreate, "set nonblock: %v", err)
	}

	start := time.Now()
	if err = sock.SendTo(udpPayload, dst); err != nil {
		return 0, errors.Wrapf(err, "udp send %v", dst)
	}
	elapsed, err := awaitDatagram(sock, start, timeout, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "udp %v", dst)
	}
	return elapsed, nil
}
