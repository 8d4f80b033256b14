package fastping

import (
	"net/netip"
	"time"

	"github.com/pkg/errors"
)

type detectTCP struct {
	opener Opener
}

// detect times a non-blocking connect from the moment it is issued until the
// socket turns writable. A rejected connect is a failure.
func (d *detectTCP) detect(dst netip.AddrPort, timeout time.Duration) (time.Duration, error) {
	sock, err := d.opener.Open(SocketStream)
	if err != nil {
		return 0, err
	}
	defer sock.Close()
	if err = sock.SetNonblock(); err != nil {
		return 0, errors.Wrapf(ErrSocketCreate, "set nonblock: %v", err)
	}

	start := time.Now()
	inProgress, err := sock.Connect(dst)
	if err != nil {
		return 0, errors.Wrapf(err, "tcp connect %v", dst)
	}
	if !inProgress {
		return time.Since(start), nil
	}
	writable, err := sock.WaitWritable(timeout)
	if err != nil {
		return 0, errors.Wrap(err, "wait writable")
	}
	if !writable {
		return 0, errors.Wrapf(ErrTimeout, "tcp connect %v", dst)
	}
	elapsed := time.Since(start)
	if err = sock.ConnectError(); err != nil {
		return 0, errors.Wrapf(err, "tcp connect %v", dst)
	}
	return elapsed, nil
}
