package fastping

import (
	"net/netip"
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Prober performs one reachability attempt per call.
type Prober interface {
	Probe(req ProbeRequest) (ProbeResult, error)
}

// detector is one protocol strategy. It returns the elapsed time of a
// successful attempt.
type detector interface {
	detect(dst netip.AddrPort, timeout time.Duration) (time.Duration, error)
}

type detectMock struct{}

func (detectMock) detect(dst netip.AddrPort, timeout time.Duration) (time.Duration, error) {
	return 0, ErrUnsupportedProtocol
}

// Engine dispatches probe requests to the TCP, UDP and ICMP strategies. It
// holds no per-probe state and is safe for concurrent use; every call opens
// and closes its own socket.
type Engine struct {
	logger    *zap.Logger
	detectors map[Protocol]detector
}

var _ Prober = (*Engine)(nil)

func NewEngine(conf Config) *Engine {
	opener := conf.Opener
	if opener == nil {
		opener = newPlatformOpener()
	}
	logger := conf.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger: logger,
		detectors: map[Protocol]detector{
			ProtocolTCP: &detectTCP{opener: opener},
			ProtocolUDP: &detectUDP{opener: opener},
			ProtocolICMP: &detectICMP{
				opener: opener,
				strict: conf.StrictICMP,
				id:     uint16(os.Getpid() & 0xffff),
				seq:    new(atomic.Uint32),
			},
		},
	}
}

// Probe runs one attempt. The result is always well formed; a non-nil error
// explains a failure and can be classified with KindOf.
func (e *Engine) Probe(req ProbeRequest) (ProbeResult, error) {
	res, err := e.probe(req)
	if err != nil {
		e.logger.Debug("probe failed",
			zap.Stringer("protocol", req.Protocol),
			zap.String("target", req.Target),
			zap.Uint16("port", req.Port),
			zap.Stringer("kind", KindOf(err)),
			zap.Error(err),
		)
		return ProbeResult{}, err
	}
	e.logger.Debug("probe succeeded",
		zap.Stringer("protocol", req.Protocol),
		zap.String("target", req.Target),
		zap.Uint16("port", req.Port),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func (e *Engine) detector(p Protocol) detector {
	d, ok := e.detectors[p]
	if !ok {
		return detectMock{}
	}
	return d
}

func (e *Engine) probe(req ProbeRequest) (ProbeResult, error) {
	d := e.detector(req.Protocol)
	if _, ok := d.(detectMock); ok {
		return ProbeResult{}, errors.Wrapf(ErrUnsupportedProtocol, "protocol (%v)", req.Protocol)
	}
	dst, err := destination(req)
	if err != nil {
		return ProbeResult{}, err
	}
	timeout := req.timeout()
	elapsed, err := d.detect(dst, timeout)
	if err != nil {
		return ProbeResult{}, err
	}
	if elapsed > timeout {
		return ProbeResult{}, errors.Wrapf(ErrTimeout, "response after %v", elapsed)
	}
	return ProbeResult{Success: true, Elapsed: elapsed}, nil
}

// awaitDatagram waits until a datagram passing accept arrives, bounded by
// timeout measured from start. A nil accept takes any datagram, including an
// empty one.
func awaitDatagram(sock Socket, start time.Time, timeout time.Duration, accept func([]byte) bool) (time.Duration, error) {
	buf := make([]byte, 1500)
	for {
		left := timeout - time.Since(start)
		if left <= 0 {
			return 0, ErrTimeout
		}
		ready, err := sock.WaitReadable(left)
		if err != nil {
			return 0, errors.Wrap(err, "wait readable")
		}
		if !ready {
			return 0, ErrTimeout
		}
		n, err := sock.Receive(buf)
		if err == errWouldBlock {
			continue
		}
		if err != nil {
			return 0, errors.Wrap(err, "receive")
		}
		elapsed := time.Since(start)
		if accept == nil || accept(buf[:n]) {
			return elapsed, nil
		}
	}
}
