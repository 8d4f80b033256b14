package fastping

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single probe when ProbeRequest.Timeout is zero.
const DefaultTimeout = 2 * time.Second

type Protocol uint8

const (
	ProtocolTCP Protocol = iota + 1
	ProtocolUDP
	ProtocolICMP
)

func (p Protocol) String() string {
	switch p {
	case ProtocolTCP:
		return "tcp"
	case ProtocolUDP:
		return "udp"
	case ProtocolICMP:
		return "icmp"
	}
	return "unknown"
}

// ParseProtocol accepts "tcp", "udp" or "icmp" in any case.
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tcp":
		return ProtocolTCP, nil
	case "udp":
		return ProtocolUDP, nil
	case "icmp":
		return ProtocolICMP, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedProtocol, "protocol (%v)", s)
}

// UsesPort reports whether the protocol addresses a transport port.
func (p Protocol) UsesPort() bool {
	return p == ProtocolTCP || p == ProtocolUDP
}

type ProbeRequest struct {
	Protocol Protocol
	// Target is a dotted IPv4 literal.
	Target string
	// Port is ignored for ICMP.
	Port    uint16
	Timeout time.Duration
}

func (r ProbeRequest) timeout() time.Duration {
	if r.Timeout <= 0 {
		return DefaultTimeout
	}
	return r.Timeout
}

// ProbeResult is the outcome of one probe. Elapsed is only meaningful when
// Success is true and is zero otherwise.
type ProbeResult struct {
	Success bool
	Elapsed time.Duration
}

// Latency returns the elapsed time and whether it is present.
func (r ProbeResult) Latency() (time.Duration, bool) {
	if !r.Success {
		return 0, false
	}
	return r.Elapsed, true
}

type Config struct {
	// StrictICMP only accepts Echo Replies from the target carrying the
	// engine's identifier. Any ICMP datagram counts otherwise.
	StrictICMP bool
	Logger     *zap.Logger
	// Opener creates sockets; the host platform implementation is used when nil.
	Opener Opener
}
