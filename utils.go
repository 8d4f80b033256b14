package fastping

import (
	"net"
	"net/netip"

	"github.com/pkg/errors"
)

// checksum is the Internet checksum (RFC 1071). An odd trailing byte is
// summed as the high byte of a word.
func checksum(buf []byte) uint16 {
	sum := uint32(0)
	for ; len(buf) >= 2; buf = buf[2:] {
		sum += uint32(buf[0])<<8 | uint32(buf[1])
	}
	if len(buf) > 0 {
		sum += uint32(buf[0]) << 8
	}
	for sum > 0xffff {
		sum = (sum >> 16) + (sum & 0xffff)
	}
	return ^uint16(sum)
}

func isIPv4(ip string) bool {
	for i := 0; i < len(ip); i++ {
		switch ip[i] {
		case '.':
			return true
		case ':':
			return false
		}
	}
	return false
}

// destination validates the request target and port.
func destination(req ProbeRequest) (netip.AddrPort, error) {
	if !isIPv4(req.Target) {
		return netip.AddrPort{}, errors.Wrapf(ErrAddressParse, "not an ipv4 addr (%v)", req.Target)
	}
	ip := net.ParseIP(req.Target).To4()
	if ip == nil {
		return netip.AddrPort{}, errors.Wrapf(ErrAddressParse, "invalid dst addr (%v)", req.Target)
	}
	addr := netip.AddrFrom4([4]byte{ip[0], ip[1], ip[2], ip[3]})
	if !req.Protocol.UsesPort() {
		return netip.AddrPortFrom(addr, 0), nil
	}
	if req.Port == 0 {
		return netip.AddrPort{}, errors.Wrapf(ErrAddressParse, "missing port for %v", req.Protocol)
	}
	return netip.AddrPortFrom(addr, req.Port), nil
}
