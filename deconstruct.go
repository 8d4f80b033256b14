package fastping

import (
	"net/netip"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/pkg/errors"
	"golang.org/x/net/ipv4"
)

const (
	ICMPEcho        = "ICMPEcho"
	ICMPTimeExceed  = "ICMPTimeExceed"
	ICMPUnreachable = "ICMPUnreachable"
	ICMPOther       = "ICMPOther"
)

var icmpV4TypeMap = map[uint8]string{
	layers.ICMPv4TypeEchoReply:              ICMPEcho,
	layers.ICMPv4TypeTimeExceeded:           ICMPTimeExceed,
	layers.ICMPv4TypeDestinationUnreachable: ICMPUnreachable,
}

// ICMPRcv is a decoded ICMP datagram read from the raw socket.
type ICMPRcv struct {
	RcvType string
	Type    uint8
	Code    uint8
	Id      uint16
	Seq     uint16
	Src     netip.Addr
}

// deconstructICMP decodes a raw socket read. Reads normally carry the IPv4
// header; a buffer that does not start with one is decoded as bare ICMP.
func deconstructICMP(pkg []byte) (*ICMPRcv, error) {
	rcv := &ICMPRcv{}
	payload := pkg
	if len(pkg) >= ipv4.HeaderLen && pkg[0]>>4 == ipv4.Version {
		hd, err := ipv4.ParseHeader(pkg)
		if err != nil {
			return nil, errors.Wrap(err, "parse ipv4 header")
		}
		if hd.Len > len(pkg) {
			return nil, errors.Errorf("uncomplete ipv4 header (%v bytes)", len(pkg))
		}
		if src, ok := netip.AddrFromSlice(hd.Src.To4()); ok {
			rcv.Src = src
		}
		payload = pkg[hd.Len:]
	}
	if len(payload) < icmpEchoHeaderLen {
		return nil, errors.Errorf("uncomplete ICMP msg (%v)", payload)
	}
	var icmp layers.ICMPv4
	if err := icmp.DecodeFromBytes(payload, gopacket.NilDecodeFeedback); err != nil {
		return nil, errors.Wrap(err, "decode icmp")
	}
	rcv.Type = icmp.TypeCode.Type()
	rcv.Code = icmp.TypeCode.Code()
	rcv.Id = icmp.Id
	rcv.Seq = icmp.Seq
	rcv.RcvType = icmpV4TypeMap[rcv.Type]
	if rcv.RcvType == "" {
		rcv.RcvType = ICMPOther
	}
	return rcv, nil
}

// isReplyTo reports whether rcv answers an echo request with id sent to dst.
// The sequence number is informational and not compared.
func (rcv *ICMPRcv) isReplyTo(id uint16, dst netip.Addr) bool {
	if rcv.RcvType != ICMPEcho || rcv.Id != id {
		return false
	}
	return !rcv.Src.IsValid() || rcv.Src == dst
}
