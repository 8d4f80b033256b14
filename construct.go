package fastping

import (
	"bytes"
	"encoding/binary"
)

const (
	icmpTypeEchoRequest = 8
	icmpTypeEchoReply   = 0
	icmpEchoHeaderLen   = 8
)

type headerICMPEcho struct {
	typ      uint8
	code     uint8
	checkSum uint16
	id       uint16
	seq      uint16
}

func (h *headerICMPEcho) bytes() []byte {
	var b bytes.Buffer
	b.Grow(icmpEchoHeaderLen)
	binary.Write(&b, binary.BigEndian, h)
	return b.Bytes()
}

// checksum is computed over the header as transmitted, with the checksum
// field zeroed.
func (h *headerICMPEcho) checksum() {
	h.checkSum = 0
	h.checkSum = checksum(h.bytes())
}

// packetICMPEcho builds an 8 byte Echo Request with a valid checksum.
func packetICMPEcho(id, seq uint16) []byte {
	hd := &headerICMPEcho{
		typ:  icmpTypeEchoRequest,
		code: 0,
		id:   id,
		seq:  seq,
	}
	hd.checksum()
	return hd.bytes()
}
