package fastping

import (
	"encoding/binary"
	"testing"
)

func TestPacketICMPEcho(t *testing.T) {
	for i := 0; i < 30; i++ {
		id, seq := uint16(i+3), uint16(i+2)
		bts := packetICMPEcho(id, seq)
		if len(bts) != icmpEchoHeaderLen {
			t.Fatalf("len = %d", len(bts))
		}
		if bts[0] != icmpTypeEchoRequest || bts[1] != 0 {
			t.Fatalf("type/code = %d/%d", bts[0], bts[1])
		}
		if got := binary.BigEndian.Uint16(bts[4:6]); got != id {
			t.Fatalf("id = %d, want %d", got, id)
		}
		if got := binary.BigEndian.Uint16(bts[6:8]); got != seq {
			t.Fatalf("seq = %d, want %d", got, seq)
		}
		if checksum(bts) != 0 {
			t.Fatalf("checksum does not verify for %v", bts)
		}

		zeroed := append([]byte(nil), bts...)
		zeroed[2], zeroed[3] = 0, 0
		if got := binary.BigEndian.Uint16(bts[2:4]); got != checksum(zeroed) {
			t.Fatalf("checksum field %#04x not computed over the zeroed header", got)
		}
	}
}
