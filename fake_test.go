package fastping

import (
	"net/netip"
	"sync"
	"time"
)

// fakeSocket replays a scripted peer.
type fakeSocket struct {
	opener *fakeOpener

	connectInProgress bool
	connectErr        error
	writable          bool
	connErr           error
	sendErr           error
	// datagrams are returned by Receive in order; readable is false once empty.
	datagrams [][]byte
	wait      time.Duration

	sent   [][]byte
	closed bool
}

func (s *fakeSocket) SetNonblock() error { return nil }

func (s *fakeSocket) Connect(dst netip.AddrPort) (bool, error) {
	return s.connectInProgress, s.connectErr
}

func (s *fakeSocket) SendTo(b []byte, dst netip.AddrPort) error {
	s.sent = append(s.sent, append([]byte(nil), b...))
	return s.sendErr
}

func (s *fakeSocket) Receive(b []byte) (int, error) {
	if len(s.datagrams) == 0 {
		return 0, errWouldBlock
	}
	n := copy(b, s.datagrams[0])
	s.datagrams = s.datagrams[1:]
	return n, nil
}

func (s *fakeSocket) WaitReadable(timeout time.Duration) (bool, error) {
	if len(s.datagrams) == 0 {
		time.Sleep(timeout)
		return false, nil
	}
	time.Sleep(s.wait)
	return true, nil
}

func (s *fakeSocket) WaitWritable(timeout time.Duration) (bool, error) {
	if !s.writable {
		time.Sleep(timeout)
		return false, nil
	}
	time.Sleep(s.wait)
	return true, nil
}

func (s *fakeSocket) ConnectError() error { return s.connErr }

func (s *fakeSocket) Close() error {
	s.opener.mu.Lock()
	defer s.opener.mu.Unlock()
	if !s.closed {
		s.closed = true
		s.opener.closed++
	}
	return nil
}

type fakeOpener struct {
	mu      sync.Mutex
	openErr error
	script  func() *fakeSocket
	sockets []*fakeSocket
	opened  int
	closed  int
}

func (o *fakeOpener) Open(kind SocketKind) (Socket, error) {
	if o.openErr != nil {
		return nil, o.openErr
	}
	s := &fakeSocket{}
	if o.script != nil {
		s = o.script()
	}
	s.opener = o
	o.mu.Lock()
	o.opened++
	o.sockets = append(o.sockets, s)
	o.mu.Unlock()
	return s, nil
}

func (o *fakeOpener) open() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opened - o.closed
}
