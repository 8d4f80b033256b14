package fastping

import "golang.org/x/sys/unix"

func openSocket(domain, typ, proto int) (int, error) {
	fd, err := unix.Socket(domain, typ, proto)
	if err != nil {
		return -1, err
	}
	unix.CloseOnExec(fd)
	if typ == unix.SOCK_STREAM {
		// Writes after a reset must not raise SIGPIPE.
		if err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_NOSIGPIPE, 1); err != nil {
			unix.Close(fd)
			return -1, err
		}
	}
	return fd, nil
}
