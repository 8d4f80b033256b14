//go:build !linux && !darwin

package fastping

import "github.com/pkg/errors"

type unsupportedOpener struct{}

func newPlatformOpener() Opener {
	return unsupportedOpener{}
}

func (unsupportedOpener) Open(kind SocketKind) (Socket, error) {
	return nil, errors.Wrapf(ErrPlatformUnsupported, "%v socket", kind)
}
