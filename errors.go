package fastping

import "github.com/pkg/errors"

var (
	ErrSocketCreate        = errors.New("socket creation failed")
	ErrPrivilege           = errors.New("raw ICMP socket requires elevated privilege")
	ErrAddressParse        = errors.New("invalid target address")
	ErrTimeout             = errors.New("no response within timeout")
	ErrRefused             = errors.New("connection refused")
	ErrUnsupportedProtocol = errors.New("unsupported protocol")
	ErrPlatformUnsupported = errors.New("sockets are not supported on this platform")
)

type FailureKind uint8

const (
	KindNone FailureKind = iota
	KindSocketCreation
	KindPrivilege
	KindAddressParse
	KindTimeout
	KindRefused
	KindProtocolUnsupported
	KindOther
)

var failureKindNames = map[FailureKind]string{
	KindNone:                "none",
	KindSocketCreation:      "socket_creation",
	KindPrivilege:           "privilege",
	KindAddressParse:        "address_parse",
	KindTimeout:             "timeout",
	KindRefused:             "refused",
	KindProtocolUnsupported: "protocol_unsupported",
	KindOther:               "other",
}

func (k FailureKind) String() string {
	return failureKindNames[k]
}

// KindOf classifies an error returned by Engine.Probe.
func KindOf(err error) FailureKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrPrivilege):
		return KindPrivilege
	case errors.Is(err, ErrSocketCreate), errors.Is(err, ErrPlatformUnsupported):
		return KindSocketCreation
	case errors.Is(err, ErrAddressParse):
		return KindAddressParse
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrRefused):
		return KindRefused
	case errors.Is(err, ErrUnsupportedProtocol):
		return KindProtocolUnsupported
	}
	return KindOther
}
