package util

import (
	"errors"
	"io"
	"net"
	"strings"
)

// IsEOF reports whether err just means the peer is gone: a clean EOF, a
// reset, or our own side of the socket already closed. Unwraps, so it sees
// through packer error wrappers.
func IsEOF(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection reset by peer")
}
