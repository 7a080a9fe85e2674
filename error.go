package dolls

import (
	"fmt"
)

// Error is a generic interface for error handling.
// Session loops use Fatal to decide between dropping a packet and dropping
// the connection.
type Error interface {
	error
	Fatal() bool // should return true if the error is fatal, otherwise false.
}

var (
	_ Error = &UnpackError{}
	_ Error = &ProcessorError{}
)

// UnpackError is the error returned in packer.Unpack. Framing failures are
// always fatal: once the stream is misaligned there is no way back in sync.
type UnpackError struct {
	Err error
}

func (pe *UnpackError) Error() string {
	return pe.Err.Error()
}

func (pe *UnpackError) Unwrap() error {
	return pe.Err
}

func (pe *UnpackError) Fatal() bool {
	return true
}

// ProcessorError is the error returned when a packet processor fails. It is
// never fatal; a broken packet must not take the connection down with it.
type ProcessorError struct {
	ID  uint32
	Err error
}

func (pe *ProcessorError) Error() string {
	return fmt.Sprintf("process packet(id=%d): %s", pe.ID, pe.Err)
}

func (pe *ProcessorError) Unwrap() error {
	return pe.Err
}

func (pe *ProcessorError) Fatal() bool {
	return false
}

// ErrServerStopped is used when server stopped.
var ErrServerStopped = fmt.Errorf("server stopped")

// ErrServerAlreadyRunning is used when Serve is called on a server whose
// run state is already set.
var ErrServerAlreadyRunning = fmt.Errorf("server is already running")
