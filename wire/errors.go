package wire

import "errors"

var (
	// ErrVarIntTooBig is returned when a VarInt carries a continuation bit
	// past the 32-bit boundary.
	ErrVarIntTooBig = errors.New("varint is too big")

	// ErrVarLongTooBig is returned when a VarLong carries a continuation bit
	// past the 64-bit boundary.
	ErrVarLongTooBig = errors.New("varlong is too big")

	// ErrInvalidUTF8 is returned when a protocol string is not valid UTF-8.
	// Strings are never repaired by replacement.
	ErrInvalidUTF8 = errors.New("string is not valid utf-8")

	// ErrIdentifierTooLong is returned when an identifier exceeds
	// MaxIdentifierLen decoded bytes.
	ErrIdentifierTooLong = errors.New("identifier is too long")

	// ErrNotImplemented marks protocol values this package refuses to decode
	// rather than misparse.
	ErrNotImplemented = errors.New("not implemented")
)
