// Package wire implements the primitive value codec of the Minecraft Java
// Edition protocol: varints, length-prefixed strings, bit sets and the other
// scalar encodings packets are built from. Multi-byte values are big-endian.
// Readers consume exactly the bytes of the value they decode, so they can run
// against a live connection as well as a payload slice.
package wire

const (
	// SegmentBits masks the payload bits of a varint byte.
	SegmentBits = 0x7F
	// ContinueBit marks a varint byte as non-final.
	ContinueBit = 0x80

	// MaxVarIntLen is the longest legal VarInt encoding in bytes.
	MaxVarIntLen = 5
	// MaxVarLongLen is the longest legal VarLong encoding in bytes.
	MaxVarLongLen = 10

	// MaxIdentifierLen caps the decoded byte length of an identifier string.
	MaxIdentifierLen = 32767
)
