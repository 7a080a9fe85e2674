package wire

import (
	"encoding/binary"
	"github.com/google/uuid"
)

// VarIntSize returns the encoded byte length of v.
func VarIntSize(v uint32) int {
	size := 1
	for v >= ContinueBit {
		v >>= 7
		size++
	}
	return size
}

// AppendVarInt appends the varint encoding of v to dst.
func AppendVarInt(dst []byte, v uint32) []byte {
	for v >= ContinueBit {
		dst = append(dst, byte(v)|ContinueBit)
		v >>= 7
	}
	return append(dst, byte(v))
}

// AppendVarLong appends the varlong encoding of v to dst.
func AppendVarLong(dst []byte, v uint64) []byte {
	for v >= ContinueBit {
		dst = append(dst, byte(v)|ContinueBit)
		v >>= 7
	}
	return append(dst, byte(v))
}

// AppendBool appends a protocol boolean to dst.
func AppendBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

// AppendUint16 appends a big-endian unsigned short to dst.
func AppendUint16(dst []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(dst, v)
}

// AppendUint64 appends a big-endian unsigned long to dst.
func AppendUint64(dst []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(dst, v)
}

// AppendString appends a varint byte length and the raw bytes of s to dst.
func AppendString(dst []byte, s string) []byte {
	dst = AppendVarInt(dst, uint32(len(s)))
	return append(dst, s...)
}

// AppendUUID appends the 16 raw bytes of id, most-significant half first.
func AppendUUID(dst []byte, id uuid.UUID) []byte {
	return append(dst, id[:]...)
}

// AppendPosition packs p into its single 64-bit encoding.
func AppendPosition(dst []byte, p Position) []byte {
	v := (int64(p.X)&0x3FFFFFF)<<38 | (int64(p.Z)&0x3FFFFFF)<<12 | int64(p.Y)&0xFFF
	return binary.BigEndian.AppendUint64(dst, uint64(v))
}
