package wire

import (
	"encoding/binary"
	"fmt"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"io"
	"math"
	"unicode/utf8"
)

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

// readByte reads a single byte without buffering beyond it.
func readByte(r io.Reader) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		return br.ReadByte()
	}
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// readFull fills buf. io.ReadFull keeps the boundary semantics this package
// wants: io.EOF before the first byte, io.ErrUnexpectedEOF after it.
func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return err
}

// midValue marks an EOF as a truncation. Used after a length prefix has been
// consumed, where running dry can no longer be a clean boundary.
func midValue(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ReadVarInt reads a variable-length 32-bit integer: 7 payload bits per
// byte, least-significant group first, high bit set on every byte but the
// last. Encodings longer than MaxVarIntLen bytes fail with ErrVarIntTooBig.
func ReadVarInt(r io.Reader) (uint32, error) {
	v, _, err := ReadVarIntWithSize(r)
	return v, err
}

// ReadVarIntWithSize is ReadVarInt and also reports how many bytes the
// encoding used. The framer needs the count to validate declared lengths.
func ReadVarIntWithSize(r io.Reader) (uint32, int, error) {
	var value uint32
	var size int
	for {
		b, err := readByte(r)
		if err != nil {
			if size > 0 && err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, size, err
		}
		value |= uint32(b&SegmentBits) << (size * 7)
		size++
		if b&ContinueBit == 0 {
			return value, size, nil
		}
		if size >= MaxVarIntLen {
			return 0, size, ErrVarIntTooBig
		}
	}
}

// ReadVarLong reads the 64-bit variant of ReadVarInt. Encodings longer than
// MaxVarLongLen bytes fail with ErrVarLongTooBig.
func ReadVarLong(r io.Reader) (uint64, error) {
	var value uint64
	var size int
	for {
		b, err := readByte(r)
		if err != nil {
			if size > 0 && err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		value |= uint64(b&SegmentBits) << (size * 7)
		size++
		if b&ContinueBit == 0 {
			return value, nil
		}
		if size >= MaxVarLongLen {
			return 0, ErrVarLongTooBig
		}
	}
}

// ReadBool reads one byte; any nonzero value is true.
func ReadBool(r io.Reader) (bool, error) {
	b, err := readByte(r)
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// ReadUint8 reads an unsigned byte.
func ReadUint8(r io.Reader) (uint8, error) {
	return readByte(r)
}

// ReadInt8 reads a signed byte.
func ReadInt8(r io.Reader) (int8, error) {
	b, err := readByte(r)
	return int8(b), err
}

// ReadUint16 reads a big-endian unsigned short.
func ReadUint16(r io.Reader) (uint16, error) {
	var b [2]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// ReadInt16 reads a big-endian signed short.
func ReadInt16(r io.Reader) (int16, error) {
	v, err := ReadUint16(r)
	return int16(v), err
}

// ReadUint32 reads a big-endian unsigned int.
func ReadUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// ReadInt32 reads a big-endian signed int.
func ReadInt32(r io.Reader) (int32, error) {
	v, err := ReadUint32(r)
	return int32(v), err
}

// ReadUint64 reads a big-endian unsigned long.
func ReadUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// ReadInt64 reads a big-endian signed long.
func ReadInt64(r io.Reader) (int64, error) {
	v, err := ReadUint64(r)
	return int64(v), err
}

// ReadFloat32 reads a big-endian IEEE-754 single.
func ReadFloat32(r io.Reader) (float32, error) {
	v, err := ReadUint32(r)
	return math.Float32frombits(v), err
}

// ReadFloat64 reads a big-endian IEEE-754 double.
func ReadFloat64(r io.Reader) (float64, error) {
	v, err := ReadUint64(r)
	return math.Float64frombits(v), err
}

// ReadString reads a varint byte length followed by that many bytes of
// UTF-8. Invalid UTF-8 fails with ErrInvalidUTF8; the bytes are never
// repaired by replacement.
func ReadString(r io.Reader) (string, error) {
	n, err := ReadVarInt(r)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return "", midValue(err)
	}
	if !utf8.Valid(buf) {
		return "", ErrInvalidUTF8
	}
	return string(buf), nil
}

// ReadIdentifier reads a protocol string capped at MaxIdentifierLen decoded
// bytes.
func ReadIdentifier(r io.Reader) (string, error) {
	s, err := ReadString(r)
	if err != nil {
		return "", err
	}
	if len(s) > MaxIdentifierLen {
		return "", ErrIdentifierTooLong
	}
	return s, nil
}

// ReadJSON reads a protocol string and unmarshals it into v.
func ReadJSON(r io.Reader, v interface{}) error {
	s, err := ReadString(r)
	if err != nil {
		return err
	}
	if err := jsonIter.UnmarshalFromString(s, v); err != nil {
		return fmt.Errorf("parse json string: %w", err)
	}
	return nil
}

// ReadUUID reads 16 raw bytes, most-significant half first.
func ReadUUID(r io.Reader) (uuid.UUID, error) {
	var b [16]byte
	if err := readFull(r, b[:]); err != nil {
		return uuid.Nil, err
	}
	return uuid.FromBytes(b[:])
}

// ReadBitSet reads a varint word count followed by that many 64-bit words.
func ReadBitSet(r io.Reader) (BitSet, error) {
	n, err := ReadVarInt(r)
	if err != nil {
		return BitSet{}, err
	}
	words := make([]uint64, n)
	for i := range words {
		w, err := ReadUint64(r)
		if err != nil {
			return BitSet{}, midValue(err)
		}
		words[i] = w
	}
	return BitSet{words: words}, nil
}

// ReadFixedBitSet reads the ceil(n/8) bytes backing an n-bit fixed set.
func ReadFixedBitSet(r io.Reader, n int) (FixedBitSet, error) {
	if n < 0 {
		return FixedBitSet{}, fmt.Errorf("fixed bitset size %d is negative", n)
	}
	bits := make([]byte, (n+7)/8)
	if err := readFull(r, bits); err != nil {
		return FixedBitSet{}, err
	}
	return FixedBitSet{bits: bits, size: n}, nil
}

// ReadPosition unpacks a block position from its single 64-bit encoding,
// sign-extending each field.
func ReadPosition(r io.Reader) (Position, error) {
	v, err := ReadUint64(r)
	if err != nil {
		return Position{}, err
	}
	iv := int64(v)
	return Position{
		X: int32(iv >> 38),
		Y: int32(iv << 52 >> 52),
		Z: int32(iv << 26 >> 38),
	}, nil
}

// ReadTeleportFlags reads the int32 backing a teleport flag field. Unknown
// bits are preserved.
func ReadTeleportFlags(r io.Reader) (TeleportFlags, error) {
	v, err := ReadInt32(r)
	return TeleportFlags(v), err
}

// ReadSlot always fails with ErrNotImplemented so slot-bearing packets fail
// loudly instead of being misparsed.
func ReadSlot(r io.Reader) (Slot, error) {
	return Slot{}, fmt.Errorf("read slot: %w", ErrNotImplemented)
}

// ReadEntityMetadata always fails with ErrNotImplemented.
func ReadEntityMetadata(r io.Reader) (EntityMetadata, error) {
	return EntityMetadata{}, fmt.Errorf("read entity metadata: %w", ErrNotImplemented)
}

// ReadTextComponent always fails with ErrNotImplemented.
func ReadTextComponent(r io.Reader) (TextComponent, error) {
	return TextComponent{}, fmt.Errorf("read text component: %w", ErrNotImplemented)
}
