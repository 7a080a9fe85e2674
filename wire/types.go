package wire

import "fmt"

// BitSet is the variable-length bit set: a varint word count followed by
// 64-bit words. Bit i lives in words[i/64] at in-word offset i%64.
type BitSet struct {
	words []uint64
}

// Bit reports whether bit i is set. Bits beyond the stored words read as
// false.
func (b BitSet) Bit(i int) bool {
	if i < 0 || i/64 >= len(b.words) {
		return false
	}
	return b.words[i/64]>>(uint(i)%64)&1 == 1
}

// Len returns the bit capacity of the stored words.
func (b BitSet) Len() int {
	return len(b.words) * 64
}

// Words returns the raw backing words.
func (b BitSet) Words() []uint64 {
	return b.words
}

// FixedBitSet is the fixed-length bit set: ceil(n/8) raw bytes for n bits.
// Bit i lives in bytes[i/8] at in-byte offset i%8, which is NOT the indexing
// BitSet uses. The two layouts are distinct on the wire and stay distinct
// here.
type FixedBitSet struct {
	bits []byte
	size int
}

// Bit reports whether bit i is set. Out-of-range bits read as false.
func (f FixedBitSet) Bit(i int) bool {
	if i < 0 || i >= f.size {
		return false
	}
	return f.bits[i/8]>>(uint(i)%8)&1 == 1
}

// Size returns the declared bit count.
func (f FixedBitSet) Size() int {
	return f.size
}

// Bytes returns the raw backing bytes.
func (f FixedBitSet) Bytes() []byte {
	return f.bits
}

// Position is a block position, packed on the wire into a single 64-bit
// value as x:26 | z:26 | y:12, all fields signed.
type Position struct {
	X int32
	Y int32
	Z int32
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// TeleportFlags is an int32 reinterpreted as a bitfield selecting which
// teleport axes are relative. Bits without a name below pass through
// untouched.
type TeleportFlags int32

const (
	TeleportRelativeX TeleportFlags = 1 << iota
	TeleportRelativeY
	TeleportRelativeZ
	TeleportRelativeYaw
	TeleportRelativePitch
	TeleportRelativeVelocityX
	TeleportRelativeVelocityY
	TeleportRelativeVelocityZ
	TeleportRotateVelocity
)

// Has reports whether every bit of flag is set.
func (t TeleportFlags) Has(flag TeleportFlags) bool {
	return t&flag == flag
}

// Slot is a placeholder for the item-slot structure. Decoding it is not
// supported yet.
type Slot struct{}

// EntityMetadata is a placeholder for the entity metadata structure.
// Decoding it is not supported yet.
type EntityMetadata struct{}

// TextComponent is a placeholder for the text component structure. Decoding
// it is not supported yet.
type TextComponent struct{}
