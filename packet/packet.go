// Package packet holds the data model shared between the framing layer and
// the packet processors.
package packet

import "fmt"

// RawPacket is one framed packet as read off the wire.
type RawPacket struct {
	// Size is the byte length of id+payload declared by the frame header.
	Size uint32
	// ID is the packet id.
	ID uint32
	// Payload is the raw bytes after the id. The transport never interprets
	// them; decoding belongs to the processor the id is dispatched to.
	Payload []byte
}

// Type names the packet ids known at registration time. Dispatch works on
// the raw uint32 id, so ids without a name still flow through untouched.
type Type uint32

const (
	// TypeHandshake opens every client connection.
	TypeHandshake Type = 0x00
)

func (t Type) String() string {
	switch t {
	case TypeHandshake:
		return "handshake"
	default:
		return fmt.Sprintf("unknown(0x%02X)", uint32(t))
	}
}
