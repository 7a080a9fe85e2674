package dolls

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"github.com/DarcJC/Dolls/packet"
	"github.com/DarcJC/Dolls/wire"
	"github.com/zhuangsirui/binpacker"
	"io"
)

//go:generate mockgen -destination mock/packer_mock.go -package mock . Packer

// Packer is a generic interface to pack and unpack message packet.
type Packer interface {
	// Pack packs RawPacket into the frame to be written.
	Pack(pkt *packet.RawPacket) ([]byte, error)

	// Unpack unpacks one whole frame from reader,
	// returns the RawPacket, and error if error occurred.
	Unpack(reader io.Reader) (*packet.RawPacket, error)
}

var _ Packer = &DefaultPacker{}

// MaxFrameSize is the default cap on a declared frame length: the largest
// value a 3-byte varint can carry, which is what vanilla servers enforce.
const MaxFrameSize = 1<<21 - 1

// DefaultPacker is the default Packer used in session.
// DefaultPacker treats the packet with the uncompressed wire format:
// 	(length)(id)(payload):
// 		length: varint | byte length of id+payload
// 		id: varint     | packet id
// 		payload: raw   | length minus the id bytes
type DefaultPacker struct {
	// MaxSize caps the declared frame length. Zero means MaxFrameSize.
	MaxSize uint32
}

// NewDefaultPacker creates a DefaultPacker with the protocol frame cap.
func NewDefaultPacker() *DefaultPacker {
	return &DefaultPacker{MaxSize: MaxFrameSize}
}

func (d *DefaultPacker) bytesOrder() binary.ByteOrder {
	return binary.BigEndian
}

func (d *DefaultPacker) maxSize() uint32 {
	if d.MaxSize == 0 {
		return MaxFrameSize
	}
	return d.MaxSize
}

// Pack implements the Packer Pack method. The frame length is derived from
// the id and payload; pkt.Size is not consulted.
func (d *DefaultPacker) Pack(pkt *packet.RawPacket) ([]byte, error) {
	idRaw := wire.AppendVarInt(nil, pkt.ID)
	size := uint32(len(idRaw) + len(pkt.Payload))
	if size > d.maxSize() {
		return nil, fmt.Errorf("frame size %d exceeds the cap %d", size, d.maxSize())
	}
	buff := bytes.NewBuffer(make([]byte, 0, wire.VarIntSize(size)+int(size)))

	p := binpacker.NewPacker(d.bytesOrder(), buff)
	if err := p.PushBytes(wire.AppendVarInt(nil, size)).Error(); err != nil {
		return nil, fmt.Errorf("write length err: %s", err)
	}
	if err := p.PushBytes(idRaw).Error(); err != nil {
		return nil, fmt.Errorf("write id err: %s", err)
	}
	if err := p.PushBytes(pkt.Payload).Error(); err != nil {
		return nil, fmt.Errorf("write payload err: %s", err)
	}
	return buff.Bytes(), nil
}

// Unpack implements the Packer Unpack method.
// Every returned error is an *UnpackError: a frame that cannot be read
// leaves the stream position undefined, so the session has to go.
func (d *DefaultPacker) Unpack(reader io.Reader) (*packet.RawPacket, error) {
	size, err := wire.ReadVarInt(reader)
	if err != nil {
		return nil, &UnpackError{Err: fmt.Errorf("read frame length err: %w", err)}
	}
	if size > d.maxSize() {
		return nil, &UnpackError{Err: fmt.Errorf("frame size %d exceeds the cap %d", size, d.maxSize())}
	}

	id, idSize, err := wire.ReadVarIntWithSize(reader)
	if err != nil {
		return nil, &UnpackError{Err: fmt.Errorf("read packet id err: %w", err)}
	}
	if uint32(idSize) > size {
		return nil, &UnpackError{Err: fmt.Errorf("frame length %d is shorter than its %d id bytes", size, idSize)}
	}

	payload := make([]byte, size-uint32(idSize))
	if _, err := io.ReadFull(reader, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, &UnpackError{Err: fmt.Errorf("read payload err: %w", err)}
	}

	return &packet.RawPacket{Size: size, ID: id, Payload: payload}, nil
}
