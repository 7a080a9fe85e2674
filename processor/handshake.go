// Package processor holds the built-in packet processors that ship with the
// server.
package processor

import (
	"bytes"
	"fmt"
	"github.com/DarcJC/Dolls/logger"
	"github.com/DarcJC/Dolls/packet"
	"github.com/DarcJC/Dolls/wire"
)

var log = logger.Default.WithField("scope", "processor")

// NextState values a client may request at the end of a handshake.
const (
	NextStateStatus   uint32 = 1
	NextStateLogin    uint32 = 2
	NextStateTransfer uint32 = 3
)

// Handshake is the first packet of every connection: the client announces
// its protocol version, the address it dialed and the state it wants next.
type Handshake struct {
	ProtocolVersion uint32
	ServerAddress   string
	ServerPort      uint16
	NextState       uint32
}

func (h *Handshake) String() string {
	return fmt.Sprintf("protocol=%d addr=%s:%d next=%d", h.ProtocolVersion, h.ServerAddress, h.ServerPort, h.NextState)
}

// Append serializes h in wire order onto dst. The inverse of DecodeHandshake.
func (h *Handshake) Append(dst []byte) []byte {
	dst = wire.AppendVarInt(dst, h.ProtocolVersion)
	dst = wire.AppendString(dst, h.ServerAddress)
	dst = wire.AppendUint16(dst, h.ServerPort)
	return wire.AppendVarInt(dst, h.NextState)
}

// DecodeHandshake parses a handshake packet payload.
func DecodeHandshake(payload []byte) (*Handshake, error) {
	r := bytes.NewReader(payload)
	h := &Handshake{}
	var err error
	if h.ProtocolVersion, err = wire.ReadVarInt(r); err != nil {
		return nil, fmt.Errorf("read protocol version: %w", err)
	}
	if h.ServerAddress, err = wire.ReadString(r); err != nil {
		return nil, fmt.Errorf("read server address: %w", err)
	}
	if h.ServerPort, err = wire.ReadUint16(r); err != nil {
		return nil, fmt.Errorf("read server port: %w", err)
	}
	if h.NextState, err = wire.ReadVarInt(r); err != nil {
		return nil, fmt.Errorf("read next state: %w", err)
	}
	return h, nil
}

// HandleHandshake decodes and logs an incoming handshake.
// An out-of-range next state is worth a warning but not a dead session.
func HandleHandshake(pkt packet.RawPacket) error {
	h, err := DecodeHandshake(pkt.Payload)
	if err != nil {
		return fmt.Errorf("decode handshake: %w", err)
	}
	if h.NextState < NextStateStatus || h.NextState > NextStateTransfer {
		log.Warnf("handshake with unknown next state: %s", h)
		return nil
	}
	log.Infof("handshake: %s", h)
	return nil
}
