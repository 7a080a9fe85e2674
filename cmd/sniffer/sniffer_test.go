package main

import (
	"github.com/DarcJC/Dolls/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestSniffer_feed(t *testing.T) {
	newTestSniffer := func() (*sniffer, *[]packet.RawPacket) {
		s := newSniffer()
		var got []packet.RawPacket
		s.emit = func(key string, pkt *packet.RawPacket) {
			got = append(got, *pkt)
		}
		return s, &got
	}

	frame := func(id uint32, payload []byte) []byte {
		s := newSniffer()
		b, err := s.packer.Pack(&packet.RawPacket{ID: id, Payload: payload})
		require.NoError(t, err)
		return b
	}

	t.Run("when a frame arrives byte by byte", func(t *testing.T) {
		s, got := newTestSniffer()
		for _, b := range frame(0x00, []byte{0xAA, 0xBB}) {
			s.feed("a->b", []byte{b})
		}
		require.Len(t, *got, 1)
		assert.EqualValues(t, 0x00, (*got)[0].ID)
		assert.Equal(t, []byte{0xAA, 0xBB}, (*got)[0].Payload)
	})

	t.Run("when one segment carries two frames", func(t *testing.T) {
		s, got := newTestSniffer()
		seg := append(frame(0x01, []byte{0x01}), frame(0x02, []byte{0x02})...)
		s.feed("a->b", seg)
		require.Len(t, *got, 2)
		assert.EqualValues(t, 0x01, (*got)[0].ID)
		assert.EqualValues(t, 0x02, (*got)[1].ID)
	})

	t.Run("when flows do not share buffers", func(t *testing.T) {
		s, got := newTestSniffer()
		f := frame(0x03, []byte{0xEE})
		s.feed("a->b", f[:1])
		s.feed("b->a", f)
		require.Len(t, *got, 1)
		s.feed("a->b", f[1:])
		assert.Len(t, *got, 2)
	})

	t.Run("when a flow stops framing cleanly", func(t *testing.T) {
		s, got := newTestSniffer()
		s.feed("a->b", []byte{0x80, 0x80, 0x80, 0x80, 0x80}) // malformed length varint
		assert.Empty(t, *got)
		_, ok := s.flows.Get("a->b")
		assert.False(t, ok)
	})
}
