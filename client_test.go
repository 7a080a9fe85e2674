package dolls

import (
	"github.com/DarcJC/Dolls/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net"
	"testing"
)

func TestNewClient(t *testing.T) {
	cli := NewClient(&ClientOption{})
	assert.IsType(t, cli.Packer, NewDefaultPacker())
	assert.False(t, cli.IsStopped())
}

func TestClient_Dial(t *testing.T) {
	t.Run("when nobody listens", func(t *testing.T) {
		lis, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := lis.Addr().String()
		require.NoError(t, lis.Close())

		cli := NewClient(&ClientOption{})
		assert.Error(t, cli.Dial(addr))
	})
}

func TestClient_SendAndNext(t *testing.T) {
	lis, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	defer lis.Close() //nolint
	go func() {
		conn, err := lis.Accept()
		if err != nil {
			return
		}
		_, _ = io.Copy(conn, conn) // echo
	}()

	cli := NewClient(&ClientOption{})
	require.NoError(t, cli.Dial(lis.Addr().String()))
	defer cli.Close() //nolint

	assert.NoError(t, cli.Send(&packet.RawPacket{ID: uint32(packet.TypeHandshake), Payload: []byte{0xAA, 0xBB}}))

	pkt, err := cli.Next()
	assert.NoError(t, err)
	assert.EqualValues(t, 3, pkt.Size)
	assert.EqualValues(t, packet.TypeHandshake, pkt.ID)
	assert.Equal(t, []byte{0xAA, 0xBB}, pkt.Payload)
}

func TestClient_Close(t *testing.T) {
	t.Run("when closing twice", func(t *testing.T) {
		cli := NewClient(&ClientOption{})
		assert.NoError(t, cli.Close())
		assert.NoError(t, cli.Close())
		assert.True(t, cli.IsStopped())
	})

	t.Run("when sending after close", func(t *testing.T) {
		lis, err := net.Listen("tcp", "localhost:0")
		require.NoError(t, err)
		defer lis.Close() //nolint
		go func() {
			conn, err := lis.Accept()
			if err != nil {
				return
			}
			_, _ = io.Copy(io.Discard, conn)
		}()

		cli := NewClient(&ClientOption{})
		require.NoError(t, cli.Dial(lis.Addr().String()))
		assert.NoError(t, cli.Close())
		assert.Error(t, cli.Send(&packet.RawPacket{ID: 0x01}))
	})
}
