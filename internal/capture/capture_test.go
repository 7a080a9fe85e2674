package capture

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecorder_RecordAndDecode(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)

	payload := []byte{0xAA, 0xBB}
	assert.NoError(t, rec.Record("127.0.0.1:1234", 3, 0, payload))
	payload[0] = 0xFF // recorder must have taken a copy
	assert.NoError(t, rec.Record("127.0.0.1:1234", 1, 7, nil))
	assert.NoError(t, rec.Close()) // no file behind it, still fine

	records, err := Decode(&buf)
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	assert.Equal(t, "127.0.0.1:1234", records[0].Peer)
	assert.Equal(t, uint32(3), records[0].Size)
	assert.Equal(t, uint32(0), records[0].ID)
	assert.Equal(t, []byte{0xAA, 0xBB}, records[0].Payload)
	assert.WithinDuration(t, time.Now(), records[0].Time, time.Minute)

	assert.Equal(t, uint32(7), records[1].ID)
	assert.Empty(t, records[1].Payload)
}

func TestRecorder_OpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traffic.mpk")
	rec, err := OpenFile(path)
	assert.NoError(t, err)
	assert.NoError(t, rec.Record("peer", 2, 1, []byte{0x01}))
	assert.NoError(t, rec.Close())

	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close() // nolint

	records, err := Decode(f)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, uint32(1), records[0].ID)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{0xC1})) // 0xC1 is never valid msgpack
	assert.Error(t, err)
}
