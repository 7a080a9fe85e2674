// Package capture records raw packet traffic as a msgpack stream for
// offline inspection.
package capture

import (
	"fmt"
	"github.com/vmihailenco/msgpack/v5"
	"io"
	"os"
	"sync"
	"time"
)

// Record is one captured frame.
type Record struct {
	Time    time.Time `msgpack:"time"`
	Peer    string    `msgpack:"peer"`
	Size    uint32    `msgpack:"size"`
	ID      uint32    `msgpack:"id"`
	Payload []byte    `msgpack:"payload"`
}

// Recorder appends records to a msgpack stream. Safe for concurrent use by
// many sessions.
type Recorder struct {
	mu     sync.Mutex
	enc    *msgpack.Encoder
	closer io.Closer
}

// NewRecorder writes records to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: msgpack.NewEncoder(w)}
}

// OpenFile creates or truncates path and records into it.
func OpenFile(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open capture file: %w", err)
	}
	r := NewRecorder(f)
	r.closer = f
	return r, nil
}

// Record appends one frame. The payload is copied, so callers may reuse
// their buffer.
func (r *Recorder) Record(peer string, size, id uint32, payload []byte) error {
	rec := Record{
		Time:    time.Now(),
		Peer:    peer,
		Size:    size,
		ID:      id,
		Payload: append([]byte(nil), payload...),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enc.Encode(&rec)
}

// Close closes the underlying file, if the Recorder owns one.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Decode reads every record out of a capture stream.
func Decode(rd io.Reader) ([]Record, error) {
	dec := msgpack.NewDecoder(rd)
	var out []Record
	for {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return nil, fmt.Errorf("decode capture record: %w", err)
		}
		out = append(out, rec)
	}
}
