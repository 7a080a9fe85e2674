package dolls

import (
	"fmt"
	"github.com/DarcJC/Dolls/internal/capture"
	"github.com/DarcJC/Dolls/logger"
	"github.com/DarcJC/Dolls/packet"
	"github.com/DarcJC/Dolls/util"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"net"
	"sync"
)

// Session represents a TCP session.
// Incoming frames are read, recorded and dispatched strictly one at a time,
// in arrival order: a slow processor delays the next read on purpose.
type Session struct {
	id        string    // session's ID. it's a UUID
	conn      net.Conn  // tcp connection
	closeOnce sync.Once // to make sure we can only close each session one time
	closed    chan struct{}
	packer    Packer            // to pack and unpack frames
	registry  *Registry         // packet id -> processor
	recorder  *capture.Recorder // optional traffic capture
	writeMu   sync.Mutex        // serializes Send
	log       *logrus.Entry
}

// SessionOption is the extra options for Session.
type SessionOption struct {
	Packer   Packer
	Registry *Registry
	Recorder *capture.Recorder
}

// newSession creates a new Session.
// Parameter conn is the TCP connection,
// opt includes packer, registry, and the optional recorder.
// Returns a Session pointer.
func newSession(conn net.Conn, opt *SessionOption) *Session {
	id := uuid.NewString()
	return &Session{
		id:       id,
		conn:     conn,
		closed:   make(chan struct{}),
		packer:   opt.Packer,
		registry: opt.Registry,
		recorder: opt.Recorder,
		log:      logger.Default.WithField("sid", id).WithField("scope", "session"),
	}
}

// ID returns the session's ID.
func (s *Session) ID() string {
	return s.id
}

// Peer returns the remote address of the connection.
func (s *Session) Peer() string {
	return s.conn.RemoteAddr().String()
}

// Send packs pkt and writes the frame to the connection.
// Safe for concurrent use; returns an error once the session is closed.
func (s *Session) Send(pkt *packet.RawPacket) error {
	select {
	case <-s.closed:
		return fmt.Errorf("session is closed")
	default:
	}
	raw, err := s.packer.Pack(pkt)
	if err != nil {
		return fmt.Errorf("pack outgoing packet err: %s", err)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.conn.Write(raw); err != nil {
		return fmt.Errorf("conn write err: %s", err)
	}
	return nil
}

// Close closes the session and its connection. Safe to call more than once.
// Closing the connection is what unblocks a read loop parked in Unpack.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		if s.conn != nil {
			_ = s.conn.Close()
		}
	})
}

// setNoDelay asks for TCP_NODELAY once when the session starts. It is only
// ever attempted, never required: a failure (or a transport that is not a
// *net.TCPConn, like net.Pipe in tests) is logged and the session carries
// on.
func (s *Session) setNoDelay() {
	tcpConn, ok := s.conn.(*net.TCPConn)
	if !ok {
		s.log.Tracef("connection %T does not take TCP_NODELAY", s.conn)
		return
	}
	if err := tcpConn.SetNoDelay(true); err != nil {
		s.log.WithField("peer", s.Peer()).Warnf("set TCP_NODELAY err: %s", err)
	}
}

// readLoop reads frames from the connection and dispatches them until the
// stream dies or the session is closed. Fatal unpack errors end the loop;
// anything survivable keeps it going. After the loop ends the session is
// closed.
func (s *Session) readLoop() {
	s.setNoDelay()
	for {
		pkt, err := s.packer.Unpack(s.conn)
		if err != nil {
			if util.IsEOF(err) {
				s.log.WithField("peer", s.Peer()).Tracef("session read loop exit: peer is gone")
			} else {
				s.log.Errorf("session unpack incoming packet err: %s", err)
			}
			if e, ok := err.(Error); ok && !e.Fatal() {
				continue
			}
			break
		}
		if s.recorder != nil {
			if err := s.recorder.Record(s.Peer(), pkt.Size, pkt.ID, pkt.Payload); err != nil {
				s.log.Warnf("record packet err: %s", err)
			}
		}
		s.dispatch(pkt)
	}
	s.Close()
	s.log.Tracef("session read loop exit")
}

// dispatch routes pkt to its processor. An unknown id and a processor
// failure are both survivable; the session keeps reading either way.
func (s *Session) dispatch(pkt *packet.RawPacket) {
	fn, has := s.registry.Lookup(pkt.ID)
	if !has {
		s.log.Warnf("unexpected packet(id=%d) from client %s", pkt.ID, s.Peer())
		return
	}
	if err := fn(*pkt); err != nil {
		s.log.Errorf("%s", &ProcessorError{ID: pkt.ID, Err: err})
	}
}
