package dolls

import (
	"fmt"
	"github.com/DarcJC/Dolls/internal/capture"
	"github.com/DarcJC/Dolls/logger"
	"github.com/DarcJC/Dolls/packet"
	"github.com/sirupsen/logrus"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
)

const (
	// DefaultHost is the loopback bind used when ServerOption.Host is empty.
	DefaultHost = "127.0.0.1"
	// DefaultPort is the standard Minecraft server port.
	DefaultPort = 25565
)

// Server is the network front end: it owns the listener, the packet
// registry and every live session.
type Server struct {
	// Listener is the net.Listener the accept loop runs on. Set by Serve.
	Listener net.Listener

	// Packer frames and unframes every connection of this server.
	Packer Packer

	// OnSessionCreate is an event hook, will be invoked when session's created.
	OnSessionCreate func(sess *Session)

	// OnSessionClose is an event hook, will be invoked when session's closed.
	OnSessionClose func(sess *Session)

	host            string
	port            int
	registry        *Registry
	registrations   []Registration
	sessions        *SessionManager
	recorder        *capture.Recorder
	printProcessors bool
	running         int32 // set once, never cleared: a server accepts at most once
	accepting       chan struct{}
	stopped         chan struct{}
	stopOnce        sync.Once
	log             *logrus.Entry
}

// ServerOption is the options for Server.
type ServerOption struct {
	Host                 string            // empty means DefaultHost
	Port                 int               // zero means DefaultPort
	Packer               Packer            // nil means NewDefaultPacker()
	Registrations        []Registration    // static processor set, consumed once when serving starts
	Recorder             *capture.Recorder // optional traffic capture shared by all sessions
	DoNotPrintProcessors bool
}

// NewServer creates a Server according to opt.
func NewServer(opt *ServerOption) *Server {
	if opt.Packer == nil {
		opt.Packer = NewDefaultPacker()
	}
	host := opt.Host
	if host == "" {
		host = DefaultHost
	}
	port := opt.Port
	if port == 0 {
		port = DefaultPort
	}
	return &Server{
		Packer:          opt.Packer,
		host:            host,
		port:            port,
		registry:        NewRegistry(),
		registrations:   opt.Registrations,
		sessions:        NewSessionManager(),
		recorder:        opt.Recorder,
		printProcessors: !opt.DoNotPrintProcessors,
		accepting:       make(chan struct{}),
		stopped:         make(chan struct{}),
		log:             logger.Default.WithField("scope", "server"),
	}
}

// Addr returns the configured listen address as host:port.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.host, strconv.Itoa(s.port))
}

// Sessions returns the manager of this server's live sessions.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Register adds a processor for t on top of the static registration set.
func (s *Server) Register(t packet.Type, fn ProcessorFunc) {
	s.registry.Register(t, fn)
}

// Run listens on the configured address and serves. A bind failure is
// returned as-is; there is no retry.
func (s *Server) Run() error {
	lis, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listen tcp err: %w", err)
	}
	err = s.Serve(lis)
	if err == ErrServerAlreadyRunning {
		_ = lis.Close()
	}
	return err
}

// Serve accepts connections on lis until Stop.
// The second Serve (or Run) on the same instance fails with
// ErrServerAlreadyRunning: the run state is set exactly once. The registry
// consumes the static registration set before the first accept.
func (s *Server) Serve(lis net.Listener) error {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}
	s.registry.Init(s.registrations)
	s.Listener = lis
	if s.printProcessors {
		s.registry.printProcessors(lis.Addr().String())
	}
	return s.acceptLoop()
}

// acceptLoop accepts connections and spawns a goroutine per conn.
// Returns ErrServerStopped after Stop; any other accept failure ends the
// loop with that error.
func (s *Server) acceptLoop() error {
	close(s.accepting)
	for {
		conn, err := s.Listener.Accept()
		if err != nil {
			select {
			case <-s.stopped:
				s.log.Tracef("server accept loop stopped")
				return ErrServerStopped
			default:
			}
			return fmt.Errorf("accept err: %w", err)
		}
		go s.handleConn(conn)
	}
}

// handleConn creates the session for conn, runs its read loop, and tears
// the session down when either side is done.
func (s *Server) handleConn(conn net.Conn) {
	sess := newSession(conn, &SessionOption{
		Packer:   s.Packer,
		Registry: s.registry,
		Recorder: s.recorder,
	})
	s.sessions.Add(sess)
	if s.OnSessionCreate != nil {
		s.OnSessionCreate(sess)
	}
	defer func() {
		s.sessions.Remove(sess.ID())
		sess.Close()
		if s.OnSessionClose != nil {
			s.OnSessionClose(sess)
		}
		s.log.WithField("sid", sess.ID()).Tracef("session closed")
	}()
	defer func() {
		// a panicking processor must not take the whole server down
		if r := recover(); r != nil {
			s.log.WithField("sid", sess.ID()).Errorf("session recovered from panic: %v", r)
		}
	}()
	sess.readLoop()
}

// Stop shuts the server down: stops accepting, closes the listener and
// every live session. Safe to call more than once.
func (s *Server) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stopped)
		closedNum := 0
		s.sessions.Range(func(id string, sess *Session) (next bool) {
			sess.Close()
			closedNum++
			return true
		})
		s.log.Tracef("%d session(s) closed", closedNum)
		if s.Listener != nil {
			err = s.Listener.Close()
		}
	})
	return err
}
