package dolls

import (
	"fmt"
	"github.com/DarcJC/Dolls/logger"
	"github.com/DarcJC/Dolls/packet"
	"github.com/sirupsen/logrus"
	"net"
	"sync"
)

// Client is a minimal frame pipe over a single connection: it frames
// outgoing packets and unframes incoming ones, with no registry or session
// machinery behind it. Handy for probes, tests and the bundled examples.
type Client struct {
	// Conn is the underlying connection. Set by Dial.
	Conn net.Conn

	// Packer frames and unframes the traffic. Must match the server's.
	Packer Packer

	stopped  chan struct{}
	stopOnce sync.Once
	log      *logrus.Entry
}

// ClientOption is the options for Client.
type ClientOption struct {
	Packer Packer // nil means NewDefaultPacker()
}

// NewClient creates a Client according to opt.
func NewClient(opt *ClientOption) *Client {
	if opt.Packer == nil {
		opt.Packer = NewDefaultPacker()
	}
	return &Client{
		Packer:  opt.Packer,
		stopped: make(chan struct{}),
		log:     logger.Default.WithField("scope", "client"),
	}
}

// Dial connects to addr over TCP.
func (c *Client) Dial(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial tcp err: %w", err)
	}
	c.Conn = conn
	c.log.Tracef("connected to %s", addr)
	return nil
}

// Send frames pkt and writes it to the connection.
func (c *Client) Send(pkt *packet.RawPacket) error {
	if c.IsStopped() {
		return fmt.Errorf("client is stopped")
	}
	frame, err := c.Packer.Pack(pkt)
	if err != nil {
		return err
	}
	if _, err := c.Conn.Write(frame); err != nil {
		return fmt.Errorf("conn write err: %w", err)
	}
	return nil
}

// Next blocks until the next whole packet arrives on the connection.
func (c *Client) Next() (*packet.RawPacket, error) {
	return c.Packer.Unpack(c.Conn)
}

// IsStopped reports whether Close was called.
func (c *Client) IsStopped() bool {
	select {
	case <-c.stopped:
		return true
	default:
		return false
	}
}

// Close shuts the connection down. Safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.stopOnce.Do(func() {
		close(c.stopped)
		if c.Conn != nil {
			err = c.Conn.Close()
		}
	})
	return err
}
