package main

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/DarcJC/Dolls"
	"github.com/DarcJC/Dolls/logger"
	"github.com/DarcJC/Dolls/packet"
	"github.com/DarcJC/Dolls/util"
	"github.com/google/gopacket"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"io"
	"time"
)

// flowTTL is how long a quiet flow keeps its partial frame before the
// reassembly buffer is dropped.
const flowTTL = 2 * time.Minute

type sniffer struct {
	packer dolls.Packer
	// flows maps "src->dst" to that direction's unconsumed byte tail.
	flows *gocache.Cache
	emit  func(key string, pkt *packet.RawPacket)
	log   *logrus.Entry
}

func newSniffer() *sniffer {
	s := &sniffer{
		packer: dolls.NewDefaultPacker(),
		flows:  gocache.New(flowTTL, 30*time.Second),
		log:    logger.Default.WithField("scope", "sniffer"),
	}
	s.emit = func(key string, pkt *packet.RawPacket) {
		s.log.Infof("%s frame id=0x%02X size=%d", key, pkt.ID, pkt.Size)
		s.log.Tracef("%s payload: % X", key, pkt.Payload)
	}
	return s
}

func (s *sniffer) startReading(packetChan chan gopacket.Packet) {
	for pkt := range packetChan {
		transport := pkt.TransportLayer()
		app := pkt.ApplicationLayer()
		if transport == nil || app == nil || len(app.Payload()) == 0 {
			continue
		}
		flow := transport.TransportFlow()
		key := fmt.Sprintf("%s->%s", flow.Src(), flow.Dst())
		s.feed(key, app.Payload())
	}
}

// feed appends data to the flow's buffer and drains every complete frame
// from it. A frame split across TCP segments stays buffered until the rest
// arrives; a flow that stops framing cleanly is dropped wholesale.
func (s *sniffer) feed(key string, data []byte) {
	var buf []byte
	if v, ok := s.flows.Get(key); ok {
		buf = v.([]byte)
	}
	buf = append(buf, data...)

	r := bytes.NewReader(buf)
	for {
		unread := r.Len()
		pkt, err := s.packer.Unpack(r)
		if err != nil {
			if util.IsEOF(err) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.flows.Set(key, buf[len(buf)-unread:], gocache.DefaultExpiration)
				return
			}
			s.log.Warnf("dropping flow %s: %s", key, err)
			s.flows.Delete(key)
			return
		}
		s.emit(key, pkt)
	}
}
