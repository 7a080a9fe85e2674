package dolls

import (
	"github.com/DarcJC/Dolls/internal/capture"
	"github.com/DarcJC/Dolls/logger"
	"github.com/DarcJC/Dolls/packet"
	"io"
	"net"
	"testing"
)

// go test -bench="^Benchmark_\w+$" -run=none -benchmem -benchtime=250000x

func Benchmark_NoProcessor(b *testing.B) {
	s := NewServer(&ServerOption{
		DoNotPrintProcessors: true,
	})
	lis, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		panic(err)
	}
	go s.Serve(lis) // nolint
	defer s.Stop()  // nolint

	<-s.accepting

	// client
	client, err := net.Dial("tcp", s.Listener.Addr().String())
	if err != nil {
		panic(err)
	}
	defer client.Close() // nolint

	frame, _ := s.Packer.Pack(&packet.RawPacket{ID: 1, Payload: []byte("ping")})
	beforeBench(b)
	for i := 0; i < b.N; i++ {
		_, _ = client.Write(frame)
	}
}

func Benchmark_OneProcessor(b *testing.B) {
	s := NewServer(&ServerOption{
		DoNotPrintProcessors: true,
		Registrations: []Registration{
			{Type: packet.TypeHandshake, Processor: func(pkt packet.RawPacket) error { return nil }},
		},
	})
	lis, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		panic(err)
	}
	go s.Serve(lis) // nolint
	defer s.Stop()  // nolint

	<-s.accepting

	// client
	client, err := net.Dial("tcp", s.Listener.Addr().String())
	if err != nil {
		panic(err)
	}
	defer client.Close() // nolint

	frame, _ := s.Packer.Pack(&packet.RawPacket{ID: uint32(packet.TypeHandshake), Payload: []byte("ping")})
	beforeBench(b)
	for i := 0; i < b.N; i++ {
		_, _ = client.Write(frame)
	}
}

func Benchmark_OneProcessorWithRecorder(b *testing.B) {
	s := NewServer(&ServerOption{
		DoNotPrintProcessors: true,
		Recorder:             capture.NewRecorder(io.Discard),
		Registrations: []Registration{
			{Type: packet.TypeHandshake, Processor: func(pkt packet.RawPacket) error { return nil }},
		},
	})
	lis, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		panic(err)
	}
	go s.Serve(lis) // nolint
	defer s.Stop()  // nolint

	<-s.accepting

	// client
	client, err := net.Dial("tcp", s.Listener.Addr().String())
	if err != nil {
		panic(err)
	}
	defer client.Close() // nolint

	frame, _ := s.Packer.Pack(&packet.RawPacket{ID: uint32(packet.TypeHandshake), Payload: []byte("ping")})
	beforeBench(b)
	for i := 0; i < b.N; i++ {
		_, _ = client.Write(frame)
	}
}

func beforeBench(b *testing.B) {
	logger.Default.SetOutput(io.Discard)
	b.ReportAllocs()
	b.ResetTimer()
}
