// The sniffer command passively decodes frame traffic on a live interface.
// It reassembles each TCP flow's byte stream and prints every complete
// frame it can unframe, which makes it handy for watching clients talk to
// a server you do not control.
package main

import (
	"flag"
	"fmt"
	"github.com/DarcJC/Dolls/logger"
	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
	"math"
)

var (
	device = flag.String("d", "eth0", "Device on which to listen for packets")
	port   = flag.Int("p", 25565, "Server port the traffic is flowing to or from")
)

func main() {
	flag.Parse()

	handle, err := pcap.OpenLive(*device, math.MaxInt32, false, pcap.BlockForever)
	if err != nil {
		logger.Default.Fatalf("open %s: %s", *device, err)
	}
	defer handle.Close()
	if err := handle.SetBPFFilter(fmt.Sprintf("tcp and port %d", *port)); err != nil {
		logger.Default.Fatalf("set bpf filter: %s", err)
	}

	logger.Default.Infof("sniffing %s for frames on port %d", *device, *port)

	source := gopacket.NewPacketSource(handle, handle.LinkType())
	newSniffer().startReading(source.Packets())
}
