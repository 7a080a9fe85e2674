package dolls

import (
	"fmt"
	"github.com/DarcJC/Dolls/logger"
	"github.com/DarcJC/Dolls/packet"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"os"
	"reflect"
	"runtime"
	"sort"
	"sync"
)

// ProcessorFunc is the function type for packet processors. The packet
// arrives by value; a processor that needs the payload past its return must
// copy it.
type ProcessorFunc func(pkt packet.RawPacket) error

// Registration binds a known packet type to its processor. The static set a
// server boots with is a slice of these.
type Registration struct {
	Type      packet.Type
	Processor ProcessorFunc
}

// Registry maps packet ids to their processors.
// Lookups run on the read lock so sessions never contend with each other.
type Registry struct {
	mu          sync.RWMutex
	processors  map[uint32]ProcessorFunc
	initialized bool
	log         *logrus.Entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		processors: make(map[uint32]ProcessorFunc),
		log:        logger.Default.WithField("scope", "registry"),
	}
}

// Register stores the processor for t. Registering an id twice keeps the
// last processor and logs the replacement. A nil processor is ignored.
func (r *Registry) Register(t packet.Type, fn ProcessorFunc) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.register(t, fn)
}

func (r *Registry) register(t packet.Type, fn ProcessorFunc) {
	id := uint32(t)
	if _, has := r.processors[id]; has {
		r.log.Warnf("packet(id=%d) already has a processor, keeping the new one", id)
	}
	r.processors[id] = fn
}

// Init consumes the static registration set. Only the first call has any
// effect; later calls are no-ops no matter what they carry.
func (r *Registry) Init(regs []Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.initialized {
		return
	}
	r.initialized = true
	for _, reg := range regs {
		if reg.Processor == nil {
			continue
		}
		r.register(reg.Type, reg.Processor)
	}
}

// Lookup returns the processor for id. A missing id is not an error; the
// caller decides what an unroutable packet means.
func (r *Registry) Lookup(id uint32) (ProcessorFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, has := r.processors[id]
	return fn, has
}

// Len returns the number of registered processors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.processors)
}

// printProcessors prints the registered packet processors to console.
func (r *Registry) printProcessors(addr string) {
	fmt.Printf("\n[DOLLS PACKET TABLE]:\n")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Packet ID", "Packet Type", "Processor"})
	table.SetAutoFormatHeaders(false)

	r.mu.RLock()
	ids := make([]uint32, 0, len(r.processors))
	for id := range r.processors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		name := runtime.FuncForPC(reflect.ValueOf(r.processors[id]).Pointer()).Name()
		table.Append([]string{fmt.Sprintf("0x%02X", id), packet.Type(id).String(), name})
	}
	r.mu.RUnlock()

	table.Render()
	fmt.Printf("[DOLLS] Serving at: %s\n\n", addr)
}
