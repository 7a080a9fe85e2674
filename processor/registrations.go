package processor

import (
	"github.com/DarcJC/Dolls"
	"github.com/DarcJC/Dolls/packet"
)

// Registrations returns the built-in processor set, ready to hand to a
// dolls.ServerOption.
func Registrations() []dolls.Registration {
	return []dolls.Registration{
		{Type: packet.TypeHandshake, Processor: HandleHandshake},
	}
}
