package ike

import "net"

// Packet is one transport datagram: where it came from, where it goes, and
// the raw bytes. A Message owns exactly one for its lifetime; Generate hands
// out independent clones so the retained copy stays usable for retransmit.
type Packet struct {
	LocalAddr  net.Addr
	RemoteAddr net.Addr
	Data       []byte
}

func (p *Packet) Clone() *Packet {
	if p == nil {
		return nil
	}
	return &Packet{
		LocalAddr:  p.LocalAddr,
		RemoteAddr: p.RemoteAddr,
		Data:       append([]byte{}, p.Data...),
	}
}
