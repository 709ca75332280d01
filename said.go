package ike

import (
	"fmt"

	"github.com/lucifiery/strongswan/protocol"
)

// SaID names one security association negotiation: both 8-octet spis plus
// which role this end plays. Values move by clone, never by shared reference.
type SaID struct {
	SpiI, SpiR  protocol.Spi
	IsInitiator bool
}

func (s *SaID) Clone() *SaID {
	if s == nil {
		return nil
	}
	return &SaID{
		SpiI:        append(protocol.Spi{}, s.SpiI...),
		SpiR:        append(protocol.Spi{}, s.SpiR...),
		IsInitiator: s.IsInitiator,
	}
}

func (s *SaID) String() string {
	role := "responder"
	if s.IsInitiator {
		role = "initiator"
	}
	return fmt.Sprintf("%#x<=>%#x %s", s.SpiI, s.SpiR, role)
}
