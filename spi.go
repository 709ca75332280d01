package ike

import (
	"crypto/rand"

	"github.com/msgboxio/packets"

	"github.com/lucifiery/strongswan/protocol"
)

func SpiToInt64(spi protocol.Spi) uint64 {
	ret, _ := packets.ReadB64(spi, 0)
	return ret
}

func SpiToInt32(spi protocol.Spi) uint32 {
	ret, _ := packets.ReadB32(spi, 0)
	return ret
}

// MakeSpi returns a fresh random 8-octet IKE spi.
func MakeSpi() protocol.Spi {
	spi := make([]byte, 8)
	rand.Read(spi)
	// an all-zero initiator spi is reserved on the wire
	if !isSet(spi) {
		spi[7] = 1
	}
	return spi
}

func isSet(spi protocol.Spi) bool {
	for _, o := range spi {
		if o != 0 {
			return true
		}
	}
	return false
}
