package protocol

import (
	"github.com/msgboxio/packets"
	"github.com/pkg/errors"
)

/*
    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   | Next Payload  |C|  RESERVED   |         Payload Length        |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   | Protocol ID   |   SPI Size    |          Num of SPIs          |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                                                               |
   ~               Security Parameter Index(es) (SPI)              ~
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/
type DeletePayload struct {
	*PayloadHeader
	ProtocolId ProtocolId
	Spis       []Spi
}

func (s *DeletePayload) Type() PayloadType {
	return PayloadTypeD
}

func (s *DeletePayload) Encode() (b []byte) {
	b = []byte{uint8(s.ProtocolId), 0, 0, 0}
	if len(s.Spis) > 0 {
		packets.WriteB8(b, 1, uint8(len(s.Spis[0])))
		for _, spi := range s.Spis {
			b = append(b, spi...)
		}
	}
	packets.WriteB16(b, 2, uint16(len(s.Spis)))
	return
}

func (s *DeletePayload) Decode(b []byte) error {
	if len(b) < 4 {
		return errors.Wrapf(ErrParse, "delete payload too small, %d < 4", len(b))
	}
	pid, _ := packets.ReadB8(b, 0)
	s.ProtocolId = ProtocolId(pid)
	lspi, _ := packets.ReadB8(b, 1)
	nspi, _ := packets.ReadB16(b, 2)
	b = b[4:]
	if len(b) < (int(lspi) * int(nspi)) {
		return errors.Wrapf(ErrParse, "delete payload too small for %d spis of size %d", nspi, lspi)
	}
	for i := 0; i < int(nspi); i++ {
		s.Spis = append(s.Spis, append(Spi{}, b[:int(lspi)]...))
		b = b[int(lspi):]
	}
	return nil
}

func (s *DeletePayload) Verify() error {
	for _, spi := range s.Spis {
		switch s.ProtocolId {
		case IKE:
			if len(spi) != 0 {
				return errors.Wrap(ErrVerify, "delete for IKE must not carry spis")
			}
		case AH, ESP:
			if len(spi) != 4 {
				return errors.Wrapf(ErrVerify, "bad delete spi size %d for %s", len(spi), s.ProtocolId)
			}
		default:
			return errors.Wrapf(ErrVerify, "unknown protocol id 0x%x in delete", uint8(s.ProtocolId))
		}
	}
	return nil
}
