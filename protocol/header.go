package protocol

import (
	"encoding/hex"

	"github.com/msgboxio/packets"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

/*
    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                       IKE SA Initiator's SPI                  |
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                       IKE SA Responder's SPI                  |
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |  Next Payload | MjVer | MnVer | Exchange Type |     Flags     |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                          Message ID                           |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                            Length                             |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/
type IkeHeader struct {
	SpiI, SpiR                 Spi
	NextPayload                PayloadType
	MajorVersion, MinorVersion uint8 // 4 bits each on the wire
	ExchangeType               IkeExchangeType
	Flags                      IkeFlags
	MsgId                      uint32
	MsgLength                  uint32
}

func DecodeIkeHeader(b []byte, log *logrus.Logger) (h *IkeHeader, err error) {
	if len(b) < IKE_HEADER_LEN {
		return nil, errors.Wrapf(ErrParse, "header too small, %d < %d", len(b), IKE_HEADER_LEN)
	}
	h = &IkeHeader{}
	h.SpiI = append([]byte{}, b[:8]...)
	h.SpiR = append([]byte{}, b[8:16]...)
	pt, _ := packets.ReadB8(b, 16)
	h.NextPayload = PayloadType(pt)
	ver, _ := packets.ReadB8(b, 16+1)
	h.MajorVersion = ver >> 4
	h.MinorVersion = ver & 0x0f
	et, _ := packets.ReadB8(b, 16+2)
	h.ExchangeType = IkeExchangeType(et)
	flags, _ := packets.ReadB8(b, 16+3)
	h.Flags = IkeFlags(flags)
	h.MsgId, _ = packets.ReadB32(b, 16+4)
	h.MsgLength, _ = packets.ReadB32(b, 16+8)
	if h.MsgLength < IKE_HEADER_LEN {
		return nil, errors.Wrapf(ErrParse, "invalid message length %d", h.MsgLength)
	}
	if log != nil && log.Level >= logrus.DebugLevel {
		log.Debugf("Ike Header: %+v from \n%s", *h, hex.Dump(b[:IKE_HEADER_LEN]))
	}
	return
}

// Verify checks format constraints the decoder itself does not: version,
// a known exchange type, reserved flag bits, and a nonzero initiator spi.
func (h *IkeHeader) Verify() error {
	if h.MajorVersion != IKEV2_MAJOR_VERSION {
		return errors.Wrapf(ErrVerify, "major version %d.%d", h.MajorVersion, h.MinorVersion)
	}
	if h.ExchangeType < IKE_SA_INIT || h.ExchangeType > INFORMATIONAL {
		return errors.Wrapf(ErrVerify, "exchange type 0x%x", uint16(h.ExchangeType))
	}
	if h.Flags&^(RESPONSE|VERSION|INITIATOR) != 0 {
		return errors.Wrapf(ErrVerify, "reserved flag bits set: 0x%x", uint8(h.Flags))
	}
	if !isSet(h.SpiI) {
		return errors.Wrap(ErrVerify, "zero initiator spi")
	}
	return nil
}

func (h *IkeHeader) Encode(log *logrus.Logger) (b []byte) {
	b = make([]byte, IKE_HEADER_LEN)
	copy(b, h.SpiI[:])
	copy(b[8:], h.SpiR[:])
	packets.WriteB8(b, 16, uint8(h.NextPayload))
	packets.WriteB8(b, 17, h.MajorVersion<<4|h.MinorVersion)
	packets.WriteB8(b, 18, uint8(h.ExchangeType))
	packets.WriteB8(b, 19, uint8(h.Flags))
	packets.WriteB32(b, 20, h.MsgId)
	packets.WriteB32(b, 24, h.MsgLength)
	if log != nil && log.Level >= logrus.DebugLevel {
		log.Debugf("Ike Header: %+v to \n%s", *h, hex.Dump(b))
	}
	return
}

func isSet(spi Spi) bool {
	for _, o := range spi {
		if o != 0 {
			return true
		}
	}
	return false
}
