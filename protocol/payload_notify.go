package protocol

import (
	"time"

	"github.com/msgboxio/packets"
	"github.com/pkg/errors"
)

/*
    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   | Next Payload  |C|  RESERVED   |         Payload Length        |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |  Protocol ID  |   SPI Size    |      Notify Message Type      |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                                                               |
   ~                Security Parameter Index (SPI)                 ~
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                                                               |
   ~                       Notification Data                       ~
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/
type NotifyPayload struct {
	*PayloadHeader
	ProtocolId       ProtocolId
	NotificationType NotificationType
	Spi              []byte
	Data             []byte
	// decoded view of Data for known notification types
	NotificationMessage interface{}
}

func (s *NotifyPayload) Type() PayloadType {
	return PayloadTypeN
}

func (s *NotifyPayload) Encode() (b []byte) {
	data := s.Data
	if data == nil {
		switch msg := s.NotificationMessage.(type) {
		case []byte:
			data = msg
		case time.Duration:
			// lifetime notifies carry whole seconds on the wire
			data = make([]byte, 4)
			packets.WriteB32(data, 0, uint32(msg/time.Second))
		}
	}
	b = []byte{uint8(s.ProtocolId), uint8(len(s.Spi)), 0, 0}
	packets.WriteB16(b, 2, uint16(s.NotificationType))
	b = append(b, s.Spi...)
	b = append(b, data...)
	return
}

func (s *NotifyPayload) Decode(b []byte) error {
	if len(b) < 4 {
		return errors.Wrapf(ErrParse, "notify payload too small, %d < 4", len(b))
	}
	pId, _ := packets.ReadB8(b, 0)
	s.ProtocolId = ProtocolId(pId)
	spiLen, _ := packets.ReadB8(b, 1)
	if len(b) < 4+int(spiLen) {
		return errors.Wrapf(ErrParse, "notify payload too small for spi, %d < %d", len(b), 4+int(spiLen))
	}
	nType, _ := packets.ReadB16(b, 2)
	s.NotificationType = NotificationType(nType)
	s.Spi = append([]byte{}, b[4:spiLen+4]...)
	s.Data = append([]byte{}, b[spiLen+4:]...)
	switch s.NotificationType {
	case AUTH_LIFETIME:
		ltime, err := packets.ReadB32(s.Data, 0)
		if err != nil {
			return errors.Wrap(ErrParse, "notify auth lifetime data")
		}
		s.NotificationMessage = time.Second * time.Duration(ltime)
	case COOKIE, NAT_DETECTION_SOURCE_IP, NAT_DETECTION_DESTINATION_IP:
		s.NotificationMessage = s.Data
	}
	return nil
}

func (s *NotifyPayload) Verify() error {
	switch s.ProtocolId {
	case 0, IKE, AH, ESP:
		return nil
	}
	return errors.Wrapf(ErrVerify, "unknown protocol id 0x%x in notify", uint8(s.ProtocolId))
}
