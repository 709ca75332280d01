package protocol

import (
	"github.com/msgboxio/packets"
	"github.com/pkg/errors"
)

/*
    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   | Next Payload  |C| RESERVED    |         Payload Length        |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |   CFG Type    |                    RESERVED                   |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                                                               |
   ~                   Configuration Attributes                    ~
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/
type ConfigurationAttribute struct {
	ConfigurationAttributeType
	Value []byte
}

type ConfigurationPayload struct {
	*PayloadHeader
	ConfigurationType
	ConfigurationAttributes []*ConfigurationAttribute
}

func (s *ConfigurationPayload) Type() PayloadType {
	return PayloadTypeCP
}

func (s *ConfigurationPayload) Encode() (b []byte) {
	b = []byte{uint8(s.ConfigurationType), 0, 0, 0}
	for _, attr := range s.ConfigurationAttributes {
		ab := make([]byte, 4, 4+len(attr.Value))
		packets.WriteB16(ab, 0, uint16(attr.ConfigurationAttributeType)&0x7fff)
		packets.WriteB16(ab, 2, uint16(len(attr.Value)))
		b = append(b, append(ab, attr.Value...)...)
	}
	return
}

func (s *ConfigurationPayload) Decode(b []byte) error {
	if len(b) < 4 {
		return errors.Wrapf(ErrParse, "configuration payload too small, %d < 4", len(b))
	}
	cfgType, _ := packets.ReadB8(b, 0)
	s.ConfigurationType = ConfigurationType(cfgType)
	b = b[4:]
	for len(b) > 0 {
		if len(b) < 4 {
			return errors.Wrapf(ErrParse, "configuration attribute too small, %d < 4", len(b))
		}
		aType, _ := packets.ReadB16(b, 0)
		aLen, _ := packets.ReadB16(b, 2)
		if len(b) < 4+int(aLen) {
			return errors.Wrapf(ErrParse, "configuration attribute value too small, %d < %d", len(b), 4+int(aLen))
		}
		attr := &ConfigurationAttribute{
			ConfigurationAttributeType: ConfigurationAttributeType(aType & 0x7fff),
			Value:                      append([]byte{}, b[4:4+int(aLen)]...),
		}
		s.ConfigurationAttributes = append(s.ConfigurationAttributes, attr)
		b = b[4+int(aLen):]
	}
	return nil
}

func (s *ConfigurationPayload) Verify() error {
	switch s.ConfigurationType {
	case CFG_REQUEST, CFG_REPLY, CFG_SET, CFG_ACK:
		return nil
	}
	return errors.Wrapf(ErrVerify, "unknown configuration type 0x%x", uint8(s.ConfigurationType))
}
