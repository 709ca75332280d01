package protocol

import (
	"net"

	"github.com/msgboxio/packets"
	"github.com/pkg/errors"
)

/*
    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |   TS Type     |IP Protocol ID*|       Selector Length         |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |           Start Port*         |           End Port*           |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                                                               |
   ~                         Starting Address*                     ~
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                                                               |
   ~                         Ending Address*                       ~
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/
type Selector struct {
	Type                     SelectorType
	IpProtocolId             uint8
	StartPort, Endport       uint16
	StartAddress, EndAddress net.IP
}

type Selectors []*Selector

/*
    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   | Next Payload  |C|  RESERVED   |         Payload Length        |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   | Number of TSs |                 RESERVED                      |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                                                               |
   ~                       <Traffic Selectors>                     ~
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/
type TrafficSelectorPayload struct {
	*PayloadHeader
	TrafficSelectorPayloadType PayloadType // PayloadTypeTSi or PayloadTypeTSr
	Selectors                  Selectors
}

func decodeSelector(b []byte) (sel *Selector, used int, err error) {
	if len(b) < MIN_LEN_SELECTOR {
		return nil, 0, errors.Wrapf(ErrParse, "selector too small, %d < %d", len(b), MIN_LEN_SELECTOR)
	}
	stype, _ := packets.ReadB8(b, 0)
	id, _ := packets.ReadB8(b, 1)
	slen, _ := packets.ReadB16(b, 2)
	if len(b) < int(slen) {
		return nil, 0, errors.Wrapf(ErrParse, "bad selector length %d", slen)
	}
	sport, _ := packets.ReadB16(b, 4)
	eport, _ := packets.ReadB16(b, 6)
	iplen := net.IPv4len
	if SelectorType(stype) == TS_IPV6_ADDR_RANGE {
		iplen = net.IPv6len
	}
	if len(b) < 8+2*iplen {
		return nil, 0, errors.Wrap(ErrParse, "selector too small for addresses")
	}
	sel = &Selector{
		Type:         SelectorType(stype),
		IpProtocolId: id,
		StartPort:    sport,
		Endport:      eport,
		StartAddress: append(net.IP{}, b[8:8+iplen]...),
		EndAddress:   append(net.IP{}, b[8+iplen:8+2*iplen]...),
	}
	return sel, 8 + 2*iplen, nil
}

func encodeSelector(sel *Selector) (b []byte) {
	b = make([]byte, MIN_LEN_SELECTOR)
	packets.WriteB8(b, 0, uint8(sel.Type))
	packets.WriteB8(b, 1, sel.IpProtocolId)
	packets.WriteB16(b, 4, sel.StartPort)
	packets.WriteB16(b, 6, sel.Endport)
	b = append(b, sel.StartAddress...)
	b = append(b, sel.EndAddress...)
	packets.WriteB16(b, 2, uint16(len(b)))
	return
}

func (s *TrafficSelectorPayload) Type() PayloadType {
	return s.TrafficSelectorPayloadType
}

func (s *TrafficSelectorPayload) Encode() (b []byte) {
	b = []byte{uint8(len(s.Selectors)), 0, 0, 0}
	for _, sel := range s.Selectors {
		b = append(b, encodeSelector(sel)...)
	}
	return
}

func (s *TrafficSelectorPayload) Decode(b []byte) error {
	if len(b) < MIN_LEN_TRAFFIC_SELECTOR {
		return errors.Wrapf(ErrParse, "traffic selector too small, %d < %d", len(b), MIN_LEN_TRAFFIC_SELECTOR)
	}
	numSel, _ := packets.ReadB8(b, 0)
	b = b[4:]
	for len(b) > 0 {
		sel, used, err := decodeSelector(b)
		if err != nil {
			return err
		}
		s.Selectors = append(s.Selectors, sel)
		b = b[used:]
	}
	if len(s.Selectors) != int(numSel) {
		return errors.Wrapf(ErrParse, "expected %d selectors, decoded %d", numSel, len(s.Selectors))
	}
	return nil
}

func (s *TrafficSelectorPayload) Verify() error {
	if len(s.Selectors) == 0 {
		return errors.Wrap(ErrVerify, "traffic selector payload carries no selectors")
	}
	for _, sel := range s.Selectors {
		switch sel.Type {
		case TS_IPV4_ADDR_RANGE:
			if len(sel.StartAddress) != net.IPv4len || len(sel.EndAddress) != net.IPv4len {
				return errors.Wrap(ErrVerify, "bad ipv4 selector address")
			}
		case TS_IPV6_ADDR_RANGE:
			if len(sel.StartAddress) != net.IPv6len || len(sel.EndAddress) != net.IPv6len {
				return errors.Wrap(ErrVerify, "bad ipv6 selector address")
			}
		default:
			return errors.Wrapf(ErrVerify, "unknown selector type 0x%x", uint8(sel.Type))
		}
	}
	return nil
}
