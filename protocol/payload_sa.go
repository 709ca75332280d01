package protocol

import (
	"github.com/pkg/errors"
)

/*
                        1                   2                   3
    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   | Next Payload  |C|  RESERVED   |         Payload Length        |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                                                               |
   ~                          <Proposals>                          ~
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/
type Proposals []*SaProposal

type SaPayload struct {
	*PayloadHeader
	Proposals
}

func (s *SaPayload) Type() PayloadType {
	return PayloadTypeSA
}

func (s *SaPayload) Encode() (b []byte) {
	for idx, prop := range s.Proposals {
		isLast := idx == len(s.Proposals)-1
		b = append(b, prop.encode(isLast)...)
	}
	return
}

func (s *SaPayload) Decode(b []byte) error {
	// Header has already been decoded
	for len(b) > 0 {
		prop, used, err := decodeProposal(b)
		if err != nil {
			return err
		}
		s.Proposals = append(s.Proposals, prop)
		b = b[used:]
		if prop.IsLast {
			if len(b) > 0 {
				return errors.Wrapf(ErrParse, "%d bytes after last proposal", len(b))
			}
			break
		}
	}
	return nil
}

func (s *SaPayload) Verify() error {
	if len(s.Proposals) == 0 {
		return errors.Wrap(ErrVerify, "sa payload has no proposals")
	}
	for _, prop := range s.Proposals {
		if len(prop.Spi) != 0 && !prop.IsSpiSizeCorrect(len(prop.Spi)) {
			return errors.Wrapf(ErrVerify, "bad spi size %d for protocol %s", len(prop.Spi), prop.ProtocolId)
		}
		if len(prop.SaTransforms) == 0 {
			return errors.Wrap(ErrVerify, "proposal has no transforms")
		}
	}
	return nil
}
