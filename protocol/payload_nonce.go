package protocol

import (
	"math/big"

	"github.com/pkg/errors"
)

/*
    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   | Next Payload  |C|  RESERVED   |         Payload Length        |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                                                               |
   ~                            Nonce Data                         ~
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/
type NoncePayload struct {
	*PayloadHeader
	Nonce *big.Int

	length int
}

func (s *NoncePayload) Type() PayloadType {
	return PayloadTypeNonce
}

func (s *NoncePayload) Encode() (b []byte) {
	return s.Nonce.Bytes()
}

func (s *NoncePayload) Decode(b []byte) error {
	// Header has already been decoded
	s.Nonce = new(big.Int).SetBytes(b)
	s.length = len(b)
	return nil
}

func (s *NoncePayload) Verify() error {
	// between 16 and 256 octets
	n := s.length
	if n == 0 {
		n = len(s.Nonce.Bytes())
	}
	if n < 16 || n > 256 {
		return errors.Wrapf(ErrVerify, "nonce length invalid: %d", n)
	}
	return nil
}
