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
   | Auth Method   |                RESERVED                       |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                                                               |
   ~                      Authentication Data                      ~
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/
type AuthPayload struct {
	*PayloadHeader
	AuthMethod AuthMethod
	Data       []byte
}

func (s *AuthPayload) Type() PayloadType {
	return PayloadTypeAUTH
}

func (s *AuthPayload) Encode() (b []byte) {
	b = []byte{uint8(s.AuthMethod), 0, 0, 0}
	return append(b, s.Data...)
}

func (s *AuthPayload) Decode(b []byte) error {
	if len(b) < 4 {
		return errors.Wrapf(ErrParse, "auth payload too small, %d < 4", len(b))
	}
	// Header has already been decoded
	authMethod, _ := packets.ReadB8(b, 0)
	s.AuthMethod = AuthMethod(authMethod)
	s.Data = append([]byte{}, b[4:]...)
	return nil
}

func (s *AuthPayload) Verify() error {
	switch s.AuthMethod {
	case AUTH_RSA_DIGITAL_SIGNATURE, AUTH_SHARED_KEY_MESSAGE_INTEGRITY_CODE,
		AUTH_DSS_DIGITAL_SIGNATURE, AUTH_ECDSA_256, AUTH_ECDSA_384,
		AUTH_ECDSA_521, AUTH_DIGITAL_SIGNATURE:
	default:
		return errors.Wrapf(ErrVerify, "unknown auth method 0x%x", uint8(s.AuthMethod))
	}
	if len(s.Data) == 0 {
		return errors.Wrap(ErrVerify, "auth payload without data")
	}
	return nil
}
