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
   | Cert Encoding |                                               |
   +-+-+-+-+-+-+-+-+                                               |
   ~                       Certificate Data                        ~
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/
type CertPayload struct {
	*PayloadHeader
	CertEncodingType
	Data []byte
}

func (s *CertPayload) Type() PayloadType {
	return PayloadTypeCERT
}

func (s *CertPayload) Encode() (b []byte) {
	b = []byte{uint8(s.CertEncodingType)}
	return append(b, s.Data...)
}

func (s *CertPayload) Decode(b []byte) error {
	if len(b) < 1 {
		return errors.Wrap(ErrParse, "empty cert payload")
	}
	// Header has already been decoded
	ct, _ := packets.ReadB8(b, 0)
	s.CertEncodingType = CertEncodingType(ct)
	s.Data = append([]byte{}, b[1:]...)
	return nil
}

func (s *CertPayload) Verify() error {
	if len(s.Data) == 0 {
		return errors.Wrap(ErrVerify, "cert payload without data")
	}
	return nil
}

/*
    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   | Next Payload  |C|  RESERVED   |         Payload Length        |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   | Cert Encoding |                                               |
   +-+-+-+-+-+-+-+-+                                               |
   ~                    Certification Authority                    ~
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/
type CertRequestPayload struct {
	*PayloadHeader
	CertEncodingType
	// concatenated SHA-1 hashes of trusted CA subject public key infos
	KeyHashes []byte
}

func (s *CertRequestPayload) Type() PayloadType {
	return PayloadTypeCERTREQ
}

func (s *CertRequestPayload) Encode() (b []byte) {
	b = []byte{uint8(s.CertEncodingType)}
	return append(b, s.KeyHashes...)
}

func (s *CertRequestPayload) Decode(b []byte) error {
	if len(b) < 1 {
		return errors.Wrap(ErrParse, "empty certreq payload")
	}
	// Header has already been decoded
	ct, _ := packets.ReadB8(b, 0)
	s.CertEncodingType = CertEncodingType(ct)
	s.KeyHashes = append([]byte{}, b[1:]...)
	return nil
}

func (s *CertRequestPayload) Verify() error {
	if s.CertEncodingType == X_509_CERTIFICATE_SIGNATURE && len(s.KeyHashes)%20 != 0 {
		return errors.Wrapf(ErrVerify, "certreq key hashes not a multiple of 20: %d", len(s.KeyHashes))
	}
	return nil
}
