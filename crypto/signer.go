package crypto

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"

	"github.com/pkg/errors"

	"github.com/lucifiery/strongswan/protocol"
)

// Signer is the integrity half of the SK envelope. Sign produces the
// truncated checksum over b; Size is the truncated length on the wire.
type Signer interface {
	Sign(b []byte) []byte
	Verify(b, mac []byte) error
	Size() int
}

// NewSigner builds a Signer for the given integrity transform.
func NewSigner(authId protocol.AuthTransformId, key []byte) (Signer, error) {
	switch authId {
	case protocol.AUTH_HMAC_SHA1_96:
		return &hmacSigner{sha1.New, key, 12, authId}, nil
	case protocol.AUTH_HMAC_SHA2_256_128:
		return &hmacSigner{sha256.New, key, 16, authId}, nil
	case protocol.AUTH_HMAC_SHA2_384_192:
		return &hmacSigner{sha512.New384, key, 24, authId}, nil
	case protocol.AUTH_HMAC_SHA2_512_256:
		return &hmacSigner{sha512.New, key, 32, authId}, nil
	}
	return nil, errors.Wrapf(protocol.ErrNotSupported, "integrity transform %d", authId)
}

type hmacSigner struct {
	hash     func() hash.Hash
	key      []byte
	truncLen int
	protocol.AuthTransformId
}

func (s *hmacSigner) String() string {
	return s.AuthTransformId.String()
}

func (s *hmacSigner) Size() int {
	return s.truncLen
}

func (s *hmacSigner) Sign(b []byte) []byte {
	mac := hmac.New(s.hash, s.key)
	mac.Write(b)
	return mac.Sum(nil)[:s.truncLen]
}

func (s *hmacSigner) Verify(b, mac []byte) error {
	expected := s.Sign(b)
	if !hmac.Equal(mac, expected) {
		return errors.Wrapf(protocol.ErrVerify, "integrity check failed:\n%svs\n%s",
			hex.Dump(mac), hex.Dump(expected))
	}
	return nil
}
