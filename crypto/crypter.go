package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"

	"github.com/dgryski/go-camellia"
	"github.com/pkg/errors"

	"github.com/lucifiery/strongswan/protocol"
)

// Crypter is the confidentiality half of the SK envelope. Encrypt returns
// iv | ciphertext with trailing padding; Decrypt reverses it. Implementations
// hold their key; they are borrowed per call and never stored in a message.
type Crypter interface {
	Encrypt(clear []byte) ([]byte, error)
	Decrypt(b []byte) ([]byte, error)
	// Overhead is the number of octets Encrypt adds to clear: iv plus padding.
	Overhead(clear []byte) int
	BlockLen() int
}

// NewCrypter builds a Crypter for the given encryption transform.
func NewCrypter(cipherId protocol.EncrTransformId, key []byte) (Crypter, error) {
	switch cipherId {
	case protocol.ENCR_AES_CBC:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, errors.Wrap(err, "aes-cbc key")
		}
		return &cbcCrypter{block: block, EncrTransformId: cipherId}, nil
	case protocol.ENCR_CAMELLIA_CBC:
		block, err := camellia.New(key)
		if err != nil {
			return nil, errors.Wrap(err, "camellia-cbc key")
		}
		return &cbcCrypter{block: block, EncrTransformId: cipherId}, nil
	case protocol.ENCR_NULL:
		return nullCrypter{}, nil
	}
	return nil, errors.Wrapf(protocol.ErrNotSupported, "encryption transform %d", cipherId)
}

type cbcCrypter struct {
	block cipher.Block
	protocol.EncrTransformId
}

func (c *cbcCrypter) String() string {
	return c.EncrTransformId.String()
}

func (c *cbcCrypter) BlockLen() int {
	return c.block.BlockSize()
}

func (c *cbcCrypter) Overhead(clear []byte) int {
	bs := c.block.BlockSize()
	return bs + bs - len(clear)%bs
}

func (c *cbcCrypter) Encrypt(clear []byte) ([]byte, error) {
	bs := c.block.BlockSize()
	iv := make([]byte, bs)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, errors.Wrap(err, "reading iv")
	}
	// pad to block size; last octet is the pad length
	padlen := bs - len(clear)%bs
	pad := make([]byte, padlen)
	pad[padlen-1] = byte(padlen - 1)
	clear = append(append([]byte{}, clear...), pad...)
	ciphertext := make([]byte, len(clear))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(ciphertext, clear)
	return append(iv, ciphertext...), nil
}

func (c *cbcCrypter) Decrypt(b []byte) ([]byte, error) {
	bs := c.block.BlockSize()
	if len(b) < 2*bs {
		return nil, errors.Wrapf(protocol.ErrVerify, "ciphertext too small, %d < %d", len(b), 2*bs)
	}
	iv := b[:bs]
	ciphertext := b[bs:]
	if len(ciphertext)%bs != 0 {
		return nil, errors.Wrap(protocol.ErrVerify, "ciphertext is not a multiple of the block size")
	}
	clear := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(clear, ciphertext)
	padlen := int(clear[len(clear)-1]) + 1 // pad length octet included
	if padlen > bs || padlen > len(clear) {
		return nil, errors.Wrapf(protocol.ErrVerify, "bad pad length %d", padlen)
	}
	return clear[:len(clear)-padlen], nil
}

// nullCrypter passes bytes through unchanged, for ENCR_NULL.
type nullCrypter struct{}

func (nullCrypter) String() string                   { return protocol.ENCR_NULL.String() }
func (nullCrypter) BlockLen() int                    { return 1 }
func (nullCrypter) Overhead([]byte) int              { return 0 }
func (nullCrypter) Encrypt(c []byte) ([]byte, error) { return c, nil }
func (nullCrypter) Decrypt(b []byte) ([]byte, error) { return b, nil }
