package ike

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lucifiery/strongswan/crypto"
	"github.com/lucifiery/strongswan/protocol"
)

// encryptPayloads partitions the chain by the message rule: every payload
// whose entry is marked encrypted moves into a fresh SK envelope, preserving
// relative order; everything else stays in the clear part of the chain. The
// envelope is encrypted and appended as the sole final payload, with room for
// the trailing checksum that Generate fills once the whole message is
// serialized. Messages whose rule has no encrypted content pass through
// unchanged.
func (m *Message) encryptPayloads(crypter crypto.Crypter, signer crypto.Signer, log *logrus.Logger) error {
	rule := findRule(m.IkeHeader.ExchangeType, m.IsRequest())
	if rule == nil || !rule.encryptedContent {
		return nil
	}
	var clear, contained []protocol.Payload
	for _, pl := range m.Payloads.Array {
		if e, ok := rule.entry(pl.Type()); ok && e.encrypted {
			contained = append(contained, pl)
		} else {
			clear = append(clear, pl)
		}
	}
	if len(contained) == 0 {
		return nil
	}
	if crypter == nil || signer == nil {
		return errors.Wrap(protocol.ErrInvalidState, "encrypting without transforms")
	}
	inner := protocol.EncodePayloads(&protocol.Payloads{Array: contained}, log)
	ct, err := crypter.Encrypt(inner)
	if err != nil {
		return err
	}
	sk := &protocol.EncryptedPayload{
		PayloadHeader:  &protocol.PayloadHeader{},
		FirstContained: contained[0].Type(),
		Data:           ct,
		IcvLength:      signer.Size(),
	}
	m.Payloads = &protocol.Payloads{Array: append(clear, sk)}
	return nil
}

// decryptPayloads undoes the envelope on a freshly parsed chain. With an SK
// payload present it checks the rule permits encrypted content and that the
// envelope is the final payload, verifies the checksum over the whole packet
// (it covers the unencrypted header too), decrypts, and splices the inner
// chain into the envelope's position in order. Every payload of the spliced
// chain must then have a rule entry whose encrypted flag matches where the
// payload actually was. With or without an envelope, it finishes with the
// full-message Verify.
func (m *Message) decryptPayloads(crypter crypto.Crypter, signer crypto.Signer, log *logrus.Logger) error {
	skIdx := -1
	for idx, pl := range m.Payloads.Array {
		if pl.Type() == protocol.PayloadTypeSK {
			skIdx = idx
			break
		}
	}
	if skIdx >= 0 {
		rule := findRule(m.IkeHeader.ExchangeType, m.IsRequest())
		if rule == nil {
			return errors.Wrapf(protocol.ErrNotSupported,
				"no rule for %s %s", m.IkeHeader.ExchangeType, direction(m.IsRequest()))
		}
		if !rule.encryptedContent {
			return errors.Wrapf(protocol.ErrVerify,
				"%s %s does not allow encrypted content", m.IkeHeader.ExchangeType, direction(m.IsRequest()))
		}
		if skIdx != len(m.Payloads.Array)-1 {
			return errors.Wrap(protocol.ErrVerify, "encrypted payload is not the last payload")
		}
		if crypter == nil || signer == nil {
			return errors.Wrap(protocol.ErrInvalidState, "decrypting without transforms")
		}
		sk := m.Payloads.Array[skIdx].(*protocol.EncryptedPayload)
		icvLen := signer.Size()
		if len(sk.Data) < icvLen {
			return errors.Wrapf(protocol.ErrVerify,
				"encrypted payload too small for checksum, %d < %d", len(sk.Data), icvLen)
		}
		raw := m.packet.Data[:m.IkeHeader.MsgLength]
		if err := signer.Verify(raw[:len(raw)-icvLen], raw[len(raw)-icvLen:]); err != nil {
			return err
		}
		dec, err := crypter.Decrypt(sk.Data[:len(sk.Data)-icvLen])
		if err != nil {
			return err
		}
		inner, err := protocol.DecodePayloads(dec, sk.FirstContained, log)
		if err != nil {
			return err
		}
		outer := append([]protocol.Payload{}, m.Payloads.Array[:skIdx]...)
		m.Payloads = &protocol.Payloads{Array: append(outer, inner.Array...)}

		recovered := make(map[protocol.Payload]bool, len(inner.Array))
		for _, pl := range inner.Array {
			recovered[pl] = true
		}
		for _, pl := range m.Payloads.Array {
			e, ok := rule.entry(pl.Type())
			if !ok {
				return errors.Wrapf(protocol.ErrVerify,
					"payload %s not permitted in %s %s", pl.Type(), m.IkeHeader.ExchangeType, direction(m.IsRequest()))
			}
			if e.encrypted && !recovered[pl] {
				return errors.Wrapf(protocol.ErrVerify,
					"payload %s found outside the encrypted envelope", pl.Type())
			}
			if !e.encrypted && recovered[pl] {
				return errors.Wrapf(protocol.ErrVerify,
					"payload %s found inside the encrypted envelope", pl.Type())
			}
		}
	}
	return m.Verify()
}
