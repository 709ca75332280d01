package ike

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/lucifiery/strongswan/crypto"
	"github.com/lucifiery/strongswan/protocol"
)

// generateRaw serializes the chain exactly as it stands, without the envelope
// partition step, so tests can put payloads on the wire in places the encrypt
// path would never produce.
func generateRaw(t *testing.T, m *Message, signer crypto.Signer) *Packet {
	t.Helper()
	body := protocol.EncodePayloads(m.Payloads, testLog)
	m.IkeHeader.NextPayload = m.Payloads.First()
	m.IkeHeader.MsgLength = uint32(len(body) + protocol.IKE_HEADER_LEN)
	b := append(m.IkeHeader.Encode(testLog), body...)
	if n := len(m.Payloads.Array); n > 0 {
		if sk, ok := m.Payloads.Array[n-1].(*protocol.EncryptedPayload); ok && signer != nil {
			mac := signer.Sign(b[:len(b)-sk.IcvLength])
			copy(b[len(b)-sk.IcvLength:], mac)
		}
	}
	return &Packet{LocalAddr: testLocal, RemoteAddr: testRemote, Data: b}
}

// encryptInner wraps the given payloads into a ready SK payload.
func encryptInner(t *testing.T, crypter crypto.Crypter, signer crypto.Signer, inner ...protocol.Payload) *protocol.EncryptedPayload {
	t.Helper()
	first := protocol.PayloadTypeNone
	if len(inner) > 0 {
		first = inner[0].Type()
	}
	b := protocol.EncodePayloads(&protocol.Payloads{Array: inner}, testLog)
	ct, err := crypter.Encrypt(b)
	require.NoError(t, err)
	return &protocol.EncryptedPayload{
		PayloadHeader:  &protocol.PayloadHeader{},
		FirstContained: first,
		Data:           ct,
		IcvLength:      signer.Size(),
	}
}

// Decryption without a prior envelope is a no-op success; an exchange with no
// encrypted content never grows an envelope even when transforms are at hand.
func TestEnvelopeNoOp(t *testing.T) {
	crypter, signer := testTransforms(t)
	msg := testInitMessage()
	pkt, err := msg.Generate(crypter, signer, testLog)
	require.NoError(t, err)
	require.NotContains(t, payloadTypes(msg), protocol.PayloadTypeSK)

	back, err := DecodeMessage(pkt, crypter, signer, testLog)
	require.NoError(t, err)
	require.Equal(t, payloadTypes(msg), payloadTypes(back))
}

func TestEnvelopeNotAllowed(t *testing.T) {
	crypter, signer := testTransforms(t)
	msg := testInitMessage()
	msg.Payloads.Add(encryptInner(t, crypter, signer))
	pkt := generateRaw(t, msg, signer)

	_, err := DecodeMessage(pkt, crypter, signer, testLog)
	require.Equal(t, protocol.ErrVerify, errors.Cause(err))
}

func TestEnvelopeTamperedChecksum(t *testing.T) {
	crypter, signer := testTransforms(t)
	msg := testAuthMessage(MakeSpi(), MakeSpi())
	pkt, err := msg.Generate(crypter, signer, testLog)
	require.NoError(t, err)

	pkt.Data[len(pkt.Data)-1] ^= 0xff
	_, err = DecodeMessage(pkt, crypter, signer, testLog)
	require.Equal(t, protocol.ErrVerify, errors.Cause(err))
}

func TestEnvelopeWrongKey(t *testing.T) {
	crypter, signer := testTransforms(t)
	msg := testAuthMessage(MakeSpi(), MakeSpi())
	pkt, err := msg.Generate(crypter, signer, testLog)
	require.NoError(t, err)

	otherSigner, err := crypto.NewSigner(protocol.AUTH_HMAC_SHA2_256_128, []byte("a different integrity key entirely"))
	require.NoError(t, err)
	_, err = DecodeMessage(pkt, crypter, otherSigner, testLog)
	require.Equal(t, protocol.ErrVerify, errors.Cause(err))
}

// The envelope integrity check passes, but the required AUTH payload is
// missing inside: the failure must be the occurrence-count kind, not a
// cryptographic one.
func TestEnvelopeMissingAuthPayload(t *testing.T) {
	crypter, signer := testTransforms(t)
	msg := testAuthMessage(MakeSpi(), MakeSpi())
	var kept []protocol.Payload
	for _, pl := range msg.Payloads.Array {
		if pl.Type() != protocol.PayloadTypeAUTH {
			kept = append(kept, pl)
		}
	}
	msg.Payloads = &protocol.Payloads{Array: kept}
	pkt, err := msg.Generate(crypter, signer, testLog)
	require.NoError(t, err)

	_, err = DecodeMessage(pkt, crypter, signer, testLog)
	require.Equal(t, protocol.ErrNotSupported, errors.Cause(err))
}

// An envelope-only payload arriving in the clear part of the chain is a
// verification failure even though it decodes fine.
func TestEnvelopePayloadInClear(t *testing.T) {
	crypter, signer := testTransforms(t)
	auth := testAuthMessage(MakeSpi(), MakeSpi())

	var idp protocol.Payload
	var inner []protocol.Payload
	for _, pl := range auth.Payloads.Array {
		if pl.Type() == protocol.PayloadTypeIDi {
			idp = pl
		} else {
			inner = append(inner, pl)
		}
	}
	require.NotNil(t, idp)
	auth.Payloads = &protocol.Payloads{Array: []protocol.Payload{
		idp, encryptInner(t, crypter, signer, inner...),
	}}
	pkt := generateRaw(t, auth, signer)

	_, err := DecodeMessage(pkt, crypter, signer, testLog)
	require.Equal(t, protocol.ErrVerify, errors.Cause(err))
}

// A payload type the rule has no entry for may not hide inside the envelope.
func TestEnvelopeUndeclaredPayloadInside(t *testing.T) {
	crypter, signer := testTransforms(t)
	auth := testAuthMessage(MakeSpi(), MakeSpi())
	inner := append([]protocol.Payload{}, auth.Payloads.Array...)
	inner = append(inner, &protocol.EapPayload{PayloadHeader: &protocol.PayloadHeader{}, Data: []byte{1, 2}})
	auth.Payloads = &protocol.Payloads{Array: []protocol.Payload{
		encryptInner(t, crypter, signer, inner...),
	}}
	pkt := generateRaw(t, auth, signer)

	_, err := DecodeMessage(pkt, crypter, signer, testLog)
	require.Equal(t, protocol.ErrVerify, errors.Cause(err))
}

func TestEnvelopeNotLastRejected(t *testing.T) {
	crypter, signer := testTransforms(t)
	auth := testAuthMessage(MakeSpi(), MakeSpi())
	sk := encryptInner(t, crypter, signer, auth.Payloads.Array...)
	auth.Payloads = &protocol.Payloads{Array: []protocol.Payload{
		sk,
		&protocol.VendorIdPayload{PayloadHeader: &protocol.PayloadHeader{}, Data: []byte("x")},
	}}
	err := auth.decryptPayloads(crypter, signer, testLog)
	require.Equal(t, protocol.ErrVerify, errors.Cause(err))
}

func TestInformationalRoundTrip(t *testing.T) {
	crypter, signer := testTransforms(t)
	id := &SaID{SpiI: MakeSpi(), SpiR: MakeSpi(), IsInitiator: true}

	msg := NotifyFromSaID(id, protocol.ERR_AUTHENTICATION_FAILED)
	msg.SetAddresses(testLocal, testRemote)
	pkt, err := msg.Generate(crypter, signer, testLog)
	require.NoError(t, err)

	back, err := DecodeMessage(pkt, crypter, signer, testLog)
	require.NoError(t, err)
	n := back.Payloads.GetNotification(protocol.AUTHENTICATION_FAILED)
	require.NotNil(t, n)
	require.Equal(t, []byte(id.SpiR), n.Spi)

	// a response with nothing to say serializes with no payloads at all
	resp := MakeInformational(&InfoParams{IsResponse: true, SpiI: id.SpiI, SpiR: id.SpiR, MsgId: 2})
	resp.SetAddresses(testLocal, testRemote)
	pkt, err = resp.Generate(crypter, signer, testLog)
	require.NoError(t, err)
	back, err = DecodeMessage(pkt, crypter, signer, testLog)
	require.NoError(t, err)
	require.Empty(t, back.Payloads.Array)
}

func TestDeleteRequestRoundTrip(t *testing.T) {
	crypter, signer := testTransforms(t)
	id := &SaID{SpiI: MakeSpi(), SpiR: MakeSpi(), IsInitiator: false}

	msg := DeleteFromSaID(id)
	msg.SetAddresses(testLocal, testRemote)
	pkt, err := msg.Generate(crypter, signer, testLog)
	require.NoError(t, err)

	back, err := DecodeMessage(pkt, crypter, signer, testLog)
	require.NoError(t, err)
	del := back.Payloads.Get(protocol.PayloadTypeD).(*protocol.DeletePayload)
	require.Equal(t, protocol.IKE, del.ProtocolId)
	require.Empty(t, del.Spis)
}
