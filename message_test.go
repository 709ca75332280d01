package ike

import (
	"math/big"
	"net"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/lucifiery/strongswan/crypto"
	"github.com/lucifiery/strongswan/protocol"
)

var testLog = logrus.New()

var (
	testLocal, _  = net.ResolveUDPAddr("udp4", "192.168.10.1:500")
	testRemote, _ = net.ResolveUDPAddr("udp4", "192.168.10.2:500")
)

func testTransforms(t *testing.T) (crypto.Crypter, crypto.Signer) {
	t.Helper()
	crypter, err := crypto.NewCrypter(protocol.ENCR_AES_CBC, []byte("0123456789abcdef"))
	require.NoError(t, err)
	signer, err := crypto.NewSigner(protocol.AUTH_HMAC_SHA2_256_128, []byte("integrity key material for tests"))
	require.NoError(t, err)
	return crypter, signer
}

func testProposals(spi protocol.Spi) protocol.Proposals {
	return protocol.Proposals{{
		Number:     1,
		ProtocolId: protocol.IKE,
		Spi:        append(protocol.Spi{}, spi...),
		SaTransforms: []*protocol.SaTransform{
			{Transform: protocol.Transform{Type: protocol.TRANSFORM_TYPE_ENCR, TransformId: uint16(protocol.ENCR_AES_CBC)}, KeyLength: 128},
			{Transform: protocol.Transform{Type: protocol.TRANSFORM_TYPE_PRF, TransformId: uint16(protocol.PRF_HMAC_SHA2_256)}},
			{Transform: protocol.Transform{Type: protocol.TRANSFORM_TYPE_INTEG, TransformId: uint16(protocol.AUTH_HMAC_SHA2_256_128)}},
			{Transform: protocol.Transform{Type: protocol.TRANSFORM_TYPE_DH, TransformId: uint16(protocol.MODP_2048)}, IsLast: true},
		},
	}}
}

func testEspProposals(spi protocol.Spi) protocol.Proposals {
	return protocol.Proposals{{
		Number:     1,
		ProtocolId: protocol.ESP,
		Spi:        append(protocol.Spi{}, spi...),
		SaTransforms: []*protocol.SaTransform{
			{Transform: protocol.Transform{Type: protocol.TRANSFORM_TYPE_ENCR, TransformId: uint16(protocol.ENCR_AES_CBC)}, KeyLength: 128},
			{Transform: protocol.Transform{Type: protocol.TRANSFORM_TYPE_INTEG, TransformId: uint16(protocol.AUTH_HMAC_SHA2_256_128)}, IsLast: true},
		},
	}}
}

func testSelectors(start, end net.IP) protocol.Selectors {
	return protocol.Selectors{{
		Type:         protocol.TS_IPV4_ADDR_RANGE,
		Endport:      65535,
		StartAddress: start.To4(),
		EndAddress:   end.To4(),
	}}
}

func testInitMessage() *Message {
	nonce, _ := new(big.Int).SetString("11223344556677889900aabbccddeeff11223344556677889900aabbccddeeff", 16)
	dh, _ := new(big.Int).SetString("f6ed5638a1587162", 16)
	spiI := MakeSpi()
	msg := MakeInit(&InitParams{
		IsInitiator:   true,
		SpiI:          spiI,
		SpiR:          make(protocol.Spi, 8),
		Proposals:     testProposals(spiI),
		DhTransformId: protocol.MODP_2048,
		DhPublic:      dh,
		Nonce:         nonce,
	})
	msg.SetAddresses(testLocal, testRemote)
	return msg
}

func testAuthMessage(spiI, spiR protocol.Spi) *Message {
	msg := MakeAuth(&AuthParams{
		IsInitiator: true,
		SpiI:        spiI,
		SpiR:        spiR,
		IdType:      protocol.ID_RFC822_ADDR,
		Id:          []byte("ak@example.com"),
		AuthMethod:  protocol.AUTH_SHARED_KEY_MESSAGE_INTEGRITY_CODE,
		AuthData:    []byte("signed octets"),
		Proposals:   testEspProposals(protocol.Spi{1, 2, 3, 4}),
		TsI:         testSelectors(net.IPv4(192, 168, 10, 1), net.IPv4(192, 168, 10, 254)),
		TsR:         testSelectors(net.IPv4(10, 10, 10, 1), net.IPv4(10, 10, 10, 254)),
	})
	msg.SetAddresses(testLocal, testRemote)
	return msg
}

func payloadTypes(m *Message) (ts []protocol.PayloadType) {
	for _, pl := range m.Payloads.Array {
		ts = append(ts, pl.Type())
	}
	return
}

func TestInitRoundTrip(t *testing.T) {
	msg := testInitMessage()
	require.NoError(t, msg.Verify())

	pkt, err := msg.Generate(nil, nil, testLog)
	require.NoError(t, err)
	require.Equal(t, testRemote, pkt.RemoteAddr)

	back, err := DecodeMessage(pkt, nil, nil, testLog)
	require.NoError(t, err)
	require.True(t, back.IsRequest())
	require.Equal(t, protocol.IKE_SA_INIT, back.IkeHeader.ExchangeType)
	require.Equal(t, payloadTypes(msg), payloadTypes(back))
}

func TestAuthRoundTrip(t *testing.T) {
	crypter, signer := testTransforms(t)
	msg := testAuthMessage(MakeSpi(), MakeSpi())
	wantTypes := payloadTypes(msg)

	pkt, err := msg.Generate(crypter, signer, testLog)
	require.NoError(t, err)
	// everything the IKE_AUTH rule declares is envelope-only, so the wire
	// chain is just SK
	require.Equal(t, []protocol.PayloadType{protocol.PayloadTypeSK}, payloadTypes(msg))

	back, err := DecodeMessage(pkt, crypter, signer, testLog)
	require.NoError(t, err)
	require.Equal(t, wantTypes, payloadTypes(back))
}

func TestAuthLifetimeRoundTrip(t *testing.T) {
	crypter, signer := testTransforms(t)
	msg := MakeAuth(&AuthParams{
		IsInitiator: false,
		SpiI:        MakeSpi(),
		SpiR:        MakeSpi(),
		IdType:      protocol.ID_RFC822_ADDR,
		Id:          []byte("gw@example.com"),
		AuthMethod:  protocol.AUTH_SHARED_KEY_MESSAGE_INTEGRITY_CODE,
		AuthData:    []byte("signed octets"),
		Proposals:   testEspProposals(protocol.Spi{1, 2, 3, 4}),
		TsI:         testSelectors(net.IPv4(192, 168, 10, 1), net.IPv4(192, 168, 10, 254)),
		TsR:         testSelectors(net.IPv4(10, 10, 10, 1), net.IPv4(10, 10, 10, 254)),
		Lifetime:    time.Hour,
	})
	msg.SetAddresses(testLocal, testRemote)

	pkt, err := msg.Generate(crypter, signer, testLog)
	require.NoError(t, err)
	back, err := DecodeMessage(pkt, crypter, signer, testLog)
	require.NoError(t, err)

	lt := back.Payloads.GetNotification(protocol.AUTH_LIFETIME)
	require.NotNil(t, lt)
	require.Equal(t, []byte{0, 0, 0x0e, 0x10}, lt.Data)
	require.Equal(t, time.Hour, lt.NotificationMessage)
}

func TestChainTagDerivation(t *testing.T) {
	msg := testInitMessage()
	pkt, err := msg.Generate(nil, nil, testLog)
	require.NoError(t, err)

	// walk the serialized chain by its next-type tags
	b := pkt.Data
	next := protocol.PayloadType(b[16])
	b = b[protocol.IKE_HEADER_LEN:]
	var walked []protocol.PayloadType
	for next != protocol.PayloadTypeNone {
		walked = append(walked, next)
		next = protocol.PayloadType(b[0])
		plen := int(b[2])<<8 | int(b[3])
		b = b[plen:]
	}
	require.Equal(t, payloadTypes(msg), walked)
	require.Empty(t, b)
}

func TestVerifyMissingPayload(t *testing.T) {
	msg := testInitMessage()
	// drop the nonce
	var kept []protocol.Payload
	for _, pl := range msg.Payloads.Array {
		if pl.Type() != protocol.PayloadTypeNonce {
			kept = append(kept, pl)
		}
	}
	msg.Payloads = &protocol.Payloads{Array: kept}
	err := msg.Verify()
	require.Equal(t, protocol.ErrNotSupported, errors.Cause(err))
}

func TestVerifyTooManyPayloads(t *testing.T) {
	msg := testInitMessage()
	msg.AddPayload(&protocol.SaPayload{
		PayloadHeader: &protocol.PayloadHeader{},
		Proposals:     testProposals(MakeSpi()),
	})
	err := msg.Verify()
	require.Equal(t, protocol.ErrNotSupported, errors.Cause(err))
}

// A payload type the rule does not mention is tolerated in any quantity,
// deliberately so.
func TestVerifyUnconstrainedPayloadTolerated(t *testing.T) {
	msg := testInitMessage()
	msg.AddPayload(&protocol.EapPayload{PayloadHeader: &protocol.PayloadHeader{}, Data: []byte{1}})
	msg.AddPayload(&protocol.EapPayload{PayloadHeader: &protocol.PayloadHeader{}, Data: []byte{2}})
	require.NoError(t, msg.Verify())
}

func TestVerifyEnvelopeNotLast(t *testing.T) {
	msg := testInitMessage()
	sk := &protocol.EncryptedPayload{PayloadHeader: &protocol.PayloadHeader{}}
	msg.Payloads = &protocol.Payloads{Array: append([]protocol.Payload{sk}, msg.Payloads.Array...)}
	err := msg.Verify()
	require.Equal(t, protocol.ErrVerify, errors.Cause(err))
}

func TestGenerateInvalidState(t *testing.T) {
	msg := testInitMessage()
	msg.IkeHeader.ExchangeType = protocol.EXCHANGE_TYPE_UNDEFINED
	_, err := msg.Generate(nil, nil, testLog)
	require.Equal(t, protocol.ErrInvalidState, errors.Cause(err))

	msg = testInitMessage()
	msg.SetAddresses(nil, nil)
	_, err = msg.Generate(nil, nil, testLog)
	require.Equal(t, protocol.ErrInvalidState, errors.Cause(err))
}

func TestParseBodyBeforeHeader(t *testing.T) {
	msg := NewMessage(&Packet{Data: []byte{1, 2, 3}})
	err := msg.ParseBody(nil, nil, testLog)
	require.Equal(t, protocol.ErrInvalidState, errors.Cause(err))
}

func TestParseHeaderFailureLeavesUnparsed(t *testing.T) {
	msg := NewMessage(&Packet{Data: make([]byte, 8)})
	err := msg.ParseHeader(testLog)
	require.Equal(t, protocol.ErrParse, errors.Cause(err))
	require.Nil(t, msg.IkeHeader)

	// verify failure: valid frame with a bad major version
	good := testInitMessage()
	pkt, err := good.Generate(nil, nil, testLog)
	require.NoError(t, err)
	pkt.Data[17] = 0x30 // version 3.0
	msg = NewMessage(pkt)
	err = msg.ParseHeader(testLog)
	require.Equal(t, protocol.ErrVerify, errors.Cause(err))
	require.Nil(t, msg.IkeHeader)
}

func TestSaIDCloneSemantics(t *testing.T) {
	msg := testInitMessage()
	id := msg.SaID()
	require.NotNil(t, id)
	id.SpiI[0] ^= 0xff
	require.NotEqual(t, id.SpiI, msg.SaID().SpiI)

	other := &SaID{SpiI: MakeSpi(), SpiR: MakeSpi(), IsInitiator: false}
	msg.SetSaID(other)
	other.SpiR[0] ^= 0xff
	require.NotEqual(t, other.SpiR, msg.SaID().SpiR)
}

func TestRelease(t *testing.T) {
	crypter, signer := testTransforms(t)
	msg := testAuthMessage(MakeSpi(), MakeSpi())
	_, err := msg.Generate(crypter, signer, testLog)
	require.NoError(t, err)
	msg.Release()
	require.Nil(t, msg.IkeHeader)
	require.Nil(t, msg.SaID())
	require.Empty(t, msg.Payloads.Array)
}
