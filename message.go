package ike

import (
	"encoding/json"
	"net"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lucifiery/strongswan/crypto"
	"github.com/lucifiery/strongswan/protocol"
)

type parseState int

const (
	unparsed parseState = iota
	headerParsed
	bodyParsed
)

// Message is one IKE exchange unit: header fields, the ordered payload chain
// and the transport packet it arrived in or will leave in. A message belongs
// to a single flow of control; only the rule table is shared.
type Message struct {
	IkeHeader *protocol.IkeHeader
	Payloads  *protocol.Payloads

	packet *Packet
	said   *SaID
	state  parseState
}

// NewMessage wraps a received packet for parsing. The message takes ownership
// of the packet.
func NewMessage(pkt *Packet) *Message {
	return &Message{
		Payloads: protocol.MakePayloads(),
		packet:   pkt,
	}
}

// DecodeMessage runs the full inbound pipeline: header, body, envelope
// decryption and rule verification.
func DecodeMessage(pkt *Packet, crypter crypto.Crypter, signer crypto.Signer, log *logrus.Logger) (*Message, error) {
	msg := NewMessage(pkt)
	if err := msg.ParseHeader(log); err != nil {
		return nil, err
	}
	if err := msg.ParseBody(crypter, signer, log); err != nil {
		return nil, err
	}
	return msg, nil
}

func (m *Message) IsRequest() bool {
	return !m.IkeHeader.Flags.IsResponse()
}

// SaID returns an independent copy of the association identity.
func (m *Message) SaID() *SaID {
	return m.said.Clone()
}

func (m *Message) SetSaID(id *SaID) {
	m.said = id.Clone()
}

// SetAddresses binds the message to its transport endpoints; both must be set
// before Generate.
func (m *Message) SetAddresses(local, remote net.Addr) {
	if m.packet == nil {
		m.packet = &Packet{}
	}
	m.packet.LocalAddr = local
	m.packet.RemoteAddr = remote
}

// AddPayload appends to the chain. Next-type tags are derived when the chain
// is serialized, so append order is the chain order.
func (m *Message) AddPayload(pl protocol.Payload) {
	m.Payloads.Add(pl)
}

// ParseHeader decodes and verifies the fixed header, populating exchange
// type, message id, version, flags and the association identity. On failure
// the message stays unparsed with no partial header.
func (m *Message) ParseHeader(log *logrus.Logger) error {
	if m.packet == nil {
		return errors.Wrap(protocol.ErrInvalidState, "no packet to parse")
	}
	hdr, err := protocol.DecodeIkeHeader(m.packet.Data, log)
	if err == nil {
		err = hdr.Verify()
	}
	if err != nil {
		m.IkeHeader = nil
		m.state = unparsed
		return err
	}
	m.IkeHeader = hdr
	m.said = &SaID{
		SpiI:        append(protocol.Spi{}, hdr.SpiI...),
		SpiR:        append(protocol.Spi{}, hdr.SpiR...),
		IsInitiator: hdr.Flags.IsInitiator(),
	}
	m.state = headerParsed
	return nil
}

// ParseBody decodes the payload chain starting at the header's first-payload
// tag, then decrypts the SK envelope if one is present and verifies the fully
// assembled chain against the message rule.
func (m *Message) ParseBody(crypter crypto.Crypter, signer crypto.Signer, log *logrus.Logger) error {
	if m.state != headerParsed {
		return errors.Wrap(protocol.ErrInvalidState, "header not parsed")
	}
	raw := m.packet.Data
	if len(raw) < int(m.IkeHeader.MsgLength) {
		return errors.Wrapf(protocol.ErrParse,
			"short packet: %d < %d", len(raw), m.IkeHeader.MsgLength)
	}
	pl, err := protocol.DecodePayloads(raw[protocol.IKE_HEADER_LEN:m.IkeHeader.MsgLength],
		m.IkeHeader.NextPayload, log)
	if err != nil {
		return err
	}
	m.Payloads = pl
	if log != nil {
		log.Infof("[%d]received %s%s: payloads %s",
			m.IkeHeader.MsgId, m.IkeHeader.ExchangeType, m.IkeHeader.Flags, *m.Payloads)
		m.logJSON(log, "rx")
	}
	if err := m.decryptPayloads(crypter, signer, log); err != nil {
		return err
	}
	m.state = bodyParsed
	return nil
}

// Verify counts occurrences of every payload type the applicable rule
// declares and fails when a count falls outside the entry's bounds. Types the
// rule does not mention are unconstrained. This is the single authority for
// whether an assembled chain conforms to its exchange.
func (m *Message) Verify() error {
	rule := findRule(m.IkeHeader.ExchangeType, m.IsRequest())
	if rule == nil {
		return errors.Wrapf(protocol.ErrNotSupported,
			"no rule for %s %s", m.IkeHeader.ExchangeType, direction(m.IsRequest()))
	}
	// the checksum trails the ciphertext, so nothing may follow the envelope
	for idx, pl := range m.Payloads.Array {
		if pl.Type() == protocol.PayloadTypeSK && idx != len(m.Payloads.Array)-1 {
			return errors.Wrap(protocol.ErrVerify, "encrypted payload is not the last payload")
		}
	}
	for _, e := range rule.entries {
		count := m.Payloads.Count(e.payloadType)
		if count < e.min {
			return errors.Wrapf(protocol.ErrNotSupported,
				"payload %s occurs %d times, %d required", e.payloadType, count, e.min)
		}
		if count > e.max {
			return errors.Wrapf(protocol.ErrNotSupported,
				"payload %s occurs %d times, %d allowed", e.payloadType, count, e.max)
		}
	}
	return nil
}

// Generate serializes the message into its packet and returns an independent
// clone; the retained copy is available for retransmission. Payloads the rule
// marks encrypted are collected into the SK envelope first.
func (m *Message) Generate(crypter crypto.Crypter, signer crypto.Signer, log *logrus.Logger) (*Packet, error) {
	if m.IkeHeader == nil || m.IkeHeader.ExchangeType == protocol.EXCHANGE_TYPE_UNDEFINED {
		return nil, errors.Wrap(protocol.ErrInvalidState, "exchange type not set")
	}
	if m.packet == nil || m.packet.LocalAddr == nil || m.packet.RemoteAddr == nil {
		return nil, errors.Wrap(protocol.ErrInvalidState, "addresses not set")
	}
	if err := m.encryptPayloads(crypter, signer, log); err != nil {
		return nil, err
	}
	if log != nil {
		log.Infof("[%d]sending %s%s: payloads %s",
			m.IkeHeader.MsgId, m.IkeHeader.ExchangeType, m.IkeHeader.Flags, *m.Payloads)
		m.logJSON(log, "tx")
	}
	body := protocol.EncodePayloads(m.Payloads, log)
	m.IkeHeader.NextPayload = m.Payloads.First()
	m.IkeHeader.MsgLength = uint32(len(body) + protocol.IKE_HEADER_LEN)
	b := append(m.IkeHeader.Encode(log), body...)
	// the final payload being the envelope means the serialized buffer ends
	// with room for the checksum; fill it over everything before it
	if n := len(m.Payloads.Array); n > 0 {
		if sk, ok := m.Payloads.Array[n-1].(*protocol.EncryptedPayload); ok {
			icv := signer.Sign(b[:len(b)-sk.IcvLength])
			copy(b[len(b)-sk.IcvLength:], icv)
		}
	}
	m.packet.Data = b
	return m.packet.Clone(), nil
}

// Release drops everything the message owns. Safe in any parse state.
func (m *Message) Release() {
	m.IkeHeader = nil
	m.Payloads = protocol.MakePayloads()
	m.packet = nil
	m.said = nil
	m.state = unparsed
}

func (m *Message) logJSON(log *logrus.Logger, dir string) {
	if log.Level < logrus.DebugLevel {
		return
	}
	js, _ := json.MarshalIndent(m, " ", " ")
	log.Debugf("%s:\n%s", dir, string(js))
}

func direction(isRequest bool) string {
	if isRequest {
		return "request"
	}
	return "response"
}
