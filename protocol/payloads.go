package protocol

import (
	"encoding/hex"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Payloads is the ordered payload chain of one message. Order is insertion
// order; the per-payload next-type tags are derived from it when encoding,
// so mutation sites never maintain them by hand.
type Payloads struct {
	Array []Payload
}

func MakePayloads() *Payloads {
	return &Payloads{}
}

func (p *Payloads) Add(t Payload) {
	p.Array = append(p.Array, t)
}

func (p *Payloads) Get(t PayloadType) Payload {
	for _, pl := range p.Array {
		if pl.Type() == t {
			return pl
		}
	}
	return nil
}

// First returns the type tag for the message header; the sentinel when the
// chain is empty.
func (p *Payloads) First() PayloadType {
	if len(p.Array) == 0 {
		return PayloadTypeNone
	}
	return p.Array[0].Type()
}

func (p *Payloads) Count(t PayloadType) (n int) {
	for _, pl := range p.Array {
		if pl.Type() == t {
			n++
		}
	}
	return
}

func (p *Payloads) GetNotifications() (ns []*NotifyPayload) {
	for _, pl := range p.Array {
		if pl.Type() == PayloadTypeN {
			ns = append(ns, pl.(*NotifyPayload))
		}
	}
	return
}

func (p *Payloads) GetNotification(nt NotificationType) *NotifyPayload {
	for _, pl := range p.Array {
		if pl.Type() == PayloadTypeN {
			if n := pl.(*NotifyPayload); n.NotificationType == nt {
				return n
			}
		}
	}
	return nil
}

func makePayloadFor(t PayloadType, ph *PayloadHeader) Payload {
	switch t {
	case PayloadTypeSA:
		return &SaPayload{PayloadHeader: ph}
	case PayloadTypeKE:
		return &KePayload{PayloadHeader: ph}
	case PayloadTypeIDi:
		return &IdPayload{PayloadHeader: ph, IdPayloadType: PayloadTypeIDi}
	case PayloadTypeIDr:
		return &IdPayload{PayloadHeader: ph, IdPayloadType: PayloadTypeIDr}
	case PayloadTypeCERT:
		return &CertPayload{PayloadHeader: ph}
	case PayloadTypeCERTREQ:
		return &CertRequestPayload{PayloadHeader: ph}
	case PayloadTypeAUTH:
		return &AuthPayload{PayloadHeader: ph}
	case PayloadTypeNonce:
		return &NoncePayload{PayloadHeader: ph}
	case PayloadTypeN:
		return &NotifyPayload{PayloadHeader: ph}
	case PayloadTypeD:
		return &DeletePayload{PayloadHeader: ph}
	case PayloadTypeV:
		return &VendorIdPayload{PayloadHeader: ph}
	case PayloadTypeTSi:
		return &TrafficSelectorPayload{PayloadHeader: ph, TrafficSelectorPayloadType: PayloadTypeTSi}
	case PayloadTypeTSr:
		return &TrafficSelectorPayload{PayloadHeader: ph, TrafficSelectorPayloadType: PayloadTypeTSr}
	case PayloadTypeSK:
		return &EncryptedPayload{PayloadHeader: ph}
	case PayloadTypeCP:
		return &ConfigurationPayload{PayloadHeader: ph}
	case PayloadTypeEAP:
		return &EapPayload{PayloadHeader: ph}
	}
	return nil
}

// DecodePayloads parses a chain of payloads from b, starting with the given
// type and following each payload's next-type tag until the sentinel. An SK
// payload ends the walk; whatever follows its header is ciphertext and is
// decoded only after decryption.
func DecodePayloads(b []byte, nextPayload PayloadType, log *logrus.Logger) (*Payloads, error) {
	payloads := MakePayloads()
	for nextPayload != PayloadTypeNone {
		if len(b) < PAYLOAD_HEADER_LENGTH {
			return nil, errors.Wrapf(ErrParse,
				"payload %s too small, %d < %d", nextPayload, len(b), PAYLOAD_HEADER_LENGTH)
		}
		pHeader := &PayloadHeader{}
		if err := pHeader.Decode(b[:PAYLOAD_HEADER_LENGTH]); err != nil {
			return nil, err
		}
		if (len(b) < int(pHeader.PayloadLength)) ||
			(int(pHeader.PayloadLength) < PAYLOAD_HEADER_LENGTH) {
			return nil, errors.Wrapf(ErrParse,
				"incorrect length %d in %s payload header", pHeader.PayloadLength, nextPayload)
		}
		payload := makePayloadFor(nextPayload, pHeader)
		if payload == nil {
			return nil, errors.Wrapf(ErrParse, "unknown payload type 0x%x", uint8(nextPayload))
		}
		pbuf := b[PAYLOAD_HEADER_LENGTH:pHeader.PayloadLength]
		if err := payload.Decode(pbuf); err != nil {
			return nil, errors.Wrapf(err, "decoding %s payload", payload.Type())
		}
		if err := payload.Verify(); err != nil {
			return nil, errors.Wrapf(err, "verifying %s payload", payload.Type())
		}
		if log != nil && log.Level >= logrus.DebugLevel {
			log.Debugf("Payload %s: %s from:\n%s", payload.Type(), spew.Sdump(payload), hex.Dump(pbuf))
		}
		payloads.Add(payload)
		if nextPayload == PayloadTypeSK {
			return payloads, nil
		}
		nextPayload = pHeader.NextPayload
		b = b[pHeader.PayloadLength:]
	}
	if len(b) > 0 {
		return nil, errors.Wrapf(ErrParse, "%d stray bytes after last payload\n%s", len(b), hex.Dump(b))
	}
	return payloads, nil
}

// EncodePayloads serializes the chain, deriving every next-type tag from the
// successor; the last payload gets the sentinel.
func EncodePayloads(payloads *Payloads, log *logrus.Logger) (b []byte) {
	for idx, pl := range payloads.Array {
		body := pl.Encode()
		hdr := pl.Header()
		hdr.PayloadLength = uint16(len(body) + PAYLOAD_HEADER_LENGTH)
		next := PayloadTypeNone
		if idx < len(payloads.Array)-1 {
			next = payloads.Array[idx+1].Type()
		} else if sk, ok := pl.(*EncryptedPayload); ok {
			// the SK next-type tag names the first payload inside the envelope
			next = sk.FirstContained
		}
		hdr.NextPayload = next
		body = append(hdr.Encode(), body...)
		if log != nil && log.Level >= logrus.DebugLevel {
			log.Debugf("Payload %s: %s to:\n%s", pl.Type(), spew.Sdump(pl), hex.Dump(body))
		}
		b = append(b, body...)
	}
	return
}
