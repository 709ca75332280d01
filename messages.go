package ike

import (
	"math/big"
	"time"

	"github.com/lucifiery/strongswan/protocol"
)

// IKE_SA_INIT
// a->b
//	HDR(SPIi=xxx, SPIr=0, IKE_SA_INIT, Flags: Initiator, Message ID=0),
//	SAi1, KEi, Ni
// b->a
//	HDR(SPIi=xxx, SPIr=yyy, IKE_SA_INIT, Flags: Response, Message ID=0),
//	SAr1, KEr, Nr, [CERTREQ]
type InitParams struct {
	IsInitiator bool
	SpiI, SpiR  protocol.Spi

	Proposals     protocol.Proposals
	DhTransformId protocol.DhTransformId
	DhPublic      *big.Int
	Nonce         *big.Int

	Cookie []byte
}

func MakeInit(params *InitParams) *Message {
	// response & initiator are mutually exclusive
	flags := protocol.RESPONSE
	if params.IsInitiator {
		flags = protocol.INITIATOR
	}
	init := newExchange(protocol.IKE_SA_INIT, flags, params.SpiI, params.SpiR)
	if params.Cookie != nil {
		init.AddPayload(&protocol.NotifyPayload{
			PayloadHeader:    &protocol.PayloadHeader{},
			NotificationType: protocol.COOKIE,
			Data:             params.Cookie,
		})
	}
	init.AddPayload(&protocol.SaPayload{
		PayloadHeader: &protocol.PayloadHeader{},
		Proposals:     params.Proposals,
	})
	init.AddPayload(&protocol.KePayload{
		PayloadHeader: &protocol.PayloadHeader{},
		DhTransformId: params.DhTransformId,
		KeyData:       params.DhPublic,
	})
	init.AddPayload(&protocol.NoncePayload{
		PayloadHeader: &protocol.PayloadHeader{},
		Nonce:         params.Nonce,
	})
	return init
}

// IKE_AUTH
// a->b
//	HDR(SPIi=xxx, SPIr=yyy, IKE_AUTH, Flags: Initiator, Message ID=1)
//	SK {IDi, [CERT,] [CERTREQ,] [IDr,] AUTH, SAi2, TSi, TSr}
// b->a
//	HDR(SPIi=xxx, SPIr=yyy, IKE_AUTH, Flags: Response, Message ID=1)
//	SK {IDr, [CERT,] AUTH, SAr2, TSi, TSr}
type AuthParams struct {
	IsInitiator bool
	SpiI, SpiR  protocol.Spi

	IdType protocol.IdType
	Id     []byte

	AuthMethod protocol.AuthMethod
	AuthData   []byte

	Proposals protocol.Proposals
	TsI, TsR  protocol.Selectors

	IsTransportMode bool
	Lifetime        time.Duration
}

func MakeAuth(params *AuthParams) *Message {
	flags := protocol.RESPONSE
	idPayloadType := protocol.PayloadTypeIDr
	if params.IsInitiator {
		flags = protocol.INITIATOR
		idPayloadType = protocol.PayloadTypeIDi
	}
	auth := newExchange(protocol.IKE_AUTH, flags, params.SpiI, params.SpiR)
	auth.IkeHeader.MsgId = 1
	auth.AddPayload(&protocol.IdPayload{
		PayloadHeader: &protocol.PayloadHeader{},
		IdPayloadType: idPayloadType,
		IdType:        params.IdType,
		Data:          params.Id,
	})
	auth.AddPayload(&protocol.AuthPayload{
		PayloadHeader: &protocol.PayloadHeader{},
		AuthMethod:    params.AuthMethod,
		Data:          params.AuthData,
	})
	auth.AddPayload(&protocol.SaPayload{
		PayloadHeader: &protocol.PayloadHeader{},
		Proposals:     params.Proposals,
	})
	auth.AddPayload(&protocol.TrafficSelectorPayload{
		PayloadHeader:              &protocol.PayloadHeader{},
		TrafficSelectorPayloadType: protocol.PayloadTypeTSi,
		Selectors:                  params.TsI,
	})
	auth.AddPayload(&protocol.TrafficSelectorPayload{
		PayloadHeader:              &protocol.PayloadHeader{},
		TrafficSelectorPayloadType: protocol.PayloadTypeTSr,
		Selectors:                  params.TsR,
	})
	if params.IsTransportMode {
		auth.AddPayload(&protocol.NotifyPayload{
			PayloadHeader:    &protocol.PayloadHeader{},
			NotificationType: protocol.USE_TRANSPORT_MODE,
		})
	}
	if params.IsInitiator {
		auth.AddPayload(&protocol.NotifyPayload{
			PayloadHeader:    &protocol.PayloadHeader{},
			NotificationType: protocol.INITIAL_CONTACT,
		})
	}
	if !params.IsInitiator && params.Lifetime != 0 {
		auth.AddPayload(&protocol.NotifyPayload{
			PayloadHeader:       &protocol.PayloadHeader{},
			NotificationType:    protocol.AUTH_LIFETIME,
			NotificationMessage: params.Lifetime,
		})
	}
	return auth
}

// CREATE_CHILD_SA
//	HDR(SPIi=xxx, SPIr=yyy, CREATE_CHILD_SA, Message ID=m)
//	SK {SA, Ni, [KEi,] [TSi, TSr]}
type ChildSaParams struct {
	IsInitiator bool
	IsResponse  bool
	SpiI, SpiR  protocol.Spi
	MsgId       uint32

	Proposals     protocol.Proposals
	Nonce         *big.Int
	DhTransformId protocol.DhTransformId
	DhPublic      *big.Int
	TsI, TsR      protocol.Selectors
}

func MakeChildSa(params *ChildSaParams) *Message {
	var flags protocol.IkeFlags
	if params.IsResponse {
		flags |= protocol.RESPONSE
	}
	if params.IsInitiator {
		flags |= protocol.INITIATOR
	}
	child := newExchange(protocol.CREATE_CHILD_SA, flags, params.SpiI, params.SpiR)
	child.IkeHeader.MsgId = params.MsgId
	child.AddPayload(&protocol.SaPayload{
		PayloadHeader: &protocol.PayloadHeader{},
		Proposals:     params.Proposals,
	})
	child.AddPayload(&protocol.NoncePayload{
		PayloadHeader: &protocol.PayloadHeader{},
		Nonce:         params.Nonce,
	})
	if params.DhPublic != nil {
		child.AddPayload(&protocol.KePayload{
			PayloadHeader: &protocol.PayloadHeader{},
			DhTransformId: params.DhTransformId,
			KeyData:       params.DhPublic,
		})
	}
	if params.TsI != nil && params.TsR != nil {
		child.AddPayload(&protocol.TrafficSelectorPayload{
			PayloadHeader:              &protocol.PayloadHeader{},
			TrafficSelectorPayloadType: protocol.PayloadTypeTSi,
			Selectors:                  params.TsI,
		})
		child.AddPayload(&protocol.TrafficSelectorPayload{
			PayloadHeader:              &protocol.PayloadHeader{},
			TrafficSelectorPayloadType: protocol.PayloadTypeTSr,
			Selectors:                  params.TsR,
		})
	}
	return child
}

// INFORMATIONAL
// b<-a
//	HDR(SPIi=xxx, SPIr=yyy, INFORMATIONAL, Flags: none, Message ID=m),
//	SK {...}
// a<-b
//	HDR(SPIi=xxx, SPIr=yyy, INFORMATIONAL, Flags: Initiator | Response, Message ID=m),
//	SK {}
// Notification, Delete and Configuration payloads. Must be replied to.
type InfoParams struct {
	IsInitiator bool
	IsResponse  bool
	SpiI, SpiR  protocol.Spi
	MsgId       uint32
	Payload     protocol.Payload
}

func MakeInformational(params *InfoParams) *Message {
	var flags protocol.IkeFlags
	if params.IsResponse {
		flags |= protocol.RESPONSE
	}
	if params.IsInitiator {
		flags |= protocol.INITIATOR
	}
	info := newExchange(protocol.INFORMATIONAL, flags, params.SpiI, params.SpiR)
	info.IkeHeader.MsgId = params.MsgId
	if params.Payload != nil {
		info.AddPayload(params.Payload)
	}
	return info
}

// NotifyFromSaID builds an INFORMATIONAL request carrying an error notify for
// the association.
func NotifyFromSaID(id *SaID, ie protocol.IkeErrorCode) *Message {
	spi := id.SpiI
	if id.IsInitiator {
		spi = id.SpiR
	}
	return MakeInformational(&InfoParams{
		IsInitiator: id.IsInitiator,
		SpiI:        id.SpiI,
		SpiR:        id.SpiR,
		Payload: &protocol.NotifyPayload{
			PayloadHeader:    &protocol.PayloadHeader{},
			ProtocolId:       protocol.IKE,
			NotificationType: protocol.NotificationType(ie),
			Spi:              spi,
		},
	})
}

// DeleteFromSaID builds the INFORMATIONAL request that tears the whole IKE SA
// down. Protocol id IKE, no spis.
func DeleteFromSaID(id *SaID) *Message {
	return MakeInformational(&InfoParams{
		IsInitiator: id.IsInitiator,
		SpiI:        id.SpiI,
		SpiR:        id.SpiR,
		Payload: &protocol.DeletePayload{
			PayloadHeader: &protocol.PayloadHeader{},
			ProtocolId:    protocol.IKE,
			Spis:          []protocol.Spi{},
		},
	})
}

func newExchange(et protocol.IkeExchangeType, flags protocol.IkeFlags, spiI, spiR protocol.Spi) *Message {
	return &Message{
		IkeHeader: &protocol.IkeHeader{
			SpiI:         spiI,
			SpiR:         spiR,
			MajorVersion: protocol.IKEV2_MAJOR_VERSION,
			MinorVersion: protocol.IKEV2_MINOR_VERSION,
			ExchangeType: et,
			Flags:        flags,
		},
		Payloads: protocol.MakePayloads(),
		said: &SaID{
			SpiI:        append(protocol.Spi{}, spiI...),
			SpiR:        append(protocol.Spi{}, spiR...),
			IsInitiator: flags.IsInitiator(),
		},
	}
}
