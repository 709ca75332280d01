package protocol

import (
	"fmt"
	"strings"
)

func (p ProtocolId) String() string {
	switch p {
	case IKE:
		return "IKE"
	case AH:
		return "AH"
	case ESP:
		return "ESP"
	default:
		return "Unknown"
	}
}

func (p TransformType) String() string {
	switch p {
	case TRANSFORM_TYPE_ENCR:
		return "ENCR"
	case TRANSFORM_TYPE_PRF:
		return "PRF"
	case TRANSFORM_TYPE_INTEG:
		return "INTEG"
	case TRANSFORM_TYPE_DH:
		return "DH"
	case TRANSFORM_TYPE_ESN:
		return "ESN"
	default:
		return "Unknown"
	}
}

func (e EncrTransformId) String() string {
	switch e {
	case ENCR_DES:
		return "ENCR_DES"
	case ENCR_3DES:
		return "ENCR_3DES"
	case ENCR_NULL:
		return "ENCR_NULL"
	case ENCR_AES_CBC:
		return "ENCR_AES_CBC"
	case ENCR_AES_CTR:
		return "ENCR_AES_CTR"
	case AEAD_AES_GCM_8:
		return "AEAD_AES_GCM_8"
	case AEAD_AES_GCM_16:
		return "AEAD_AES_GCM_16"
	case ENCR_CAMELLIA_CBC:
		return "ENCR_CAMELLIA_CBC"
	case ENCR_CAMELLIA_CTR:
		return "ENCR_CAMELLIA_CTR"
	default:
		return fmt.Sprintf("ENCR(%d)", uint16(e))
	}
}

func (a AuthTransformId) String() string {
	switch a {
	case AUTH_NONE:
		return "AUTH_NONE"
	case AUTH_HMAC_MD5_96:
		return "AUTH_HMAC_MD5_96"
	case AUTH_HMAC_SHA1_96:
		return "AUTH_HMAC_SHA1_96"
	case AUTH_AES_XCBC_96:
		return "AUTH_AES_XCBC_96"
	case AUTH_HMAC_SHA2_256_128:
		return "AUTH_HMAC_SHA2_256_128"
	case AUTH_HMAC_SHA2_384_192:
		return "AUTH_HMAC_SHA2_384_192"
	case AUTH_HMAC_SHA2_512_256:
		return "AUTH_HMAC_SHA2_512_256"
	default:
		return fmt.Sprintf("AUTH(%d)", uint16(a))
	}
}

func (e IkeExchangeType) String() string {
	switch e {
	case IKE_SA_INIT:
		return "IKE_SA_INIT"
	case IKE_AUTH:
		return "IKE_AUTH"
	case CREATE_CHILD_SA:
		return "CREATE_CHILD_SA"
	case INFORMATIONAL:
		return "INFORMATIONAL"
	default:
		return fmt.Sprintf("EXCHANGE_TYPE(%d)", uint16(e))
	}
}

func (p PayloadType) String() string {
	switch p {
	case PayloadTypeNone:
		return "None"
	case PayloadTypeSA:
		return "SA"
	case PayloadTypeKE:
		return "KE"
	case PayloadTypeIDi:
		return "IDi"
	case PayloadTypeIDr:
		return "IDr"
	case PayloadTypeCERT:
		return "CERT"
	case PayloadTypeCERTREQ:
		return "CERTREQ"
	case PayloadTypeAUTH:
		return "AUTH"
	case PayloadTypeNonce:
		return "No"
	case PayloadTypeN:
		return "N"
	case PayloadTypeD:
		return "D"
	case PayloadTypeV:
		return "V"
	case PayloadTypeTSi:
		return "TSi"
	case PayloadTypeTSr:
		return "TSr"
	case PayloadTypeSK:
		return "SK"
	case PayloadTypeCP:
		return "CP"
	case PayloadTypeEAP:
		return "EAP"
	default:
		return "Unknown"
	}
}

func (p Payloads) String() string {
	var pls []string
	for _, pl := range p.Array {
		if ty := pl.Type(); ty == PayloadTypeN {
			n := pl.(*NotifyPayload)
			pls = append(pls, fmt.Sprintf("N[%s]", n.NotificationType))
		} else {
			pls = append(pls, ty.String())
		}
	}
	return fmt.Sprintf("%v", pls)
}

func (s Selector) String() string {
	return fmt.Sprintf("(%d, %d-%d, %s-%s)",
		s.IpProtocolId,
		s.StartPort,
		s.Endport,
		s.StartAddress,
		s.EndAddress)
}

func (f IkeFlags) String() string {
	var out []string
	if f&INITIATOR != 0 {
		out = append(out, "I")
	}
	if f&VERSION != 0 {
		out = append(out, "V")
	}
	if f&RESPONSE != 0 {
		out = append(out, "R")
	}
	if f&^(RESPONSE|VERSION|INITIATOR) != 0 {
		out = append(out, fmt.Sprintf("0x%x", uint8(f)))
	}
	return strings.Join(out, "|")
}

func (n NotificationType) String() string {
	switch n {
	case UNSUPPORTED_CRITICAL_PAYLOAD:
		return "UNSUPPORTED_CRITICAL_PAYLOAD"
	case INVALID_IKE_SPI:
		return "INVALID_IKE_SPI"
	case INVALID_MAJOR_VERSION:
		return "INVALID_MAJOR_VERSION"
	case INVALID_SYNTAX:
		return "INVALID_SYNTAX"
	case INVALID_MESSAGE_ID:
		return "INVALID_MESSAGE_ID"
	case INVALID_SPI:
		return "INVALID_SPI"
	case NO_PROPOSAL_CHOSEN:
		return "NO_PROPOSAL_CHOSEN"
	case INVALID_KE_PAYLOAD:
		return "INVALID_KE_PAYLOAD"
	case AUTHENTICATION_FAILED:
		return "AUTHENTICATION_FAILED"
	case SINGLE_PAIR_REQUIRED:
		return "SINGLE_PAIR_REQUIRED"
	case NO_ADDITIONAL_SAS:
		return "NO_ADDITIONAL_SAS"
	case INTERNAL_ADDRESS_FAILURE:
		return "INTERNAL_ADDRESS_FAILURE"
	case FAILED_CP_REQUIRED:
		return "FAILED_CP_REQUIRED"
	case TS_UNACCEPTABLE:
		return "TS_UNACCEPTABLE"
	case INVALID_SELECTORS:
		return "INVALID_SELECTORS"
	case TEMPORARY_FAILURE:
		return "TEMPORARY_FAILURE"
	case CHILD_SA_NOT_FOUND:
		return "CHILD_SA_NOT_FOUND"
	case INITIAL_CONTACT:
		return "INITIAL_CONTACT"
	case SET_WINDOW_SIZE:
		return "SET_WINDOW_SIZE"
	case ADDITIONAL_TS_POSSIBLE:
		return "ADDITIONAL_TS_POSSIBLE"
	case IPCOMP_SUPPORTED:
		return "IPCOMP_SUPPORTED"
	case NAT_DETECTION_SOURCE_IP:
		return "NAT_DETECTION_SOURCE_IP"
	case NAT_DETECTION_DESTINATION_IP:
		return "NAT_DETECTION_DESTINATION_IP"
	case COOKIE:
		return "COOKIE"
	case USE_TRANSPORT_MODE:
		return "USE_TRANSPORT_MODE"
	case HTTP_CERT_LOOKUP_SUPPORTED:
		return "HTTP_CERT_LOOKUP_SUPPORTED"
	case REKEY_SA:
		return "REKEY_SA"
	case ESP_TFC_PADDING_NOT_SUPPORTED:
		return "ESP_TFC_PADDING_NOT_SUPPORTED"
	case NON_FIRST_FRAGMENTS_ALSO:
		return "NON_FIRST_FRAGMENTS_ALSO"
	case AUTH_LIFETIME:
		return "AUTH_LIFETIME"
	case SIGNATURE_HASH_ALGORITHMS:
		return "SIGNATURE_HASH_ALGORITHMS"
	default:
		return fmt.Sprintf("NOTIFY(%d)", uint16(n))
	}
}

func (h IkeHeader) String() string {
	return fmt.Sprintf("%s %#x<=>%#x id=%d flags=%s len=%d",
		h.ExchangeType, h.SpiI, h.SpiR, h.MsgId, h.Flags, h.MsgLength)
}
