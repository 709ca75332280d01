package protocol

const (
	IKEV2_MAJOR_VERSION = 2
	IKEV2_MINOR_VERSION = 0
)

const (
	IKE_HEADER_LEN        = 28
	PAYLOAD_HEADER_LENGTH = 4
)

// Spi is a security parameter index as seen on the wire;
// 8 octets for IKE, 4 for ESP & AH.
type Spi []byte

type IkeExchangeType uint16

const (
	// the zero value doubles as "not yet negotiated"
	EXCHANGE_TYPE_UNDEFINED IkeExchangeType = 0
	// 1-33 Reserved [RFC7296]
	IKE_SA_INIT     IkeExchangeType = 34 // [RFC7296]
	IKE_AUTH        IkeExchangeType = 35 // [RFC7296]
	CREATE_CHILD_SA IkeExchangeType = 36 // [RFC7296]
	INFORMATIONAL   IkeExchangeType = 37 // [RFC7296]
	// 38-239 Unassigned
	// 240-255 Private use [RFC7296]
)

type PayloadType uint8

const (
	PayloadTypeNone PayloadType = 0 // No Next Payload [RFC7296]
	// 1-32 Reserved [RFC7296]
	PayloadTypeSA      PayloadType = 33 // Security Association
	PayloadTypeKE      PayloadType = 34 // Key Exchange
	PayloadTypeIDi     PayloadType = 35 // Identification - Initiator
	PayloadTypeIDr     PayloadType = 36 // Identification - Responder
	PayloadTypeCERT    PayloadType = 37 // Certificate
	PayloadTypeCERTREQ PayloadType = 38 // Certificate Request
	PayloadTypeAUTH    PayloadType = 39 // Authentication
	PayloadTypeNonce   PayloadType = 40 // Nonce, Ni or Nr
	PayloadTypeN       PayloadType = 41 // Notify
	PayloadTypeD       PayloadType = 42 // Delete
	PayloadTypeV       PayloadType = 43 // Vendor ID
	PayloadTypeTSi     PayloadType = 44 // Traffic Selector - Initiator
	PayloadTypeTSr     PayloadType = 45 // Traffic Selector - Responder
	PayloadTypeSK      PayloadType = 46 // Encrypted and Authenticated
	PayloadTypeCP      PayloadType = 47 // Configuration
	PayloadTypeEAP     PayloadType = 48 // Extensible Authentication
	// 49-127 Unassigned
	// 128-255 Private use [RFC7296]
)

type IkeFlags uint8

const (
	RESPONSE  IkeFlags = 1 << 5
	VERSION   IkeFlags = 1 << 4
	INITIATOR IkeFlags = 1 << 3
)

func (f IkeFlags) IsResponse() bool {
	return f&RESPONSE != 0
}
func (f IkeFlags) IsInitiator() bool {
	return f&INITIATOR != 0
}

type ProtocolId uint8

const (
	IKE ProtocolId = 1
	AH  ProtocolId = 2
	ESP ProtocolId = 3
)

type TransformType uint8

const (
	TRANSFORM_TYPE_ENCR  TransformType = 1 // Encryption Algorithm, IKE and ESP
	TRANSFORM_TYPE_PRF   TransformType = 2 // Pseudorandom Function, IKE
	TRANSFORM_TYPE_INTEG TransformType = 3 // Integrity Algorithm, IKE & AH, optional in ESP
	TRANSFORM_TYPE_DH    TransformType = 4 // Diffie-Hellman Group
	TRANSFORM_TYPE_ESN   TransformType = 5 // Extended Sequence Numbers, AH and ESP
)

type EncrTransformId uint16

const (
	ENCR_DES          EncrTransformId = 2  // [RFC2405]
	ENCR_3DES         EncrTransformId = 3  // [RFC2451]
	ENCR_NULL         EncrTransformId = 11 // [RFC2410]
	ENCR_AES_CBC      EncrTransformId = 12 // [RFC3602]
	ENCR_AES_CTR      EncrTransformId = 13 // [RFC3686]
	AEAD_AES_GCM_8    EncrTransformId = 18 // [RFC4106]
	AEAD_AES_GCM_16   EncrTransformId = 20 // [RFC4106]
	ENCR_CAMELLIA_CBC EncrTransformId = 23 // [RFC5529]
	ENCR_CAMELLIA_CTR EncrTransformId = 24 // [RFC5529]
	// 28-1023 Unassigned
	// 1024-65535 Private use [RFC7296]
)

type PrfTransformId uint16

const (
	PRF_HMAC_MD5      PrfTransformId = 1 // [RFC2104]
	PRF_HMAC_SHA1     PrfTransformId = 2 // [RFC2104]
	PRF_AES128_XCBC   PrfTransformId = 4 // [RFC4434]
	PRF_HMAC_SHA2_256 PrfTransformId = 5 // [RFC4868]
	PRF_HMAC_SHA2_384 PrfTransformId = 6 // [RFC4868]
	PRF_HMAC_SHA2_512 PrfTransformId = 7 // [RFC4868]
)

type AuthTransformId uint16

const (
	AUTH_NONE              AuthTransformId = 0  // [RFC7296]
	AUTH_HMAC_MD5_96       AuthTransformId = 1  // [RFC2403]
	AUTH_HMAC_SHA1_96      AuthTransformId = 2  // [RFC2404]
	AUTH_AES_XCBC_96       AuthTransformId = 5  // [RFC3566]
	AUTH_HMAC_SHA2_256_128 AuthTransformId = 12 // [RFC4868]
	AUTH_HMAC_SHA2_384_192 AuthTransformId = 13 // [RFC4868]
	AUTH_HMAC_SHA2_512_256 AuthTransformId = 14 // [RFC4868]
)

type DhTransformId uint16

const (
	MODP_NONE DhTransformId = 0
	MODP_768  DhTransformId = 1
	MODP_1024 DhTransformId = 2
	MODP_1536 DhTransformId = 5
	MODP_2048 DhTransformId = 14
	MODP_3072 DhTransformId = 15
	MODP_4096 DhTransformId = 16
	MODP_6144 DhTransformId = 17
	MODP_8192 DhTransformId = 18
	ECP_256   DhTransformId = 19
	ECP_384   DhTransformId = 20
	ECP_521   DhTransformId = 21
)

type EsnTransformId uint16

const (
	ESN_NONE EsnTransformId = 0
	ESN      EsnTransformId = 1
)

type NotificationType uint16

const (
	// Error types
	UNSUPPORTED_CRITICAL_PAYLOAD  NotificationType = 1
	INVALID_IKE_SPI               NotificationType = 4
	INVALID_MAJOR_VERSION         NotificationType = 5
	INVALID_SYNTAX                NotificationType = 7
	INVALID_MESSAGE_ID            NotificationType = 9
	INVALID_SPI                   NotificationType = 11
	NO_PROPOSAL_CHOSEN            NotificationType = 14
	INVALID_KE_PAYLOAD            NotificationType = 17
	AUTHENTICATION_FAILED         NotificationType = 24
	SINGLE_PAIR_REQUIRED          NotificationType = 34
	NO_ADDITIONAL_SAS             NotificationType = 35
	INTERNAL_ADDRESS_FAILURE      NotificationType = 36
	FAILED_CP_REQUIRED            NotificationType = 37
	TS_UNACCEPTABLE               NotificationType = 38
	INVALID_SELECTORS             NotificationType = 39
	TEMPORARY_FAILURE             NotificationType = 43
	CHILD_SA_NOT_FOUND            NotificationType = 44
	// Status types
	INITIAL_CONTACT               NotificationType = 16384
	SET_WINDOW_SIZE               NotificationType = 16385
	ADDITIONAL_TS_POSSIBLE        NotificationType = 16386
	IPCOMP_SUPPORTED              NotificationType = 16387
	NAT_DETECTION_SOURCE_IP       NotificationType = 16388
	NAT_DETECTION_DESTINATION_IP  NotificationType = 16389
	COOKIE                        NotificationType = 16390
	USE_TRANSPORT_MODE            NotificationType = 16391
	HTTP_CERT_LOOKUP_SUPPORTED    NotificationType = 16392
	REKEY_SA                      NotificationType = 16393
	ESP_TFC_PADDING_NOT_SUPPORTED NotificationType = 16394
	NON_FIRST_FRAGMENTS_ALSO      NotificationType = 16395
	AUTH_LIFETIME                 NotificationType = 16403 // [RFC4478]
	SIGNATURE_HASH_ALGORITHMS     NotificationType = 16431 // [RFC7427]
)

type IdType uint8

const (
	ID_IPV4_ADDR   IdType = 1
	ID_FQDN        IdType = 2
	ID_RFC822_ADDR IdType = 3
	ID_IPV6_ADDR   IdType = 5
	ID_DER_ASN1_DN IdType = 9
	ID_DER_ASN1_GN IdType = 10
	ID_KEY_ID      IdType = 11
)

type CertEncodingType uint8

// rfc7296 section 3.6
const (
	X_509_CERTIFICATE_SIGNATURE   CertEncodingType = 4
	CERTIFICATE_REVOCATION_LIST   CertEncodingType = 7
	RAW_RSA_KEY                   CertEncodingType = 11 // DEPRECATED
	HASH_URL_OF_X_509_CERTIFICATE CertEncodingType = 12
	HASH_URL_OF_X_509_BUNDLE      CertEncodingType = 13
)

type AuthMethod uint8

const (
	AUTH_RSA_DIGITAL_SIGNATURE             AuthMethod = 1
	AUTH_SHARED_KEY_MESSAGE_INTEGRITY_CODE AuthMethod = 2
	AUTH_DSS_DIGITAL_SIGNATURE             AuthMethod = 3
	AUTH_ECDSA_256                         AuthMethod = 9  // [RFC4754]
	AUTH_ECDSA_384                         AuthMethod = 10 // [RFC4754]
	AUTH_ECDSA_521                         AuthMethod = 11 // [RFC4754]
	AUTH_DIGITAL_SIGNATURE                 AuthMethod = 14 // [RFC7427]
)

type SelectorType uint8

const (
	TS_IPV4_ADDR_RANGE SelectorType = 7
	TS_IPV6_ADDR_RANGE SelectorType = 8
)

type ConfigurationType uint8

const (
	CFG_REQUEST ConfigurationType = 1
	CFG_REPLY   ConfigurationType = 2
	CFG_SET     ConfigurationType = 3
	CFG_ACK     ConfigurationType = 4
)

type ConfigurationAttributeType uint16

// rfc7296 section 3.15.1
const (
	INTERNAL_IP4_ADDRESS ConfigurationAttributeType = 1
	INTERNAL_IP4_NETMASK ConfigurationAttributeType = 2
	INTERNAL_IP4_DNS     ConfigurationAttributeType = 3
	INTERNAL_IP4_NBNS    ConfigurationAttributeType = 4
	INTERNAL_IP4_DHCP    ConfigurationAttributeType = 6
	APPLICATION_VERSION  ConfigurationAttributeType = 7
	INTERNAL_IP6_ADDRESS ConfigurationAttributeType = 8
	INTERNAL_IP6_DNS     ConfigurationAttributeType = 10
	INTERNAL_IP6_DHCP    ConfigurationAttributeType = 12
	INTERNAL_IP4_SUBNET  ConfigurationAttributeType = 13
	SUPPORTED_ATTRIBUTES ConfigurationAttributeType = 14
	INTERNAL_IP6_SUBNET  ConfigurationAttributeType = 15
)

type AttributeType uint16

const (
	ATTRIBUTE_TYPE_KEY_LENGTH AttributeType = 14
)

const (
	MIN_LEN_ATTRIBUTE        = 4
	MIN_LEN_TRANSFORM        = 8
	MIN_LEN_PROPOSAL         = 8
	MIN_LEN_SELECTOR         = 8
	MIN_LEN_TRAFFIC_SELECTOR = 4
)
