package ike

import "github.com/lucifiery/strongswan/protocol"

// ruleEntry bounds the occurrence count of one payload type in a message and
// says whether the payload belongs inside the SK envelope.
type ruleEntry struct {
	payloadType protocol.PayloadType
	min, max    int
	encrypted   bool
}

// messageRule is the structural contract for one (exchange type, direction)
// message. Payload types without an entry are unconstrained: tolerated in any
// quantity and not required to be encrypted.
type messageRule struct {
	exchangeType     protocol.IkeExchangeType
	isRequest        bool
	encryptedContent bool
	entries          []ruleEntry
}

func (r *messageRule) entry(t protocol.PayloadType) (ruleEntry, bool) {
	for _, e := range r.entries {
		if e.payloadType == t {
			return e, true
		}
	}
	return ruleEntry{}, false
}

const (
	maxNotifies = 16
	maxVendors  = 10
	maxDeletes  = 4
)

// messageRules is read-only after initialization; lookups from any number of
// messages are safe without synchronization.
var messageRules = []*messageRule{
	// IKE_SA_INIT is the only unprotected exchange
	{
		exchangeType: protocol.IKE_SA_INIT,
		isRequest:    true,
		entries: []ruleEntry{
			{protocol.PayloadTypeSA, 1, 1, false},
			{protocol.PayloadTypeKE, 1, 1, false},
			{protocol.PayloadTypeNonce, 1, 1, false},
			{protocol.PayloadTypeN, 0, maxNotifies, false},
			{protocol.PayloadTypeV, 0, maxVendors, false},
		},
	},
	{
		exchangeType: protocol.IKE_SA_INIT,
		isRequest:    false,
		entries: []ruleEntry{
			{protocol.PayloadTypeSA, 1, 1, false},
			{protocol.PayloadTypeKE, 1, 1, false},
			{protocol.PayloadTypeNonce, 1, 1, false},
			{protocol.PayloadTypeCERTREQ, 0, 1, false},
			{protocol.PayloadTypeN, 0, maxNotifies, false},
			{protocol.PayloadTypeV, 0, maxVendors, false},
		},
	},
	{
		exchangeType:     protocol.IKE_AUTH,
		isRequest:        true,
		encryptedContent: true,
		entries: []ruleEntry{
			{protocol.PayloadTypeIDi, 1, 1, true},
			{protocol.PayloadTypeCERT, 0, 1, true},
			{protocol.PayloadTypeCERTREQ, 0, 1, true},
			{protocol.PayloadTypeIDr, 0, 1, true},
			{protocol.PayloadTypeAUTH, 1, 1, true},
			{protocol.PayloadTypeSA, 1, 1, true},
			{protocol.PayloadTypeTSi, 1, 1, true},
			{protocol.PayloadTypeTSr, 1, 1, true},
			{protocol.PayloadTypeCP, 0, 1, true},
			{protocol.PayloadTypeN, 0, maxNotifies, true},
			{protocol.PayloadTypeV, 0, maxVendors, true},
		},
	},
	{
		exchangeType:     protocol.IKE_AUTH,
		isRequest:        false,
		encryptedContent: true,
		entries: []ruleEntry{
			{protocol.PayloadTypeCERT, 0, 1, true},
			{protocol.PayloadTypeIDr, 0, 1, true},
			{protocol.PayloadTypeAUTH, 1, 1, true},
			{protocol.PayloadTypeSA, 1, 1, true},
			{protocol.PayloadTypeTSi, 1, 1, true},
			{protocol.PayloadTypeTSr, 1, 1, true},
			{protocol.PayloadTypeCP, 0, 1, true},
			{protocol.PayloadTypeN, 0, maxNotifies, true},
			{protocol.PayloadTypeV, 0, maxVendors, true},
		},
	},
	{
		exchangeType:     protocol.CREATE_CHILD_SA,
		isRequest:        true,
		encryptedContent: true,
		entries: []ruleEntry{
			{protocol.PayloadTypeSA, 1, 1, true},
			{protocol.PayloadTypeNonce, 1, 1, true},
			{protocol.PayloadTypeKE, 0, 1, true},
			{protocol.PayloadTypeTSi, 0, 1, true},
			{protocol.PayloadTypeTSr, 0, 1, true},
			{protocol.PayloadTypeN, 0, maxNotifies, true},
		},
	},
	{
		exchangeType:     protocol.CREATE_CHILD_SA,
		isRequest:        false,
		encryptedContent: true,
		entries: []ruleEntry{
			{protocol.PayloadTypeSA, 1, 1, true},
			{protocol.PayloadTypeNonce, 1, 1, true},
			{protocol.PayloadTypeKE, 0, 1, true},
			{protocol.PayloadTypeTSi, 0, 1, true},
			{protocol.PayloadTypeTSr, 0, 1, true},
			{protocol.PayloadTypeN, 0, maxNotifies, true},
		},
	},
	{
		exchangeType:     protocol.INFORMATIONAL,
		isRequest:        true,
		encryptedContent: true,
		entries: []ruleEntry{
			{protocol.PayloadTypeN, 0, maxNotifies, true},
			{protocol.PayloadTypeD, 0, maxDeletes, true},
			{protocol.PayloadTypeCP, 0, 1, true},
		},
	},
	{
		exchangeType:     protocol.INFORMATIONAL,
		isRequest:        false,
		encryptedContent: true,
		entries: []ruleEntry{
			{protocol.PayloadTypeN, 0, maxNotifies, true},
			{protocol.PayloadTypeD, 0, maxDeletes, true},
			{protocol.PayloadTypeCP, 0, 1, true},
		},
	},
}

// findRule returns the first rule matching the exchange type and direction,
// or nil. The table holds one rule per pair.
func findRule(et protocol.IkeExchangeType, isRequest bool) *messageRule {
	for _, r := range messageRules {
		if r.exchangeType == et && r.isRequest == isRequest {
			return r
		}
	}
	return nil
}
