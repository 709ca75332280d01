package protocol

import (
	"github.com/pkg/errors"
)

// The four failure classes of the message layer. Concrete failures wrap one
// of these with context; callers discriminate with errors.Cause.
var (
	// ErrParse - malformed bytes or an unknown payload type at the decode
	// boundary. Fatal to the current parse attempt.
	ErrParse = errors.New("parse error")
	// ErrVerify - a structural or cryptographic check failed. The message
	// must be dropped.
	ErrVerify = errors.New("verification failed")
	// ErrNotSupported - a payload occurrence count is outside the bounds the
	// message rule allows.
	ErrNotSupported = errors.New("not supported")
	// ErrInvalidState - caller contract violation, eg generating a message
	// before it is fully configured.
	ErrInvalidState = errors.New("invalid state")
)

// IkeErrorCode is the set of IKEv2 error notifications a failed message can
// be answered with.
type IkeErrorCode uint16

const (
	ERR_UNSUPPORTED_CRITICAL_PAYLOAD IkeErrorCode = IkeErrorCode(UNSUPPORTED_CRITICAL_PAYLOAD)
	ERR_INVALID_IKE_SPI              IkeErrorCode = IkeErrorCode(INVALID_IKE_SPI)
	ERR_INVALID_MAJOR_VERSION        IkeErrorCode = IkeErrorCode(INVALID_MAJOR_VERSION)
	ERR_INVALID_SYNTAX               IkeErrorCode = IkeErrorCode(INVALID_SYNTAX)
	ERR_INVALID_MESSAGE_ID           IkeErrorCode = IkeErrorCode(INVALID_MESSAGE_ID)
	ERR_INVALID_SPI                  IkeErrorCode = IkeErrorCode(INVALID_SPI)
	ERR_NO_PROPOSAL_CHOSEN           IkeErrorCode = IkeErrorCode(NO_PROPOSAL_CHOSEN)
	ERR_INVALID_KE_PAYLOAD           IkeErrorCode = IkeErrorCode(INVALID_KE_PAYLOAD)
	ERR_AUTHENTICATION_FAILED        IkeErrorCode = IkeErrorCode(AUTHENTICATION_FAILED)
	ERR_TS_UNACCEPTABLE              IkeErrorCode = IkeErrorCode(TS_UNACCEPTABLE)
	ERR_TEMPORARY_FAILURE            IkeErrorCode = IkeErrorCode(TEMPORARY_FAILURE)
	ERR_CHILD_SA_NOT_FOUND           IkeErrorCode = IkeErrorCode(CHILD_SA_NOT_FOUND)
)

func (e IkeErrorCode) Error() string {
	return NotificationType(e).String()
}

// GetIkeErrorCode checks if a received notification is a fatal error.
func GetIkeErrorCode(nt NotificationType) (IkeErrorCode, bool) {
	switch IkeErrorCode(nt) {
	case ERR_UNSUPPORTED_CRITICAL_PAYLOAD, ERR_INVALID_IKE_SPI, ERR_INVALID_MAJOR_VERSION,
		ERR_INVALID_SYNTAX, ERR_INVALID_MESSAGE_ID, ERR_INVALID_SPI, ERR_NO_PROPOSAL_CHOSEN,
		ERR_INVALID_KE_PAYLOAD, ERR_AUTHENTICATION_FAILED, ERR_TS_UNACCEPTABLE,
		ERR_TEMPORARY_FAILURE, ERR_CHILD_SA_NOT_FOUND:
		return IkeErrorCode(nt), true
	}
	return 0, false
}
