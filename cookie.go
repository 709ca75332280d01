package ike

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"net"

	"github.com/pkg/errors"

	"github.com/lucifiery/strongswan/protocol"
)

// COOKIE based denial of service protection, rfc7296 section 2.6. A loaded
// responder answers an IKE_SA_INIT request with a stateless cookie and only
// commits resources once the initiator echoes it back.

// Version prefix for the cookie secret; bumped when the secret rotates.
var cookieVersion = []byte{0, 0}

var cookieSecret [64]byte

func init() {
	rand.Read(cookieSecret[:])
}

// MakeCookie computes the cookie for an IKE_SA_INIT request:
// <VersionIDofSecret> | Hash(Ni | IPi | SPIi | <secret>).
func MakeCookie(m *Message, remote net.Addr) ([]byte, error) {
	no, ok := m.Payloads.Get(protocol.PayloadTypeNonce).(*protocol.NoncePayload)
	if !ok {
		return nil, errors.Wrap(protocol.ErrInvalidState, "cookie needs a nonce payload")
	}
	digest := sha1.New()
	digest.Write(no.Nonce.Bytes())
	digest.Write(AddrToIp(remote))
	digest.Write(m.IkeHeader.SpiI)
	digest.Write(cookieSecret[:])
	return append(append([]byte{}, cookieVersion...), digest.Sum(nil)...), nil
}

// CheckCookie verifies the cookie echoed in an IKE_SA_INIT request. A missing
// or stale cookie reports the value the initiator must resend with.
func CheckCookie(m *Message, remote net.Addr) (want []byte, err error) {
	want, err = MakeCookie(m, remote)
	if err != nil {
		return nil, err
	}
	cookie := m.Payloads.GetNotification(protocol.COOKIE)
	if cookie == nil {
		return want, errors.Wrap(protocol.ErrVerify, "missing cookie")
	}
	// locally built notifies carry the value in Data; decoded ones mirror it
	// into NotificationMessage
	got := cookie.Data
	if got == nil {
		got, _ = cookie.NotificationMessage.([]byte)
	}
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return want, errors.Wrap(protocol.ErrVerify, "stale cookie")
	}
	return nil, nil
}
