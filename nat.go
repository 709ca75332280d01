package ike

import (
	"bytes"
	"crypto/sha1"
	"net"

	"github.com/msgboxio/packets"

	"github.com/lucifiery/strongswan/protocol"
)

// NAT traversal detection, rfc7296 section 2.23. Each side notifies a hash
// of the spis and the address it believes it is sending from / to; a mismatch
// on receipt means a NAT rewrote that address.

func AddrToIp(addr net.Addr) net.IP {
	switch a := addr.(type) {
	case *net.UDPAddr:
		return checkV4(a.IP)
	case *net.TCPAddr:
		return checkV4(a.IP)
	}
	return nil
}

func AddrToIpPort(addr net.Addr) (net.IP, int) {
	switch a := addr.(type) {
	case *net.UDPAddr:
		return checkV4(a.IP), a.Port
	case *net.TCPAddr:
		return checkV4(a.IP), a.Port
	}
	return nil, 0
}

func checkV4(ip net.IP) net.IP {
	if v4 := ip.To4(); v4 != nil {
		return v4
	}
	return ip
}

func natHash(spiI, spiR protocol.Spi, addr net.Addr) []byte {
	ip, port := AddrToIpPort(addr)
	digest := sha1.New()
	digest.Write(spiI)
	digest.Write(spiR)
	digest.Write(ip)
	portb := []byte{0, 0}
	packets.WriteB16(portb, 0, uint16(port))
	digest.Write(portb)
	return digest.Sum(nil)
}

// AddNatDetection appends the source/destination address hash notifies for
// the given endpoints.
func AddNatDetection(m *Message, local, remote net.Addr) {
	m.AddPayload(&protocol.NotifyPayload{
		PayloadHeader:    &protocol.PayloadHeader{},
		NotificationType: protocol.NAT_DETECTION_SOURCE_IP,
		Data:             natHash(m.IkeHeader.SpiI, m.IkeHeader.SpiR, local),
	})
	m.AddPayload(&protocol.NotifyPayload{
		PayloadHeader:    &protocol.PayloadHeader{},
		NotificationType: protocol.NAT_DETECTION_DESTINATION_IP,
		Data:             natHash(m.IkeHeader.SpiI, m.IkeHeader.SpiR, remote),
	})
}

// DetectNat compares a parsed message's detection notifies against the
// addresses the packet actually travelled between. Absent notifies report no
// NAT.
func DetectNat(m *Message, local, remote net.Addr) (peerBehindNat, selfBehindNat bool) {
	spiI, spiR := m.IkeHeader.SpiI, m.IkeHeader.SpiR
	if n := m.Payloads.GetNotification(protocol.NAT_DETECTION_SOURCE_IP); n != nil {
		peerBehindNat = !bytes.Equal(n.Data, natHash(spiI, spiR, remote))
	}
	if n := m.Payloads.GetNotification(protocol.NAT_DETECTION_DESTINATION_IP); n != nil {
		selfBehindNat = !bytes.Equal(n.Data, natHash(spiI, spiR, local))
	}
	return
}
