package ike

import (
	"bytes"
	"net"

	"github.com/pkg/errors"

	"github.com/lucifiery/strongswan/protocol"
)

// FirstLastAddressToIPNet builds the subnet covering the address range
// [start, end]. Only works for ranges without holes.
func FirstLastAddressToIPNet(start, end net.IP) *net.IPNet {
	l := len(start)
	if l != len(end) {
		return nil
	}
	if bytes.Equal(start, end) {
		return &net.IPNet{IP: start, Mask: net.CIDRMask(l*8, l*8)}
	}
	mask := make([]byte, l)
	for idx := range start {
		mask[idx] = ^(end[idx] - start[idx])
	}
	return &net.IPNet{IP: start, Mask: mask}
}

func IPNetToFirstAddress(n *net.IPNet) net.IP {
	first := make([]byte, len(n.IP))
	for idx := range n.IP {
		first[idx] = n.IP[idx] & n.Mask[idx]
	}
	return first
}

func IPNetToLastAddress(n *net.IPNet) net.IP {
	last := make([]byte, len(n.IP))
	for idx := range n.IP {
		last[idx] = (n.IP[idx] & n.Mask[idx]) | ^n.Mask[idx]
	}
	return last
}

// SelectorFromIPNet covers the given subnet, all ports, all protocols.
func SelectorFromIPNet(n *net.IPNet) (*protocol.Selector, error) {
	first := IPNetToFirstAddress(n)
	last := IPNetToLastAddress(n)
	stype := protocol.TS_IPV4_ADDR_RANGE
	if len(n.IP) == net.IPv6len {
		stype = protocol.TS_IPV6_ADDR_RANGE
	}
	if len(first) != len(last) {
		return nil, errors.Errorf("bad subnet: %s", n)
	}
	return &protocol.Selector{
		Type:         stype,
		IpProtocolId: 0,
		StartPort:    0,
		Endport:      65535,
		StartAddress: first,
		EndAddress:   last,
	}, nil
}

// IPNetFromSelector is the inverse of SelectorFromIPNet for contiguous
// address ranges.
func IPNetFromSelector(sel *protocol.Selector) (*net.IPNet, error) {
	n := FirstLastAddressToIPNet(sel.StartAddress, sel.EndAddress)
	if n == nil {
		return nil, errors.Errorf("bad selector range: %s", sel)
	}
	return n, nil
}
