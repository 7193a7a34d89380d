// Package thinwaist implements the thin-waist helper of spec.md §4.H:
// expanding a wildcard-bound multiaddr ("/ip4/0.0.0.0/..." or
// "/ip6/::/...") into one concrete multiaddr per matching network
// interface address.
//
// Grounded on the teacher's collector package's per-poll-cycle shape: walk
// the enumerated set (there, open sockets; here, interface addresses),
// filter out the ones that don't qualify, map each survivor to a derived
// value, and return the resulting slice. No polling loop is needed here --
// a single NetIfaceProvider.List() call replaces the teacher's repeated
// poll -- so only the filter/map shape carries over.
package thinwaist

import (
	"net"

	maddr "github.com/m-lab/go-multiaddr"
	"github.com/m-lab/go-multiaddr/metrics"
	"github.com/m-lab/go-multiaddr/protocol"
	"github.com/m-lab/go-multiaddr/wire"
)

// IfaceAddr is one address reported by a NetIfaceProvider, with the flags
// spec.md §6 requires (loopback/up/multicast).
type IfaceAddr struct {
	Name      string
	IP        net.IP
	Loopback  bool
	Up        bool
	Multicast bool
}

// NetIfaceProvider is the capability Expand needs: a synchronous or
// suspending enumeration of the host's network interface addresses.
type NetIfaceProvider interface {
	List() ([]IfaceAddr, error)
}

var wildcard4 = net.IPv4zero
var wildcard6 = net.IPv6unspecified

// Expand replaces a wildcard-bound ip4/ip6 component in m with one
// multiaddr per non-loopback unicast address of the matching family,
// preserving every other component (port and beyond) verbatim. If m is
// not wildcard-bound, Expand returns []Multiaddr{m} unchanged.
func Expand(m maddr.Multiaddr, provider NetIfaceProvider) ([]maddr.Multiaddr, error) {
	reg := protocol.Default()
	comps, err := m.Components()
	if err != nil {
		return nil, err
	}
	if len(comps) == 0 {
		return []maddr.Multiaddr{m}, nil
	}

	idx, family := wildcardIndex(comps)
	if idx == -1 {
		return []maddr.Multiaddr{m}, nil
	}

	addrs, err := provider.List()
	if err != nil {
		return nil, err
	}

	var out []maddr.Multiaddr
	for _, a := range addrs {
		if a.Loopback || a.IP.IsMulticast() || !matchesFamily(a.IP, family) {
			continue
		}
		desc, err := reg.ByName(family)
		if err != nil {
			return nil, err
		}
		b := a.IP.To4()
		if family == "ip6" {
			b = a.IP.To16()
		}
		replaced := make([]wire.Component, len(comps))
		copy(replaced, comps)
		replaced[idx] = wire.Component{Proto: desc, Value: b}
		out = append(out, maddr.NewFromComponents(reg, replaced))
	}
	metrics.ThinwaistExpansionCount.Add(float64(len(out)))
	return out, nil
}

// wildcardIndex reports the index of a wildcard-bound ip4/ip6 component
// and which family it is, or -1 if m is not wildcard-bound.
func wildcardIndex(comps []wire.Component) (int, string) {
	for i, c := range comps {
		switch c.Proto.Name {
		case "ip4":
			if net.IP(c.Value).Equal(wildcard4) {
				return i, "ip4"
			}
		case "ip6":
			if net.IP(c.Value).Equal(wildcard6) {
				return i, "ip6"
			}
		}
	}
	return -1, ""
}

func matchesFamily(ip net.IP, family string) bool {
	if family == "ip4" {
		return ip.To4() != nil
	}
	return ip.To4() == nil && ip.To16() != nil
}
