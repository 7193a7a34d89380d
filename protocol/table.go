package protocol

import "github.com/m-lab/go-multiaddr/codec"

// canonicalTable returns spec.md §3's canonical protocol set, grounded on
// the teacher's inetdiag.go iota block of INET_DIAG_* attribute codes --
// here a literal table instead of an iota run, since multiaddr codes are
// not contiguous -- and on the dep2p-go-dep2p protocols.go table this spec
// was distilled to resemble (same code values, same name/size pairing).
func canonicalTable() []Descriptor {
	return []Descriptor{
		{Code: 4, Name: "ip4", Size: 32, Codec: codec.IP4{}},
		{Code: 6, Name: "tcp", Size: 16, Codec: codec.Port{Proto: "tcp"}},
		{Code: 33, Name: "dccp", Size: 16, Codec: codec.Port{Proto: "dccp"}},
		{Code: 41, Name: "ip6", Size: 128, Codec: codec.IP6{}},
		{Code: 42, Name: "ip6zone", Size: Variable, Codec: codec.IP6Zone{}},
		{Code: 43, Name: "ipcidr", Size: 8, Codec: codec.CIDR{}},
		{Code: 53, Name: "dns", Size: Variable, Codec: codec.DNSName{Proto: "dns"}, Resolvable: true},
		{Code: 54, Name: "dns4", Size: Variable, Codec: codec.DNSName{Proto: "dns4"}, Resolvable: true},
		{Code: 55, Name: "dns6", Size: Variable, Codec: codec.DNSName{Proto: "dns6"}, Resolvable: true},
		{Code: 56, Name: "dnsaddr", Size: Variable, Codec: codec.DNSName{Proto: "dnsaddr"}, Resolvable: true},
		{Code: 132, Name: "sctp", Size: 16, Codec: codec.Port{Proto: "sctp"}},
		{Code: 273, Name: "udp", Size: 16, Codec: codec.Port{Proto: "udp"}},
		{Code: 275, Name: "p2p-webrtc-star", Size: 0, Codec: codec.Zero{Proto: "p2p-webrtc-star"}},
		{Code: 276, Name: "p2p-webrtc-direct", Size: 0, Codec: codec.Zero{Proto: "p2p-webrtc-direct"}},
		{Code: 277, Name: "p2p-stardust", Size: 0, Codec: codec.Zero{Proto: "p2p-stardust"}},
		{Code: 290, Name: "p2p-circuit", Size: 0, Codec: codec.Zero{Proto: "p2p-circuit"}},
		{Code: 301, Name: "udt", Size: 0, Codec: codec.Zero{Proto: "udt"}},
		{Code: 302, Name: "utp", Size: 0, Codec: codec.Zero{Proto: "utp"}},
		{Code: 400, Name: "unix", Size: PathTerminal, Path: true, Codec: codec.Unix{}},
		{Code: 421, Name: "p2p", Size: Variable, Codec: codec.P2P{}},
		{Code: 443, Name: "https", Size: 0, Codec: codec.Zero{Proto: "https"}},
		{Code: 444, Name: "onion", Size: 96, Codec: codec.Onion{}},
		{Code: 445, Name: "onion3", Size: 296, Codec: codec.Onion3{}},
		{Code: 446, Name: "garlic64", Size: Variable, Codec: codec.Garlic64{}},
		{Code: 447, Name: "garlic32", Size: Variable, Codec: codec.Garlic32{}},
		{Code: 448, Name: "tls", Size: 0, Codec: codec.Zero{Proto: "tls"}},
		{Code: 449, Name: "sni", Size: Variable, Codec: codec.DNSName{Proto: "sni"}},
		{Code: 454, Name: "noise", Size: 0, Codec: codec.Zero{Proto: "noise"}},
		{Code: 460, Name: "quic", Size: 0, Codec: codec.Zero{Proto: "quic"}},
		{Code: 461, Name: "quic-v1", Size: 0, Codec: codec.Zero{Proto: "quic-v1"}},
		{Code: 465, Name: "webtransport", Size: 0, Codec: codec.Zero{Proto: "webtransport"}},
		{Code: 466, Name: "certhash", Size: Variable, Codec: codec.CertHash{}},
		{Code: 477, Name: "ws", Size: 0, Codec: codec.Zero{Proto: "ws"}},
		{Code: 478, Name: "wss", Size: 0, Codec: codec.Zero{Proto: "wss"}},
		{Code: 479, Name: "p2p-websocket-star", Size: 0, Codec: codec.Zero{Proto: "p2p-websocket-star"}},
		{Code: 480, Name: "http", Size: 0, Codec: codec.Zero{Proto: "http"}},
	}
}
