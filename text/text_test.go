package text

import (
	"testing"

	"github.com/m-lab/go-multiaddr/maerr"
	"github.com/m-lab/go-multiaddr/protocol"
)

func TestParseSerializeRoundTrip(t *testing.T) {
	reg := protocol.Default()
	cases := []string{
		"/ip4/127.0.0.1/tcp/4001",
		"/ip6/::1/udp/9090/quic-v1",
		"/ip4/1.2.3.4/tcp/80/ws/p2p-circuit",
		"/unix/tmp/foo/bar.sock",
		"/dnsaddr/bootstrap.libp2p.io/p2p/QmNnooDu7bfjPFoTZYxMNLWUQJyrVwtbZg5gBMjTezGAJN",
		"",
	}
	for _, s := range cases {
		comps, err := Parse(reg, s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		got := Serialize(comps)
		want := s
		if want == "" {
			want = ""
		}
		if got != want {
			t.Errorf("round trip %q -> %q", s, got)
		}
	}
}

func TestParseUnixPathTerminal(t *testing.T) {
	reg := protocol.Default()
	comps, err := Parse(reg, "/unix/tmp/foo/bar.sock")
	if err != nil {
		t.Fatal(err)
	}
	if len(comps) != 1 {
		t.Fatalf("expected 1 component, got %d", len(comps))
	}
	text, err := comps[0].Proto.Codec.BytesToText(comps[0].Value)
	if err != nil || text != "/tmp/foo/bar.sock" {
		t.Errorf("got %q, %v", text, err)
	}
}

func TestParseMissingValue(t *testing.T) {
	reg := protocol.Default()
	if _, err := Parse(reg, "/tcp"); err != maerr.ErrMissingValue {
		t.Errorf("got %v, want ErrMissingValue", err)
	}
}

func TestParseUnknownProtocolName(t *testing.T) {
	reg := protocol.Default()
	if _, err := Parse(reg, "/bogus/1"); err == nil {
		t.Error("expected error")
	}
}

func TestComponentFromTextRejectsUnexpectedValue(t *testing.T) {
	reg := protocol.Default()
	desc, _ := reg.ByName("tls")
	if _, err := ComponentFromText(desc, "anything"); err != maerr.ErrUnexpectedValue {
		t.Errorf("got %v, want ErrUnexpectedValue", err)
	}
}

func TestParseDNSAddrPreservesUnresolvedForm(t *testing.T) {
	reg := protocol.Default()
	s := "/dnsaddr/bootstrap.libp2p.io/p2p/QmNnooDu7bfjPFoTZYxMNLWUQJyrVwtbZg5gBMjTezGAJN"
	comps, err := Parse(reg, s)
	if err != nil {
		t.Fatal(err)
	}
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %d", len(comps))
	}
	if comps[0].Proto.Name != "dnsaddr" || comps[1].Proto.Name != "p2p" {
		t.Fatalf("got protocols %s/%s", comps[0].Proto.Name, comps[1].Proto.Name)
	}
	if got := Serialize(comps); got != s {
		t.Errorf("Serialize = %q, want %q (unresolved form preserved)", got, s)
	}
}

func TestSerializeNormalizesIpfsAliasToP2P(t *testing.T) {
	reg := protocol.Default()
	peer := "QmNnooDu7bfjPFoTZYxMNLWUQJyrVwtbZg5gBMjTezGAJN"
	comps, err := Parse(reg, "/ipfs/"+peer)
	if err != nil {
		t.Fatal(err)
	}
	if comps[0].Proto.Name != "ipfs" {
		t.Fatalf("expected parsed component to keep name %q, got %q", "ipfs", comps[0].Proto.Name)
	}
	if got, want := Serialize(comps), "/p2p/"+peer; got != want {
		t.Errorf("Serialize(%q) = %q, want %q", "ipfs", got, want)
	}
}

func TestParseLeadingSlashRequired(t *testing.T) {
	reg := protocol.Default()
	if _, err := Parse(reg, "ip4/1.2.3.4"); err == nil {
		t.Error("expected error for missing leading slash")
	}
}
