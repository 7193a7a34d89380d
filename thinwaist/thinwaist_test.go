package thinwaist

import (
	"net"
	"testing"

	maddr "github.com/m-lab/go-multiaddr"
)

type stubProvider struct {
	addrs []IfaceAddr
}

func (s *stubProvider) List() ([]IfaceAddr, error) { return s.addrs, nil }

func TestExpandWildcardIP4(t *testing.T) {
	provider := &stubProvider{addrs: []IfaceAddr{
		{Name: "lo", IP: net.ParseIP("127.0.0.1"), Loopback: true, Up: true},
		{Name: "eth0", IP: net.ParseIP("10.0.0.5"), Up: true},
		{Name: "eth1", IP: net.ParseIP("10.0.0.6"), Up: true},
	}}
	m, _ := maddr.NewFromText("/ip4/0.0.0.0/tcp/8080")
	out, err := Expand(m, provider)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d results, want 2 (loopback excluded)", len(out))
	}
	got := map[string]bool{out[0].String(): true, out[1].String(): true}
	if !got["/ip4/10.0.0.5/tcp/8080"] || !got["/ip4/10.0.0.6/tcp/8080"] {
		t.Errorf("got %v", got)
	}
}

func TestExpandNonWildcardReturnsInputUnchanged(t *testing.T) {
	provider := &stubProvider{addrs: []IfaceAddr{
		{Name: "eth0", IP: net.ParseIP("10.0.0.5"), Up: true},
	}}
	m, _ := maddr.NewFromText("/ip4/1.2.3.4/tcp/8080")
	out, err := Expand(m, provider)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || !out[0].Equal(m) {
		t.Errorf("got %+v", out)
	}
}

func TestExpandWildcardIP6SkipsIP4Addrs(t *testing.T) {
	provider := &stubProvider{addrs: []IfaceAddr{
		{Name: "eth0", IP: net.ParseIP("10.0.0.5"), Up: true},
		{Name: "eth0", IP: net.ParseIP("2001:db8::1"), Up: true},
	}}
	m, _ := maddr.NewFromText("/ip6/::/tcp/8080")
	out, err := Expand(m, provider)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d results, want 1", len(out))
	}
	if out[0].String() != "/ip6/2001:db8::1/tcp/8080" {
		t.Errorf("got %q", out[0].String())
	}
}
