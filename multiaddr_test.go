package multiaddr

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/m-lab/go-multiaddr/maerr"
	"github.com/m-lab/go-multiaddr/protocol"
)

func TestTextBytesRoundTrip(t *testing.T) {
	cases := []string{
		"/ip4/127.0.0.1/tcp/4001",
		"/ip6/::1/udp/9090/quic-v1",
		"",
	}
	for _, s := range cases {
		m, err := NewFromText(s)
		if err != nil {
			t.Fatalf("NewFromText(%q): %v", s, err)
		}
		if got := m.String(); got != s {
			t.Errorf("String() = %q, want %q", got, s)
		}
		b := m.Bytes()
		m2, err := NewFromBytes(b)
		if err != nil {
			t.Fatalf("NewFromBytes: %v", err)
		}
		if !m.Equal(m2) {
			t.Errorf("round trip bytes mismatch for %q", s)
		}
	}
}

func TestEqualIgnoresMemoization(t *testing.T) {
	a, _ := NewFromText("/ip4/1.2.3.4/tcp/80")
	b, _ := NewFromText("/ip4/1.2.3.4/tcp/80")
	if !a.Equal(b) {
		t.Error("expected equal")
	}
	_ = a.String()
	if !a.Equal(b) {
		t.Error("expected equal after memoizing text")
	}
}

func TestAtNegativeIndex(t *testing.T) {
	m, _ := NewFromText("/ip4/1.2.3.4/tcp/80/ws")
	last, err := m.At(-1)
	if err != nil || last.Proto.Name != "ws" {
		t.Errorf("At(-1) = %+v, %v", last, err)
	}
}

func TestAtOutOfRange(t *testing.T) {
	m, _ := NewFromText("/tcp/80")
	if _, err := m.At(5); err != maerr.ErrIndexOutOfRange {
		t.Errorf("got %v, want ErrIndexOutOfRange", err)
	}
}

func TestSliceEmptyIsValid(t *testing.T) {
	m, _ := NewFromText("/ip4/1.2.3.4/tcp/80")
	empty, err := m.Slice(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if empty.String() != "" {
		t.Errorf("got %q, want empty", empty.String())
	}
}

func TestEncapsulate(t *testing.T) {
	a, _ := NewFromText("/ip4/1.2.3.4")
	b, _ := NewFromText("/tcp/80")
	got := a.Encapsulate(b)
	if got.String() != "/ip4/1.2.3.4/tcp/80" {
		t.Errorf("got %q", got.String())
	}
}

func TestDecapsulateSuffixPresent(t *testing.T) {
	m, _ := NewFromText("/ip4/1.2.3.4/tcp/80/ws")
	suffix, _ := NewFromText("/tcp/80/ws")
	got, err := m.Decapsulate(suffix)
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "/ip4/1.2.3.4" {
		t.Errorf("got %q", got.String())
	}
}

func TestDecapsulateSuffixAbsentReturnsCopy(t *testing.T) {
	m, _ := NewFromText("/ip4/1.2.3.4/tcp/80")
	suffix, _ := NewFromText("/udp/9090")
	got, err := m.Decapsulate(suffix)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(m) {
		t.Errorf("expected unchanged copy, got %q", got.String())
	}
}

func TestDecapsulateCodeRightmostMatch(t *testing.T) {
	m, _ := NewFromText("/ip4/1.2.3.4/tcp/80/ip4/5.6.7.8/tcp/81")
	got, err := m.DecapsulateCode(4) // ip4
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "/ip4/1.2.3.4/tcp/80" {
		t.Errorf("got %q", got.String())
	}
}

func TestDecapsulateCodeAbsent(t *testing.T) {
	m, _ := NewFromText("/ip4/1.2.3.4/tcp/80")
	got, err := m.DecapsulateCode(41) // ip6, absent
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(m) {
		t.Error("expected unchanged copy")
	}
}

func TestValueForProtocolByNameAndCode(t *testing.T) {
	m, _ := NewFromText("/ip4/1.2.3.4/tcp/80")
	v, err := ValueForProtocol(m, "tcp")
	if err != nil || v != "80" {
		t.Errorf("by name: got %q, %v", v, err)
	}
	v, err = ValueForProtocol(m, 4)
	if err != nil || v != "1.2.3.4" {
		t.Errorf("by code: got %q, %v", v, err)
	}
	if _, err := ValueForProtocol(m, "udp"); err != maerr.ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestValueForProtocolMatchesAcrossIpfsP2PAlias(t *testing.T) {
	peer := "QmNnooDu7bfjPFoTZYxMNLWUQJyrVwtbZg5gBMjTezGAJN"
	m, _ := NewFromText("/ip4/1.2.3.4/ipfs/" + peer)
	v, err := ValueForProtocol(m, "p2p")
	if err != nil || v != peer {
		t.Errorf("by canonical name: got %q, %v, want %q", v, err, peer)
	}
	v, err = ValueForProtocol(m, "ipfs")
	if err != nil || v != peer {
		t.Errorf("by alias name: got %q, %v, want %q", v, err, peer)
	}
}

func TestProtocols(t *testing.T) {
	m, _ := NewFromText("/ip4/1.2.3.4/tcp/80")
	protos, err := m.Protocols()
	if err != nil {
		t.Fatal(err)
	}
	if len(protos) != 2 || protos[0].Name != "ip4" || protos[1].Name != "tcp" {
		t.Errorf("got %+v", protos)
	}
}

func TestProtocolsDeepEqual(t *testing.T) {
	m, _ := NewFromText("/ip4/1.2.3.4/tcp/80/ws")
	got, err := m.Protocols()
	if err != nil {
		t.Fatal(err)
	}
	reg := protocol.Default()
	ip4, _ := reg.ByName("ip4")
	tcp, _ := reg.ByName("tcp")
	ws, _ := reg.ByName("ws")
	want := []protocol.Descriptor{ip4, tcp, ws}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestSplit(t *testing.T) {
	m, _ := NewFromText("/ip4/1.2.3.4/tcp/80/ws")
	parts, err := Split(m)
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 3 {
		t.Fatalf("got %d parts", len(parts))
	}
	want := []string{"/ip4/1.2.3.4", "/tcp/80", "/ws"}
	for i, p := range parts {
		if p.String() != want[i] {
			t.Errorf("part %d = %q, want %q", i, p.String(), want[i])
		}
	}
}

func TestNewComponent(t *testing.T) {
	m, err := NewComponentFromInt(nil, "tcp", 4001)
	if err != nil {
		t.Fatal(err)
	}
	if m.String() != "/tcp/4001" {
		t.Errorf("got %q", m.String())
	}
}

func TestNewComponentZeroSizeRejectsValue(t *testing.T) {
	if _, err := NewComponent(nil, "tls", "anything"); err != maerr.ErrUnexpectedValue {
		t.Errorf("got %v, want ErrUnexpectedValue", err)
	}
}
