package protocol

import "testing"

func TestDefaultLookup(t *testing.T) {
	r := Default()
	d, err := r.ByName("tcp")
	if err != nil {
		t.Fatalf("ByName(tcp): %v", err)
	}
	if d.Code != 6 || d.Size != 16 {
		t.Errorf("tcp descriptor = %+v", d)
	}
	byCode, err := r.ByCode(6)
	if err != nil || byCode.Name != "tcp" {
		t.Errorf("ByCode(6) = %+v, %v", byCode, err)
	}
}

func TestIpfsAliasesP2P(t *testing.T) {
	r := Default()
	ipfs, err := r.ByName("ipfs")
	if err != nil {
		t.Fatalf("ByName(ipfs): %v", err)
	}
	p2p, err := r.ByName("p2p")
	if err != nil {
		t.Fatalf("ByName(p2p): %v", err)
	}
	if ipfs.Code != p2p.Code {
		t.Errorf("ipfs.Code = %d, want %d", ipfs.Code, p2p.Code)
	}
	if !ipfs.Deprecated {
		t.Error("ipfs should be marked Deprecated")
	}
	if ipfs.AliasOf == nil || ipfs.AliasOf.Name != "p2p" {
		t.Error("ipfs.AliasOf should point at p2p")
	}
}

func TestUnknownProtocol(t *testing.T) {
	r := Default()
	if _, err := r.ByName("bogus"); err == nil {
		t.Error("expected error for unknown name")
	}
	if _, err := r.ByCode(999999); err == nil {
		t.Error("expected error for unknown code")
	}
}

func TestDuplicateRegistration(t *testing.T) {
	r := New()
	d := Descriptor{Code: 1, Name: "x"}
	if err := r.Register(d); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := r.Register(d); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

func TestLayeredRegistryFallsThrough(t *testing.T) {
	base := New()
	base.Register(Descriptor{Code: 1, Name: "base-proto"})
	layered := NewLayered(base)
	if _, err := layered.ByName("base-proto"); err != nil {
		t.Errorf("layered registry should see base entries: %v", err)
	}
	layered.Register(Descriptor{Code: 2, Name: "layered-proto"})
	if _, err := base.ByName("layered-proto"); err == nil {
		t.Error("base registry must not see overlay entries")
	}
}
