package core

import (
	"testing"
)

func TestComputeFieldsHash_OrderIndependent(t *testing.T) {
	a := ComputeFieldsHash(map[string]interface{}{"beta_j": 0.5, "size": 50, "sweeps": 100})
	b := ComputeFieldsHash(map[string]interface{}{"sweeps": 100, "size": 50, "beta_j": 0.5})

	if a != b {
		t.Errorf("hash depends on insertion order: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestComputeFieldsHash_Sensitive(t *testing.T) {
	a := ComputeFieldsHash(map[string]interface{}{"beta_j": 0.5})
	b := ComputeFieldsHash(map[string]interface{}{"beta_j": 0.6})

	if a == b {
		t.Error("different values produced the same hash")
	}
}

func TestHashShort(t *testing.T) {
	h := NewHash([]byte("ising"))
	if got := h.Short(); len(got) != 12 || got != string(h)[:12] {
		t.Errorf("Short() = %q", got)
	}
	if Hash("abc").Short() != "abc" {
		t.Error("Short() should return short hashes unchanged")
	}
}
