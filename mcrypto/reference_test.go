package mcrypto

import (
	"testing"

	"github.com/rollupkit/txkernel/felt"
)

func TestReferenceImplementsPrimitives(t *testing.T) {
	var _ Primitives = NewReference()
}

func TestReferenceMMRRoundTrip(t *testing.T) {
	r := NewReference()
	leaf := felt.WordFromUint64s(9, 9, 9, 9)
	pos := r.MMRAppend(leaf)
	got, ok := r.MMRGet(pos)
	if !ok || !got.Equal(leaf) {
		t.Fatalf("MMRGet(%d) = %v, %v; want %v, true", pos, got, ok, leaf)
	}
}

func TestReferenceSMTNamedTreesAreIndependent(t *testing.T) {
	r := NewReference()
	key := felt.WordFromUint64s(1, 0, 0, 0)
	r.SMTInsert("vault-acct-1", 16, key, felt.WordFromUint64s(100, 0, 0, 0))
	if got := r.SMTGet("vault-acct-2", key); !got.IsZero() {
		t.Fatal("a different named tree should not see the first tree's inserts")
	}
	if got := r.SMTGet("vault-acct-1", key); got.IsZero() {
		t.Fatal("expected the inserted value back from its own tree")
	}
}

func TestReferenceSMTRootOfUnwrittenTreeIsEmptyRoot(t *testing.T) {
	r := NewReference()
	want := NewSMT(16).Root()
	got := r.SMTRoot("never-written", 16)
	if !got.Equal(want) {
		t.Fatal("an unwritten named tree should report the canonical empty root at that depth")
	}
}
