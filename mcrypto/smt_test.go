package mcrypto

import (
	"testing"

	"github.com/rollupkit/txkernel/felt"
)

func TestSMTGetAbsentKeyIsZero(t *testing.T) {
	tr := NewSMT(16)
	key := felt.WordFromUint64s(1, 2, 3, 4)
	if got := tr.Get(key); !got.IsZero() {
		t.Fatalf("expected ZeroWord for absent key, got %s", got)
	}
}

func TestSMTInsertThenGet(t *testing.T) {
	tr := NewSMT(16)
	key := felt.WordFromUint64s(1, 0, 0, 0)
	val := felt.WordFromUint64s(0, 0, 0, 42)
	tr.Insert(key, val)
	if got := tr.Get(key); !got.Equal(val) {
		t.Fatalf("Get after Insert = %s, want %s", got, val)
	}
}

func TestSMTRootChangesOnInsert(t *testing.T) {
	tr := NewSMT(16)
	before := tr.Root()
	tr.Insert(felt.WordFromUint64s(1, 0, 0, 0), felt.WordFromUint64s(2, 0, 0, 0))
	after := tr.Root()
	if before.Equal(after) {
		t.Fatal("inserting a non-zero value should change the root")
	}
}

func TestSMTInsertZeroDeletesAndRestoresEmptyRoot(t *testing.T) {
	tr := NewSMT(16)
	empty := tr.Root()
	key := felt.WordFromUint64s(7, 0, 0, 0)
	tr.Insert(key, felt.WordFromUint64s(1, 1, 1, 1))
	tr.Insert(key, felt.ZeroWord)
	if got := tr.Root(); !got.Equal(empty) {
		t.Fatal("deleting the only key should restore the empty root")
	}
	if tr.Contains(key) {
		t.Fatal("key inserted as ZeroWord should not be considered present")
	}
}

func TestSMTRootDeterministicAcrossInsertOrder(t *testing.T) {
	t1 := NewSMT(16)
	t2 := NewSMT(16)
	kv := []felt.Word{
		felt.WordFromUint64s(1, 0, 0, 0), felt.WordFromUint64s(10, 0, 0, 0),
		felt.WordFromUint64s(2, 0, 0, 0), felt.WordFromUint64s(20, 0, 0, 0),
		felt.WordFromUint64s(3, 0, 0, 0), felt.WordFromUint64s(30, 0, 0, 0),
	}
	for i := 0; i < len(kv); i += 2 {
		t1.Insert(kv[i], kv[i+1])
	}
	for i := len(kv) - 2; i >= 0; i -= 2 {
		t2.Insert(kv[i], kv[i+1])
	}
	if !t1.Root().Equal(t2.Root()) {
		t.Fatal("final root should not depend on insertion order")
	}
}
