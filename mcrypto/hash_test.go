package mcrypto

import (
	"testing"

	"github.com/rollupkit/txkernel/felt"
)

func TestHashOfNoWordsIsZeroWord(t *testing.T) {
	if got := Hash(); !got.Equal(felt.ZeroWord) {
		t.Fatalf("Hash() = %s, want ZeroWord", got)
	}
}

func TestHashDeterministic(t *testing.T) {
	w := felt.WordFromUint64s(1, 2, 3, 4)
	if !Hash(w).Equal(Hash(w)) {
		t.Fatal("Hash should be deterministic for the same input")
	}
}

func TestHashDistinguishesInputs(t *testing.T) {
	a := felt.WordFromUint64s(1, 2, 3, 4)
	b := felt.WordFromUint64s(4, 3, 2, 1)
	if Hash(a).Equal(Hash(b)) {
		t.Fatal("distinct inputs should (overwhelmingly) hash differently")
	}
}

func TestHashOrderSensitive(t *testing.T) {
	a := felt.WordFromUint64s(1, 0, 0, 0)
	b := felt.WordFromUint64s(2, 0, 0, 0)
	if Hash(a, b).Equal(Hash(b, a)) {
		t.Fatal("Hash(a, b) should differ from Hash(b, a)")
	}
}

func TestSpongeStreamingMatchesOneShot(t *testing.T) {
	a := felt.WordFromUint64s(1, 2, 3, 4)
	b := felt.WordFromUint64s(5, 6, 7, 8)

	oneShot := Hash(a, b)

	s := NewSponge()
	s.Absorb(a)
	s.Absorb(b)
	streamed := s.Squeeze()

	if !oneShot.Equal(streamed) {
		t.Fatal("streaming absorb should match one-shot Hash for the same Words")
	}
}

func TestHashFeltsMatchesWordHashForFullWords(t *testing.T) {
	fs := []felt.Felt{felt.New(1), felt.New(2), felt.New(3), felt.New(4)}
	w := felt.WordFromFelts(fs...)
	if !HashFelts(fs...).Equal(Hash(w)) {
		t.Fatal("HashFelts over exactly 4 felts should match Hash over the equivalent Word")
	}
}
