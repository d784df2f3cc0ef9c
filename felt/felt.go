// Package felt implements the prime-field scalar ("F") and the four-element
// composite ("Word") used throughout the transaction kernel for digests,
// identifiers, and commitments.
//
// The field is the 64-bit Goldilocks prime p = 2^64 - 2^32 + 1, matching the
// field used by the original Miden VM this kernel's spec was distilled from.
// Arithmetic is carried out via math/big rather than hand-rolled fast
// reduction: two field elements can sum past the uint64 range before
// reduction, and the teacher's own Poseidon implementation
// (zkvm/poseidon.go) already does all of its field arithmetic through
// math/big for exactly this reason.
package felt

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

// Modulus is the Goldilocks prime p = 2^64 - 2^32 + 1.
const Modulus Felt = 18446744069414584321

var modulusBig = new(big.Int).SetUint64(uint64(Modulus))

// Felt is one element of the prime field Z/pZ. The zero value is the field
// element 0.
type Felt uint64

// Zero is the additive identity.
const Zero Felt = 0

// One is the multiplicative identity.
const One Felt = 1

// New reduces v modulo the field and returns the corresponding Felt.
func New(v uint64) Felt {
	if Felt(v) < Modulus {
		return Felt(v)
	}
	return Felt(v % uint64(Modulus))
}

func (f Felt) big() *big.Int { return new(big.Int).SetUint64(uint64(f)) }

func fromBig(x *big.Int) Felt {
	x = new(big.Int).Mod(x, modulusBig)
	return Felt(x.Uint64())
}

// Add returns f + g mod p.
func (f Felt) Add(g Felt) Felt {
	return fromBig(new(big.Int).Add(f.big(), g.big()))
}

// Sub returns f - g mod p.
func (f Felt) Sub(g Felt) Felt {
	return fromBig(new(big.Int).Sub(f.big(), g.big()))
}

// Mul returns f * g mod p.
func (f Felt) Mul(g Felt) Felt {
	return fromBig(new(big.Int).Mul(f.big(), g.big()))
}

// Neg returns -f mod p.
func (f Felt) Neg() Felt {
	return fromBig(new(big.Int).Neg(f.big()))
}

// Exp returns f^n mod p.
func (f Felt) Exp(n uint64) Felt {
	return fromBig(new(big.Int).Exp(f.big(), new(big.Int).SetUint64(n), modulusBig))
}

// Inverse returns the multiplicative inverse of f. Panics if f is zero: the
// kernel never needs to invert a field element whose value it hasn't
// already checked is non-zero (the one caller, the Poseidon MDS-matrix
// generator, builds a matrix of provably distinct field elements).
func (f Felt) Inverse() Felt {
	if f == Zero {
		panic("felt: inverse of zero")
	}
	inv := new(big.Int).ModInverse(f.big(), modulusBig)
	return Felt(inv.Uint64())
}

// IsZero reports whether f is the zero element.
func (f Felt) IsZero() bool { return f == Zero }

// Uint64 returns the canonical uint64 representation of f.
func (f Felt) Uint64() uint64 { return uint64(f) }

// String renders the element in decimal.
func (f Felt) String() string { return fmt.Sprintf("%d", uint64(f)) }

// Word is four field elements, used both as a cryptographic digest and as a
// general-purpose composite identifier (asset, note commitment, account
// root, ...).
type Word [4]Felt

// ZeroWord is the all-zero Word.
var ZeroWord = Word{}

// IsZero reports whether w is the all-zero Word.
func (w Word) IsZero() bool { return w == ZeroWord }

// Equal reports whether w and o are the same Word.
func (w Word) Equal(o Word) bool { return w == o }

// Bytes serializes w as 32 bytes, little-endian within each limb, limbs in
// order.
func (w Word) Bytes() []byte {
	out := make([]byte, 32)
	for i, f := range w {
		v := f.Uint64()
		for j := 0; j < 8; j++ {
			out[i*8+j] = byte(v >> (8 * j))
		}
	}
	return out
}

// Hex renders the Word as a 0x-prefixed hex string.
func (w Word) Hex() string { return "0x" + hex.EncodeToString(w.Bytes()) }

// String implements fmt.Stringer.
func (w Word) String() string { return w.Hex() }

// WordFromFelts builds a Word from up to four field elements, zero-padding
// any missing trailing elements.
func WordFromFelts(fs ...Felt) Word {
	var w Word
	copy(w[:], fs)
	return w
}

// WordFromUint64s is a convenience constructor reducing each limb modulo p.
func WordFromUint64s(a, b, c, d uint64) Word {
	return Word{New(a), New(b), New(c), New(d)}
}
