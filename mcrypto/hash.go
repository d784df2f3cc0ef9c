// Package mcrypto is the thin façade the transaction kernel uses for every
// cryptographic primitive the host VM would otherwise provide: a linear hash
// over field elements, Merkle path verification, an append-only Merkle
// Mountain Range, and a sparse Merkle tree. All operations here are
// deterministic and side-effect-free; the one exception living outside this
// package is the advice stream itself (package advice), which is consumed.
//
// The permutation (round-constant/MDS/sponge structure) is grounded on the
// teacher's zkvm/poseidon.go, rebuilt over the 64-bit Goldilocks field
// (package felt) instead of math/big + BN254: this kernel's field is fixed
// by the system it was distilled from, not by EVM precompile compatibility.
package mcrypto

import (
	"github.com/rollupkit/txkernel/felt"
)

// sponge width: rate 8 + capacity 4, matching a Word-sized (4-Felt) output
// and allowing two Words to be absorbed per permutation call.
const (
	stateWidth    = 12
	rate          = 8
	capacity      = stateWidth - rate
	fullRounds    = 8
	partialRounds = 22
)

var roundConstants = generateRoundConstants()

// generateRoundConstants deterministically derives additive round constants
// the same way zkvm/poseidon.go does: c_i = (seed + i)^7 mod p. The exponent
// 7 (rather than the teacher's 5) matches this permutation's S-box degree,
// chosen below for compatibility with a Goldilocks-sized field where 5 is
// not guaranteed coprime to p-1.
func generateRoundConstants() []felt.Felt {
	total := stateWidth * (fullRounds + partialRounds)
	out := make([]felt.Felt, total)
	seed := felt.New(0x506f736549644b4e) // "PoseIdKN" read as a big-endian u64
	for i := 0; i < total; i++ {
		v := seed.Add(felt.New(uint64(i)))
		out[i] = v.Exp(7)
	}
	return out
}

// mdsMatrix is a Cauchy MDS matrix, grounded on zkvm/poseidon.go's
// generateMDS: M[i][j] = 1/(x_i + y_j) for distinct x_i = i, y_j = width+j.
var mdsMatrix = generateMDS()

func generateMDS() [stateWidth][stateWidth]felt.Felt {
	var m [stateWidth][stateWidth]felt.Felt
	for i := 0; i < stateWidth; i++ {
		for j := 0; j < stateWidth; j++ {
			sum := felt.New(uint64(i)).Add(felt.New(uint64(stateWidth + j)))
			m[i][j] = sum.Inverse()
		}
	}
	return m
}

func sBox(x felt.Felt) felt.Felt { return x.Exp(7) }

func mdsMul(state [stateWidth]felt.Felt) [stateWidth]felt.Felt {
	var out [stateWidth]felt.Felt
	for i := 0; i < stateWidth; i++ {
		acc := felt.Zero
		for j := 0; j < stateWidth; j++ {
			acc = acc.Add(mdsMatrix[i][j].Mul(state[j]))
		}
		out[i] = acc
	}
	return out
}

// permute applies the full/partial-round permutation in place, following
// zkvm/poseidon.go's round structure: half the full rounds, then the
// partial rounds (S-box applied to element 0 only), then the remaining
// full rounds.
func permute(state [stateWidth]felt.Felt) [stateWidth]felt.Felt {
	rcIdx := 0
	halfFull := fullRounds / 2

	addRC := func() {
		for i := 0; i < stateWidth; i++ {
			state[i] = state[i].Add(roundConstants[rcIdx])
			rcIdx++
		}
	}

	for r := 0; r < halfFull; r++ {
		addRC()
		for i := 0; i < stateWidth; i++ {
			state[i] = sBox(state[i])
		}
		state = mdsMul(state)
	}
	for r := 0; r < partialRounds; r++ {
		addRC()
		state[0] = sBox(state[0])
		state = mdsMul(state)
	}
	for r := 0; r < halfFull; r++ {
		addRC()
		for i := 0; i < stateWidth; i++ {
			state[i] = sBox(state[i])
		}
		state = mdsMul(state)
	}
	return state
}

// Hash absorbs the given Words and returns a single Word digest. This is the
// kernel's H: every "hash", "root", and "commitment" in the data model is
// computed by one or more calls to Hash.
func Hash(words ...felt.Word) felt.Word {
	s := NewSponge()
	s.Absorb(words...)
	return s.Squeeze()
}

// HashFelts absorbs raw field elements (e.g. a note's up-to-MaxInputsPerNote
// input array) and returns a single Word digest.
func HashFelts(fs ...felt.Felt) felt.Word {
	s := NewSponge()
	s.AbsorbFelts(fs...)
	return s.Squeeze()
}

// Sponge is a streaming absorb/squeeze interface over the permutation,
// grounded on zkvm/poseidon.go's PoseidonSponge.
type Sponge struct {
	state [stateWidth]felt.Felt
	buf   []felt.Felt
}

// NewSponge returns a Sponge with zeroed state.
func NewSponge() *Sponge {
	return &Sponge{}
}

// Absorb adds whole Words to the sponge.
func (s *Sponge) Absorb(words ...felt.Word) {
	for _, w := range words {
		s.AbsorbFelts(w[:]...)
	}
}

// AbsorbFelts adds individual field elements to the sponge.
func (s *Sponge) AbsorbFelts(fs ...felt.Felt) {
	for _, f := range fs {
		s.buf = append(s.buf, f)
		if len(s.buf) == rate {
			s.absorbBlock()
		}
	}
}

func (s *Sponge) absorbBlock() {
	for i, f := range s.buf {
		s.state[i] = s.state[i].Add(f)
	}
	s.state = permute(s.state)
	s.buf = s.buf[:0]
}

// Squeeze flushes any buffered input and returns the first Word (4 Felts) of
// the rate portion of the state.
//
// A Sponge on which Absorb/AbsorbFelts was never called squeezes straight
// from the untouched zero state, i.e. Hash() of no Words is the all-zero
// Word. That fixed constant is exactly the "known constant" spec.md's
// testable property 4 requires compute_output_notes_commitment to produce
// for a transaction with zero output notes.
func (s *Sponge) Squeeze() felt.Word {
	if len(s.buf) > 0 {
		s.absorbBlock()
	}
	return felt.WordFromFelts(s.state[0], s.state[1], s.state[2], s.state[3])
}
