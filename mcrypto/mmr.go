package mcrypto

import "github.com/rollupkit/txkernel/felt"

// MMR is an append-only Merkle Mountain Range over block hashes
// (H(sub_hash, note_root)), indexed by block number (spec.md §3, "Block /
// Chain MMR").
//
// Grounded on crypto/commitment_tree.go's append-only accumulator: the same
// "rebuild the relevant layer from stored hashes on demand" approach as its
// MerkleProof method, adapted from a single fixed-depth tree to a peak list
// whose mountain sizes are the binary decomposition of the leaf count — the
// structure a Merkle Mountain Range actually has, since the chain grows
// without the commitment tree's fixed 2^32-leaf ceiling.
//
// MMR keeps the full leaf history rather than only the current peaks. This
// is a deliberate simplification appropriate to a reference façade standing
// in for host/VM-provided MMR support (spec.md §1 places the underlying
// MMR implementation itself out of this kernel's scope): a real light
// client would retain only peaks and require an externally supplied
// authentication path to open an old leaf, but the kernel only consumes
// this façade through the Primitives interface, so a fuller reference
// backend is free to remember more than the protocol strictly requires.
type MMR struct {
	leaves []felt.Word
}

// NewMMR returns an empty MMR.
func NewMMR() *MMR { return &MMR{} }

// NumLeaves returns the number of leaves appended so far.
func (m *MMR) NumLeaves() uint64 { return uint64(len(m.leaves)) }

// Append adds a leaf (a block's hash) to the MMR and returns its
// position (the block number).
func (m *MMR) Append(leaf felt.Word) uint64 {
	pos := uint64(len(m.leaves))
	m.leaves = append(m.leaves, leaf)
	return pos
}

// Get returns the leaf at the given position, as the host's MMR-get
// primitive would (spec.md §4.10(e)).
func (m *MMR) Get(pos uint64) (felt.Word, bool) {
	if pos >= uint64(len(m.leaves)) {
		return felt.ZeroWord, false
	}
	return m.leaves[pos], true
}

// mountains returns, oldest/tallest-first, the (start, size) of each
// complete perfect-binary mountain composing the MMR at its current leaf
// count — the binary decomposition of NumLeaves().
func (m *MMR) mountains() [][2]uint64 {
	n := uint64(len(m.leaves))
	var sizes []uint64
	for bit := 63; bit >= 0; bit-- {
		if n&(uint64(1)<<uint(bit)) != 0 {
			sizes = append(sizes, uint64(1)<<uint(bit))
		}
	}
	var out [][2]uint64
	start := uint64(0)
	for _, sz := range sizes {
		out = append(out, [2]uint64{start, sz})
		start += sz
	}
	return out
}

func (m *MMR) mountainRoot(start, size uint64) felt.Word {
	if size == 0 {
		return felt.ZeroWord
	}
	layer := append([]felt.Word(nil), m.leaves[start:start+size]...)
	for len(layer) > 1 {
		next := make([]felt.Word, len(layer)/2)
		for i := range next {
			next[i] = Hash(layer[2*i], layer[2*i+1])
		}
		layer = next
	}
	return layer[0]
}

// Peaks returns the current peak hashes, oldest-mountain-first.
func (m *MMR) Peaks() []felt.Word {
	mtns := m.mountains()
	peaks := make([]felt.Word, len(mtns))
	for i, mtn := range mtns {
		peaks[i] = m.mountainRoot(mtn[0], mtn[1])
	}
	return peaks
}

// PeaksCommitment is the public commitment over the current peak list and
// leaf count, the value the chain-data prologue step compares against
// CHAIN_ROOT.
func (m *MMR) PeaksCommitment() felt.Word {
	return CommitPeaks(m.Peaks(), m.NumLeaves())
}

// CommitPeaks computes the chain-root commitment for an externally supplied
// peak list and leaf count — the form the prologue reads off the advice
// stream, before it has its own live MMR to ask.
func CommitPeaks(peaks []felt.Word, numLeaves uint64) felt.Word {
	s := NewSponge()
	for _, p := range peaks {
		s.Absorb(p)
	}
	s.AbsorbFelts(felt.New(numLeaves))
	return s.Squeeze()
}
