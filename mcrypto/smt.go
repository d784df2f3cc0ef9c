package mcrypto

import "github.com/rollupkit/txkernel/felt"

// SMT is a value-bearing sparse Merkle tree keyed by Word, used for the
// account vault (fungible/non-fungible asset slots) and for any other
// Word-to-Word mapping the kernel needs a commitment over.
//
// Grounded on crypto/nullifier_set.go's SparseMerkleTree, generalized from a
// presence-only set (Contains/Insert) to a key/value map (Get returns the
// stored Word, or the zero Word for an absent key, rather than a bool),
// since the asset vault needs to read back asset amounts, not just test
// membership. The empty-subtree cache and leaf/node domain separation are
// carried over unchanged.
type SMT struct {
	depth       int
	leaves      map[felt.Word]felt.Word
	emptyHashes []felt.Word
	domainLeaf  felt.Felt
	domainNode  felt.Felt
}

// NewSMT returns an empty sparse Merkle tree of the given depth (number of
// levels from root to leaf).
func NewSMT(depth int) *SMT {
	t := &SMT{
		depth:      depth,
		leaves:     make(map[felt.Word]felt.Word),
		domainLeaf: felt.New(1),
		domainNode: felt.New(2),
	}
	t.emptyHashes = make([]felt.Word, depth+1)
	t.emptyHashes[0] = t.hashLeaf(felt.ZeroWord, felt.ZeroWord)
	for i := 1; i <= depth; i++ {
		t.emptyHashes[i] = t.hashNode(t.emptyHashes[i-1], t.emptyHashes[i-1])
	}
	return t
}

func (t *SMT) hashLeaf(key, value felt.Word) felt.Word {
	s := NewSponge()
	s.AbsorbFelts(t.domainLeaf)
	s.Absorb(key, value)
	return s.Squeeze()
}

func (t *SMT) hashNode(left, right felt.Word) felt.Word {
	s := NewSponge()
	s.AbsorbFelts(t.domainNode)
	s.Absorb(left, right)
	return s.Squeeze()
}

// Get returns the value stored at key, or the zero Word if key has never
// been inserted (spec.md §4.2's "SMT get of an absent key returns ZERO").
func (t *SMT) Get(key felt.Word) felt.Word {
	if v, ok := t.leaves[key]; ok {
		return v
	}
	return felt.ZeroWord
}

// Contains reports whether key has a non-default value inserted.
func (t *SMT) Contains(key felt.Word) bool {
	_, ok := t.leaves[key]
	return ok
}

// Insert sets the value at key (ZeroWord deletes it, matching the empty-leaf
// convention used throughout the tree) and returns the new root.
func (t *SMT) Insert(key, value felt.Word) felt.Word {
	if value.IsZero() {
		delete(t.leaves, key)
	} else {
		t.leaves[key] = value
	}
	return t.Root()
}

// Root recomputes the tree root from the current leaf set.
//
// This rebuilds the authentication path to every non-empty leaf from
// scratch, the same "recompute on demand, don't maintain incremental node
// state" approach crypto/nullifier_set.go takes — acceptable here because
// the kernel calls Root a bounded number of times per transaction (once per
// asset mutation at most), never per-cycle inside a hot loop.
func (t *SMT) Root() felt.Word {
	if len(t.leaves) == 0 {
		return t.emptyHashes[t.depth]
	}
	nodes := make(map[uint64]felt.Word, len(t.leaves))
	for k, v := range t.leaves {
		idx := t.keyIndex(k)
		nodes[idx] = t.hashLeaf(k, v)
	}
	width := uint64(1) << uint(t.depth)
	for level := 0; level < t.depth; level++ {
		next := make(map[uint64]felt.Word, len(nodes))
		seen := make(map[uint64]bool, len(nodes))
		for idx := range nodes {
			parent := idx >> 1
			if seen[parent] {
				continue
			}
			seen[parent] = true
			leftIdx := parent * 2
			rightIdx := leftIdx + 1
			left, ok := nodes[leftIdx]
			if !ok {
				left = t.emptyHashes[level]
			}
			right, ok := nodes[rightIdx]
			if !ok {
				right = t.emptyHashes[level]
			}
			next[parent] = t.hashNode(left, right)
		}
		nodes = next
		width >>= 1
	}
	return nodes[0]
}

// keyIndex maps a Word key to a leaf index in [0, 2^depth) by folding its
// four limbs and taking the low `depth` bits — sufficient for a reference
// implementation where keys are already hash-shaped (vault asset-id Words,
// nullifiers) and so are already uniformly distributed.
func (t *SMT) keyIndex(key felt.Word) uint64 {
	acc := key[0].Uint64() ^ key[1].Uint64() ^ key[2].Uint64() ^ key[3].Uint64()
	if t.depth >= 64 {
		return acc
	}
	mask := (uint64(1) << uint(t.depth)) - 1
	return acc & mask
}
