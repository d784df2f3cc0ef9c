package mcrypto

import "github.com/rollupkit/txkernel/felt"

// Reference is the in-process Primitives implementation this kernel ships
// with: package-level Hash/VerifyMerklePath for the stateless operations,
// one shared MMR for the chain, and a family of named SMTs (the account
// vault, a nullifier set per test run, etc.) created lazily on first write.
//
// This is the "reference hasher/accumulator backend" spec.md §9 anticipates
// being swappable for a real host-VM binding — it exists so the kernel
// packages can be unit-tested without one.
type Reference struct {
	mmr  *MMR
	smts map[string]*SMT
}

// NewReference returns a Reference with an empty chain MMR and no SMTs yet.
func NewReference() *Reference {
	return &Reference{
		mmr:  NewMMR(),
		smts: make(map[string]*SMT),
	}
}

func (r *Reference) Hash(words ...felt.Word) felt.Word { return Hash(words...) }

func (r *Reference) HashFelts(fs ...felt.Felt) felt.Word { return HashFelts(fs...) }

func (r *Reference) VerifyMerklePath(leaf felt.Word, index uint64, path MerklePath, root felt.Word) bool {
	return VerifyMerklePath(leaf, index, path, root)
}

func (r *Reference) ComputeMerkleRoot(leaf felt.Word, index uint64, path MerklePath) felt.Word {
	return ComputeMerkleRoot(leaf, index, path)
}

func (r *Reference) MMRGet(pos uint64) (felt.Word, bool) { return r.mmr.Get(pos) }

func (r *Reference) MMRAppend(leaf felt.Word) uint64 { return r.mmr.Append(leaf) }

func (r *Reference) MMRPeaksCommitment() felt.Word { return r.mmr.PeaksCommitment() }

// Peaks and NumLeaves expose the chain MMR's current peak list and leaf
// count directly — not part of Primitives, since a real host-VM binding has
// no reason to hand peaks back out, but useful for anything building advice
// data (a prologue witness, a test fixture) from a live Reference.
func (r *Reference) Peaks() []felt.Word { return r.mmr.Peaks() }

func (r *Reference) NumLeaves() uint64 { return r.mmr.NumLeaves() }

func (r *Reference) tree(name string, depth int) *SMT {
	t, ok := r.smts[name]
	if !ok {
		t = NewSMT(depth)
		r.smts[name] = t
	}
	return t
}

func (r *Reference) SMTGet(name string, key felt.Word) felt.Word {
	t, ok := r.smts[name]
	if !ok {
		return felt.ZeroWord
	}
	return t.Get(key)
}

func (r *Reference) SMTInsert(name string, depth int, key, value felt.Word) felt.Word {
	return r.tree(name, depth).Insert(key, value)
}

func (r *Reference) SMTRoot(name string, depth int) felt.Word {
	return r.tree(name, depth).Root()
}

var _ Primitives = (*Reference)(nil)
