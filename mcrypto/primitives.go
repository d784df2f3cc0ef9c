package mcrypto

import "github.com/rollupkit/txkernel/felt"

// Primitives is every cryptographic capability the kernel borrows from its
// host rather than computing itself (spec.md §1's "out of scope: the
// underlying zero-knowledge VM — hashing primitives, Merkle-tree
// verification, MMR, sparse Merkle tree, advice provider"). The kernel
// packages depend on this interface, never on the concrete Reference type,
// so an alternate backend (a real VM binding, a mock for fault-injection
// tests) can be substituted without touching kernel logic — the substitution
// point spec.md §9's design note calls for explicitly.
type Primitives interface {
	// Hash absorbs the given Words and returns a single Word digest.
	Hash(words ...felt.Word) felt.Word

	// HashFelts absorbs raw field elements and returns a single Word digest.
	HashFelts(fs ...felt.Felt) felt.Word

	// VerifyMerklePath reports whether leaf, opened at index via path,
	// recomputes to root.
	VerifyMerklePath(leaf felt.Word, index uint64, path MerklePath, root felt.Word) bool

	// ComputeMerkleRoot recomputes the root leaf opens to at index via path,
	// without a caller-supplied root to compare against.
	ComputeMerkleRoot(leaf felt.Word, index uint64, path MerklePath) felt.Word

	// MMRGet returns the chain MMR leaf (a block hash) at position pos.
	MMRGet(pos uint64) (felt.Word, bool)

	// MMRAppend adds leaf to the chain MMR and returns its position.
	MMRAppend(leaf felt.Word) uint64

	// MMRPeaksCommitment returns the public commitment over the chain MMR's
	// current peak list and leaf count.
	MMRPeaksCommitment() felt.Word

	// SMTGet returns the value stored at key in the named tree, or ZeroWord
	// if key is absent.
	SMTGet(tree string, key felt.Word) felt.Word

	// SMTInsert sets key to value in the named tree and returns the tree's
	// new root. The tree is created (at the given depth) on first use.
	SMTInsert(tree string, depth int, key, value felt.Word) felt.Word

	// SMTRoot returns the current root of the named tree, or the canonical
	// empty root at depth if the tree has never been written to.
	SMTRoot(tree string, depth int) felt.Word
}
