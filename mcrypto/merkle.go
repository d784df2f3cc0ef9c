package mcrypto

import "github.com/rollupkit/txkernel/felt"

// MerklePath is a single authentication path: one sibling Word per level,
// ordered from the leaf's level up to (but not including) the root.
type MerklePath []felt.Word

// VerifyMerklePath recomputes the root from leaf, the sibling path, and the
// leaf's index (whose bits select left/right at each level, LSB first —
// bit 0 chooses the leaf's own position at level 0), and reports whether it
// equals root.
//
// Grounded on crypto/merkle_multi_proof.go's generalized-index arithmetic
// (IsLeft/Sibling/Parent): index parity at each level plays the role that
// GeneralizedIndex parity plays there, just walked leaf-to-root instead of
// precomputed from a flat generalized-index array.
func VerifyMerklePath(leaf felt.Word, index uint64, path MerklePath, root felt.Word) bool {
	current := leaf
	for _, sibling := range path {
		if index&1 == 0 {
			current = Hash(current, sibling)
		} else {
			current = Hash(sibling, current)
		}
		index >>= 1
	}
	return current.Equal(root)
}

// ComputeMerkleRoot re-derives the root a path proves membership under,
// without a caller-supplied root to compare against.
func ComputeMerkleRoot(leaf felt.Word, index uint64, path MerklePath) felt.Word {
	current := leaf
	for _, sibling := range path {
		if index&1 == 0 {
			current = Hash(current, sibling)
		} else {
			current = Hash(sibling, current)
		}
		index >>= 1
	}
	return current
}
