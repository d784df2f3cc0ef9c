// Package kernel implements the transaction kernel: the prologue, the
// account/vault/note/faucet/tx API surface the transaction body executes
// against, the context/capability model gating it, and the epilogue that
// finalizes commitments and enforces the kernel's invariants.
//
// Grounded throughout on the teacher's zkvm/stf.go and rollup/execution_context.go:
// a typed Config struct with a DefaultConfig constructor, sentinel errors
// wrapped with call-site context, and a mutex-free single-threaded execution
// model (spec.md §5 — no concurrent callers exist inside one transaction, so
// the teacher's sync.Mutex fields have no counterpart here).
package kernel

// Config carries the normative constants spec.md §6 requires to match on
// both sides of the prover/verifier boundary.
type Config struct {
	// MaxInputsPerNote bounds a note's inputs_hash pre-image length.
	MaxInputsPerNote int
	// MaxAssetsPerNote bounds the number of assets a single note carries.
	MaxAssetsPerNote int
	// MaxNumConsumedNotes bounds how many input notes one transaction may
	// consume.
	MaxNumConsumedNotes int
	// FungibleAmountBound is the exclusive upper bound on a fungible asset
	// amount and on total_issuance (2^63).
	FungibleAmountBound uint64
	// StorageSlotCount is the fixed number of account storage slots (256).
	StorageSlotCount int
	// FaucetStorageDataSlot is the reserved storage slot index (254) holding
	// a faucet's total_issuance or minted-non-fungible SMT root.
	FaucetStorageDataSlot int
	// SlotTypesStorageSlot is the reserved storage slot index (255) holding
	// TYPES_COM, the commitment to the 256-entry slot-type table.
	SlotTypesStorageSlot int
	// NoteTreeDepth is the depth of the per-block note Merkle tree used to
	// authenticate input notes against a block's note_root.
	NoteTreeDepth int
	// VaultTreeDepth is the depth of the sparse Merkle tree backing every
	// account/note asset vault.
	VaultTreeDepth int
}

// DefaultConfig returns the constants spec.md §6 names, at the values
// spec.md §3-§4 imply (256 storage slots, reserved slots 254/255, a 2^63
// fungible bound).
func DefaultConfig() Config {
	return Config{
		MaxInputsPerNote:      128,
		MaxAssetsPerNote:      256,
		MaxNumConsumedNotes:   1024,
		FungibleAmountBound:   1 << 63,
		StorageSlotCount:      256,
		FaucetStorageDataSlot: 254,
		SlotTypesStorageSlot:  255,
		NoteTreeDepth:         32,
		VaultTreeDepth:        64,
	}
}
