package kernel

import "errors"

// Sentinel errors, one per failure category in spec.md §7. Every kernel
// operation that can be triggered by a malformed or malicious transaction
// returns one of these (wrapped with fmt.Errorf("%w: ...") for call-site
// context) rather than panicking; panic is reserved for the handful of
// cases spec.md itself calls out as programmer error (storage index bounds,
// set_item on a faucet's reserved slot, reading a note outside note
// context).

// Input inconsistency.
var (
	ErrBlockHashMismatch       = errors.New("kernel: recomputed block hash does not match global input")
	ErrChainRootMismatch       = errors.New("kernel: MMR peaks commitment does not match chain_root")
	ErrAccountHashMismatch     = errors.New("kernel: recomputed account hash does not match initial_account_hash")
	ErrNullifierCommitMismatch = errors.New("kernel: recomputed nullifier_commitment does not match global input")
	ErrMMRLeafMismatch         = errors.New("kernel: recomputed block hash does not match the chain MMR leaf")
	ErrNoteNotInTree           = errors.New("kernel: note_hash does not verify under note_root")
	ErrSlotTypeCommitMismatch  = errors.New("kernel: slot-type table does not match TYPES_COM")
)

// Bounds.
var (
	ErrStorageIndexOutOfRange = errors.New("kernel: storage index out of range")
	ErrTooManyInputs          = errors.New("kernel: note inputs exceed MaxInputsPerNote")
	ErrTooManyAssets          = errors.New("kernel: note assets exceed MaxAssetsPerNote")
	ErrTooManyNotes           = errors.New("kernel: input notes exceed MaxNumConsumedNotes")
	ErrNonceIncrementTooLarge = errors.New("kernel: nonce increment reaches or exceeds 2^32")
)

// Capability.
var (
	ErrWrongContext          = errors.New("kernel: operation not permitted from the current context")
	ErrUnauthorizedOrigin    = errors.New("kernel: caller is not the account's own code root")
	ErrCodeUpdateNotAllowed  = errors.New("kernel: account's code policy does not permit set_code")
	ErrNotAFaucet            = errors.New("kernel: operation requires a faucet account")
	ErrNotAFungibleFaucet    = errors.New("kernel: operation requires a fungible faucet")
	ErrNotANonFungibleFaucet = errors.New("kernel: operation requires a non-fungible faucet")
	ErrReservedSlotWrite     = errors.New("kernel: faucet reserved slot cannot be written via set_item")
)

// Asset arithmetic.
var (
	ErrFungibleOverflow      = errors.New("kernel: fungible amount sum reaches or exceeds 2^63")
	ErrNonFungibleDuplicate  = errors.New("kernel: non-fungible asset already present")
	ErrFungibleUnderflow     = errors.New("kernel: fungible amount remove exceeds balance")
	ErrNonFungibleNotPresent = errors.New("kernel: non-fungible asset not present")
)

// Conservation and monotonicity.
var (
	ErrVaultConservation = errors.New("kernel: input_vault_root != output_vault_root")
	ErrNonceNotIncreased = errors.New("kernel: account state changed but nonce did not strictly increase")
)

// New-account predicates.
var (
	ErrNewAccountVaultNotEmpty  = errors.New("kernel: new account must have an empty vault")
	ErrNewAccountNonceNotZero   = errors.New("kernel: new account must have nonce 0")
	ErrInvalidAccountID         = errors.New("kernel: account_id fails the seed predicate")
	ErrReservedSlotMistyped     = errors.New("kernel: reserved storage slot has the wrong slot type")
	ErrExistingAccountNonceZero = errors.New("kernel: existing account must have a non-zero nonce")
)

// ErrAccountIDMismatch carries the two diverging ids, supplementing
// spec.md's prose with the structured detail
// original_source/miden-tx/src/error.rs's InconsistentAccountId variant
// exposes: the account id named in the transaction's public inputs versus
// the one the advice-supplied account record actually carries. Returned by
// the prologue before any other account check runs, since nothing else it
// computes is meaningful if the two disagree about which account is even
// being processed.
type ErrAccountIDMismatch struct {
	InputID  uint64
	OutputID uint64
}

func (e *ErrAccountIDMismatch) Error() string {
	return "kernel: inconsistent account id across transaction boundary"
}
