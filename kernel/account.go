package kernel

import (
	"fmt"

	"github.com/rollupkit/txkernel/felt"
	"github.com/rollupkit/txkernel/mcrypto"
)

// CodePolicy governs whether an account's code_root may be changed by
// set_code (spec.md §4.4).
type CodePolicy int

const (
	// CodeImmutable accounts never accept set_code.
	CodeImmutable CodePolicy = iota
	// CodeUpdatable accounts accept set_code, applied by the epilogue.
	CodeUpdatable
)

// Account is the live, working record the prologue populates from advice
// and the transaction body reads and mutates through the kernel API
// (spec.md §3, §4.4).
type Account struct {
	cfg   Config
	prims mcrypto.Primitives

	ID         felt.Felt
	Nonce      felt.Felt
	CodeRoot   felt.Word
	CodePolicy CodePolicy

	SlotTypes [256]SlotType

	// storageTree and vaultTree name the SMTs in prims backing this
	// account's storage and vault; distinct accounts use distinct names
	// (derived from ID) so their trees don't collide.
	storageTree string
	vaultTree   string

	InitialHash felt.Word
	// InitialNonce is the nonce recorded at prologue time, kept alongside
	// the live, mutable Nonce field so the epilogue can check strict
	// monotonicity (spec.md invariant 3).
	InitialNonce felt.Felt
	// NewCodeRoot is the pending code root written by set_code, applied by
	// the epilogue (spec.md §4.4, §4.11(a)).
	NewCodeRoot felt.Word

	events EventSink
}

// NewAccount returns an Account bound to prims, with storage/vault trees
// named from its id so multiple accounts (e.g. in a test harness) don't
// share state.
func NewAccount(cfg Config, prims mcrypto.Primitives, id felt.Felt, events EventSink) *Account {
	if events == nil {
		events = NoopEventSink{}
	}
	name := fmt.Sprintf("%d", id.Uint64())
	return &Account{
		cfg:         cfg,
		prims:       prims,
		ID:          id,
		storageTree: "storage:" + name,
		vaultTree:   "vault:" + name,
		events:      events,
	}
}

// storageDepth is the SMT depth matching StorageSlotCount == 256 == 2^8
// slots.
func storageDepth(cfg Config) int {
	depth := 0
	for n := cfg.StorageSlotCount; n > 1; n >>= 1 {
		depth++
	}
	return depth
}

func slotKey(index int) felt.Word {
	return felt.WordFromUint64s(uint64(index), 0, 0, 0)
}

// GetID returns the account's id. Readable in any context.
func (a *Account) GetID() felt.Felt { return a.ID }

// GetNonce returns the account's current nonce. Readable in any context.
func (a *Account) GetNonce() felt.Felt { return a.Nonce }

// GetInitialHash returns the account hash recorded at prologue time.
// Readable in any context.
func (a *Account) GetInitialHash() felt.Word { return a.InitialHash }

// GetVaultCommitment returns the account vault's current SMT root.
// Readable in any context.
func (a *Account) GetVaultCommitment() felt.Word {
	return a.prims.SMTRoot(a.vaultTree, a.cfg.VaultTreeDepth)
}

// StorageRoot returns the current root of the 256-slot storage tree.
func (a *Account) StorageRoot() felt.Word {
	return a.prims.SMTRoot(a.storageTree, storageDepth(a.cfg))
}

// SlotTypesCommitment returns TYPES_COM, the hash of the 256-entry
// slot-type table (spec.md §3).
func (a *Account) SlotTypesCommitment() felt.Word {
	encoded := make([]felt.Felt, len(a.SlotTypes))
	for i, t := range a.SlotTypes {
		encoded[i] = t.Encode()
	}
	return mcrypto.HashFelts(encoded...)
}

// GetCurrentHash recomputes the account's commitment from its live
// id/nonce/vault/storage/code state. The exact composition is this
// kernel's own design choice (spec.md does not give a formula for
// account_hash, only the fields it commits to); this kernel hashes
// (id, nonce) with (vault_root, storage_root) and folds in code_root,
// so any one of the five fields changing changes the hash.
func (a *Account) GetCurrentHash() felt.Word {
	idNonce := mcrypto.HashFelts(a.ID, a.Nonce)
	rootsDigest := mcrypto.Hash(a.GetVaultCommitment(), a.StorageRoot())
	return mcrypto.Hash(idNonce, rootsDigest, a.CodeRoot)
}

// GetItem reads storage slot index. Panics if index >= 256 (spec.md calls
// this a panic: it is a programmer error no correctly generated script
// ever triggers).
func (a *Account) GetItem(index int) felt.Word {
	if index < 0 || index >= a.cfg.StorageSlotCount {
		panic(fmt.Sprintf("kernel: get_item index %d out of range [0,%d)", index, a.cfg.StorageSlotCount))
	}
	return a.prims.SMTGet(a.storageTree, slotKey(index))
}

// SetItem writes storage slot index from account context only. Panics if
// index >= 256, or if the account is a faucet and index is the reserved
// faucet data slot (spec.md §4.4).
func (a *Account) SetItem(ctx *Context, index int, value felt.Word) error {
	if index < 0 || index >= a.cfg.StorageSlotCount {
		panic(fmt.Sprintf("kernel: set_item index %d out of range [0,%d)", index, a.cfg.StorageSlotCount))
	}
	if IsFaucetID(a.ID) && index == a.cfg.FaucetStorageDataSlot {
		panic(fmt.Sprintf("kernel: set_item may not target reserved faucet slot %d", a.cfg.FaucetStorageDataSlot))
	}
	if err := ctx.requireKind(ContextAccount); err != nil {
		return err
	}
	if err := AuthenticateAccountOrigin(ctx, a.CodeRoot); err != nil {
		return err
	}
	a.prims.SMTInsert(a.storageTree, storageDepth(a.cfg), slotKey(index), value)
	return nil
}

// IncrNonce increments the account's nonce by value, account context only.
// value must be strictly less than 2^32 (spec.md §4.4).
func (a *Account) IncrNonce(ctx *Context, value uint64) error {
	if value >= 1<<32 {
		return fmt.Errorf("%w: %d", ErrNonceIncrementTooLarge, value)
	}
	if err := ctx.requireKind(ContextAccount); err != nil {
		return err
	}
	if err := AuthenticateAccountOrigin(ctx, a.CodeRoot); err != nil {
		return err
	}
	a.Nonce = a.Nonce.Add(felt.New(value))
	return nil
}

// SetCode defers a code_root change to the epilogue, only for regular
// (non-faucet) accounts whose CodePolicy is CodeUpdatable (spec.md §4.4).
func (a *Account) SetCode(ctx *Context, newCodeRoot felt.Word) error {
	if IsFaucetID(a.ID) {
		return fmt.Errorf("%w: faucet accounts cannot update code", ErrCodeUpdateNotAllowed)
	}
	if a.CodePolicy != CodeUpdatable {
		return fmt.Errorf("%w: account code policy is immutable", ErrCodeUpdateNotAllowed)
	}
	if err := ctx.requireKind(ContextAccount); err != nil {
		return err
	}
	if err := AuthenticateAccountOrigin(ctx, a.CodeRoot); err != nil {
		return err
	}
	a.NewCodeRoot = newCodeRoot
	return nil
}

// AddAsset adds A to the account vault, account context only. Emits
// AccountVaultAddAssetEvent before mutation (spec.md §4.4).
func (a *Account) AddAsset(ctx *Context, asset Asset) error {
	if err := ctx.requireKind(ContextAccount); err != nil {
		return err
	}
	if err := AuthenticateAccountOrigin(ctx, a.CodeRoot); err != nil {
		return err
	}
	a.events.Emit(AccountVaultAddAssetEvent, asset.Word())
	v := NewVault(a.cfg, a.prims, a.vaultTree)
	return v.Add(asset)
}

// RemoveAsset removes A from the account vault, account context only.
// Emits AccountVaultRemoveAssetEvent before mutation (spec.md §4.4).
func (a *Account) RemoveAsset(ctx *Context, asset Asset) error {
	if err := ctx.requireKind(ContextAccount); err != nil {
		return err
	}
	if err := AuthenticateAccountOrigin(ctx, a.CodeRoot); err != nil {
		return err
	}
	a.events.Emit(AccountVaultRemoveAssetEvent, asset.Word())
	v := NewVault(a.cfg, a.prims, a.vaultTree)
	return v.Remove(asset)
}

// GetBalance returns the account's fungible balance for faucetID. Requires
// faucetID to name a fungible faucet (spec.md §4.4).
func (a *Account) GetBalance(faucetID felt.Felt) (uint64, error) {
	if !IsFungibleFaucetID(faucetID) {
		return 0, ErrNotAFungibleFaucet
	}
	v := NewVault(a.cfg, a.prims, a.vaultTree)
	return v.GetBalance(faucetID), nil
}

// HasNonFungibleAsset reports whether asset is present in the vault.
// Requires asset to be non-fungible (spec.md §4.4).
func (a *Account) HasNonFungibleAsset(asset Asset) (bool, error) {
	if asset.IsFungible() {
		return false, ErrNotANonFungibleFaucet
	}
	v := NewVault(a.cfg, a.prims, a.vaultTree)
	return v.HasNonFungible(asset), nil
}
