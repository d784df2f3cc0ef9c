package kernel

import (
	"fmt"

	"github.com/rollupkit/txkernel/felt"
)

// FaucetModule is the faucet-facing API surface (spec.md §4.7): mint/burn
// and issuance accounting, backed by the faucet account's reserved storage
// slot 254.
type FaucetModule struct {
	cfg Config
}

// NewFaucetModule returns a FaucetModule bound to cfg.
func NewFaucetModule(cfg Config) *FaucetModule {
	return &FaucetModule{cfg: cfg}
}

func (m *FaucetModule) mintTreeName(faucet *Account) string {
	return "faucet-mint:" + fmt.Sprintf("%d", faucet.ID.Uint64())
}

// Mint adds asset to faucet's issuance: fungible assets add to
// total_issuance (reserved slot 254), fatal on overflow; non-fungible
// assets insert into the minted non-fungible set, whose root is written to
// reserved slot 254, fatal on duplicate (spec.md §4.7, testable scenario
// S4). Faucet context only; asset's
// faucet_id must equal the executing faucet's own id.
func (m *FaucetModule) Mint(ctx *Context, faucet *Account, asset Asset) error {
	if err := ctx.requireKind(ContextAccount); err != nil {
		return err
	}
	if err := AuthenticateAccountOrigin(ctx, faucet.CodeRoot); err != nil {
		return err
	}
	if !IsFaucetID(faucet.ID) {
		return ErrNotAFaucet
	}
	if asset.FaucetID() != faucet.ID {
		return fmt.Errorf("%w: asset faucet_id does not match executing faucet", ErrNotAFaucet)
	}

	if asset.IsFungible() {
		current := faucet.prims.SMTGet(faucet.storageTree, slotKey(m.cfg.FaucetStorageDataSlot))
		oldIssuance := current[3].Uint64()
		newIssuance := oldIssuance + asset.Amount()
		if newIssuance < oldIssuance || newIssuance >= m.cfg.FungibleAmountBound {
			return fmt.Errorf("%w: total_issuance %d + %d exceeds cap", ErrFungibleOverflow, oldIssuance, asset.Amount())
		}
		faucet.prims.SMTInsert(faucet.storageTree, storageDepth(m.cfg), slotKey(m.cfg.FaucetStorageDataSlot),
			felt.WordFromUint64s(0, 0, 0, newIssuance))
		return nil
	}

	tree := m.mintTreeName(faucet)
	existing := faucet.prims.SMTGet(tree, asset.VaultKey())
	if !existing.IsZero() {
		return fmt.Errorf("%w: %s", ErrNonFungibleDuplicate, asset.Word())
	}
	root := faucet.prims.SMTInsert(tree, m.cfg.VaultTreeDepth, asset.VaultKey(), asset.Word())
	faucet.prims.SMTInsert(faucet.storageTree, storageDepth(m.cfg), slotKey(m.cfg.FaucetStorageDataSlot), root)
	return nil
}

// Burn reverses a prior mint: fungible assets subtract from total_issuance,
// fatal if the asset is absent or exceeds the current issuance;
// non-fungible assets are removed from the minted set, fatal if absent
// (spec.md §4.7).
func (m *FaucetModule) Burn(ctx *Context, faucet *Account, asset Asset) error {
	if err := ctx.requireKind(ContextAccount); err != nil {
		return err
	}
	if err := AuthenticateAccountOrigin(ctx, faucet.CodeRoot); err != nil {
		return err
	}
	if !IsFaucetID(faucet.ID) {
		return ErrNotAFaucet
	}
	if asset.FaucetID() != faucet.ID {
		return fmt.Errorf("%w: asset faucet_id does not match executing faucet", ErrNotAFaucet)
	}

	if asset.IsFungible() {
		current := faucet.prims.SMTGet(faucet.storageTree, slotKey(m.cfg.FaucetStorageDataSlot))
		oldIssuance := current[3].Uint64()
		if oldIssuance < asset.Amount() {
			return fmt.Errorf("%w: total_issuance %d < burn amount %d", ErrFungibleUnderflow, oldIssuance, asset.Amount())
		}
		newIssuance := oldIssuance - asset.Amount()
		faucet.prims.SMTInsert(faucet.storageTree, storageDepth(m.cfg), slotKey(m.cfg.FaucetStorageDataSlot),
			felt.WordFromUint64s(0, 0, 0, newIssuance))
		return nil
	}

	tree := m.mintTreeName(faucet)
	existing := faucet.prims.SMTGet(tree, asset.VaultKey())
	if existing.IsZero() {
		return fmt.Errorf("%w: %s", ErrNonFungibleNotPresent, asset.Word())
	}
	root := faucet.prims.SMTInsert(tree, m.cfg.VaultTreeDepth, asset.VaultKey(), felt.ZeroWord)
	faucet.prims.SMTInsert(faucet.storageTree, storageDepth(m.cfg), slotKey(m.cfg.FaucetStorageDataSlot), root)
	return nil
}

// GetTotalIssuance returns a fungible faucet's total_issuance. Fungible
// faucets only (spec.md §4.7).
func (m *FaucetModule) GetTotalIssuance(faucet *Account) (uint64, error) {
	if !IsFungibleFaucetID(faucet.ID) {
		return 0, ErrNotAFungibleFaucet
	}
	current := faucet.prims.SMTGet(faucet.storageTree, slotKey(m.cfg.FaucetStorageDataSlot))
	return current[3].Uint64(), nil
}
