package kernel

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/rollupkit/txkernel/felt"
	"github.com/rollupkit/txkernel/mcrypto"
)

// Vault is the sparse-Merkle-tree-backed asset vault of spec.md §4.5,
// identified by a name (so the same Primitives backend can host an
// account's vault, a note's vault, and a faucet's minted-non-fungible set
// side by side without collision).
type Vault struct {
	cfg   Config
	prims mcrypto.Primitives
	name  string
}

// NewVault returns a Vault backed by the named tree in prims.
func NewVault(cfg Config, prims mcrypto.Primitives, name string) *Vault {
	return &Vault{cfg: cfg, prims: prims, name: name}
}

// Root returns the vault's current SMT root.
func (v *Vault) Root() felt.Word {
	return v.prims.SMTRoot(v.name, v.cfg.VaultTreeDepth)
}

// GetBalance returns the fungible amount stored under faucetID, or 0 if
// absent (spec.md §4.5).
func (v *Vault) GetBalance(faucetID felt.Felt) uint64 {
	key := felt.WordFromFelts(faucetID)
	val := v.prims.SMTGet(v.name, key)
	return val[3].Uint64()
}

// HasNonFungible reports whether asset a is present, by SMT membership on
// its own Word as the key.
func (v *Vault) HasNonFungible(a Asset) bool {
	val := v.prims.SMTGet(v.name, a.VaultKey())
	return !val.IsZero()
}

// Add inserts a into the vault: fungible entries sharing a faucet_id sum;
// overflow (sum >= FungibleAmountBound) is fatal. Non-fungible entries must
// be unique; a duplicate add is fatal (spec.md §4.5, testable property S4).
func (v *Vault) Add(a Asset) error {
	key := a.VaultKey()
	existing := v.prims.SMTGet(v.name, key)

	if a.IsFungible() {
		oldAmount := new(uint256.Int).SetUint64(existing[3].Uint64())
		addAmount := new(uint256.Int).SetUint64(a.Amount())
		sum := new(uint256.Int).Add(oldAmount, addAmount)
		bound := new(uint256.Int).SetUint64(v.cfg.FungibleAmountBound)
		if sum.Cmp(bound) >= 0 {
			return fmt.Errorf("%w: faucet %s sum %s >= %s", ErrFungibleOverflow, a.FaucetID(), sum, bound)
		}
		newVal, err := NewFungibleAsset(v.cfg, a.FaucetID(), sum.Uint64())
		if err != nil {
			return err
		}
		v.prims.SMTInsert(v.name, v.cfg.VaultTreeDepth, key, newVal.Word())
		return nil
	}

	if !existing.IsZero() {
		return fmt.Errorf("%w: asset %s", ErrNonFungibleDuplicate, a.Word())
	}
	v.prims.SMTInsert(v.name, v.cfg.VaultTreeDepth, key, a.Word())
	return nil
}

// Remove deducts a from the vault: for a fungible asset the key must exist
// with a balance >= a.Amount(), writing the remainder (or deleting the
// entry if it reaches zero); for a non-fungible asset the key must exist
// and is deleted outright (spec.md §4.5).
func (v *Vault) Remove(a Asset) error {
	key := a.VaultKey()
	existing := v.prims.SMTGet(v.name, key)

	if a.IsFungible() {
		oldAmount := existing[3].Uint64()
		if existing.IsZero() || oldAmount < a.Amount() {
			return fmt.Errorf("%w: faucet %s has %d, remove requests %d", ErrFungibleUnderflow, a.FaucetID(), oldAmount, a.Amount())
		}
		remainder := oldAmount - a.Amount()
		if remainder == 0 {
			v.prims.SMTInsert(v.name, v.cfg.VaultTreeDepth, key, felt.ZeroWord)
			return nil
		}
		newVal, err := NewFungibleAsset(v.cfg, a.FaucetID(), remainder)
		if err != nil {
			return err
		}
		v.prims.SMTInsert(v.name, v.cfg.VaultTreeDepth, key, newVal.Word())
		return nil
	}

	if existing.IsZero() {
		return fmt.Errorf("%w: asset %s", ErrNonFungibleNotPresent, a.Word())
	}
	v.prims.SMTInsert(v.name, v.cfg.VaultTreeDepth, key, felt.ZeroWord)
	return nil
}
