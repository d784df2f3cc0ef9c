package kernel

import (
	"github.com/rollupkit/txkernel/felt"
	"github.com/rollupkit/txkernel/mcrypto"
)

// Account id type bits (spec.md §3): the low bits of account_id encode
// is_faucet and is_fungible.
const (
	idBitFaucet   uint64 = 1 << 0
	idBitFungible uint64 = 1 << 1
)

// IsFaucetID reports whether id's is_faucet bit is set.
func IsFaucetID(id felt.Felt) bool { return id.Uint64()&idBitFaucet != 0 }

// IsFungibleFaucetID reports whether id is a faucet with is_fungible set.
func IsFungibleFaucetID(id felt.Felt) bool {
	return IsFaucetID(id) && id.Uint64()&idBitFungible != 0
}

// IsNonFungibleFaucetID reports whether id is a faucet with is_fungible
// clear.
func IsNonFungibleFaucetID(id felt.Felt) bool {
	return IsFaucetID(id) && id.Uint64()&idBitFungible == 0
}

// Asset is either a fungible or non-fungible asset, carried in one Word
// (spec.md §3).
type Asset felt.Word

// NewFungibleAsset builds a fungible asset (faucet_id, 0, 0, amount).
// amount must be strictly less than cfg.FungibleAmountBound.
func NewFungibleAsset(cfg Config, faucetID felt.Felt, amount uint64) (Asset, error) {
	if !IsFungibleFaucetID(faucetID) {
		return Asset{}, ErrNotAFungibleFaucet
	}
	if amount >= cfg.FungibleAmountBound {
		return Asset{}, ErrFungibleOverflow
	}
	return Asset(felt.WordFromFelts(faucetID, felt.Zero, felt.Zero, felt.New(amount))), nil
}

// NewNonFungibleAsset builds a non-fungible asset whose low limb encodes
// faucetID, matching spec.md §3's "derivable from hash(faucet_id ‖
// DATA_HASH)".
func NewNonFungibleAsset(faucetID felt.Felt, dataHash felt.Word) (Asset, error) {
	if !IsNonFungibleFaucetID(faucetID) {
		return Asset{}, ErrNotANonFungibleFaucet
	}
	digest := mcrypto.Hash(felt.WordFromFelts(faucetID), dataHash)
	return Asset(felt.WordFromFelts(faucetID, digest[1], digest[2], digest[3])), nil
}

// IsFungible reports whether a's faucet id is a fungible faucet.
func (a Asset) IsFungible() bool { return IsFungibleFaucetID(a.FaucetID()) }

// FaucetID returns the low limb, the faucet id that minted a.
func (a Asset) FaucetID() felt.Felt { return felt.Word(a)[0] }

// Amount returns the fungible amount carried in a's high limb. Only
// meaningful when a.IsFungible().
func (a Asset) Amount() uint64 { return felt.Word(a)[3].Uint64() }

// Word returns a's raw Word representation.
func (a Asset) Word() felt.Word { return felt.Word(a) }

// VaultKey returns the SMT key under which a is stored in an asset vault:
// faucet_id for fungibles (so same-faucet assets merge), the asset itself
// for non-fungibles (so each is unique).
func (a Asset) VaultKey() felt.Word {
	if a.IsFungible() {
		return felt.WordFromFelts(a.FaucetID())
	}
	return felt.Word(a)
}

// SlotKind discriminates a storage slot's value shape.
type SlotKind int

const (
	// SlotScalar stores a single Word directly.
	SlotScalar SlotKind = iota
	// SlotMap stores the root of a sub-SMT.
	SlotMap
)

// SlotType packs a slot's kind and entry arity — the "tagged sum" spec.md
// §9 recommends as the in-memory representation, serialized to a single F
// only at the storage boundary (see SlotType.Encode/DecodeSlotType).
type SlotType struct {
	Kind  SlotKind
	Arity int // entry_arity, in [0, 255]
}

// Encode packs t into a single field element: bit 0 is the kind tag (1 =
// map), bits [1:9] carry the arity.
func (t SlotType) Encode() felt.Felt {
	v := uint64(t.Arity&0xFF) << 1
	if t.Kind == SlotMap {
		v |= 1
	}
	return felt.New(v)
}

// DecodeSlotType unpacks a slot-type field element, erroring if the arity
// exceeds 255 — the only possible inconsistency (the kind bit is always
// well-formed by construction since it's a single bit).
func DecodeSlotType(f felt.Felt) (SlotType, error) {
	v := f.Uint64()
	kind := SlotScalar
	if v&1 == 1 {
		kind = SlotMap
	}
	arity := v >> 1
	if arity > 255 {
		return SlotType{}, ErrReservedSlotMistyped
	}
	return SlotType{Kind: kind, Arity: int(arity)}, nil
}

// BlockHeader is the fixed 7-word block header spec.md §3 describes.
type BlockHeader struct {
	PrevHash  felt.Word // PH
	ChainRoot felt.Word // CR
	StateRoot felt.Word // SR
	BatchRoot felt.Word // BR
	PrevHash2 felt.Word // PH'
	BlockNum  felt.Felt // BN
	NoteRoot  felt.Word // NR, absorbed separately per spec.md §4.10(b)
}

// SubHash returns H(NR ‖ PH ‖ CR ‖ SR ‖ BR ‖ PH' ‖ BN), the streamed portion
// of the block hash before the note root is folded in (spec.md §3).
func (b BlockHeader) SubHash() felt.Word {
	return mcrypto.HashFelts(
		b.NoteRoot[0], b.NoteRoot[1], b.NoteRoot[2], b.NoteRoot[3],
		b.PrevHash[0], b.PrevHash[1], b.PrevHash[2], b.PrevHash[3],
		b.ChainRoot[0], b.ChainRoot[1], b.ChainRoot[2], b.ChainRoot[3],
		b.StateRoot[0], b.StateRoot[1], b.StateRoot[2], b.StateRoot[3],
		b.BatchRoot[0], b.BatchRoot[1], b.BatchRoot[2], b.BatchRoot[3],
		b.PrevHash2[0], b.PrevHash2[1], b.PrevHash2[2], b.PrevHash2[3],
		b.BlockNum,
	)
}

// BlockHash returns H(SubHash ‖ NR), the full block hash spec.md §3 defines.
func (b BlockHeader) BlockHash() felt.Word {
	return mcrypto.Hash(b.SubHash(), b.NoteRoot)
}
