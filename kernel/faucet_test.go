package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rollupkit/txkernel/felt"
	"github.com/rollupkit/txkernel/mcrypto"
)

func TestFaucetMintFungibleThenGetTotalIssuance(t *testing.T) {
	cfg := DefaultConfig()
	prims := mcrypto.NewReference()
	faucet := NewAccount(cfg, prims, fungibleFaucetID(1), nil)
	m := NewFaucetModule(cfg)
	ctx := &Context{Kind: ContextAccount}

	asset, err := NewFungibleAsset(cfg, faucet.ID, 500)
	require.NoError(t, err)
	require.NoError(t, m.Mint(ctx, faucet, asset))

	issuance, err := m.GetTotalIssuance(faucet)
	require.NoError(t, err)
	require.Equal(t, uint64(500), issuance)
}

func TestFaucetMintRequiresAccountContext(t *testing.T) {
	cfg := DefaultConfig()
	prims := mcrypto.NewReference()
	faucet := NewAccount(cfg, prims, fungibleFaucetID(2), nil)
	m := NewFaucetModule(cfg)
	ctx := &Context{Kind: ContextNote}

	asset, _ := NewFungibleAsset(cfg, faucet.ID, 1)
	err := m.Mint(ctx, faucet, asset)
	require.ErrorIs(t, err, ErrWrongContext)
}

func TestFaucetBurnFungibleUnderflowIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	prims := mcrypto.NewReference()
	faucet := NewAccount(cfg, prims, fungibleFaucetID(3), nil)
	m := NewFaucetModule(cfg)
	ctx := &Context{Kind: ContextAccount}

	asset, _ := NewFungibleAsset(cfg, faucet.ID, 1)
	err := m.Burn(ctx, faucet, asset)
	require.ErrorIs(t, err, ErrFungibleUnderflow)
}

func TestFaucetMintNonFungibleDuplicateIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	prims := mcrypto.NewReference()
	faucet := NewAccount(cfg, prims, nonFungibleFaucetID(4), nil)
	m := NewFaucetModule(cfg)
	ctx := &Context{Kind: ContextAccount}

	asset, err := NewNonFungibleAsset(faucet.ID, felt.WordFromUint64s(1, 2, 3, 4))
	require.NoError(t, err)
	require.NoError(t, m.Mint(ctx, faucet, asset))
	require.ErrorIs(t, m.Mint(ctx, faucet, asset), ErrNonFungibleDuplicate)
}

func TestFaucetMintRejectsMismatchedFaucetID(t *testing.T) {
	cfg := DefaultConfig()
	prims := mcrypto.NewReference()
	faucet := NewAccount(cfg, prims, fungibleFaucetID(5), nil)
	other := fungibleFaucetID(6)
	m := NewFaucetModule(cfg)
	ctx := &Context{Kind: ContextAccount}

	asset, err := NewFungibleAsset(cfg, other, 1)
	require.NoError(t, err)
	require.ErrorIs(t, m.Mint(ctx, faucet, asset), ErrNotAFaucet)
}

// S2: a faucet mint/burn call must reject an origin other than the
// faucet account's own CodeRoot.
func TestFaucetMintRejectsForeignOrigin(t *testing.T) {
	cfg := DefaultConfig()
	prims := mcrypto.NewReference()
	faucet := NewAccount(cfg, prims, fungibleFaucetID(8), nil)
	faucet.CodeRoot = felt.WordFromUint64s(1, 2, 3, 4)
	m := NewFaucetModule(cfg)
	ctx := &Context{Kind: ContextAccount, Origin: felt.WordFromUint64s(9, 9, 9, 9)}

	asset, err := NewFungibleAsset(cfg, faucet.ID, 1)
	require.NoError(t, err)
	require.ErrorIs(t, m.Mint(ctx, faucet, asset), ErrUnauthorizedOrigin)
}

func TestFaucetGetTotalIssuanceRejectsNonFungible(t *testing.T) {
	cfg := DefaultConfig()
	prims := mcrypto.NewReference()
	faucet := NewAccount(cfg, prims, nonFungibleFaucetID(7), nil)
	m := NewFaucetModule(cfg)

	_, err := m.GetTotalIssuance(faucet)
	require.ErrorIs(t, err, ErrNotAFungibleFaucet)
}
