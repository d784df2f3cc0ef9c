package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rollupkit/txkernel/felt"
	"github.com/rollupkit/txkernel/mcrypto"
)

func TestAccountGetItemPanicsOutOfRange(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAccount(cfg, mcrypto.NewReference(), regularAccountID(1), nil)
	require.Panics(t, func() { a.GetItem(256) })
}

func TestAccountSetItemRequiresAccountContext(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAccount(cfg, mcrypto.NewReference(), regularAccountID(2), nil)
	ctx := &Context{Kind: ContextNote}
	err := a.SetItem(ctx, 3, felt.WordFromUint64s(1, 0, 0, 0))
	require.ErrorIs(t, err, ErrWrongContext)
}

func TestAccountSetItemThenGetItemRoundTrips(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAccount(cfg, mcrypto.NewReference(), regularAccountID(3), nil)
	ctx := &Context{Kind: ContextAccount}
	val := felt.WordFromUint64s(7, 7, 7, 7)
	require.NoError(t, a.SetItem(ctx, 3, val))
	require.Equal(t, val, a.GetItem(3))
}

func TestAccountSetItemPanicsOnFaucetReservedSlot(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAccount(cfg, mcrypto.NewReference(), fungibleFaucetID(1), nil)
	ctx := &Context{Kind: ContextAccount}
	require.Panics(t, func() {
		a.SetItem(ctx, cfg.FaucetStorageDataSlot, felt.WordFromUint64s(1, 0, 0, 0))
	})
}

func TestAccountIncrNonceRejectsOversizedDelta(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAccount(cfg, mcrypto.NewReference(), regularAccountID(4), nil)
	ctx := &Context{Kind: ContextAccount}
	err := a.IncrNonce(ctx, 1<<32)
	require.ErrorIs(t, err, ErrNonceIncrementTooLarge)
}

func TestAccountSetCodeRejectsImmutablePolicy(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAccount(cfg, mcrypto.NewReference(), regularAccountID(5), nil)
	a.CodePolicy = CodeImmutable
	ctx := &Context{Kind: ContextAccount}
	err := a.SetCode(ctx, felt.WordFromUint64s(1, 1, 1, 1))
	require.ErrorIs(t, err, ErrCodeUpdateNotAllowed)
}

func TestAccountSetCodeRejectsFaucet(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAccount(cfg, mcrypto.NewReference(), fungibleFaucetID(2), nil)
	a.CodePolicy = CodeUpdatable
	ctx := &Context{Kind: ContextAccount}
	err := a.SetCode(ctx, felt.WordFromUint64s(1, 1, 1, 1))
	require.ErrorIs(t, err, ErrCodeUpdateNotAllowed)
}

func TestAccountGetCurrentHashChangesWithVault(t *testing.T) {
	cfg := DefaultConfig()
	prims := mcrypto.NewReference()
	a := NewAccount(cfg, prims, regularAccountID(6), nil)
	before := a.GetCurrentHash()

	ctx := &Context{Kind: ContextAccount}
	asset, err := NewFungibleAsset(cfg, fungibleFaucetID(3), 5)
	require.NoError(t, err)
	require.NoError(t, a.AddAsset(ctx, asset))

	after := a.GetCurrentHash()
	require.NotEqual(t, before, after)
}

func TestAccountAddAssetEmitsEvent(t *testing.T) {
	cfg := DefaultConfig()
	sink := &RecordingEventSink{}
	a := NewAccount(cfg, mcrypto.NewReference(), regularAccountID(7), sink)
	ctx := &Context{Kind: ContextAccount}
	asset, err := NewFungibleAsset(cfg, fungibleFaucetID(4), 1)
	require.NoError(t, err)
	require.NoError(t, a.AddAsset(ctx, asset))
	require.Len(t, sink.Events, 1)
	require.Equal(t, AccountVaultAddAssetEvent, sink.Events[0].Code)
}

// S2: a mutator must reject an account-context call whose Origin isn't the
// account's own CodeRoot, even though Kind alone is correct.
func TestAccountAddAssetRejectsForeignOrigin(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAccount(cfg, mcrypto.NewReference(), regularAccountID(9), nil)
	a.CodeRoot = felt.WordFromUint64s(1, 2, 3, 4)
	ctx := &Context{Kind: ContextAccount, Origin: felt.WordFromUint64s(9, 9, 9, 9)}
	asset, err := NewFungibleAsset(cfg, fungibleFaucetID(5), 1)
	require.NoError(t, err)
	require.ErrorIs(t, a.AddAsset(ctx, asset), ErrUnauthorizedOrigin)
}

func TestAccountIncrNonceRejectsForeignOrigin(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAccount(cfg, mcrypto.NewReference(), regularAccountID(10), nil)
	a.CodeRoot = felt.WordFromUint64s(1, 2, 3, 4)
	ctx := &Context{Kind: ContextAccount, Origin: felt.WordFromUint64s(9, 9, 9, 9)}
	require.ErrorIs(t, a.IncrNonce(ctx, 1), ErrUnauthorizedOrigin)
}

func TestAccountGetBalanceRejectsNonFungibleFaucetID(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAccount(cfg, mcrypto.NewReference(), regularAccountID(8), nil)
	_, err := a.GetBalance(nonFungibleFaucetID(5))
	require.ErrorIs(t, err, ErrNotAFungibleFaucet)
}
