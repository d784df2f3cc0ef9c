package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rollupkit/txkernel/felt"
	"github.com/rollupkit/txkernel/mcrypto"
)

func TestVaultAddThenGetBalance(t *testing.T) {
	cfg := DefaultConfig()
	prims := mcrypto.NewReference()
	v := NewVault(cfg, prims, "test-vault-1")
	faucet := fungibleFaucetID(1)

	a, err := NewFungibleAsset(cfg, faucet, 100)
	require.NoError(t, err)
	require.NoError(t, v.Add(a))
	require.Equal(t, uint64(100), v.GetBalance(faucet))
}

func TestVaultAddMergesSameFaucet(t *testing.T) {
	cfg := DefaultConfig()
	prims := mcrypto.NewReference()
	v := NewVault(cfg, prims, "test-vault-2")
	faucet := fungibleFaucetID(2)

	a1, _ := NewFungibleAsset(cfg, faucet, 40)
	a2, _ := NewFungibleAsset(cfg, faucet, 60)
	require.NoError(t, v.Add(a1))
	require.NoError(t, v.Add(a2))
	require.Equal(t, uint64(100), v.GetBalance(faucet))
}

func TestVaultAddFungibleOverflowIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	prims := mcrypto.NewReference()
	v := NewVault(cfg, prims, "test-vault-3")
	faucet := fungibleFaucetID(3)

	big, err := NewFungibleAsset(cfg, faucet, cfg.FungibleAmountBound-1)
	require.NoError(t, err)
	require.NoError(t, v.Add(big))

	one, err := NewFungibleAsset(cfg, faucet, 1)
	require.NoError(t, err)
	err = v.Add(one)
	require.ErrorIs(t, err, ErrFungibleOverflow)
}

func TestVaultAddNonFungibleDuplicateIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	prims := mcrypto.NewReference()
	v := NewVault(cfg, prims, "test-vault-4")
	faucet := nonFungibleFaucetID(4)

	a, err := NewNonFungibleAsset(faucet, felt.WordFromUint64s(1, 2, 3, 4))
	require.NoError(t, err)
	require.NoError(t, v.Add(a))
	require.ErrorIs(t, v.Add(a), ErrNonFungibleDuplicate)
}

func TestVaultRemoveFungiblePartial(t *testing.T) {
	cfg := DefaultConfig()
	prims := mcrypto.NewReference()
	v := NewVault(cfg, prims, "test-vault-5")
	faucet := fungibleFaucetID(5)

	a, _ := NewFungibleAsset(cfg, faucet, 100)
	require.NoError(t, v.Add(a))

	remove, _ := NewFungibleAsset(cfg, faucet, 30)
	require.NoError(t, v.Remove(remove))
	require.Equal(t, uint64(70), v.GetBalance(faucet))
}

func TestVaultRemoveFungibleUnderflowIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	prims := mcrypto.NewReference()
	v := NewVault(cfg, prims, "test-vault-6")
	faucet := fungibleFaucetID(6)

	a, _ := NewFungibleAsset(cfg, faucet, 10)
	require.NoError(t, v.Add(a))

	remove, _ := NewFungibleAsset(cfg, faucet, 11)
	require.ErrorIs(t, v.Remove(remove), ErrFungibleUnderflow)
}

func TestVaultRemoveNonFungibleAbsentIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	prims := mcrypto.NewReference()
	v := NewVault(cfg, prims, "test-vault-7")
	faucet := nonFungibleFaucetID(7)

	a, err := NewNonFungibleAsset(faucet, felt.WordFromUint64s(9, 9, 9, 9))
	require.NoError(t, err)
	require.ErrorIs(t, v.Remove(a), ErrNonFungibleNotPresent)
}
