package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigMatchesNormativeConstants(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 256, cfg.StorageSlotCount)
	require.Equal(t, 254, cfg.FaucetStorageDataSlot)
	require.Equal(t, 255, cfg.SlotTypesStorageSlot)
	require.Equal(t, uint64(1)<<63, cfg.FungibleAmountBound)
}
