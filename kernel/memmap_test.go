package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rollupkit/txkernel/felt"
)

func TestMemoryGlobalInputsRoundTrip(t *testing.T) {
	m := NewMemory()
	blockHash := felt.WordFromUint64s(1, 2, 3, 4)
	m.SetGlobalBlockHash(blockHash)
	m.SetGlobalAccountID(felt.New(99))
	require.Equal(t, blockHash, m.GlobalBlockHash())
	require.Equal(t, felt.New(99), m.GlobalAccountID())
}

func TestMemoryInputNoteRoundTrip(t *testing.T) {
	m := NewMemory()
	noteHash := felt.WordFromUint64s(1, 1, 1, 1)
	nullifier := felt.WordFromUint64s(2, 2, 2, 2)
	m.SetInputNote(3, noteHash, nullifier)
	gotHash, gotNullifier := m.InputNote(3)
	require.Equal(t, noteHash, gotHash)
	require.Equal(t, nullifier, gotNullifier)
}

func TestMemoryChainPeakOutOfRangePanics(t *testing.T) {
	m := NewMemory()
	require.Panics(t, func() { m.SetChainPeak(int(chainMMRMaxPeaks), felt.ZeroWord) })
}

func TestMemoryOutputNoteRoundTrip(t *testing.T) {
	m := NewMemory()
	noteHash := felt.WordFromUint64s(3, 3, 3, 3)
	metadata := felt.WordFromUint64s(4, 4, 4, 4)
	m.SetOutputNote(0, noteHash, metadata)
	gotHash, gotMeta := m.OutputNote(0)
	require.Equal(t, noteHash, gotHash)
	require.Equal(t, metadata, gotMeta)
}

func TestMemoryVaultScratchAndTxScriptRoot(t *testing.T) {
	m := NewMemory()
	in := felt.WordFromUint64s(1, 0, 0, 0)
	out := felt.WordFromUint64s(2, 0, 0, 0)
	script := felt.WordFromUint64s(3, 0, 0, 0)
	m.SetInputVaultRoot(in)
	m.SetOutputVaultRoot(out)
	m.SetTxScriptRoot(script)
	require.Equal(t, in, m.InputVaultRoot())
	require.Equal(t, out, m.OutputVaultRoot())
	require.Equal(t, script, m.TxScriptRoot())
}
