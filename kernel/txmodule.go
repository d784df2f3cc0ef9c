package kernel

import "github.com/rollupkit/txkernel/felt"

// TxModule is the block/chain-query and commitment-reading API surface
// (spec.md §4.8).
type TxModule struct {
	BlockNumber felt.Felt
	BlockHash   felt.Word

	// NullifierCommitment is the running sequential hash of (nullifier,
	// ZERO) pairs computed during prologue note processing. GetInputNotesHash
	// returns this same value: spec.md §9's third open question is resolved
	// by treating "input notes hash" and "nullifier_commitment" as one
	// quantity, not two that happen to agree (see DESIGN.md).
	NullifierCommitment felt.Word

	notes *NoteModule
}

// NewTxModule returns a TxModule reading output-note data from notes.
func NewTxModule(notes *NoteModule) *TxModule {
	return &TxModule{notes: notes}
}

// GetBlockNumber returns the transaction's reference block number.
func (m *TxModule) GetBlockNumber() felt.Felt { return m.BlockNumber }

// GetBlockHash returns the transaction's reference block hash.
func (m *TxModule) GetBlockHash() felt.Word { return m.BlockHash }

// GetInputNotesHash returns the input-note commitment — the same running
// value tracked as NullifierCommitment (spec.md §9).
func (m *TxModule) GetInputNotesHash() felt.Word { return m.NullifierCommitment }

// GetOutputNotesHash returns the output-note commitment.
func (m *TxModule) GetOutputNotesHash() felt.Word {
	return m.notes.ComputeOutputNotesCommitment()
}
