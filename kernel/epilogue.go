package kernel

import (
	"fmt"

	"github.com/rollupkit/txkernel/felt"
	"github.com/rollupkit/txkernel/log"
)

// EpilogueOutput is the canonical three-Word result the epilogue leaves
// behind once every invariant check passes (spec.md §4.11(g)).
type EpilogueOutput struct {
	TxScriptRoot          felt.Word
	OutputNotesCommitment felt.Word
	FinalAccountHash      felt.Word
}

// Epilogue implements spec.md §4.11: commits any pending code update,
// recomputes the final account hash, builds the output vault from the
// transaction's created notes, and enforces the asset-conservation and
// nonce-monotonicity invariants before releasing the final output triple.
//
// Grounded on the teacher's zkvm/stf_executor.go ApplyBlock tail end: apply
// pending state deltas, recompute the post-state commitment, then assert it
// against the claimed one before returning.
type Epilogue struct {
	log *log.Logger
}

// NewEpilogue returns an Epilogue.
func NewEpilogue() *Epilogue {
	return &Epilogue{log: log.Default().Module("epilogue")}
}

// Run executes epilogue steps (a)-(g) against state, the TxState a prior
// Prologue.Run produced.
func (e *Epilogue) Run(state *TxState) (*EpilogueOutput, error) {
	e.log.Info("epilogue started", log.PhaseAttr("epilogue"))
	account := state.Account

	// (a) commit the pending code update, if any.
	account.CodeRoot = account.NewCodeRoot

	// (b) recompute final_account_hash and enforce nonce monotonicity.
	finalHash := account.GetCurrentHash()
	if !finalHash.Equal(account.InitialHash) {
		if account.Nonce.Uint64() <= account.InitialNonce.Uint64() {
			err := fmt.Errorf("%w: initial %d, final %d", ErrNonceNotIncreased, account.InitialNonce.Uint64(), account.Nonce.Uint64())
			e.log.Error(err.Error())
			return nil, err
		}
	}

	// (c) build the output vault. The account's live vault tree is already
	// in its post-body state, so "initialize output_vault_root from the
	// current account vault" is satisfied simply by continuing to add to
	// the same named tree — no separate copy step is needed since nothing
	// else still reads the tree as "pre-body" by this point.
	outputVault := NewVault(state.cfg, state.prims, account.vaultTree)
	for i, n := range state.Notes.Created {
		for _, a := range n.Assets {
			if err := outputVault.Add(a); err != nil {
				err = fmt.Errorf("output note %d: %w", i, err)
				e.log.Error(err.Error())
				return nil, err
			}
		}
	}
	outputVaultRoot := outputVault.Root()
	state.Memory.SetOutputVaultRoot(outputVaultRoot)

	// (d) compute output_notes_commitment. Nothing downstream in this
	// kernel consumes the commitment beyond returning it — there is no
	// prover/advice-map publication step in scope here (spec.md §1) — so it
	// is simply part of the returned triple.
	outputNotesCommitment := state.Notes.ComputeOutputNotesCommitment()

	// (e) read tx_script_root, already populated by the prologue.
	txScriptRoot := state.Memory.TxScriptRoot()

	// (f) assert asset conservation.
	if !state.Memory.InputVaultRoot().Equal(outputVaultRoot) {
		err := fmt.Errorf("%w: input %s output %s", ErrVaultConservation, state.Memory.InputVaultRoot(), outputVaultRoot)
		e.log.Error(err.Error())
		return nil, err
	}

	e.log.Info("epilogue completed", log.PhaseAttr("epilogue"), log.WordAttr("final_account_hash", finalHash))

	// (g) return the canonical output triple.
	return &EpilogueOutput{
		TxScriptRoot:          txScriptRoot,
		OutputNotesCommitment: outputNotesCommitment,
		FinalAccountHash:      finalHash,
	}, nil
}
