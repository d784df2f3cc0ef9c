package kernel

import (
	"fmt"

	"github.com/rollupkit/txkernel/felt"
	"github.com/rollupkit/txkernel/log"
	"github.com/rollupkit/txkernel/mcrypto"
)

// PublicInputs are the four Words/Felt pushed onto the stack at transaction
// entry (spec.md §6).
type PublicInputs struct {
	BlockHash           felt.Word
	AccountID           felt.Felt
	InitialAccountHash  felt.Word
	NullifierCommitment felt.Word
}

// ChainWitness is the advice-supplied chain-MMR state as of the block
// referenced by this transaction: a peak list and the leaf count it covers
// (spec.md §4.10(c)).
type ChainWitness struct {
	Peaks     []felt.Word
	NumLeaves uint64
}

// AccountWitness is the advice-supplied account record the prologue
// ingests (spec.md §4.10(d)). VaultAssets and Storage seed the
// account's vault and storage trees; a brand-new account supplies both
// empty.
type AccountWitness struct {
	ID          felt.Felt
	Nonce       felt.Felt
	VaultAssets []Asset
	Storage     map[int]felt.Word
	SlotTypes   [256]SlotType
	CodeRoot    felt.Word
	CodePolicy  CodePolicy
	// SeedValid stands in for the account_id seed/PoW predicate, a VM-level
	// detail out of this kernel's scope (spec.md §1); the prologue trusts
	// whatever value the witness asserts for it, exactly as it trusts any
	// other advice-provided fact it cannot recompute on its own.
	SeedValid bool
}

// NoteWitness is one consumed note's advice-supplied data: the note itself
// plus the per-note MMR/Merkle opening authenticating it against chain
// state (spec.md §4.10(e)).
type NoteWitness struct {
	Note     Note
	LeafPos  uint64
	SubHash  felt.Word
	NoteRoot felt.Word
	NoteIdx  uint64
	NotePath mcrypto.MerklePath
}

// PrologueWitness bundles every piece of advice-provided (private) data the
// prologue consumes (spec.md §6).
type PrologueWitness struct {
	Block        BlockHeader
	Chain        ChainWitness
	Account      AccountWitness
	InputNotes   []NoteWitness
	TxScriptRoot felt.Word
}

// TxState is everything the transaction body and epilogue operate on,
// populated by a successful Prologue.Run.
type TxState struct {
	Memory  *Memory
	Account *Account
	Notes   *NoteModule
	Faucet  *FaucetModule
	Tx      *TxModule
	RootCtx *Context

	cfg   Config
	prims mcrypto.Primitives
}

// Prologue implements spec.md §4.10: unhash and authenticate every input,
// populating Memory and constructing the live Account/NoteModule/TxModule
// the transaction body runs against.
//
// Grounded on the teacher's zkvm/stf_executor.go ValidateTransition /
// guest.go ExecuteBlockFull shape: read inputs, recompute commitments,
// compare against the claimed public values, populate working state only
// once every check passes.
type Prologue struct {
	cfg    Config
	prims  mcrypto.Primitives
	events EventSink
	log    *log.Logger
}

// NewPrologue returns a Prologue bound to cfg and prims. events may be nil
// (defaults to a no-op sink).
func NewPrologue(cfg Config, prims mcrypto.Primitives, events EventSink) *Prologue {
	if events == nil {
		events = NoopEventSink{}
	}
	return &Prologue{cfg: cfg, prims: prims, events: events, log: log.Default().Module("prologue")}
}

// Run executes the prologue steps (a)-(f) in order, returning a populated
// TxState or the first fatal error encountered.
func (p *Prologue) Run(pub PublicInputs, w PrologueWitness) (*TxState, error) {
	p.log.Info("prologue started", log.PhaseAttr("prologue"), log.WordAttr("block_hash", pub.BlockHash))

	mem := NewMemory()

	// (a) process global inputs.
	mem.SetGlobalBlockHash(pub.BlockHash)
	mem.SetGlobalAccountID(pub.AccountID)
	mem.SetGlobalInitialAccountHash(pub.InitialAccountHash)
	mem.SetGlobalNullifierCommitment(pub.NullifierCommitment)

	// (b) process block data.
	header := w.Block
	subHash := header.SubHash()
	blockHash := header.BlockHash()
	if !blockHash.Equal(pub.BlockHash) {
		err := fmt.Errorf("%w: got %s want %s", ErrBlockHashMismatch, blockHash, pub.BlockHash)
		p.log.Error(err.Error())
		return nil, err
	}
	mem.SetBlockSubHash(subHash)
	mem.SetBlockNoteRoot(header.NoteRoot)
	mem.SetBlockChainRoot(header.ChainRoot)
	mem.SetBlockNumber(header.BlockNum)
	mem.SetBlockHash(blockHash)

	// (c) process chain data.
	commitment := mcrypto.CommitPeaks(w.Chain.Peaks, w.Chain.NumLeaves)
	if !commitment.Equal(header.ChainRoot) {
		err := fmt.Errorf("%w: got %s want %s", ErrChainRootMismatch, commitment, header.ChainRoot)
		p.log.Error(err.Error())
		return nil, err
	}
	mem.SetChainNumLeaves(w.Chain.NumLeaves)
	for i, peak := range w.Chain.Peaks {
		mem.SetChainPeak(i, peak)
	}
	// Append the current block into the MMR (by its full block hash, the
	// value later note authentications compare a recomputed H(sub_hash,
	// note_root) against) so notes it creates can be authenticated by
	// future transactions.
	p.prims.MMRAppend(blockHash)

	// (d) process account data.
	account, err := p.processAccountData(pub, w.Account, mem)
	if err != nil {
		p.log.Error(err.Error())
		return nil, err
	}

	// (e) process input notes.
	if len(w.InputNotes) > p.cfg.MaxNumConsumedNotes {
		err := fmt.Errorf("%w: %d > %d", ErrTooManyNotes, len(w.InputNotes), p.cfg.MaxNumConsumedNotes)
		p.log.Error(err.Error())
		return nil, err
	}
	inputVault := NewVault(p.cfg, p.prims, account.vaultTree)
	sp := mcrypto.NewSponge()
	for i, nw := range w.InputNotes {
		p.log.Info("processing input note", log.PhaseAttr("prologue"), "note", i+1, "of", len(w.InputNotes))
		note := nw.Note
		if len(note.Inputs) > p.cfg.MaxInputsPerNote {
			err := fmt.Errorf("%w: note %d has %d inputs", ErrTooManyInputs, i, len(note.Inputs))
			p.log.Error(err.Error())
			return nil, err
		}
		if len(note.Assets) > p.cfg.MaxAssetsPerNote {
			err := fmt.Errorf("%w: note %d has %d assets", ErrTooManyAssets, i, len(note.Assets))
			p.log.Error(err.Error())
			return nil, err
		}
		for _, a := range note.Assets {
			if err := inputVault.Add(a); err != nil {
				err = fmt.Errorf("note %d: %w", i, err)
				p.log.Error(err.Error())
				return nil, err
			}
		}
		nullifier := note.Nullifier(p.cfg)
		noteHash := note.NoteHash(p.cfg)
		mem.SetInputNote(i, noteHash, nullifier)
		sp.Absorb(nullifier, nullifierCommitmentPadding)

		storedLeaf, ok := p.prims.MMRGet(nw.LeafPos)
		if !ok {
			err := fmt.Errorf("%w: note %d references unknown block %d", ErrMMRLeafMismatch, i, nw.LeafPos)
			p.log.Error(err.Error())
			return nil, err
		}
		recomputedLeaf := mcrypto.Hash(nw.SubHash, nw.NoteRoot)
		if !storedLeaf.Equal(recomputedLeaf) {
			err := fmt.Errorf("%w: note %d", ErrMMRLeafMismatch, i)
			p.log.Error(err.Error())
			return nil, err
		}
		if !p.prims.VerifyMerklePath(noteHash, nw.NoteIdx, nw.NotePath, nw.NoteRoot) {
			err := fmt.Errorf("%w: note %d", ErrNoteNotInTree, i)
			p.log.Error(err.Error())
			return nil, err
		}
	}
	nullifierCommitment := sp.Squeeze()
	if !nullifierCommitment.Equal(pub.NullifierCommitment) {
		err := fmt.Errorf("%w: got %s want %s", ErrNullifierCommitMismatch, nullifierCommitment, pub.NullifierCommitment)
		p.log.Error(err.Error())
		return nil, err
	}
	// input_vault_root is recorded once every consumed note's assets have
	// been merged in: it is the account's own pre-transaction vault plus
	// everything the transaction's input notes contributed, the total the
	// epilogue's output vault must reproduce exactly (spec.md §4.10(e),
	// §4.11(f)).
	mem.SetInputVaultRoot(account.GetVaultCommitment())

	// (f) process transaction script root.
	mem.SetTxScriptRoot(w.TxScriptRoot)

	notes := NewNoteModule(p.cfg)
	tx := NewTxModule(notes)
	tx.BlockNumber = header.BlockNum
	tx.BlockHash = blockHash
	tx.NullifierCommitment = nullifierCommitment

	p.log.Info("prologue completed", log.PhaseAttr("prologue"), log.WordAttr("account_hash", account.InitialHash))

	return &TxState{
		Memory:  mem,
		Account: account,
		Notes:   notes,
		Faucet:  NewFaucetModule(p.cfg),
		Tx:      tx,
		RootCtx: &Context{Kind: ContextRoot, AccountID: pub.AccountID},
		cfg:     p.cfg,
		prims:   p.prims,
	}, nil
}

func (p *Prologue) processAccountData(pub PublicInputs, aw AccountWitness, mem *Memory) (*Account, error) {
	if aw.ID != pub.AccountID {
		return nil, &ErrAccountIDMismatch{InputID: pub.AccountID.Uint64(), OutputID: aw.ID.Uint64()}
	}

	account := NewAccount(p.cfg, p.prims, aw.ID, p.events)
	account.Nonce = aw.Nonce
	account.InitialNonce = aw.Nonce
	account.CodeRoot = aw.CodeRoot
	account.CodePolicy = aw.CodePolicy
	account.SlotTypes = aw.SlotTypes

	if err := validateSlotTypes(p.cfg, aw); err != nil {
		return nil, err
	}

	slotTypesCommitment := account.SlotTypesCommitment()
	if declared, ok := aw.Storage[p.cfg.SlotTypesStorageSlot]; !ok || !declared.Equal(slotTypesCommitment) {
		return nil, fmt.Errorf("%w: got %s want %s", ErrSlotTypeCommitMismatch, declared, slotTypesCommitment)
	}

	for idx, val := range aw.Storage {
		if idx < 0 || idx >= p.cfg.StorageSlotCount {
			return nil, fmt.Errorf("%w: %d", ErrStorageIndexOutOfRange, idx)
		}
		p.prims.SMTInsert(account.storageTree, storageDepth(p.cfg), slotKey(idx), val)
	}

	vault := NewVault(p.cfg, p.prims, account.vaultTree)
	for _, a := range aw.VaultAssets {
		if err := vault.Add(a); err != nil {
			return nil, err
		}
	}

	accountHash := account.GetCurrentHash()

	isNewAccount := pub.InitialAccountHash.IsZero()
	if isNewAccount {
		if len(aw.VaultAssets) != 0 {
			return nil, ErrNewAccountVaultNotEmpty
		}
		if aw.Nonce.Uint64() != 0 {
			return nil, ErrNewAccountNonceNotZero
		}
		if !aw.SeedValid {
			return nil, ErrInvalidAccountID
		}
	} else {
		if !accountHash.Equal(pub.InitialAccountHash) {
			return nil, fmt.Errorf("%w: got %s want %s", ErrAccountHashMismatch, accountHash, pub.InitialAccountHash)
		}
		if aw.Nonce.Uint64() == 0 {
			return nil, ErrExistingAccountNonceZero
		}
	}

	account.InitialHash = accountHash
	account.NewCodeRoot = account.CodeRoot

	mem.SetAccountVaultRoot(account.GetVaultCommitment())
	mem.SetAccountStorageRoot(account.StorageRoot())
	mem.SetAccountCodeRoot(account.CodeRoot)
	mem.SetAccountHash(accountHash)

	return account, nil
}

// validateSlotTypes enforces spec.md invariant 6: every slot type is
// well-formed, and the two reserved slots carry the type their role
// demands.
func validateSlotTypes(cfg Config, aw AccountWitness) error {
	for i, t := range aw.SlotTypes {
		if t.Arity < 0 || t.Arity > 255 {
			return fmt.Errorf("%w: slot %d arity %d", ErrReservedSlotMistyped, i, t.Arity)
		}
	}
	slotTypesType := aw.SlotTypes[cfg.SlotTypesStorageSlot]
	if slotTypesType.Kind != SlotScalar || slotTypesType.Arity != 0 {
		return fmt.Errorf("%w: slot-types slot must be a scalar commitment", ErrReservedSlotMistyped)
	}
	if IsFaucetID(aw.ID) {
		faucetSlot := aw.SlotTypes[cfg.FaucetStorageDataSlot]
		if IsFungibleFaucetID(aw.ID) {
			if faucetSlot.Kind != SlotScalar || faucetSlot.Arity != 0 {
				return fmt.Errorf("%w: fungible faucet data slot must be a scalar", ErrReservedSlotMistyped)
			}
		} else {
			if faucetSlot.Kind != SlotMap || faucetSlot.Arity != 0 {
				return fmt.Errorf("%w: non-fungible faucet data slot must be a map", ErrReservedSlotMistyped)
			}
		}
	}
	return nil
}
