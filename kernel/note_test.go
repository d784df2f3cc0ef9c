package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rollupkit/txkernel/felt"
	"github.com/rollupkit/txkernel/mcrypto"
)

func sampleNote(t *testing.T) Note {
	t.Helper()
	cfg := DefaultConfig()
	asset, err := NewFungibleAsset(cfg, fungibleFaucetID(1), 100)
	require.NoError(t, err)
	return Note{
		SerialNumber: felt.WordFromUint64s(1, 2, 3, 4),
		ScriptRoot:   felt.WordFromUint64s(5, 6, 7, 8),
		Inputs:       []felt.Felt{felt.New(11)},
		Assets:       []Asset{asset},
		Metadata:     NewMetadata(felt.New(9), felt.New(0)),
	}
}

func TestNoteHashIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	n := sampleNote(t)
	require.Equal(t, n.NoteHash(cfg), n.NoteHash(cfg))
}

func TestNoteHashChangesWithInputs(t *testing.T) {
	cfg := DefaultConfig()
	n1 := sampleNote(t)
	n2 := n1
	n2.Inputs = []felt.Felt{felt.New(12)}
	require.NotEqual(t, n1.NoteHash(cfg), n2.NoteHash(cfg))
}

func TestNoteNullifierDiffersFromNoteHash(t *testing.T) {
	cfg := DefaultConfig()
	n := sampleNote(t)
	require.NotEqual(t, n.NoteHash(cfg), n.Nullifier(cfg))
}

func TestNoteModuleCreateNoteRequiresAccountContext(t *testing.T) {
	cfg := DefaultConfig()
	nm := NewNoteModule(cfg)
	account := NewAccount(cfg, mcrypto.NewReference(), regularAccountID(50), nil)
	ctx := &Context{Kind: ContextNote}
	asset, _ := NewFungibleAsset(cfg, fungibleFaucetID(2), 1)
	_, err := nm.CreateNote(ctx, account, asset, felt.New(0), felt.WordFromUint64s(1, 1, 1, 1))
	require.ErrorIs(t, err, ErrWrongContext)
}

func TestNoteModuleCreateNoteRequiresOwnAccountOrigin(t *testing.T) {
	cfg := DefaultConfig()
	nm := NewNoteModule(cfg)
	account := NewAccount(cfg, mcrypto.NewReference(), regularAccountID(51), nil)
	account.CodeRoot = felt.WordFromUint64s(1, 1, 1, 1)
	ctx := &Context{Kind: ContextAccount, Origin: felt.WordFromUint64s(9, 9, 9, 9)}
	asset, _ := NewFungibleAsset(cfg, fungibleFaucetID(8), 1)
	_, err := nm.CreateNote(ctx, account, asset, felt.New(0), felt.WordFromUint64s(1, 1, 1, 1))
	require.ErrorIs(t, err, ErrUnauthorizedOrigin)
}

func TestNoteModuleCreateNoteAccumulatesAndCommits(t *testing.T) {
	cfg := DefaultConfig()
	nm := NewNoteModule(cfg)
	account := NewAccount(cfg, mcrypto.NewReference(), felt.New(42), nil)
	ctx := &Context{Kind: ContextAccount, AccountID: felt.New(42)}
	asset, _ := NewFungibleAsset(cfg, fungibleFaucetID(3), 1)

	idx, err := nm.CreateNote(ctx, account, asset, felt.New(7), felt.WordFromUint64s(1, 1, 1, 1))
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	require.Len(t, nm.Created, 1)
	require.Equal(t, felt.New(42), nm.Created[0].Metadata.SenderID())
	require.NotEqual(t, felt.ZeroWord, nm.ComputeOutputNotesCommitment())
}

// An output note this kernel creates must re-authenticate under the same
// Note.NoteHash formula a later transaction uses to verify an input note.
func TestNoteModuleCreateNoteHashMatchesNoteHashFormula(t *testing.T) {
	cfg := DefaultConfig()
	nm := NewNoteModule(cfg)
	account := NewAccount(cfg, mcrypto.NewReference(), felt.New(43), nil)
	ctx := &Context{Kind: ContextAccount, AccountID: felt.New(43)}
	asset, _ := NewFungibleAsset(cfg, fungibleFaucetID(9), 1)
	recipient := felt.WordFromUint64s(1, 1, 1, 1)

	idx, err := nm.CreateNote(ctx, account, asset, felt.New(0), recipient)
	require.NoError(t, err)

	reconstructed := Note{Assets: []Asset{asset}}
	wantHash := mcrypto.Hash(recipient, reconstructed.AssetsHash(cfg))
	require.Equal(t, wantHash, nm.Created[idx].NoteHash)
}

func TestNoteModuleComputeOutputNotesCommitmentEmptyIsZeroWord(t *testing.T) {
	nm := NewNoteModule(DefaultConfig())
	require.Equal(t, felt.ZeroWord, nm.ComputeOutputNotesCommitment())
}

func TestNoteModuleGetSenderPanicsOutsideNoteContext(t *testing.T) {
	nm := NewNoteModule(DefaultConfig())
	ctx := &Context{Kind: ContextAccount}
	require.Panics(t, func() { nm.GetSender(ctx) })
}

func TestNoteModuleGetAssetsRequiresCurrentNote(t *testing.T) {
	nm := NewNoteModule(DefaultConfig())
	ctx := &Context{Kind: ContextNote}
	_, _, err := nm.GetAssets(ctx)
	require.Error(t, err)
}

func TestNoteModuleGetInputsRejectsTooManyInputs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxInputsPerNote = 1
	nm := NewNoteModule(cfg)
	n := sampleNote(t)
	n.Inputs = []felt.Felt{felt.New(1), felt.New(2)}
	nm.Current = &n
	ctx := &Context{Kind: ContextNote}
	_, _, err := nm.GetInputs(ctx)
	require.ErrorIs(t, err, ErrTooManyInputs)
}

func TestNoteAssetsHashMatchesFreshSMT(t *testing.T) {
	cfg := DefaultConfig()
	n := sampleNote(t)
	tr := mcrypto.NewSMT(cfg.VaultTreeDepth)
	for _, a := range n.Assets {
		tr.Insert(a.VaultKey(), a.Word())
	}
	require.Equal(t, tr.Root(), n.AssetsHash(cfg))
}
