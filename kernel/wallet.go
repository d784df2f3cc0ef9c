package kernel

import (
	"fmt"

	"github.com/rollupkit/txkernel/felt"
)

// BasicWallet is the reference account-code fixture every other example
// repo's integration tests assume: two procedures, receive_asset and
// send_asset. BasicWallet itself is only a caller convention — a label for
// "the wallet's own code calling into its own account" — not a source of
// authority: the actual capability check happens inside Account.AddAsset/
// RemoveAsset and NoteModule.CreateNote, each of which authenticates ctx's
// Origin against the account's own, advice-populated CodeRoot (spec.md
// §4.9). A BasicWallet built with an arbitrary CodeRoot value cannot move
// assets in or out of an account whose CodeRoot differs from ctx.Origin;
// it is not itself consulted for authorization.
//
// Grounded on original_source/miden-lib/src/wallets/mod.rs's
// create_basic_wallet: the same two-procedure surface (receive_asset,
// send_asset), minus the authentication-scheme/storage-slot-0 public key
// wiring, which belongs to the signature layer this kernel leaves to the
// host (spec.md §1 "out of scope: ... signature verification").
type BasicWallet struct {
	// CodeRoot is this wallet's own code root, used only to build the
	// Context a caller enters with (Context.EnterAccount(wallet.CodeRoot));
	// the account mutation itself re-derives the authorized origin from
	// account.CodeRoot, not from this field.
	CodeRoot felt.Word
}

// NewBasicWallet returns a BasicWallet identified by codeRoot.
func NewBasicWallet(codeRoot felt.Word) *BasicWallet {
	return &BasicWallet{CodeRoot: codeRoot}
}

// ReceiveAsset adds asset to account's vault. account.AddAsset itself
// enforces that ctx is an account context whose Origin is account's own
// CodeRoot (spec.md §4.9); this method is a thin procedure-call wrapper, not
// an independent capability boundary.
func (w *BasicWallet) ReceiveAsset(ctx *Context, account *Account, asset Asset) error {
	return account.AddAsset(ctx, asset)
}

// SendAsset removes asset from account's vault and creates an output note
// carrying it to recipient, tagged tag. account.RemoveAsset and
// notes.CreateNote each independently authenticate ctx against account's own
// CodeRoot.
func (w *BasicWallet) SendAsset(ctx *Context, account *Account, notes *NoteModule, asset Asset, tag felt.Felt, recipient felt.Word) (int, error) {
	if err := account.RemoveAsset(ctx, asset); err != nil {
		return 0, err
	}
	return notes.CreateNote(ctx, account, asset, tag, recipient)
}

// P2IDTarget is the minimal "pay to ID" note-script fixture: a note
// consumable only by the single account id named in its first input.
//
// Grounded on original_source/miden-tx/tests/integration/scripts/p2id.rs's
// prove_p2id_script, which builds exactly this note (one target-id input,
// one or more fungible assets) and asserts that only the named target
// account can consume it, and that any other account's attempt fails.
type P2IDTarget struct{}

// ErrP2IDWrongTarget is returned when a P2ID note is consumed by an account
// other than the one named in its target input.
var ErrP2IDWrongTarget = fmt.Errorf("kernel: note targets a different account")

// Validate asserts that note's first input names accountID as the sole
// consumer the note accepts.
func (P2IDTarget) Validate(note Note, accountID felt.Felt) error {
	if len(note.Inputs) < 1 {
		return fmt.Errorf("%w: note carries no target input", ErrP2IDWrongTarget)
	}
	if note.Inputs[0] != accountID {
		return fmt.Errorf("%w: note targets %s, not %s", ErrP2IDWrongTarget, note.Inputs[0], accountID)
	}
	return nil
}

// Consume runs the P2ID note script against note: it validates the target,
// then moves every one of the note's assets into account's vault via
// wallet.ReceiveAsset, exactly as original_source's p2id.masm script invokes
// basic_wallet::receive_asset once per asset in a loop.
//
// ctx must be the account context the note script runs under (the note
// context that processed the note itself has already been exited by the
// time assets are moved into the account, per the four-context model's
// cross-context invocation rule — spec.md §4.9).
func (P2IDTarget) Consume(ctx *Context, wallet *BasicWallet, account *Account, note Note) error {
	var target P2IDTarget
	if err := target.Validate(note, ctx.AccountID); err != nil {
		return err
	}
	for _, a := range note.Assets {
		if err := wallet.ReceiveAsset(ctx, account, a); err != nil {
			return err
		}
	}
	return nil
}
