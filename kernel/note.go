package kernel

import (
	"fmt"

	"github.com/rollupkit/txkernel/felt"
	"github.com/rollupkit/txkernel/mcrypto"
)

// Metadata is a note's Word-valued metadata: sender_id in the low limb, tag
// in the next, the remaining two limbs reserved (spec.md §3).
type Metadata felt.Word

// NewMetadata builds a Metadata Word from a sender account id and a tag.
func NewMetadata(senderID felt.Felt, tag felt.Felt) Metadata {
	return Metadata(felt.WordFromFelts(senderID, tag, felt.Zero, felt.Zero))
}

// SenderID returns the note's declared sender.
func (m Metadata) SenderID() felt.Felt { return felt.Word(m)[0] }

// Tag returns the note's tag.
func (m Metadata) Tag() felt.Felt { return felt.Word(m)[1] }

// Word returns m's raw Word representation.
func (m Metadata) Word() felt.Word { return felt.Word(m) }

// Note holds the fields spec.md §3 names plus the per-consumption data an
// input note carries while it's being processed.
type Note struct {
	SerialNumber felt.Word
	ScriptRoot   felt.Word
	Inputs       []felt.Felt
	Assets       []Asset
	Metadata     Metadata
	Args         felt.Word // optional per-consumption args; ZeroWord if unused
}

// InputsHash is the commitment to Inputs (spec.md §3: "a commitment to up to
// MAX_INPUTS_PER_NOTE Fs").
func (n Note) InputsHash() felt.Word {
	return mcrypto.HashFelts(n.Inputs...)
}

// AssetsHash is the root of the note's own asset vault (an SMT over up to
// MaxAssetsPerNote assets), computed fresh rather than carried as mutable
// state — a note's asset set never changes after creation.
func (n Note) AssetsHash(cfg Config) felt.Word {
	tr := mcrypto.NewSMT(cfg.VaultTreeDepth)
	for _, a := range n.Assets {
		tr.Insert(a.VaultKey(), a.Word())
	}
	return tr.Root()
}

// Recipient is H( H( H(serial_number ‖ 0) ‖ script_root ) ‖ inputs_hash ),
// the Word a note-maker commits to (spec.md §3).
func (n Note) Recipient() felt.Word {
	inner := mcrypto.Hash(n.SerialNumber, felt.ZeroWord)
	mid := mcrypto.Hash(inner, n.ScriptRoot)
	return mcrypto.Hash(mid, n.InputsHash())
}

// NoteHash is H(recipient ‖ assets_hash).
func (n Note) NoteHash(cfg Config) felt.Word {
	return mcrypto.Hash(n.Recipient(), n.AssetsHash(cfg))
}

// Nullifier is H(serial_number ‖ script_root ‖ inputs_hash ‖ assets_hash),
// the Word that uniquely (and privately) marks n as consumed.
func (n Note) Nullifier(cfg Config) felt.Word {
	ih := n.InputsHash()
	ah := n.AssetsHash(cfg)
	return mcrypto.HashFelts(
		n.SerialNumber[0], n.SerialNumber[1], n.SerialNumber[2], n.SerialNumber[3],
		n.ScriptRoot[0], n.ScriptRoot[1], n.ScriptRoot[2], n.ScriptRoot[3],
		ih[0], ih[1], ih[2], ih[3],
		ah[0], ah[1], ah[2], ah[3],
	)
}

// AuthDigest is H(note_hash ‖ metadata), used to authenticate a note against
// chain state.
func (n Note) AuthDigest(cfg Config) felt.Word {
	return mcrypto.Hash(n.NoteHash(cfg), n.Metadata.Word())
}

// nullifierCommitmentPadding is the second element of every pair the
// nullifier commitment hashes (spec.md §9's open question: implementation
// pairs (nullifier, ZERO), not (nullifier, script_root) as the spec's own
// documentation claimed — see DESIGN.md for the recorded decision).
var nullifierCommitmentPadding = felt.ZeroWord

// OutputNote is a note constructed during the transaction body, recorded in
// creation order (spec.md §4.6, §4.11(c)/(d)).
type OutputNote struct {
	NoteHash felt.Word
	Metadata Metadata
	Assets   []Asset
}

// NoteModule is the note-facing API surface (spec.md §4.6): read-only
// introspection over the note currently being processed, plus output-note
// construction, gated by the calling Context.
type NoteModule struct {
	cfg Config
	// Current is the input note being processed, nil outside note context.
	Current *Note
	// Created accumulates output notes in call order.
	Created []OutputNote
}

// NewNoteModule returns a NoteModule bound to cfg.
func NewNoteModule(cfg Config) *NoteModule {
	return &NoteModule{cfg: cfg}
}

// GetAssets returns the current input note's assets and count, per
// spec.md's "writes assets to memory starting at dest_ptr; returns
// num_assets" (dest_ptr has no meaning outside a byte-addressed VM, so this
// façade returns the slice directly).
func (m *NoteModule) GetAssets(ctx *Context) ([]Asset, int, error) {
	if err := ctx.requireKind(ContextNote); err != nil {
		return nil, 0, err
	}
	if m.Current == nil {
		return nil, 0, fmt.Errorf("%w: no note being processed", ErrWrongContext)
	}
	return m.Current.Assets, len(m.Current.Assets), nil
}

// GetInputs returns the current input note's inputs and count.
func (m *NoteModule) GetInputs(ctx *Context) ([]felt.Felt, int, error) {
	if err := ctx.requireKind(ContextNote); err != nil {
		return nil, 0, err
	}
	if m.Current == nil {
		return nil, 0, fmt.Errorf("%w: no note being processed", ErrWrongContext)
	}
	if len(m.Current.Inputs) > m.cfg.MaxInputsPerNote {
		return nil, 0, fmt.Errorf("%w: %d > %d", ErrTooManyInputs, len(m.Current.Inputs), m.cfg.MaxInputsPerNote)
	}
	return m.Current.Inputs, len(m.Current.Inputs), nil
}

// GetSender reads the current input note's declared sender. Panics if no
// note is being processed — spec.md calls this a panic, not a fatal
// transaction error, since it can only happen from a kernel-API misuse that
// a correctly generated script never triggers.
func (m *NoteModule) GetSender(ctx *Context) felt.Felt {
	if err := ctx.requireKind(ContextNote); err != nil {
		panic(err)
	}
	if m.Current == nil {
		panic("kernel: get_sender called with no note being processed")
	}
	return m.Current.Metadata.SenderID()
}

// GetVaultInfo returns the current input note's assets_hash and asset count.
func (m *NoteModule) GetVaultInfo(ctx *Context) (felt.Word, int, error) {
	if err := ctx.requireKind(ContextNote); err != nil {
		return felt.ZeroWord, 0, err
	}
	if m.Current == nil {
		return felt.ZeroWord, 0, fmt.Errorf("%w: no note being processed", ErrWrongContext)
	}
	return m.Current.AssetsHash(m.cfg), len(m.Current.Assets), nil
}

// GetInputsInfo returns the current input note's inputs_hash and input
// count.
func (m *NoteModule) GetInputsInfo(ctx *Context) (felt.Word, int, error) {
	if err := ctx.requireKind(ContextNote); err != nil {
		return felt.ZeroWord, 0, err
	}
	if m.Current == nil {
		return felt.ZeroWord, 0, fmt.Errorf("%w: no note being processed", ErrWrongContext)
	}
	return m.Current.InputsHash(), len(m.Current.Inputs), nil
}

// CreateNote allocates a fresh output-note slot with a single asset, account
// context only, and only from the creating account's own code (spec.md
// §4.6, §4.9: note creation is one of the operations AuthenticateAccountOrigin
// gates). The sender field of metadata is always the executing account,
// taken from ctx.
func (m *NoteModule) CreateNote(ctx *Context, account *Account, asset Asset, tag felt.Felt, recipient felt.Word) (int, error) {
	if err := ctx.requireKind(ContextAccount); err != nil {
		return 0, err
	}
	if err := AuthenticateAccountOrigin(ctx, account.CodeRoot); err != nil {
		return 0, err
	}
	meta := NewMetadata(ctx.AccountID, tag)
	// note_hash = H(recipient, assets_hash), the same assets_hash formula
	// Note.AssetsHash uses, so a note this kernel creates re-authenticates
	// correctly as an input note in a later transaction via Note.NoteHash.
	assetsHash := Note{Assets: []Asset{asset}}.AssetsHash(m.cfg)
	noteHash := mcrypto.Hash(recipient, assetsHash)
	m.Created = append(m.Created, OutputNote{
		NoteHash: noteHash,
		Metadata: meta,
		Assets:   []Asset{asset},
	})
	return len(m.Created) - 1, nil
}

// ComputeOutputNotesCommitment is a sequential hash of (note_hash, metadata)
// over all output notes in creation order (spec.md §4.6). It is the
// identity element ZeroWord for zero output notes, since Hash() of no Words
// is ZeroWord (see mcrypto.Sponge.Squeeze) — exactly the "fixed known
// constant" spec.md testable property 4 calls for.
func (m *NoteModule) ComputeOutputNotesCommitment() felt.Word {
	var words []felt.Word
	for _, n := range m.Created {
		words = append(words, n.NoteHash, n.Metadata.Word())
	}
	return mcrypto.Hash(words...)
}
