package kernel

import (
	"fmt"

	"github.com/rollupkit/txkernel/felt"
)

// ContextKind discriminates the four logical execution contexts spec.md
// §4.9 defines.
type ContextKind int

const (
	// ContextRoot is the kernel/root context, which owns all memory.
	ContextRoot ContextKind = iota
	// ContextAccount is a callee context entered for account-code
	// execution.
	ContextAccount
	// ContextNote is a callee context entered for note-script execution.
	ContextNote
	// ContextTxScript is a callee context entered for the transaction
	// script.
	ContextTxScript
)

// String renders a ContextKind for logging.
func (k ContextKind) String() string {
	switch k {
	case ContextRoot:
		return "root"
	case ContextAccount:
		return "account"
	case ContextNote:
		return "note"
	case ContextTxScript:
		return "tx-script"
	default:
		return "unknown"
	}
}

// Context is the explicit context object spec.md §9's re-architecture note
// calls for: each cross-context invocation constructs a new Context rather
// than mutating shared VM state, and the "caller" check becomes reading the
// Origin field this Context carries.
type Context struct {
	Kind ContextKind
	// Origin is the Word-valued identity of whoever invoked this context —
	// a code root for account/note contexts, ZeroWord for root.
	Origin felt.Word
	// AccountID is the id of the account this transaction executes
	// against, available in every context (spec.md §4.4: get_id is
	// readable in any context).
	AccountID felt.Felt
}

func (c *Context) requireKind(k ContextKind) error {
	if c.Kind != k {
		return fmt.Errorf("%w: requires %s context, got %s", ErrWrongContext, k, c.Kind)
	}
	return nil
}

// EnterAccount returns a child Context for invoking the account's own code,
// with a fresh memory window conceptually (this façade has no literal
// memory window per context; isolation is enforced by each module only
// reading fields relevant to its own Context.Kind).
func (c *Context) EnterAccount(accountCodeRoot felt.Word) *Context {
	return &Context{Kind: ContextAccount, Origin: accountCodeRoot, AccountID: c.AccountID}
}

// EnterNote returns a child Context for invoking a note script, dynamically
// dispatched by the note's script root.
func (c *Context) EnterNote(scriptRoot felt.Word) *Context {
	return &Context{Kind: ContextNote, Origin: scriptRoot, AccountID: c.AccountID}
}

// EnterTxScript returns a child Context for invoking the transaction
// script.
func (c *Context) EnterTxScript(scriptRoot felt.Word) *Context {
	return &Context{Kind: ContextTxScript, Origin: scriptRoot, AccountID: c.AccountID}
}

// AuthenticateAccountOrigin is the sole capability boundary protecting the
// vault, storage mutations, nonce increment, code update, faucet mint/burn,
// and note creation (spec.md §4.9): it asserts that ctx's immediate caller
// — its Origin — is the account's own code root. Any other origin is fatal.
func AuthenticateAccountOrigin(ctx *Context, accountCodeRoot felt.Word) error {
	if ctx.Origin != accountCodeRoot {
		return fmt.Errorf("%w: origin %s is not account code root %s", ErrUnauthorizedOrigin, ctx.Origin, accountCodeRoot)
	}
	return nil
}
