// Package advice implements the non-deterministic input channel the
// transaction kernel reads from during prologue, note processing, and
// epilogue — the "advice provider" spec.md §1 places out of this kernel's
// scope as a VM capability, exposed here as a typed Go stream.
//
// Grounded on zkvm/guest.go's GuestContext: a witness payload consumed
// exactly once, guarded by an executed flag so a second execution attempt
// fails loudly instead of silently re-reading stale data. Provider
// generalizes that single byte-blob witness into a structured, strictly
// ordered LIFO stack of Felts/Words plus a random-access map keyed by Word —
// the two non-deterministic input shapes spec.md's operations read from
// (sequential "next value(s)" reads during prologue/note loops, and
// "look up the data behind this commitment" reads for Merkle/MMR openings).
package advice

import (
	"errors"
	"fmt"

	"github.com/rollupkit/txkernel/felt"
)

// ErrStackEmpty is returned when a pop is attempted against an exhausted
// stack.
var ErrStackEmpty = errors.New("advice: stack exhausted")

// ErrMapKeyAbsent is returned when MapGet is called with a key that was
// never populated.
var ErrMapKeyAbsent = errors.New("advice: map key not found")

// Provider is the advice channel: a LIFO stack of field elements and a
// content-addressed map from Word to a slice of Felts. Both are populated
// once, up front (by the prover/test harness); the stack is drained
// strictly in order as the kernel executes — nothing is ever pushed back —
// while the map is read by key and never drained.
type Provider struct {
	stack []felt.Felt
	m     map[felt.Word][]felt.Felt
}

// NewProvider returns a Provider seeded with the given stack (stack[len-1]
// is the top and pops first, stack[0] pops last) and map.
// A nil map is treated as empty.
func NewProvider(stack []felt.Felt, m map[felt.Word][]felt.Felt) *Provider {
	if m == nil {
		m = make(map[felt.Word][]felt.Felt)
	}
	cp := make([]felt.Felt, len(stack))
	copy(cp, stack)
	return &Provider{stack: cp, m: m}
}

// Remaining reports how many Felts are left on the stack.
func (p *Provider) Remaining() int { return len(p.stack) }

// PopFelt pops a single field element.
func (p *Provider) PopFelt() (felt.Felt, error) {
	if len(p.stack) == 0 {
		return felt.Zero, ErrStackEmpty
	}
	n := len(p.stack) - 1
	v := p.stack[n]
	p.stack = p.stack[:n]
	return v, nil
}

// PopWord pops four field elements and assembles them into a Word, most
// recently pushed element first (matching PopFelt's LIFO order).
func (p *Provider) PopWord() (felt.Word, error) {
	var w felt.Word
	for i := 0; i < 4; i++ {
		f, err := p.PopFelt()
		if err != nil {
			return felt.ZeroWord, fmt.Errorf("advice: popping word limb %d: %w", i, err)
		}
		w[i] = f
	}
	return w, nil
}

// PopFelts pops n field elements, most recently pushed first.
func (p *Provider) PopFelts(n int) ([]felt.Felt, error) {
	out := make([]felt.Felt, n)
	for i := 0; i < n; i++ {
		f, err := p.PopFelt()
		if err != nil {
			return nil, fmt.Errorf("advice: popping %d felts at index %d: %w", n, i, err)
		}
		out[i] = f
	}
	return out, nil
}

// PopU64 pops a single field element and interprets it as a uint64 (used for
// loop bounds and counts read off the stack, e.g. a note's num_assets).
func (p *Provider) PopU64() (uint64, error) {
	f, err := p.PopFelt()
	if err != nil {
		return 0, err
	}
	return f.Uint64(), nil
}

// MapGet returns the Felts stored under key, as populated up front by the
// prover. Used for Merkle/MMR opening data addressed by a commitment Word
// rather than read positionally off the stack.
func (p *Provider) MapGet(key felt.Word) ([]felt.Felt, error) {
	v, ok := p.m[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMapKeyAbsent, key)
	}
	return v, nil
}

// MapGetWords is a convenience wrapper over MapGet for map entries whose
// length is a multiple of four, reassembled into Words.
func (p *Provider) MapGetWords(key felt.Word) ([]felt.Word, error) {
	fs, err := p.MapGet(key)
	if err != nil {
		return nil, err
	}
	if len(fs)%4 != 0 {
		return nil, fmt.Errorf("advice: map entry for %s has length %d, not a multiple of 4", key, len(fs))
	}
	out := make([]felt.Word, len(fs)/4)
	for i := range out {
		out[i] = felt.WordFromFelts(fs[i*4 : i*4+4]...)
	}
	return out, nil
}
