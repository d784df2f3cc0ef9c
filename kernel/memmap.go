package kernel

import (
	"fmt"

	"github.com/rollupkit/txkernel/felt"
)

// Memory is the kernel's flat, Word-addressed address space (spec.md §4.1):
// a contiguous space partitioned into labeled regions with compile-time
// bases, exposing pure getters/setters with no policy of their own. Stride
// violations (an index outside a region's declared bounds) are undefined
// behavior the spec says callers must prevent — this implementation turns
// that into a panic, consistent with the storage-index-bounds panics C4
// itself defines.
//
// Grounded on the address-indexed scratch-memory pattern in the teacher's
// execution-context/guest machinery (state addressed by position, not by
// name), adapted to a Word-indexed space with named regions instead of a
// byte-indexed RAM blob.
//
// Not every piece of transaction state lives here: the 256 account storage
// slots, the slot-type table, and a note's variable-length inputs/assets
// are carried as typed Go fields on Account/Note instead of being flattened
// into fixed memory cells, since a Go struct already is the idiomatic
// representation of a fixed-shape record — this region set covers exactly
// the parts of the data model that are genuinely address-indexed arrays:
// global inputs, block data, chain MMR peak scratch, input/output note
// commitment pairs, vault-root scratch, and the tx script root.
type Memory struct {
	cells map[uint32]felt.Word
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{cells: make(map[uint32]felt.Word)}
}

func (m *Memory) write(addr uint32, w felt.Word) { m.cells[addr] = w }

func (m *Memory) read(addr uint32) felt.Word { return m.cells[addr] }

// Region bases and strides, compile-time constants per spec.md §4.1.
const (
	globalInputsBase  uint32 = 0
	globalInputsCount uint32 = 4

	blockDataBase  uint32 = 16
	blockDataCount uint32 = 8

	chainMMRBase     uint32 = 32
	chainMMRHeader   uint32 = 1
	chainMMRMaxPeaks uint32 = 31
	chainMMRCount    uint32 = chainMMRHeader + chainMMRMaxPeaks

	accountRootBase  uint32 = 96
	accountRootCount uint32 = 4

	inputNoteBase   uint32 = 160
	inputNoteStride uint32 = 2
	inputNoteMax    uint32 = 4096

	outputNoteBase   uint32 = inputNoteBase + inputNoteStride*inputNoteMax
	outputNoteStride uint32 = 2
	outputNoteMax    uint32 = 4096

	vaultScratchBase uint32 = outputNoteBase + outputNoteStride*outputNoteMax
	txScriptRootAddr uint32 = vaultScratchBase + 2
)

func checkBounds(region string, i, max uint32) {
	if i >= max {
		panic(fmt.Sprintf("kernel: memory stride violation in region %s: index %d >= %d", region, i, max))
	}
}

// --- Global inputs (spec.md §4.10(a)) ---

func (m *Memory) SetGlobalBlockHash(w felt.Word) { m.write(globalInputsBase+0, w) }
func (m *Memory) GlobalBlockHash() felt.Word     { return m.read(globalInputsBase + 0) }

func (m *Memory) SetGlobalAccountID(f felt.Felt) { m.write(globalInputsBase+1, felt.WordFromFelts(f)) }
func (m *Memory) GlobalAccountID() felt.Felt     { return m.read(globalInputsBase + 1)[0] }

func (m *Memory) SetGlobalInitialAccountHash(w felt.Word) { m.write(globalInputsBase+2, w) }
func (m *Memory) GlobalInitialAccountHash() felt.Word     { return m.read(globalInputsBase + 2) }

func (m *Memory) SetGlobalNullifierCommitment(w felt.Word) { m.write(globalInputsBase+3, w) }
func (m *Memory) GlobalNullifierCommitment() felt.Word     { return m.read(globalInputsBase + 3) }

// --- Block data (spec.md §4.10(b)) ---

func (m *Memory) SetBlockSubHash(w felt.Word) { m.write(blockDataBase+0, w) }
func (m *Memory) BlockSubHash() felt.Word     { return m.read(blockDataBase + 0) }

func (m *Memory) SetBlockNoteRoot(w felt.Word) { m.write(blockDataBase+1, w) }
func (m *Memory) BlockNoteRoot() felt.Word     { return m.read(blockDataBase + 1) }

func (m *Memory) SetBlockChainRoot(w felt.Word) { m.write(blockDataBase+2, w) }
func (m *Memory) BlockChainRoot() felt.Word     { return m.read(blockDataBase + 2) }

func (m *Memory) SetBlockNumber(f felt.Felt) { m.write(blockDataBase+3, felt.WordFromFelts(f)) }
func (m *Memory) BlockNumber() felt.Felt     { return m.read(blockDataBase + 3)[0] }

func (m *Memory) SetBlockHash(w felt.Word) { m.write(blockDataBase+4, w) }
func (m *Memory) BlockHash() felt.Word     { return m.read(blockDataBase + 4) }

// --- Chain MMR peak scratch (spec.md §4.10(c)) ---

func (m *Memory) SetChainNumLeaves(n uint64) {
	m.write(chainMMRBase, felt.WordFromUint64s(n, 0, 0, 0))
}
func (m *Memory) ChainNumLeaves() uint64 { return m.read(chainMMRBase)[0].Uint64() }

func (m *Memory) SetChainPeak(i int, w felt.Word) {
	checkBounds("chain-mmr-peaks", uint32(i), chainMMRMaxPeaks)
	m.write(chainMMRBase+chainMMRHeader+uint32(i), w)
}

func (m *Memory) ChainPeak(i int) felt.Word {
	checkBounds("chain-mmr-peaks", uint32(i), chainMMRMaxPeaks)
	return m.read(chainMMRBase + chainMMRHeader + uint32(i))
}

// --- Account root view (spec.md §4.10(d)) ---

func (m *Memory) SetAccountVaultRoot(w felt.Word) { m.write(accountRootBase+0, w) }
func (m *Memory) AccountVaultRoot() felt.Word     { return m.read(accountRootBase + 0) }

func (m *Memory) SetAccountStorageRoot(w felt.Word) { m.write(accountRootBase+1, w) }
func (m *Memory) AccountStorageRoot() felt.Word     { return m.read(accountRootBase + 1) }

func (m *Memory) SetAccountCodeRoot(w felt.Word) { m.write(accountRootBase+2, w) }
func (m *Memory) AccountCodeRoot() felt.Word     { return m.read(accountRootBase + 2) }

func (m *Memory) SetAccountHash(w felt.Word) { m.write(accountRootBase+3, w) }
func (m *Memory) AccountHash() felt.Word     { return m.read(accountRootBase + 3) }

// --- Input notes (spec.md §4.10(e)): one (note_hash, nullifier) pair per
// consumed note, in consumption order. ---

func (m *Memory) SetInputNote(i int, noteHash, nullifier felt.Word) {
	checkBounds("input-notes", uint32(i), inputNoteMax)
	base := inputNoteBase + uint32(i)*inputNoteStride
	m.write(base+0, noteHash)
	m.write(base+1, nullifier)
}

func (m *Memory) InputNote(i int) (noteHash, nullifier felt.Word) {
	checkBounds("input-notes", uint32(i), inputNoteMax)
	base := inputNoteBase + uint32(i)*inputNoteStride
	return m.read(base + 0), m.read(base + 1)
}

// --- Output notes (spec.md §4.6, §4.11(c)/(d)): one (note_hash, metadata)
// pair per created note, in creation order. NoteModule.CreateNote and the
// epilogue do not write this region; NoteModule.Created is the store the
// epilogue reads output notes from. ---

func (m *Memory) SetOutputNote(i int, noteHash, metadata felt.Word) {
	checkBounds("output-notes", uint32(i), outputNoteMax)
	base := outputNoteBase + uint32(i)*outputNoteStride
	m.write(base+0, noteHash)
	m.write(base+1, metadata)
}

func (m *Memory) OutputNote(i int) (noteHash, metadata felt.Word) {
	checkBounds("output-notes", uint32(i), outputNoteMax)
	base := outputNoteBase + uint32(i)*outputNoteStride
	return m.read(base + 0), m.read(base + 1)
}

// --- Vault scratch and tx script root (spec.md §4.10(f), §4.11(c)) ---

func (m *Memory) SetInputVaultRoot(w felt.Word) { m.write(vaultScratchBase+0, w) }
func (m *Memory) InputVaultRoot() felt.Word     { return m.read(vaultScratchBase + 0) }

func (m *Memory) SetOutputVaultRoot(w felt.Word) { m.write(vaultScratchBase+1, w) }
func (m *Memory) OutputVaultRoot() felt.Word     { return m.read(vaultScratchBase + 1) }

func (m *Memory) SetTxScriptRoot(w felt.Word) { m.write(txScriptRootAddr, w) }
func (m *Memory) TxScriptRoot() felt.Word     { return m.read(txScriptRootAddr) }
