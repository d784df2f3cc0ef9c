package advice

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/rollupkit/txkernel/felt"
)

// DigestKey derives a Word map key from arbitrary bytes (e.g. a serialized
// Merkle path request, or an external fixture's note identifier) so advice
// map entries can be addressed by content the kernel itself never computes a
// felt-domain hash over. Grounded on crypto/shielded_tx.go's use of a
// SHA-3-family hash for off-circuit commitment material that never enters
// the field arithmetic directly.
func DigestKey(b []byte) felt.Word {
	sum := sha3.Sum256(b)
	return felt.WordFromUint64s(
		binary.LittleEndian.Uint64(sum[0:8]),
		binary.LittleEndian.Uint64(sum[8:16]),
		binary.LittleEndian.Uint64(sum[16:24]),
		binary.LittleEndian.Uint64(sum[24:32]),
	)
}
