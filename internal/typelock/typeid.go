package typelock

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/host"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/types"
)

// ComputeTypeID derives the uniqueness token bound into SpvTypeArgs at
// creation time: blake2b(first_input || le64(outputsCount)). first_input
// is the outpoint input 0 consumes, decoded from its raw wire bytes so a
// truncated or oversized outpoint is rejected instead of silently hashed.
func ComputeTypeID(ctx host.Context, outputsCount uint64) (types.Hash, error) {
	raw, err := ctx.Input(0)
	if err != nil {
		return types.Hash{}, err
	}
	outpoint, err := types.OutpointFromBytes(raw)
	if err != nil {
		return types.Hash{}, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	outpointBytes := outpoint.Bytes()
	buf := make([]byte, 0, len(outpointBytes)+8)
	buf = append(buf, outpointBytes...)
	buf = binary.LittleEndian.AppendUint64(buf, outputsCount)

	digest := blake2b.Sum256(buf)
	return types.Hash(digest), nil
}
