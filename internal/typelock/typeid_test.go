package typelock

import (
	"encoding/binary"
	"testing"

	"golang.org/x/crypto/blake2b"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/host/simhost"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/types"
)

// TestComputeTypeID checks: type_id == blake2b(first_input ||
// le64(outputs_count)), against the digest the test computes directly
// from the same outpoint bytes.
func TestComputeTypeID(t *testing.T) {
	outpoint := make([]byte, 36)
	for i := range outpoint {
		outpoint[i] = byte(i)
	}
	h := simhost.New()
	h.PushInput(types.Hash{}, nil, outpoint)

	const outputsCount = 4
	got, err := ComputeTypeID(h, outputsCount)
	if err != nil {
		t.Fatalf("ComputeTypeID: %v", err)
	}

	buf := make([]byte, 0, len(outpoint)+8)
	buf = append(buf, outpoint...)
	buf = binary.LittleEndian.AppendUint64(buf, outputsCount)
	want := types.Hash(blake2b.Sum256(buf))

	if got != want {
		t.Errorf("ComputeTypeID = %x, want %x", got, want)
	}
}
