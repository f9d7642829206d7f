package typelock

import (
	"errors"
	"testing"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/host/simhost"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/spv"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/types"
)

func buildDestroyHost(clientsCount uint8) (*simhost.Host, types.Hash) {
	script := types.Script{CodeHash: types.HashBytes([]byte("destroy-script")), HashType: types.HashTypeType,
		Args: spv.SpvTypeArgs{ClientsCount: clientsCount}.Pack()}
	scriptHash := script.Hash()

	h := simhost.New()
	h.RunningScript = script
	h.PushInput(scriptHash, spv.SpvInfo{TipClientID: 0}.Pack(), make([]byte, 36))
	for i := uint8(0); i < clientsCount; i++ {
		h.PushInput(scriptHash, spv.SpvClient{ID: i, PartialChainWork: spv.ZeroWork()}.Pack(), make([]byte, 36))
	}
	return h, scriptHash
}

// TestVerifyDestroy_Accepts checks the minimal valid teardown: exactly
// 1+clients_count own-type inputs and zero own-type outputs.
func TestVerifyDestroy_Accepts(t *testing.T) {
	h, scriptHash := buildDestroyHost(testClientsCount)
	cl, err := Classify(h, scriptHash)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if err := VerifyDestroy(cl, testClientsCount); err != nil {
		t.Fatalf("VerifyDestroy: %v", err)
	}
}

func TestVerifyDestroy_WrongCellCount(t *testing.T) {
	h, scriptHash := buildDestroyHost(testClientsCount)
	h.Inputs = h.Inputs[:len(h.Inputs)-1]
	h.InputOutpoints = h.InputOutpoints[:len(h.InputOutpoints)-1]

	cl, err := Classify(h, scriptHash)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if err := VerifyDestroy(cl, testClientsCount); !errors.Is(err, ErrDestroyNotEnoughCells) {
		t.Fatalf("VerifyDestroy = %v, want ErrDestroyNotEnoughCells", err)
	}
}

// TestVerifyDestroy_NotContiguous checks that a foreign-type cell wedged
// between own-type inputs is rejected, mirroring Create's ordering check.
func TestVerifyDestroy_NotContiguous(t *testing.T) {
	script := types.Script{CodeHash: types.HashBytes([]byte("destroy-script")), HashType: types.HashTypeType,
		Args: spv.SpvTypeArgs{ClientsCount: testClientsCount}.Pack()}
	scriptHash := script.Hash()
	foreignHash := types.HashBytes([]byte("foreign-script"))

	h := simhost.New()
	h.RunningScript = script
	h.PushInput(scriptHash, spv.SpvInfo{TipClientID: 0}.Pack(), make([]byte, 36))
	h.PushInput(foreignHash, nil, make([]byte, 36))
	for i := uint8(0); i < testClientsCount; i++ {
		h.PushInput(scriptHash, spv.SpvClient{ID: i, PartialChainWork: spv.ZeroWork()}.Pack(), make([]byte, 36))
	}

	cl, err := Classify(h, scriptHash)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if err := VerifyDestroy(cl, testClientsCount); !errors.Is(err, ErrDestroyShouldBeOrdered) {
		t.Fatalf("VerifyDestroy = %v, want ErrDestroyShouldBeOrdered", err)
	}
}

func TestVerifyDestroy_OutputsPresent(t *testing.T) {
	h, scriptHash := buildDestroyHost(testClientsCount)
	h.PushOutput(scriptHash, spv.SpvInfo{TipClientID: 0}.Pack())

	cl, err := Classify(h, scriptHash)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if err := VerifyDestroy(cl, testClientsCount); !errors.Is(err, ErrDestroyOutputsNotEmpty) {
		t.Fatalf("VerifyDestroy = %v, want ErrDestroyOutputsNotEmpty", err)
	}
}
