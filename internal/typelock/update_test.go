package typelock

import (
	"errors"
	"testing"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/hcv"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/host/simhost"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/spv"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/types"
)

const updateClientsCount = 5

// buildUpdateHost tip=0, the input client at the next
// slot is advanced, and the cell-dep carries the current tip as base.
// inputClientID overrides the id the input client cell carries, so tests
// can corrupt it independently of the rest of the scenario.
func buildUpdateHost(t *testing.T, tip uint8, inputClientID uint8) (*simhost.Host, types.Hash) {
	t.Helper()
	script := types.Script{CodeHash: types.HashBytes([]byte("update-script")), HashType: types.HashTypeType,
		Args: spv.SpvTypeArgs{ClientsCount: updateClientsCount}.Pack()}
	scriptHash := script.Hash()
	expected := NextID(tip, updateClientsCount)

	h := simhost.New()
	h.RunningScript = script

	infoIn := spv.SpvInfo{TipClientID: tip}
	clientIn := spv.SpvClient{ID: inputClientID, PartialChainWork: spv.ZeroWork()}
	h.PushInput(scriptHash, infoIn.Pack(), make([]byte, 36))
	h.PushInput(scriptHash, clientIn.Pack(), make([]byte, 36))

	infoOut := spv.SpvInfo{TipClientID: expected}
	clientOut := spv.SpvClient{ID: expected, HeadersMMRRoot: types.Hash{0x02}, PartialChainWork: spv.ZeroWork()}
	h.PushOutput(scriptHash, infoOut.Pack())
	h.PushOutput(scriptHash, clientOut.Pack())
	h.SetWitness(0, types.WitnessArgs{OutputType: []byte{0x01}})

	cellDepClient := spv.SpvClient{ID: tip, PartialChainWork: spv.ZeroWork()}
	h.PushCellDep(scriptHash, cellDepClient.Pack())

	return h, scriptHash
}

func TestVerifyUpdate_Accepts(t *testing.T) {
	const tip = 0
	h, scriptHash := buildUpdateHost(t, tip, NextID(tip, updateClientsCount))

	args, err := DecodeScriptArgs(h)
	if err != nil {
		t.Fatalf("DecodeScriptArgs: %v", err)
	}
	cl, err := Classify(h, scriptHash)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if err := VerifyUpdate(h, cl, args, &fakeVerifier{}); err != nil {
		t.Fatalf("VerifyUpdate: %v", err)
	}
}

// TestVerifyUpdate_WrongInputClientID checks that an input client cell
// carrying the wrong id is rejected.
func TestVerifyUpdate_WrongInputClientID(t *testing.T) {
	const tip = 0
	h, scriptHash := buildUpdateHost(t, tip, 2) // want 1, got 2

	args, err := DecodeScriptArgs(h)
	if err != nil {
		t.Fatalf("DecodeScriptArgs: %v", err)
	}
	cl, err := Classify(h, scriptHash)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	err = VerifyUpdate(h, cl, args, &fakeVerifier{})
	if !errors.Is(err, ErrUpdateInputClientIdIsMismatch) {
		t.Fatalf("VerifyUpdate = %v, want ErrUpdateInputClientIdIsMismatch", err)
	}
	if ExitCode(err) != 0x42 {
		t.Errorf("ExitCode = 0x%02x, want 0x42", ExitCode(err))
	}
}

func TestVerifyUpdate_OutputInfoChanged(t *testing.T) {
	const tip = 0
	h, scriptHash := buildUpdateHost(t, tip, NextID(tip, updateClientsCount))
	// Corrupt the output info's tip so it no longer equals input info with
	// the expected advance applied.
	h.Outputs[0].Data = spv.SpvInfo{TipClientID: tip}.Pack()

	args, err := DecodeScriptArgs(h)
	if err != nil {
		t.Fatalf("DecodeScriptArgs: %v", err)
	}
	cl, err := Classify(h, scriptHash)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	err = VerifyUpdate(h, cl, args, &fakeVerifier{})
	if !errors.Is(err, ErrUpdateOutputInfoChanged) {
		t.Fatalf("VerifyUpdate = %v, want ErrUpdateOutputInfoChanged", err)
	}
}

func TestVerifyUpdate_CellDepIDMismatch(t *testing.T) {
	const tip = 0
	h, scriptHash := buildUpdateHost(t, tip, NextID(tip, updateClientsCount))
	wrong := spv.SpvClient{ID: tip + 1, PartialChainWork: spv.ZeroWork()}
	h.CellDeps[0].Data = wrong.Pack()

	args, err := DecodeScriptArgs(h)
	if err != nil {
		t.Fatalf("DecodeScriptArgs: %v", err)
	}
	cl, err := Classify(h, scriptHash)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	err = VerifyUpdate(h, cl, args, &fakeVerifier{})
	if !errors.Is(err, ErrUpdateCellDepIdMismatch) {
		t.Fatalf("VerifyUpdate = %v, want ErrUpdateCellDepIdMismatch", err)
	}
}

func TestVerifyUpdate_DelegatedFailurePropagates(t *testing.T) {
	const tip = 0
	h, scriptHash := buildUpdateHost(t, tip, NextID(tip, updateClientsCount))

	args, err := DecodeScriptArgs(h)
	if err != nil {
		t.Fatalf("DecodeScriptArgs: %v", err)
	}
	cl, err := Classify(h, scriptHash)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	err = VerifyUpdate(h, cl, args, &fakeVerifier{verifyErr: hcv.ErrStaleWork})
	var de *DelegatedError
	if !errors.As(err, &de) {
		t.Fatalf("VerifyUpdate = %v, want *DelegatedError", err)
	}
	if code := ExitCode(err); code < delegatedBase {
		t.Errorf("ExitCode = 0x%02x, want >= 0x%02x", code, delegatedBase)
	}
}
