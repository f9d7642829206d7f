package typelock

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/host/simhost"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/spv"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/types"
)

const testClientsCount = 3

func foreignOutpoint() []byte {
	outpoint := make([]byte, 36)
	for i := range outpoint {
		outpoint[i] = byte(i + 1)
	}
	return outpoint
}

// buildCreateHost builds: a foreign input, an info output at
// index 0, and clientsCount client outputs each equal to the
// bootstrap-derived template. mutate, if non-nil, is applied to the built
// host before returning so tests can corrupt a specific field.
func buildCreateHost(t *testing.T, clientsCount uint8, client0 spv.SpvClient, mutate func(h *simhost.Host)) (*simhost.Host, types.Hash) {
	t.Helper()
	outpoint := foreignOutpoint()

	args := spv.SpvTypeArgs{ClientsCount: clientsCount, Flags: spv.FlagMainnet}
	script := types.Script{CodeHash: types.HashBytes([]byte("test-script")), HashType: types.HashTypeType}
	scriptHash := script.Hash() // computed before args.Pack() depends on TypeID; hash is over CodeHash/HashType/Args length+bytes only once Args is final

	h := simhost.New()
	h.PushInput(types.Hash{0x99}, nil, outpoint)

	typeID, err := ComputeTypeID(h, uint64(1+clientsCount))
	if err != nil {
		t.Fatalf("ComputeTypeID: %v", err)
	}
	args.TypeID = typeID
	script.Args = args.Pack()
	scriptHash = script.Hash()
	h.RunningScript = script

	info := spv.SpvInfo{TipClientID: 0}
	h.PushOutput(scriptHash, info.Pack())

	header := make([]byte, 12)
	binary.LittleEndian.PutUint64(header[:8], 822528)
	bootstrap := spv.SpvBootstrap{Height: 822528, Header: header}
	h.SetWitness(0, types.WitnessArgs{InputType: bootstrap.Pack()})

	for i := uint8(0); i < clientsCount; i++ {
		h.PushOutput(scriptHash, client0.WithID(i).Pack())
	}

	if mutate != nil {
		mutate(h)
	}
	return h, scriptHash
}

func TestVerifyCreate_Accepts(t *testing.T) {
	client0 := spv.SpvClient{HeadersMMRRoot: types.Hash{0x01}, PartialChainWork: spv.ZeroWork()}
	h, scriptHash := buildCreateHost(t, testClientsCount, client0, nil)

	args, err := DecodeScriptArgs(h)
	if err != nil {
		t.Fatalf("DecodeScriptArgs: %v", err)
	}
	cl, err := Classify(h, scriptHash)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if err := VerifyCreate(h, cl, args, &fakeVerifier{client0: client0}); err != nil {
		t.Fatalf("VerifyCreate: %v", err)
	}
}

// TestVerifyCreate_WrongIDOrdering output 2 and 3 have
// their ids swapped, so the client template comparison must fail.
func TestVerifyCreate_WrongIDOrdering(t *testing.T) {
	client0 := spv.SpvClient{HeadersMMRRoot: types.Hash{0x01}, PartialChainWork: spv.ZeroWork()}
	h, scriptHash := buildCreateHost(t, testClientsCount, client0, func(h *simhost.Host) {
		// Outputs[2] and Outputs[3] hold client id=1 and id=2 respectively
		// (index 0 is info); swap their data to misorder the ids.
		h.Outputs[2].Data, h.Outputs[3].Data = h.Outputs[3].Data, h.Outputs[2].Data
	})

	args, err := DecodeScriptArgs(h)
	if err != nil {
		t.Fatalf("DecodeScriptArgs: %v", err)
	}
	cl, err := Classify(h, scriptHash)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	err = VerifyCreate(h, cl, args, &fakeVerifier{client0: client0})
	if !errors.Is(err, ErrCreateNewClientIsIncorrect) {
		t.Fatalf("VerifyCreate = %v, want ErrCreateNewClientIsIncorrect", err)
	}
	if ExitCode(err) != 0x27 {
		t.Errorf("ExitCode = 0x%02x, want 0x27", ExitCode(err))
	}
}

// TestVerifyCreate_WrongTypeID corrupts the input the type-id was bound to
// after the fact, leaving script args (and therefore the script hash used
// for classification) untouched: the recomputed type-id then disagrees
// with the one recorded in args.
func TestVerifyCreate_WrongTypeID(t *testing.T) {
	client0 := spv.SpvClient{HeadersMMRRoot: types.Hash{0x01}, PartialChainWork: spv.ZeroWork()}
	h, scriptHash := buildCreateHost(t, testClientsCount, client0, func(h *simhost.Host) {
		h.InputOutpoints[0][0] ^= 0xFF
	})

	args, err := DecodeScriptArgs(h)
	if err != nil {
		t.Fatalf("DecodeScriptArgs: %v", err)
	}
	cl, err := Classify(h, scriptHash)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	err = VerifyCreate(h, cl, args, &fakeVerifier{client0: client0})
	if !errors.Is(err, ErrCreateIncorrectUniqueId) {
		t.Fatalf("VerifyCreate = %v, want ErrCreateIncorrectUniqueId", err)
	}
}

func TestVerifyCreate_MissingBootstrapWitness(t *testing.T) {
	client0 := spv.SpvClient{HeadersMMRRoot: types.Hash{0x01}, PartialChainWork: spv.ZeroWork()}
	h, scriptHash := buildCreateHost(t, testClientsCount, client0, func(h *simhost.Host) {
		h.Witnesses = nil
	})

	args, err := DecodeScriptArgs(h)
	if err != nil {
		t.Fatalf("DecodeScriptArgs: %v", err)
	}
	cl, err := Classify(h, scriptHash)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	err = VerifyCreate(h, cl, args, &fakeVerifier{client0: client0})
	if !errors.Is(err, ErrCreateWitnessIsNotExisted) {
		t.Fatalf("VerifyCreate = %v, want ErrCreateWitnessIsNotExisted", err)
	}
}
