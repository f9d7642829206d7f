// Command typelock-sim builds or loads a fixture transaction against an
// in-memory host, runs the type-lock verifier over it, and prints the
// resulting exit code and any debug trace. It exists so the core verifier
// in internal/typelock is exercisable without a real CKB VM; it is not a
// product surface.
package main

import (
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/btcsuite/btcd/wire"
	"golang.org/x/crypto/blake2b"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/fixtures"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/hcv"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/host/simhost"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/log"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/typelock"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/spv"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/types"
)

// easyBits is regtest's compact-encoded target (about 2^255), so permissive
// that roughly half of all header hashes satisfy proof-of-work.
// The simulator is exercising the type-lock's structural rules, not
// Bitcoin's difficulty retarget, so a fixed easy target is adopted rather
// than mining a real header.
const easyBits = 0x207fffff

func main() {
	fs := flag.NewFlagSet("typelock-sim", flag.ContinueOnError)
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, error")
	logJSON := fs.Bool("log-json", false, "output logs as JSON")
	logFile := fs.String("log-file", "", "log file path (default: stdout)")
	fixturesDB := fs.String("fixtures-db", "", "badger fixtures db path (default: in-memory, not persisted)")
	scenario := fs.String("scenario", "create", "built-in scenario to run when --load is empty: create, destroy")
	clientsCount := fs.Uint("clients-count", 3, "ring size for the generated scenario")
	save := fs.String("save", "", "save the generated fixture under this name before verifying")
	load := fs.String("load", "", "load a previously saved fixture by name instead of generating one")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if err := log.Init(*logLevel, *logJSON, *logFile); err != nil {
		fmt.Fprintln(os.Stderr, "init log:", err)
		os.Exit(1)
	}

	store, closeStore, err := openStore(*fixturesDB)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open fixtures store:", err)
		os.Exit(1)
	}
	defer closeStore()

	var h *simhost.Host
	if *load != "" {
		f, err := store.Load(*load)
		if err != nil {
			fmt.Fprintln(os.Stderr, "load fixture:", err)
			os.Exit(1)
		}
		h = f.ToHost()
	} else {
		h, err = buildScenario(*scenario, uint8(*clientsCount))
		if err != nil {
			fmt.Fprintln(os.Stderr, "build scenario:", err)
			os.Exit(1)
		}
		if *save != "" {
			if err := store.Save(*save, fixtures.FromHost(h)); err != nil {
				fmt.Fprintln(os.Stderr, "save fixture:", err)
				os.Exit(1)
			}
		}
	}

	code := typelock.ProgramEntry(h, hcv.NewBTCVerifier())
	fmt.Printf("exit code: 0x%02x (%d)\n", uint8(code), code)
	os.Exit(int(code))
}

func openStore(path string) (*fixtures.Store, func(), error) {
	if path == "" {
		return fixtures.NewStore(fixtures.NewMemory()), func() {}, nil
	}
	db, err := fixtures.NewBadger(path)
	if err != nil {
		return nil, nil, err
	}
	return fixtures.NewStore(db), func() { _ = db.Close() }, nil
}

func buildScenario(name string, clientsCount uint8) (*simhost.Host, error) {
	switch name {
	case "create":
		return buildCreateScenario(clientsCount)
	case "destroy":
		return buildDestroyScenario(clientsCount)
	default:
		return nil, fmt.Errorf("unknown scenario %q", name)
	}
}

// buildCreateScenario builds a foreign input, an info
// output at index 0 with tip 0, clientsCount client outputs each equal to
// the bootstrap-derived template, and a genesis header witness at the
// info output's index.
func buildCreateScenario(clientsCount uint8) (*simhost.Host, error) {
	h := simhost.New()

	outpoint := make([]byte, 36)
	copy(outpoint, bytes.Repeat([]byte{0xAB}, 32))
	binary.LittleEndian.PutUint32(outpoint[32:], 0)
	h.PushInput(types.Hash{}, nil, outpoint) // foreign input, not own-type

	outputsCount := uint64(1 + clientsCount)
	typeID, err := computeTypeID(outpoint, outputsCount)
	if err != nil {
		return nil, err
	}
	args := spv.SpvTypeArgs{TypeID: typeID, ClientsCount: clientsCount, Flags: spv.FlagMainnet}
	script := types.Script{CodeHash: types.HashBytes([]byte("typelock-sim")), HashType: types.HashTypeType, Args: args.Pack()}
	h.RunningScript = script
	scriptHash := script.Hash()

	info := spv.SpvInfo{TipClientID: 0}
	h.PushOutput(scriptHash, info.Pack())

	header := genesisHeader()
	bootstrap := spv.SpvBootstrap{Height: 822528, Header: header}
	h.SetWitness(0, types.WitnessArgs{InputType: bootstrap.Pack()})

	client0, err := hcv.NewBTCVerifier().InitializeSpvClient(bootstrap)
	if err != nil {
		return nil, fmt.Errorf("derive genesis client: %w", err)
	}
	for i := uint8(0); i < clientsCount; i++ {
		h.PushOutput(scriptHash, client0.WithID(i).Pack())
	}
	return h, nil
}

// buildDestroyScenario builds a ring's tear-down: 1 info + clientsCount
// client inputs, no own-type outputs. Cell content is irrelevant to
// destroy, so arbitrary well-formed cells are used.
func buildDestroyScenario(clientsCount uint8) (*simhost.Host, error) {
	h := simhost.New()
	script := types.Script{CodeHash: types.HashBytes([]byte("typelock-sim")), HashType: types.HashTypeType,
		Args: spv.SpvTypeArgs{TypeID: types.Hash{0x01}, ClientsCount: clientsCount}.Pack()}
	h.RunningScript = script
	scriptHash := script.Hash()

	h.PushInput(scriptHash, spv.SpvInfo{TipClientID: 0}.Pack(), bytes.Repeat([]byte{0x00}, 36))
	for i := uint8(0); i < clientsCount; i++ {
		client := spv.SpvClient{ID: i, PartialChainWork: spv.ZeroWork()}
		h.PushInput(scriptHash, client.Pack(), bytes.Repeat([]byte{0x00}, 36))
	}
	return h, nil
}

func computeTypeID(input0 []byte, outputsCount uint64) (types.Hash, error) {
	buf := make([]byte, 0, len(input0)+8)
	buf = append(buf, input0...)
	buf = binary.LittleEndian.AppendUint64(buf, outputsCount)
	digest := blake2b.Sum256(buf)
	return types.Hash(digest), nil
}

// genesisHeader encodes a minimal, easy-target Bitcoin block header so the
// reference HeaderChainVerifier's proof-of-work check passes without
// mining a real block. Nonce 2 is the first nonce whose hash meets easyBits
// for these fields.
func genesisHeader() []byte {
	wh := wire.BlockHeader{
		Version:    1,
		Timestamp:  time.Unix(1231006505, 0),
		Bits:       easyBits,
		Nonce:      2,
	}
	var buf bytes.Buffer
	if err := wh.Serialize(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
