// Package fixtures persists named simulator transactions so cmd/typelock-sim
// can build a scenario once and re-run it later, the same way a chain
// node persists its own state. This is test/debug tooling, not
// part of the core verifier: the core never reads or writes through it.
package fixtures

import (
	"encoding/json"
	"fmt"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/host/simhost"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/types"
)

// Backend persists named fixtures as opaque blobs. Store never needs key
// existence checks, so unlike a general-purpose key-value store this
// interface only covers what saving, loading, listing, and erasing fixtures
// requires.
type Backend interface {
	Save(key, value []byte) error
	Load(key []byte) ([]byte, error)
	Erase(key []byte) error
	// List walks every stored entry whose key starts with prefix. Return a
	// non-nil error from fn to stop iteration early.
	List(prefix []byte, fn func(key, value []byte) error) error
	Close() error
}

// namePrefix groups fixture keys in a shared DB so List("fixture/") can
// list them without colliding with any other key space a caller might add.
const namePrefix = "fixture/"

// Cell is one JSON-serializable cell entry on a source.
type Cell struct {
	TypeHash types.Hash `json:"type_hash"`
	Data     []byte     `json:"data"`
}

// Fixture is a named transaction scenario: the own-type and foreign cells
// on each source, the witnesses, and the running script the scenario
// exercises. It is simhost.Host's JSON-serializable counterpart.
type Fixture struct {
	Inputs         []Cell              `json:"inputs"`
	Outputs        []Cell              `json:"outputs"`
	CellDeps       []Cell              `json:"cell_deps"`
	Witnesses      []types.WitnessArgs `json:"witnesses"`
	InputOutpoints [][]byte            `json:"input_outpoints"`
	Script         types.Script        `json:"script"`
}

// FromHost captures a simhost.Host's state into a Fixture.
func FromHost(h *simhost.Host) Fixture {
	f := Fixture{
		Witnesses:      h.Witnesses,
		InputOutpoints: h.InputOutpoints,
		Script:         h.RunningScript,
	}
	f.Inputs = cellsOf(h.Inputs)
	f.Outputs = cellsOf(h.Outputs)
	f.CellDeps = cellsOf(h.CellDeps)
	return f
}

func cellsOf(cells []simhost.Cell) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[i] = Cell{TypeHash: c.TypeHash, Data: c.Data}
	}
	return out
}

// ToHost reconstructs a simhost.Host from the fixture.
func (f Fixture) ToHost() *simhost.Host {
	h := simhost.New()
	h.Witnesses = f.Witnesses
	h.InputOutpoints = f.InputOutpoints
	h.RunningScript = f.Script
	for _, c := range f.Inputs {
		h.Inputs = append(h.Inputs, simhost.Cell{TypeHash: c.TypeHash, Data: c.Data})
	}
	for _, c := range f.Outputs {
		h.Outputs = append(h.Outputs, simhost.Cell{TypeHash: c.TypeHash, Data: c.Data})
	}
	for _, c := range f.CellDeps {
		h.CellDeps = append(h.CellDeps, simhost.Cell{TypeHash: c.TypeHash, Data: c.Data})
	}
	return h
}

// Store saves and loads named Fixtures through a Backend.
type Store struct {
	backend Backend
}

// NewStore wraps backend as a fixture Store.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Save encodes and persists a fixture under name, overwriting any existing
// fixture with the same name.
func (s *Store) Save(name string, f Fixture) error {
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode fixture %q: %w", name, err)
	}
	return s.backend.Save([]byte(namePrefix+name), b)
}

// Load decodes the fixture saved under name.
func (s *Store) Load(name string) (Fixture, error) {
	b, err := s.backend.Load([]byte(namePrefix + name))
	if err != nil {
		return Fixture{}, fmt.Errorf("load fixture %q: %w", name, err)
	}
	var f Fixture
	if err := json.Unmarshal(b, &f); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture %q: %w", name, err)
	}
	return f, nil
}

// List returns the names of every fixture stored.
func (s *Store) List() ([]string, error) {
	var names []string
	err := s.backend.List([]byte(namePrefix), func(key, _ []byte) error {
		names = append(names, string(key[len(namePrefix):]))
		return nil
	})
	return names, err
}

// Delete removes the fixture saved under name.
func (s *Store) Delete(name string) error {
	return s.backend.Erase([]byte(namePrefix + name))
}
