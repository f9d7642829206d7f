// Package simhost implements host.Context entirely in memory, for tests and
// the typelock-sim CLI. It builds the three Source slices directly from
// Go values rather than parsing a wire-format transaction.
package simhost

import (
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/host"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/types"
)

// Cell is one entry on a source: its type hash (zero if no type script)
// and its raw data.
type Cell struct {
	TypeHash types.Hash
	Data     []byte
}

// Host is an in-memory host.Context built by a test or the simulator CLI.
type Host struct {
	Inputs    []Cell
	Outputs   []Cell
	CellDeps  []Cell
	Witnesses []types.WitnessArgs
	// InputOutpoints holds the raw outpoint bytes for each input, read by
	// type-id derivation via Input(0).
	InputOutpoints [][]byte
	RunningScript  types.Script
}

// New returns an empty Host ready to be populated field by field.
func New() *Host {
	return &Host{}
}

func (h *Host) cells(src host.Source) []Cell {
	switch src {
	case host.SourceInput:
		return h.Inputs
	case host.SourceOutput:
		return h.Outputs
	case host.SourceCellDep:
		return h.CellDeps
	default:
		return nil
	}
}

// CellCount implements host.Context.
func (h *Host) CellCount(src host.Source) int {
	return len(h.cells(src))
}

// CellTypeHash implements host.Context.
func (h *Host) CellTypeHash(src host.Source, index int) (types.Hash, error) {
	cells := h.cells(src)
	if index < 0 || index >= len(cells) {
		return types.Hash{}, host.ErrIndexOutOfBound
	}
	return cells[index].TypeHash, nil
}

// CellData implements host.Context.
func (h *Host) CellData(src host.Source, index int) ([]byte, error) {
	cells := h.cells(src)
	if index < 0 || index >= len(cells) {
		return nil, host.ErrIndexOutOfBound
	}
	return cells[index].Data, nil
}

// WitnessArgs implements host.Context.
func (h *Host) WitnessArgs(index int) (types.WitnessArgs, error) {
	if index < 0 || index >= len(h.Witnesses) {
		return types.WitnessArgs{}, host.ErrItemMissing
	}
	return h.Witnesses[index], nil
}

// Input implements host.Context.
func (h *Host) Input(index int) ([]byte, error) {
	if index < 0 || index >= len(h.InputOutpoints) {
		return nil, host.ErrIndexOutOfBound
	}
	return h.InputOutpoints[index], nil
}

// Script implements host.Context.
func (h *Host) Script() (types.Script, error) {
	return h.RunningScript, nil
}

// PushInput appends an input cell and its outpoint bytes in lockstep; the
// two slices must stay the same length for Input(i) to line up with
// Inputs[i].
func (h *Host) PushInput(typeHash types.Hash, data []byte, outpoint []byte) {
	h.Inputs = append(h.Inputs, Cell{TypeHash: typeHash, Data: data})
	h.InputOutpoints = append(h.InputOutpoints, outpoint)
}

// PushOutput appends an output cell.
func (h *Host) PushOutput(typeHash types.Hash, data []byte) {
	h.Outputs = append(h.Outputs, Cell{TypeHash: typeHash, Data: data})
}

// PushCellDep appends a cell-dep cell.
func (h *Host) PushCellDep(typeHash types.Hash, data []byte) {
	h.CellDeps = append(h.CellDeps, Cell{TypeHash: typeHash, Data: data})
}

// SetWitness places a witness at index, growing the slice as needed.
func (h *Host) SetWitness(index int, w types.WitnessArgs) {
	for len(h.Witnesses) <= index {
		h.Witnesses = append(h.Witnesses, types.WitnessArgs{})
	}
	h.Witnesses[index] = w
}
