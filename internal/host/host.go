// Package host defines the primitives a type-lock verifier consumes from
// its execution environment: cell data, witnesses, the running script, and
// nothing else. internal/typelock never touches a concrete implementation
// directly; it depends on the Context interface so the same verifier code
// runs against a live chain host or the in-memory simhost.
package host

import (
	"errors"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/types"
)

// Source names which side of a transaction a cell or witness is read from.
type Source uint8

const (
	SourceInput Source = iota
	SourceOutput
	SourceCellDep
)

// String names a source for logging and error messages.
func (s Source) String() string {
	switch s {
	case SourceInput:
		return "input"
	case SourceOutput:
		return "output"
	case SourceCellDep:
		return "cell_dep"
	default:
		return "unknown"
	}
}

// Sys/codec errors. These map to the Sys/codec exit-code range via
// internal/typelock/errors.go.
var (
	ErrIndexOutOfBound = errors.New("index out of bound")
	ErrItemMissing     = errors.New("item missing")
	ErrLengthNotEnough = errors.New("length not enough")
	ErrEncoding        = errors.New("encoding error")
)

// Context is the set of host primitives the verifier reads from. All
// methods are read-only: the verifier never mutates transaction state.
type Context interface {
	// CellCount returns how many cells exist on the given source.
	CellCount(src Source) int

	// CellTypeHash returns the type script hash of the cell at index on
	// src, or the zero hash if the cell has no type script. Returns
	// ErrIndexOutOfBound if index is out of range.
	CellTypeHash(src Source, index int) (types.Hash, error)

	// CellData returns the raw data of the cell at index on src.
	CellData(src Source, index int) ([]byte, error)

	// WitnessArgs returns the witness at index. ErrItemMissing if none
	// exists at that index (distinct from an existing-but-empty witness).
	WitnessArgs(index int) (types.WitnessArgs, error)

	// Input returns the raw outpoint bytes of the input at index.
	// Index 0 is used by type-id derivation.
	Input(index int) ([]byte, error)

	// Script returns the currently-running type script, i.e. the one
	// whose args are being interpreted by this verifier instance.
	Script() (types.Script, error)
}
