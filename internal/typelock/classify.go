// Package typelock implements the state-transition verifier for a
// fixed-size ring of SPV client cells: classification, dispatch, and the
// four operation verifiers (Create, Destroy, Update, Reorg).
package typelock

import (
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/host"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/spv"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/types"
)

// Role names what a classified own-type cell decoded as.
type Role uint8

const (
	RoleMalformed Role = iota
	RoleInfo
	RoleClient
)

// Entry is one own-type cell found on a source, with its decoded role.
type Entry struct {
	Index  int
	Role   Role
	Info   spv.SpvInfo
	Client spv.SpvClient
}

// Classification holds the own-type entries found on each source.
type Classification struct {
	Inputs   []Entry
	Outputs  []Entry
	CellDeps []Entry
}

// Classify partitions a transaction's inputs, outputs, and cell-deps into
// the cells carrying the running type script, decoding each as SpvInfo or
// SpvClient. It never rejects on cardinality; that is the dispatcher's job.
func Classify(ctx host.Context, scriptHash types.Hash) (Classification, error) {
	inputs, err := classifySource(ctx, host.SourceInput, scriptHash)
	if err != nil {
		return Classification{}, err
	}
	outputs, err := classifySource(ctx, host.SourceOutput, scriptHash)
	if err != nil {
		return Classification{}, err
	}
	cellDeps, err := classifySource(ctx, host.SourceCellDep, scriptHash)
	if err != nil {
		return Classification{}, err
	}
	return Classification{Inputs: inputs, Outputs: outputs, CellDeps: cellDeps}, nil
}

func classifySource(ctx host.Context, src host.Source, scriptHash types.Hash) ([]Entry, error) {
	var entries []Entry
	count := ctx.CellCount(src)
	for i := 0; i < count; i++ {
		typeHash, err := ctx.CellTypeHash(src, i)
		if err != nil {
			return nil, err
		}
		if typeHash != scriptHash {
			continue
		}
		data, err := ctx.CellData(src, i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, decodeEntry(i, data))
	}
	return entries, nil
}

func decodeEntry(index int, data []byte) Entry {
	if info, err := spv.InfoFromSlice(data); err == nil {
		return Entry{Index: index, Role: RoleInfo, Info: info}
	}
	if client, err := spv.ClientFromSlice(data); err == nil {
		return Entry{Index: index, Role: RoleClient, Client: client}
	}
	return Entry{Index: index, Role: RoleMalformed}
}
