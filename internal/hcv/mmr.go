package hcv

import (
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/types"
)

// CommitHeaders folds a sequence of header hashes into a single root,
// committing to both their content and their order. Unlike a merkle tree
// over a fixed leaf set, headers accumulate incrementally: each new header
// extends the previous root rather than rebuilding a tree from scratch,
// mirroring an MMR's append-only peak-bagging without requiring the full
// peak structure (internals beyond the accumulated digest are out of scope
// here; only the exported root participates in client comparisons).
//
// root' = hash(root ‖ headerHash) for each header in order, starting from
// base.
func CommitHeaders(base types.Hash, headerHashes []types.Hash) types.Hash {
	root := base
	for _, h := range headerHashes {
		root = hashConcat(root, h)
	}
	return root
}

// hashConcat hashes the concatenation of two hashes, the same pairing
// primitive the reference block merkle tree folds transaction hashes with.
func hashConcat(a, b types.Hash) types.Hash {
	buf := make([]byte, 0, types.HashSize*2)
	buf = append(buf, a[:]...)
	buf = append(buf, b[:]...)
	return types.HashBytes(buf)
}
