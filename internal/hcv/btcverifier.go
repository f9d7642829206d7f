package hcv

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/wire"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/spv"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/types"
)

// headerSize is the wire-encoded length of a Bitcoin block header.
const headerSize = 80

// BTCVerifier implements HeaderChainVerifier against serialized Bitcoin
// block headers, using btcd's wire codec and difficulty-bits decoding. It
// performs the two checks that are this ring's actual trust boundary: each
// header's hash meets its own declared target, and each header extends the
// previous one's hash.
//
// Difficulty retargeting and checkpoint/finality rules are intentionally
// not enforced here; this verifier's own scope excludes header-chain internals
// beyond proof-of-work and linkage.
type BTCVerifier struct{}

// NewBTCVerifier returns a HeaderChainVerifier backed by Bitcoin headers.
func NewBTCVerifier() *BTCVerifier {
	return &BTCVerifier{}
}

func decodeHeader(b []byte) (*wire.BlockHeader, error) {
	if len(b) != headerSize {
		return nil, fmt.Errorf("%w: header is %d bytes, want %d", ErrMalformedUpdate, len(b), headerSize)
	}
	var h wire.BlockHeader
	if err := h.Deserialize(bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedUpdate, err)
	}
	return &h, nil
}

func headerWork(h *wire.BlockHeader) spv.Work {
	target := blockchain.CompactToBig(h.Bits)
	return spv.WorkFromCompactBits(target)
}

func checkProofOfWork(h *wire.BlockHeader) error {
	target := blockchain.CompactToBig(h.Bits)
	if target.Sign() <= 0 {
		return fmt.Errorf("%w: non-positive target", ErrInvalidProofOfWork)
	}
	hash := h.BlockHash()
	hashInt := new(big.Int).SetBytes(reverse(hash[:]))
	if hashInt.Cmp(target) > 0 {
		return ErrInvalidProofOfWork
	}
	return nil
}

// reverse returns a reversed copy, converting a chainhash.Hash's internal
// little-endian byte order into the big-endian order math/big expects.
func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

func headerToHash(h *wire.BlockHeader) types.Hash {
	return types.Hash(h.BlockHash())
}

// InitializeSpvClient derives the genesis checkpoint from a single
// bootstrap header: slot 0's root is the header's hash folded into the
// zero-hash accumulator by CommitHeaders, and its work is the work that
// header alone represents.
func (BTCVerifier) InitializeSpvClient(bootstrap spv.SpvBootstrap) (spv.SpvClient, error) {
	h, err := decodeHeader(bootstrap.Header)
	if err != nil {
		return spv.SpvClient{}, fmt.Errorf("%w: %v", ErrMalformedBootstrap, err)
	}
	if err := checkProofOfWork(h); err != nil {
		return spv.SpvClient{}, err
	}
	return spv.SpvClient{
		ID:               0,
		HeadersMMRRoot:   CommitHeaders(types.Hash{}, []types.Hash{headerToHash(h)}),
		PartialChainWork: headerWork(h),
	}, nil
}

// VerifyNewClient decodes update as a concatenation of 80-byte headers,
// checks each extends the previous one's hash and meets its own
// proof-of-work target, folds their hashes into base's MMR root, and
// requires the result match next bytewise. The expected client takes
// base's ID, which the core has already set to the slot next must occupy.
func (BTCVerifier) VerifyNewClient(base, next spv.SpvClient, update spv.SpvUpdate, flags uint8) error {
	if len(update.Raw) == 0 || len(update.Raw)%headerSize != 0 {
		return fmt.Errorf("%w: update is %d bytes, not a multiple of %d", ErrMalformedUpdate, len(update.Raw), headerSize)
	}
	count := len(update.Raw) / headerSize
	if count == 0 {
		return ErrNoHeaders
	}

	hashes := make([]types.Hash, 0, count)
	work := base.PartialChainWork

	var prevBlockHash *types.Hash
	for i := 0; i < count; i++ {
		raw := update.Raw[i*headerSize : (i+1)*headerSize]
		h, err := decodeHeader(raw)
		if err != nil {
			return err
		}
		if prevBlockHash != nil {
			linked := types.Hash(h.PrevBlock)
			if linked != *prevBlockHash {
				return ErrDiscontinuousChain
			}
		}
		if err := checkProofOfWork(h); err != nil {
			return err
		}
		work = work.Add(headerWork(h))
		bh := headerToHash(h)
		hashes = append(hashes, bh)
		prevBlockHash = &bh
	}

	root := CommitHeaders(base.HeadersMMRRoot, hashes)

	want := spv.SpvClient{ID: base.ID, HeadersMMRRoot: root, PartialChainWork: work}
	if !want.Equal(next) {
		return ErrMMRMismatch
	}
	return nil
}
