// Package hcv implements the HeaderChainVerifier collaborator: deriving a
// genesis checkpoint from a bootstrap witness, and validating that a
// candidate checkpoint is a legitimate extension of a base checkpoint. The
// core type-lock verifier treats this package as opaque: it never inspects
// header-chain internals, only the pass/fail verdict and resulting client.
package hcv

import (
	"errors"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/spv"
)

// Verdict errors returned by VerifyNewClient. The core re-bases these onto
// the Delegated exit-code range (+0x60) via internal/typelock/errors.go; it
// never inspects them beyond errors.Is comparisons in tests.
var (
	ErrMalformedUpdate    = errors.New("hcv: update payload malformed")
	ErrNoHeaders          = errors.New("hcv: update carries no headers")
	ErrDiscontinuousChain = errors.New("hcv: header does not extend the previous header")
	ErrInvalidProofOfWork = errors.New("hcv: header fails proof-of-work check")
	ErrStaleWork          = errors.New("hcv: resulting work does not exceed base")
	ErrMMRMismatch        = errors.New("hcv: resulting mmr root does not match claimed client")
)

var (
	// ErrMalformedBootstrap is returned by InitializeSpvClient when the
	// bootstrap witness cannot be decoded as a valid genesis header.
	ErrMalformedBootstrap = errors.New("hcv: bootstrap payload malformed")
)

// HeaderChainVerifier derives and extends checkpoints of an external
// header chain. Implementations own all header-chain-specific logic: PoW
// rules, difficulty retargeting, MMR accumulation.
type HeaderChainVerifier interface {
	// InitializeSpvClient derives the genesis checkpoint (id 0) for a new
	// ring instance from a create-path bootstrap witness.
	InitializeSpvClient(bootstrap spv.SpvBootstrap) (spv.SpvClient, error)

	// VerifyNewClient checks that next is a valid extension of base given
	// the headers carried in update, under the ring's chain-type flags.
	// It does not itself enforce the reorg work-progress comparison; that
	// policy lives in the core since it depends on
	// the previous tip, not just base/next.
	VerifyNewClient(base, next spv.SpvClient, update spv.SpvUpdate, flags uint8) error
}
