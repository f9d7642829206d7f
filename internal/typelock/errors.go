package typelock

import (
	"errors"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/hcv"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/host"
)

// Sys/codec errors, 0x01-0x0f. ErrIndexOutOfBound, ErrItemMissing and
// ErrLengthNotEnough are re-exported from the host package so verifier code
// can return them directly when a host primitive fails.
var (
	ErrIndexOutOfBound = host.ErrIndexOutOfBound
	ErrItemMissing     = host.ErrItemMissing
	ErrLengthNotEnough = host.ErrLengthNotEnough
	ErrEncoding        = errors.New("encoding error")
	ErrUnknown         = errors.New("unknown error")
)

// Dispatch errors, 0x10-0x1f.
var ErrUnknownOperation = errors.New("unknown operation")

// Create errors, 0x20-0x37.
var (
	ErrCreateCellsCountNotMatched  = errors.New("create: outputs count does not match 1+clients_count")
	ErrCreateShouldBeOrdered       = errors.New("create: own-type outputs are not ascending-contiguous")
	ErrCreateIncorrectUniqueId     = errors.New("create: type_id does not match recomputed value")
	ErrCreateInfoIndexShouldBeZero = errors.New("create: info cell must be the first own-type output")
	ErrCreateBadInfoCellData       = errors.New("create: info cell data is malformed or tip_client_id != 0")
	ErrCreateWitnessIsNotExisted   = errors.New("create: bootstrap witness missing at info cell index")
	ErrCreateBadBootstrap          = errors.New("create: bootstrap witness is malformed")
	ErrCreateNewClientIsIncorrect  = errors.New("create: client output does not match bootstrap-derived template")
)

// Destroy errors, 0x38-0x3f.
var (
	ErrDestroyNotEnoughCells  = errors.New("destroy: cell count does not match 1+clients_count")
	ErrDestroyShouldBeOrdered = errors.New("destroy: own-type inputs are not ascending-contiguous")
	ErrDestroyOutputsNotEmpty = errors.New("destroy: own-type outputs present")
)

// Update errors, 0x40-0x4f.
var (
	ErrUpdateInputInfoNotFound       = errors.New("update: no input decodes as info")
	ErrUpdateInputClientNotFound     = errors.New("update: no input decodes as client")
	ErrUpdateInputClientIdIsMismatch = errors.New("update: input client id does not match expected next slot")
	ErrUpdateOutputInfoNotFound      = errors.New("update: no output decodes as info")
	ErrUpdateOutputClientNotFound    = errors.New("update: no output decodes as client")
	ErrUpdateOutputInfoChanged       = errors.New("update: output info does not equal input info with tip advanced")
	ErrUpdateCellDepMoreThanOne      = errors.New("update: more than one own-type cell-dep")
	ErrUpdateCellDepNotFound         = errors.New("update: no own-type cell-dep found")
	ErrUpdateCellDepIdMismatch       = errors.New("update: cell-dep client id does not match current tip")
	ErrUpdateWitnessIsNotExisted     = errors.New("update: update witness missing at info output index")
	ErrUpdateBadUpdatePayload        = errors.New("update: update witness payload is malformed")
)

// Reorg errors, 0x50-0x5f.
var (
	ErrReorgInputInfoDuplicated      = errors.New("reorg: more than one input decodes as info")
	ErrReorgInputInfoNotFound        = errors.New("reorg: no input decodes as info")
	ErrReorgInputClientNotEnough     = errors.New("reorg: fewer than 2 input clients")
	ErrReorgInputClientIdsIsMismatch = errors.New("reorg: input client id set does not match backward walk from tip")
	ErrReorgInputTipClientNotFound   = errors.New("reorg: no input client carries the current tip id")
	ErrReorgInputMalformed           = errors.New("reorg: an own-type input decodes as neither info nor client")
	ErrReorgNewClientIsIncorrect     = errors.New("reorg: output clients do not share a common template")
	ErrReorgOutputInfoChanged        = errors.New("reorg: output info does not equal input info with tip rewound")
	ErrReorgOutputClientIdsMismatch  = errors.New("reorg: output client id set does not equal input id set")
	ErrReorgOutputMalformed          = errors.New("reorg: an own-type output decodes as neither info nor client")
	ErrReorgNotBetterChain           = errors.New("reorg: new tip does not carry strictly more work than old tip")
	ErrReorgCellDepMoreThanOne       = errors.New("reorg: more than one own-type cell-dep")
	ErrReorgCellDepNotFound          = errors.New("reorg: no own-type cell-dep found")
	ErrReorgCellDepIdMismatch        = errors.New("reorg: cell-dep client id does not match fork ancestor")
	ErrReorgWitnessIsNotExisted      = errors.New("reorg: update witness missing at output info index")
	ErrReorgBadUpdatePayload         = errors.New("reorg: update witness payload is malformed")
)

// ordinal is the exit-code byte for each known sentinel, in the ranges
// fixed for each operation. Errors not present here (including
// host.ErrEncoding, which is a different value from ErrEncoding, and any
// delegated hcv error not wrapped in a DelegatedError) fall back to
// ErrUnknown's ordinal via ExitCode's default case.
var ordinal = map[error]int8{
	ErrIndexOutOfBound: 0x01,
	ErrItemMissing:     0x02,
	ErrLengthNotEnough: 0x03,
	ErrEncoding:        0x04,
	ErrUnknown:         0x0f,

	ErrUnknownOperation: 0x10,

	ErrCreateCellsCountNotMatched:  0x20,
	ErrCreateShouldBeOrdered:       0x21,
	ErrCreateIncorrectUniqueId:     0x22,
	ErrCreateInfoIndexShouldBeZero: 0x23,
	ErrCreateBadInfoCellData:       0x24,
	ErrCreateWitnessIsNotExisted:   0x25,
	ErrCreateBadBootstrap:          0x26,
	ErrCreateNewClientIsIncorrect:  0x27,

	ErrDestroyNotEnoughCells:  0x38,
	ErrDestroyOutputsNotEmpty: 0x39,
	ErrDestroyShouldBeOrdered: 0x3a,

	ErrUpdateInputInfoNotFound:       0x40,
	ErrUpdateInputClientNotFound:     0x41,
	ErrUpdateInputClientIdIsMismatch: 0x42,
	ErrUpdateOutputInfoNotFound:      0x43,
	ErrUpdateOutputClientNotFound:    0x44,
	ErrUpdateOutputInfoChanged:       0x45,
	ErrUpdateCellDepMoreThanOne:      0x46,
	ErrUpdateCellDepNotFound:         0x47,
	ErrUpdateCellDepIdMismatch:       0x48,
	ErrUpdateWitnessIsNotExisted:     0x49,
	ErrUpdateBadUpdatePayload:        0x4a,

	ErrReorgInputInfoDuplicated:      0x50,
	ErrReorgInputInfoNotFound:        0x51,
	ErrReorgInputClientNotEnough:     0x52,
	ErrReorgInputClientIdsIsMismatch: 0x53,
	ErrReorgInputTipClientNotFound:   0x54,
	ErrReorgInputMalformed:           0x55,
	ErrReorgNewClientIsIncorrect:     0x56,
	ErrReorgOutputInfoChanged:        0x57,
	ErrReorgOutputClientIdsMismatch:  0x58,
	ErrReorgOutputMalformed:          0x59,
	ErrReorgNotBetterChain:           0x5a,
	ErrReorgCellDepMoreThanOne:       0x5b,
	ErrReorgCellDepNotFound:          0x5c,
	ErrReorgCellDepIdMismatch:        0x5d,
	ErrReorgWitnessIsNotExisted:      0x5e,
	ErrReorgBadUpdatePayload:         0x5f,
}

// delegatedBase is added to a HeaderChainVerifier error's own ordinal to
// place it in the Delegated exit-code range.
const delegatedBase = 0x60

// delegatedOrdinalTable fixes a small, stable ordinal per HeaderChainVerifier
// sentinel so the core's +0x60 rebasing is deterministic
// without this package depending on hcv's internal error representation
// beyond its exported sentinels.
var delegatedOrdinalTable = map[error]int8{
	hcv.ErrMalformedBootstrap:  0x00,
	hcv.ErrMalformedUpdate:     0x01,
	hcv.ErrNoHeaders:           0x02,
	hcv.ErrDiscontinuousChain:  0x03,
	hcv.ErrInvalidProofOfWork:  0x04,
	hcv.ErrStaleWork:           0x05,
	hcv.ErrMMRMismatch:         0x06,
}

// delegatedOrdinal maps a HeaderChainVerifier failure to its small ordinal,
// falling back to a fixed "unrecognized collaborator error" slot so an
// implementation that returns a novel error still exits deterministically
// within the Delegated range rather than escaping it.
func delegatedOrdinal(err error) int8 {
	for sentinel, ord := range delegatedOrdinalTable {
		if errors.Is(err, sentinel) {
			return ord
		}
	}
	return 0x0f
}

// DelegatedError wraps a HeaderChainVerifier failure for exit-code
// encoding. Ordinal is the collaborator's own small ordinal (0-based);
// ExitCode adds delegatedBase.
type DelegatedError struct {
	Ordinal int8
	Err     error
}

func (e *DelegatedError) Error() string { return e.Err.Error() }
func (e *DelegatedError) Unwrap() error { return e.Err }

// ExitCode maps a verification error to the signed byte the program
// returns: 0 on success, otherwise the variant's fixed ordinal.
func ExitCode(err error) int8 {
	if err == nil {
		return 0
	}
	var de *DelegatedError
	if errors.As(err, &de) {
		return delegatedBase + de.Ordinal
	}
	for sentinel, code := range ordinal {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ordinal[ErrUnknown]
}
