package typelock

import (
	"fmt"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/hcv"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/host"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/spv"
)

// VerifyCreate validates materialization of a fresh ring: one info cell as
// the first own-type output with tip 0, followed by clients_count client cells each equal to
// a bootstrap-derived template distinguished only by id.
func VerifyCreate(ctx host.Context, cl Classification, args spv.SpvTypeArgs, verifier hcv.HeaderChainVerifier) error {
	n := int(args.ClientsCount)
	if len(cl.Outputs) != 1+n {
		return fmt.Errorf("%w: got %d outputs, want %d", ErrCreateCellsCountNotMatched, len(cl.Outputs), 1+n)
	}
	if err := requireContiguous(cl.Outputs, ErrCreateShouldBeOrdered); err != nil {
		return err
	}

	typeID, err := ComputeTypeID(ctx, uint64(1+n))
	if err != nil {
		return err
	}
	if typeID != args.TypeID {
		return ErrCreateIncorrectUniqueId
	}

	info := cl.Outputs[0]
	if info.Role != RoleInfo {
		return ErrCreateInfoIndexShouldBeZero
	}
	if info.Info.TipClientID != 0 {
		return ErrCreateBadInfoCellData
	}

	witness, err := ctx.WitnessArgs(info.Index)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateWitnessIsNotExisted, err)
	}
	if len(witness.InputType) == 0 {
		return ErrCreateWitnessIsNotExisted
	}
	bootstrap, err := spv.BootstrapFromSlice(witness.InputType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateBadBootstrap, err)
	}
	client0, err := verifier.InitializeSpvClient(bootstrap)
	if err != nil {
		return toDelegatedError(err, hcv.ErrMalformedBootstrap)
	}

	for i := 0; i < n; i++ {
		entry := cl.Outputs[i+1]
		if entry.Role != RoleClient {
			return ErrCreateNewClientIsIncorrect
		}
		want := client0.WithID(uint8(i))
		if !entry.Client.Equal(want) {
			return ErrCreateNewClientIsIncorrect
		}
	}
	return nil
}

// requireContiguous enforces that own-type cell indices are ascending and
// adjacent, the canonical ordering Create and Destroy both require. notOrdered
// is the caller's own-range sentinel to return on violation.
func requireContiguous(entries []Entry, notOrdered error) error {
	for k := 1; k < len(entries); k++ {
		if entries[k].Index != entries[k-1].Index+1 {
			return notOrdered
		}
	}
	return nil
}

// toDelegatedError re-bases a HeaderChainVerifier failure into the
// Delegated exit-code range. The second argument is ignored. Errors that
// delegatedOrdinal does not recognize map to its fixed fallback ordinal so
// an unexpected collaborator error still exits deterministically within the
// delegated range rather than Unknown.
func toDelegatedError(err error, _ error) error {
	return &DelegatedError{Ordinal: delegatedOrdinal(err), Err: err}
}
