package typelock

import (
	"fmt"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/hcv"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/host"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/spv"
)

// VerifyUpdate validates a single-step advance of the ring: the oldest
// client slot is overwritten with a new checkpoint extending the current
// tip, and the info cell's tip pointer advances to match.
func VerifyUpdate(ctx host.Context, cl Classification, args spv.SpvTypeArgs, verifier hcv.HeaderChainVerifier) error {
	infoIn, clientIn, err := disambiguatePair(cl.Inputs, ErrUpdateInputInfoNotFound, ErrUpdateInputClientNotFound)
	if err != nil {
		return err
	}

	tip := infoIn.Info.TipClientID
	expected := NextID(tip, args.ClientsCount)
	if clientIn.Client.ID != expected {
		return fmt.Errorf("%w: got %d, want %d", ErrUpdateInputClientIdIsMismatch, clientIn.Client.ID, expected)
	}

	infoOut, clientOut, err := disambiguatePair(cl.Outputs, ErrUpdateOutputInfoNotFound, ErrUpdateOutputClientNotFound)
	if err != nil {
		return err
	}
	wantInfo := infoIn.Info.WithTip(expected)
	if !infoOut.Info.Equal(wantInfo) {
		return ErrUpdateOutputInfoChanged
	}

	cellDep, err := singleCellDep(cl.CellDeps, ErrUpdateCellDepMoreThanOne, ErrUpdateCellDepNotFound)
	if err != nil {
		return err
	}
	if cellDep.Role != RoleClient || cellDep.Client.ID != tip {
		return ErrUpdateCellDepIdMismatch
	}
	expectedInputClient := cellDep.Client.WithID(expected)

	witness, err := ctx.WitnessArgs(infoOut.Index)
	if err != nil || len(witness.OutputType) == 0 {
		return ErrUpdateWitnessIsNotExisted
	}
	update, err := spv.UpdateFromSlice(witness.OutputType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateBadUpdatePayload, err)
	}

	if err := verifier.VerifyNewClient(expectedInputClient, clientOut.Client, update, args.Flags); err != nil {
		return toDelegatedError(err, nil)
	}
	return nil
}

// disambiguatePair classifies a two-entry slot pair into (info, client) by
// decoded role, independent of which order they were observed in. Update's
// inputs and outputs are always exactly two own-type entries by the time
// the dispatcher has selected OpUpdate.
func disambiguatePair(entries []Entry, infoMissing, clientMissing error) (info, client Entry, err error) {
	var foundInfo, foundClient bool
	for _, e := range entries {
		switch e.Role {
		case RoleInfo:
			if !foundInfo {
				info, foundInfo = e, true
			}
		case RoleClient:
			if !foundClient {
				client, foundClient = e, true
			}
		}
	}
	if !foundInfo {
		return Entry{}, Entry{}, infoMissing
	}
	if !foundClient {
		return Entry{}, Entry{}, clientMissing
	}
	return info, client, nil
}

// singleCellDep requires exactly one own-type cell-dep entry.
func singleCellDep(entries []Entry, tooMany, none error) (Entry, error) {
	switch len(entries) {
	case 0:
		return Entry{}, none
	case 1:
		return entries[0], nil
	default:
		return Entry{}, tooMany
	}
}
