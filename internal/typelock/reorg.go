package typelock

import (
	"fmt"
	"sort"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/hcv"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/host"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/spv"
)

// VerifyReorg validates rollback of the last n ring slots and their
// replacement by a fresh suffix rooted at a cell-dep ancestor, with the
// deepest replaced slot becoming the new tip.
func VerifyReorg(ctx host.Context, cl Classification, args spv.SpvTypeArgs, verifier hcv.HeaderChainVerifier) error {
	infoIn, inClients, err := classifyReorgInputs(cl.Inputs)
	if err != nil {
		return err
	}
	n := len(inClients)
	tip := infoIn.Info.TipClientID

	walk := WalkBack(tip, n, args.ClientsCount)
	if !idSetEqual(entryIDs(inClients), walk) {
		return ErrReorgInputClientIdsIsMismatch
	}

	previousChainWork, err := findChainWork(inClients, tip)
	if err != nil {
		return err
	}

	forkClientID := PrevID(walk[n-1], args.ClientsCount)
	newTipClientID := walk[n-1]

	infoOut, outClients, err := classifyReorgOutputs(cl.Outputs, n)
	if err != nil {
		return err
	}
	if !idSetEqual(entryIDs(outClients), walk) {
		return ErrReorgOutputClientIdsMismatch
	}
	if err := checkSharedTemplate(outClients); err != nil {
		return err
	}
	wantInfo := infoIn.Info.WithTip(newTipClientID)
	if !infoOut.Info.Equal(wantInfo) {
		return ErrReorgOutputInfoChanged
	}

	// newTipClientID is walk[n-1], and the id-set check above already
	// proved outClients carries exactly walk's ids, so this lookup cannot
	// fail; ErrReorgOutputClientIdsMismatch is reused defensively in case
	// that invariant is ever weakened.
	newTipClient, err := findClientByID(outClients, newTipClientID, ErrReorgOutputClientIdsMismatch)
	if err != nil {
		return err
	}

	if !args.IsTestnet() {
		if !newTipClient.Client.PartialChainWork.GreaterThan(previousChainWork) {
			return ErrReorgNotBetterChain
		}
	}

	cellDep, err := singleCellDep(cl.CellDeps, ErrReorgCellDepMoreThanOne, ErrReorgCellDepNotFound)
	if err != nil {
		return err
	}
	if cellDep.Role != RoleClient || cellDep.Client.ID != forkClientID {
		return ErrReorgCellDepIdMismatch
	}
	expectedInputClient := cellDep.Client.WithID(newTipClientID)

	witness, err := ctx.WitnessArgs(infoOut.Index)
	if err != nil || len(witness.OutputType) == 0 {
		return ErrReorgWitnessIsNotExisted
	}
	update, err := spv.UpdateFromSlice(witness.OutputType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReorgBadUpdatePayload, err)
	}

	if err := verifier.VerifyNewClient(expectedInputClient, newTipClient.Client, update, args.Flags); err != nil {
		return toDelegatedError(err, nil)
	}
	return nil
}

// classifyReorgInputs splits a reorg's own-type inputs into the single info
// entry and the n >= 2 client entries. An own-type input that decodes as
// neither is rejected outright rather than silently excluded: letting it
// through would shrink clients/info below what the cell actually carries
// while leaving it counted toward Dispatch's cardinality check, smuggling
// an unaccounted-for cell past every check that follows.
func classifyReorgInputs(entries []Entry) (info Entry, clients []Entry, err error) {
	infoCount := 0
	for _, e := range entries {
		switch e.Role {
		case RoleInfo:
			infoCount++
			if infoCount == 1 {
				info = e
			}
		case RoleClient:
			clients = append(clients, e)
		default:
			return Entry{}, nil, ErrReorgInputMalformed
		}
	}
	switch {
	case infoCount > 1:
		return Entry{}, nil, ErrReorgInputInfoDuplicated
	case infoCount == 0:
		return Entry{}, nil, ErrReorgInputInfoNotFound
	case len(clients) < 2:
		return Entry{}, nil, ErrReorgInputClientNotEnough
	}
	return info, clients, nil
}

// classifyReorgOutputs locates the single output info entry and the n
// output client entries, rejecting a malformed own-type output the same
// way classifyReorgInputs does. A missing or duplicated info output cannot
// equal the expected rewound info byte-for-byte, so both collapse into
// ErrReorgOutputInfoChanged; a client-count mismatch cannot satisfy the
// expected id set, so it collapses into ErrReorgOutputClientIdsMismatch.
func classifyReorgOutputs(entries []Entry, n int) (info Entry, clients []Entry, err error) {
	infoCount := 0
	for _, e := range entries {
		switch e.Role {
		case RoleInfo:
			infoCount++
			if infoCount == 1 {
				info = e
			}
		case RoleClient:
			clients = append(clients, e)
		default:
			return Entry{}, nil, ErrReorgOutputMalformed
		}
	}
	if infoCount != 1 {
		return Entry{}, nil, ErrReorgOutputInfoChanged
	}
	if len(clients) != n {
		return Entry{}, nil, ErrReorgOutputClientIdsMismatch
	}
	return info, clients, nil
}

// checkSharedTemplate requires all output clients to be serialization-equal
// except for their id fields: the first decoded fixes the template.
func checkSharedTemplate(clients []Entry) error {
	if len(clients) == 0 {
		return nil
	}
	template := clients[0].Client.WithID(0)
	for _, c := range clients {
		want := template.WithID(c.Client.ID)
		if !c.Client.Equal(want) {
			return ErrReorgNewClientIsIncorrect
		}
	}
	return nil
}

func findClientByID(entries []Entry, id uint8, notFound error) (Entry, error) {
	for _, e := range entries {
		if e.Client.ID == id {
			return e, nil
		}
	}
	return Entry{}, notFound
}

func findChainWork(clients []Entry, tip uint8) (spv.Work, error) {
	e, err := findClientByID(clients, tip, ErrReorgInputTipClientNotFound)
	if err != nil {
		return spv.Work{}, err
	}
	return e.Client.PartialChainWork, nil
}

func entryIDs(entries []Entry) []uint8 {
	ids := make([]uint8, len(entries))
	for i, e := range entries {
		ids[i] = e.Client.ID
	}
	return ids
}

// idSetEqual compares two id slices as multisets: order is immaterial, but
// each id must occur the same number of times in both.
func idSetEqual(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]uint8(nil), a...)
	sb := append([]uint8(nil), b...)
	sort.Slice(sa, func(i, j int) bool { return sa[i] < sa[j] })
	sort.Slice(sb, func(i, j int) bool { return sb[i] < sb[j] })
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
