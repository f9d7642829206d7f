package typelock

import (
	"fmt"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/host"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/spv"
)

// MinClientsCount is the smallest ring size this verifier accepts for a
// freshly created ring.
const MinClientsCount = 3

// DecodeScriptArgs reads the running script's args and decodes them as
// SpvTypeArgs, rejecting malformed framing or an undersized ring.
func DecodeScriptArgs(ctx host.Context) (spv.SpvTypeArgs, error) {
	script, err := ctx.Script()
	if err != nil {
		return spv.SpvTypeArgs{}, err
	}
	args, err := spv.TypeArgsFromSlice(script.Args)
	if err != nil {
		return spv.SpvTypeArgs{}, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	if args.ClientsCount < MinClientsCount {
		return spv.SpvTypeArgs{}, fmt.Errorf("%w: clients_count %d below minimum %d",
			ErrEncoding, args.ClientsCount, MinClientsCount)
	}
	return args, nil
}
