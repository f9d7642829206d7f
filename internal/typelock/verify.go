package typelock

import (
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/hcv"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/host"
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/internal/log"
)

// Verify runs the full state-transition check against ctx: it decodes the
// running script's args, classifies the transaction, dispatches to one of
// the four operation verifiers, and returns nil on acceptance or the
// rejecting error otherwise. This is the single call site the simulator
// CLI (and, embedded in a CKB VM build, the program entry point) drives.
func Verify(ctx host.Context, verifier hcv.HeaderChainVerifier) error {
	logger := log.For(log.ComponentVerifier)
	args, err := DecodeScriptArgs(ctx)
	if err != nil {
		logger.Debug().Err(err).Msg("script args decode failed")
		return err
	}

	script, err := ctx.Script()
	if err != nil {
		return err
	}
	cl, err := Classify(ctx, script.Hash())
	if err != nil {
		logger.Debug().Err(err).Msg("classification failed")
		return err
	}

	op, err := Dispatch(cl, args.ClientsCount)
	if err != nil {
		logger.Debug().
			Int("inputs", len(cl.Inputs)).Int("outputs", len(cl.Outputs)).Int("cell_deps", len(cl.CellDeps)).
			Msg("dispatch failed")
		return err
	}
	logger.Debug().Str("operation", op.String()).Msg("dispatched")

	switch op {
	case OpCreate:
		err = VerifyCreate(ctx, cl, args, verifier)
	case OpDestroy:
		err = VerifyDestroy(cl, args.ClientsCount)
	case OpUpdate:
		err = VerifyUpdate(ctx, cl, args, verifier)
	case OpReorg:
		err = VerifyReorg(ctx, cl, args, verifier)
	default:
		err = ErrUnknownOperation
	}
	if err != nil {
		logger.Debug().Str("operation", op.String()).Err(err).Msg("verification rejected")
	}
	return err
}

// ProgramEntry is the signed-byte exit surface a sandboxed host invokes:
// zero on success, otherwise the stable ordinal from ExitCode. It never
// panics: any verification error is already a plain Go
// error value, mapped deterministically by ExitCode.
func ProgramEntry(ctx host.Context, verifier hcv.HeaderChainVerifier) int8 {
	return ExitCode(Verify(ctx, verifier))
}
