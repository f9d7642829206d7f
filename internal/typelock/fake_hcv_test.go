package typelock

import (
	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/spv"
)

// fakeVerifier is a test double for hcv.HeaderChainVerifier: its behavior
// is fully controlled by the test, since HeaderChainVerifier's internals
// (MMR proofs, header-chain validity, PoW accounting) are an external
// collaborator out of this core's scope.
type fakeVerifier struct {
	client0   spv.SpvClient
	initErr   error
	verifyErr error
}

func (f *fakeVerifier) InitializeSpvClient(spv.SpvBootstrap) (spv.SpvClient, error) {
	return f.client0, f.initErr
}

func (f *fakeVerifier) VerifyNewClient(base, next spv.SpvClient, update spv.SpvUpdate, flags uint8) error {
	return f.verifyErr
}
