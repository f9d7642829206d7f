package spv

import "github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/types"

// SpvInfo is the data of the single info cell in a ring instance: it names
// which client slot currently holds the chain tip.
type SpvInfo struct {
	TipClientID uint8
}

// WithTip returns a copy of info with TipClientID replaced.
func (i SpvInfo) WithTip(tip uint8) SpvInfo {
	i.TipClientID = tip
	return i
}

// SpvClient is one ring slot's checkpoint of the external chain: its id,
// a commitment to the header sequence up to this point, and the
// accumulated work that sequence represents.
type SpvClient struct {
	ID              uint8
	HeadersMMRRoot  types.Hash
	PartialChainWork Work
}

// WithID returns a copy of c with ID replaced. Used to build the expected
// template client a decoded output is compared against bytewise.
func (c SpvClient) WithID(id uint8) SpvClient {
	c.ID = id
	return c
}

// SpvTypeArgs is the type-lock's script arguments: the ring's fixed
// identity and size, plus a policy flag byte.
type SpvTypeArgs struct {
	TypeID       types.Hash
	ClientsCount uint8
	Flags        uint8
}

// ChainFlag values encoded in SpvTypeArgs.Flags, consumed by the reorg
// work-progress policy.
const (
	FlagMainnet uint8 = 0x00
	FlagTestnet uint8 = 0x01
)

// IsTestnet reports whether the ring's flags select the testnet reorg
// policy (skips the strictly-more-work requirement).
func (a SpvTypeArgs) IsTestnet() bool {
	return a.Flags&FlagTestnet != 0
}

// SpvBootstrap is the witness-only payload carried on the create path's
// info-cell input-type field. Height and Header are handed verbatim to
// the HeaderChainVerifier to derive the genesis client.
type SpvBootstrap struct {
	Height uint64
	Header []byte
}

// SpvUpdate is the witness-only payload carried on the update/reorg path's
// output-type field. Its structure is opaque to the core verifier; it is
// forwarded verbatim to HeaderChainVerifier.VerifyNewClient.
type SpvUpdate struct {
	Raw []byte
}
