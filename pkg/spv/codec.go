package spv

import (
	"encoding/binary"
	"errors"

	"github.com/Klingon-tech/ckb-bitcoin-spv-typelock/pkg/types"
)

// ErrMalformed signals that a cell's data or a witness payload could not be
// decoded as the structure its role requires.
var ErrMalformed = errors.New("malformed spv cell data")

// Pack encodes SpvInfo as its canonical byte representation: a single
// tip_client_id byte. Two infos compare equal iff their Pack output matches.
func (i SpvInfo) Pack() []byte {
	return []byte{i.TipClientID}
}

// InfoFromSlice decodes an SpvInfo. Any length other than 1 is malformed.
func InfoFromSlice(b []byte) (SpvInfo, error) {
	if len(b) != 1 {
		return SpvInfo{}, ErrMalformed
	}
	return SpvInfo{TipClientID: b[0]}, nil
}

// clientPackedLen is id(1) | headers_mmr_root(32) | partial_chain_work(32).
const clientPackedLen = 1 + types.HashSize + 32

// Pack encodes SpvClient as its canonical byte representation.
func (c SpvClient) Pack() []byte {
	buf := make([]byte, 0, clientPackedLen)
	buf = append(buf, c.ID)
	buf = append(buf, c.HeadersMMRRoot[:]...)
	buf = append(buf, c.PartialChainWork.Bytes()...)
	return buf
}

// ClientFromSlice decodes an SpvClient.
func ClientFromSlice(b []byte) (SpvClient, error) {
	if len(b) != clientPackedLen {
		return SpvClient{}, ErrMalformed
	}
	var c SpvClient
	c.ID = b[0]
	copy(c.HeadersMMRRoot[:], b[1:1+types.HashSize])
	c.PartialChainWork = WorkFromBytes(b[1+types.HashSize:])
	return c, nil
}

// Equal reports whether two clients are bytewise identical.
func (c SpvClient) Equal(other SpvClient) bool {
	return string(c.Pack()) == string(other.Pack())
}

// Equal reports whether two infos are bytewise identical.
func (i SpvInfo) Equal(other SpvInfo) bool {
	return string(i.Pack()) == string(other.Pack())
}

// typeArgsPackedLen is type_id(32) | clients_count(1) | flags(1).
const typeArgsPackedLen = types.HashSize + 1 + 1

// Pack encodes SpvTypeArgs as its canonical byte representation.
func (a SpvTypeArgs) Pack() []byte {
	buf := make([]byte, 0, typeArgsPackedLen)
	buf = append(buf, a.TypeID[:]...)
	buf = append(buf, a.ClientsCount, a.Flags)
	return buf
}

// TypeArgsFromSlice decodes SpvTypeArgs from a script's Args field.
func TypeArgsFromSlice(b []byte) (SpvTypeArgs, error) {
	if len(b) != typeArgsPackedLen {
		return SpvTypeArgs{}, ErrMalformed
	}
	var a SpvTypeArgs
	copy(a.TypeID[:], b[:types.HashSize])
	a.ClientsCount = b[types.HashSize]
	a.Flags = b[types.HashSize+1]
	return a, nil
}

// Pack encodes SpvBootstrap: height(8 LE) | header (remaining bytes).
func (s SpvBootstrap) Pack() []byte {
	buf := make([]byte, 0, 8+len(s.Header))
	buf = binary.LittleEndian.AppendUint64(buf, s.Height)
	buf = append(buf, s.Header...)
	return buf
}

// BootstrapFromSlice decodes an SpvBootstrap witness payload.
func BootstrapFromSlice(b []byte) (SpvBootstrap, error) {
	if len(b) < 8 {
		return SpvBootstrap{}, ErrMalformed
	}
	height := binary.LittleEndian.Uint64(b[:8])
	header := make([]byte, len(b)-8)
	copy(header, b[8:])
	return SpvBootstrap{Height: height, Header: header}, nil
}

// UpdateFromSlice wraps a raw update witness payload. The core never
// interprets its contents; it is forwarded verbatim to HeaderChainVerifier.
func UpdateFromSlice(b []byte) (SpvUpdate, error) {
	if len(b) == 0 {
		return SpvUpdate{}, ErrMalformed
	}
	raw := make([]byte, len(b))
	copy(raw, b)
	return SpvUpdate{Raw: raw}, nil
}
