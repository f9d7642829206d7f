package types

import (
	"encoding/binary"
	"fmt"
)

// outpointSize is the wire length of an Outpoint: a 32-byte tx hash
// followed by a little-endian uint32 output index.
const outpointSize = HashSize + 4

// Outpoint identifies the previous output a transaction input consumes.
// ComputeTypeID decodes the raw outpoint bytes of input 0 into one of
// these before folding it into the type-id digest.
type Outpoint struct {
	TxID  Hash   `json:"txid"`
	Index uint32 `json:"index"`
}

// OutpointFromBytes decodes an input's previous-output reference from its
// on-chain wire form.
func OutpointFromBytes(b []byte) (Outpoint, error) {
	if len(b) != outpointSize {
		return Outpoint{}, fmt.Errorf("outpoint: want %d bytes, got %d", outpointSize, len(b))
	}
	var o Outpoint
	copy(o.TxID[:], b[:HashSize])
	o.Index = binary.LittleEndian.Uint32(b[HashSize:])
	return o, nil
}

// Bytes re-encodes the outpoint to its wire form.
func (o Outpoint) Bytes() []byte {
	b := make([]byte, outpointSize)
	copy(b, o.TxID[:])
	binary.LittleEndian.PutUint32(b[HashSize:], o.Index)
	return b
}

// IsZero returns true if the outpoint has a zero TxID and zero index.
func (o Outpoint) IsZero() bool {
	return o.TxID.IsZero() && o.Index == 0
}

// String returns "txid:index" in hex.
func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxID.String(), o.Index)
}
