// Package types defines the cell-level primitives shared by the host
// interface and the type-lock verifier: hashes, outpoints, scripts, cells,
// and transactions.
package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// HashSize is the length of a hash in bytes.
const HashSize = 32

// Hash represents a 256-bit hash value: a transaction id, a script hash,
// a cell-data commitment, or a client/info cell field carrying one of the
// header chain's own digests.
type Hash [HashSize]byte

// IsZero reports whether h is the all-zeros value, such as the empty
// accumulator root a genesis client's header commitment is folded from,
// or a zero outpoint's tx id.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Bytes returns a copy of the hash's bytes, safe for the caller to mutate.
func (h Hash) Bytes() []byte {
	b := make([]byte, HashSize)
	copy(b, h[:])
	return b
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*h = Hash{}
		return nil
	}
	return h.setHex(s)
}

// HexToHash parses a 64-character hex string into a Hash.
func HexToHash(s string) (Hash, error) {
	var h Hash
	if err := h.setHex(s); err != nil {
		return Hash{}, err
	}
	return h, nil
}

func (h *Hash) setHex(s string) error {
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid hash hex: %w", err)
	}
	if len(decoded) != HashSize {
		return fmt.Errorf("hash must be %d bytes, got %d", HashSize, len(decoded))
	}
	copy(h[:], decoded)
	return nil
}

// HashBytes computes a BLAKE3-256 hash of arbitrary data. Used for script
// hashes and cell-data commitments; the type-id hash (blake2b, matching
// the on-chain type-lock convention this verifier must interoperate with)
// lives in internal/typelock/typeid.go instead.
func HashBytes(data []byte) Hash {
	return blake3.Sum256(data)
}
