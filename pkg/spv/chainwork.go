// Package spv defines the wire-level cell data carried by the ring of SPV
// clients: SpvInfo, SpvClient, the type-args layout, and the bootstrap/update
// witness payloads.
package spv

import "math/big"

// Work is a 256-bit accumulated chain work value, backed by math/big the
// way the reference consensus engine accounts difficulty (internal/consensus/pow.go).
type Work struct {
	v *big.Int
}

// ZeroWork returns the additive identity.
func ZeroWork() Work {
	return Work{v: new(big.Int)}
}

// WorkFromBytes decodes a big-endian 32-byte chain work value.
func WorkFromBytes(b []byte) Work {
	return Work{v: new(big.Int).SetBytes(b)}
}

// Bytes encodes the work as a big-endian, left-padded 32-byte slice.
func (w Work) Bytes() []byte {
	out := make([]byte, 32)
	v := w.v
	if v == nil {
		return out
	}
	b := v.Bytes()
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	copy(out[32-len(b):], b)
	return out
}

// Add returns w + other.
func (w Work) Add(other Work) Work {
	a := w.v
	b := other.v
	if a == nil {
		a = new(big.Int)
	}
	if b == nil {
		b = new(big.Int)
	}
	return Work{v: new(big.Int).Add(a, b)}
}

// Cmp compares two work values: -1 if w < other, 0 if equal, 1 if w > other.
func (w Work) Cmp(other Work) int {
	a := w.v
	b := other.v
	if a == nil {
		a = new(big.Int)
	}
	if b == nil {
		b = new(big.Int)
	}
	return a.Cmp(b)
}

// GreaterThan reports whether w represents strictly more accumulated work
// than other. Used by the reorg verifier's heavier-chain check.
func (w Work) GreaterThan(other Work) bool {
	return w.Cmp(other) > 0
}

// WorkFromCompactBits converts a target, already expanded from its
// Bitcoin-style compact encoding, into the 256-bit work a single header
// contributes: 2^256 / (target + 1).
// This mirrors the reference target() helper (internal/consensus/pow.go),
// generalized from a difficulty integer to a compact target.
func WorkFromCompactBits(target *big.Int) Work {
	if target == nil || target.Sign() <= 0 {
		return ZeroWork()
	}
	maxUint256 := new(big.Int).Lsh(big.NewInt(1), 256)
	denom := new(big.Int).Add(target, big.NewInt(1))
	return Work{v: new(big.Int).Div(maxUint256, denom)}
}
