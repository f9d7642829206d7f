package types

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
)

// HashType distinguishes how a script's CodeHash should be resolved: against
// a cell's data hash (exact byte match) or against a cell's type script hash
// (so the referenced code can be upgraded without changing this field).
type HashType uint8

const (
	HashTypeData HashType = 0x00
	HashTypeType HashType = 0x01
)

// String returns a human-readable name for the hash type.
func (h HashType) String() string {
	switch h {
	case HashTypeData:
		return "data"
	case HashTypeType:
		return "type"
	default:
		return "unknown"
	}
}

// Script identifies executable code (a lock or a type script) plus the
// arguments it runs with. Two cells share a type lock iff their Script
// values are byte-identical.
type Script struct {
	CodeHash Hash     `json:"code_hash"`
	HashType HashType `json:"hash_type"`
	Args     []byte   `json:"args"`
}

// scriptJSON is the JSON representation of a Script with hex-encoded args.
type scriptJSON struct {
	CodeHash Hash     `json:"code_hash"`
	HashType HashType `json:"hash_type"`
	Args     string   `json:"args"`
}

// MarshalJSON encodes the script with hex-encoded args.
func (s Script) MarshalJSON() ([]byte, error) {
	return json.Marshal(scriptJSON{
		CodeHash: s.CodeHash,
		HashType: s.HashType,
		Args:     hex.EncodeToString(s.Args),
	})
}

// UnmarshalJSON decodes a script with hex-encoded args.
func (s *Script) UnmarshalJSON(data []byte) error {
	var j scriptJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	s.CodeHash = j.CodeHash
	s.HashType = j.HashType
	if j.Args != "" {
		b, err := hex.DecodeString(j.Args)
		if err != nil {
			return err
		}
		s.Args = b
	}
	return nil
}

// packedBytes returns the canonical byte representation used for hashing
// and for byte-equality comparisons between two scripts.
func (s Script) packedBytes() []byte {
	buf := make([]byte, 0, HashSize+1+len(s.Args))
	buf = append(buf, s.CodeHash[:]...)
	buf = append(buf, byte(s.HashType))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s.Args)))
	buf = append(buf, s.Args...)
	return buf
}

// Hash computes the script hash: the identity a cell's type field is matched
// against during classification.
func (s Script) Hash() Hash {
	return HashBytes(s.packedBytes())
}

// Equal reports whether two scripts are byte-identical.
func (s Script) Equal(other Script) bool {
	return s.Hash() == other.Hash() &&
		s.HashType == other.HashType &&
		string(s.Args) == string(other.Args)
}
