package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// ComputeSampleHash fingerprints an ordered sample together with its
// reference values. Order matters: the same values in a different order
// produce a different hash.
func ComputeSampleHash(sample []float64, params ...float64) Hash {
	buf := make([]byte, 0, 8*(len(sample)+len(params)+1))
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(sample)))
	for _, v := range sample {
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(v))
	}
	for _, p := range params {
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(p))
	}
	return NewHash(buf)
}
