package gmlast

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash is a structural hash of a syntax tree.
type Hash [32]byte

// String returns the hash in hex.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// StructuralHash hashes the canonical dump of n. Two trees hash equally
// when they have the same shape, operators, names and normalized literal
// values, regardless of how the source was laid out.
func StructuralHash(n Node) Hash {
	return sha256.Sum256([]byte(Dump(n, DumpOptions{Canonical: true})))
}
