package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// NodeID is a content-addressed identifier for graph nodes.
type NodeID [sha256.Size]byte

// ZeroID is the unset NodeID.
var ZeroID NodeID

// NewNodeID derives an ID from an arbitrary path string.
func NewNodeID(path string) NodeID {
	return sha256.Sum256([]byte(path))
}

// IsZero reports whether id is unset.
func (id NodeID) IsZero() bool {
	return id == ZeroID
}

// String returns the full hex encoding.
func (id NodeID) String() string {
	return hex.EncodeToString(id[:])
}

// Short returns the first 8 hex characters, for messages.
func (id NodeID) Short() string {
	return id.String()[:8]
}

// MarshalText encodes the ID as hex so it can key JSON objects.
func (id NodeID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// contentID hashes everything that determines a node's geometry. Two nodes
// with equal kind, name, payload and children share an ID.
func contentID(kind NodeKind, name string, data NodeData, children []NodeID) NodeID {
	h := sha256.New()
	h.Write([]byte(kind.String()))
	h.Write([]byte{0})
	h.Write([]byte(name))
	h.Write([]byte{0})
	// Payloads are plain structs; encoding cannot fail.
	payload, _ := json.Marshal(data)
	h.Write(payload)
	for _, c := range children {
		h.Write(c[:])
	}
	var id NodeID
	copy(id[:], h.Sum(nil))
	return id
}
