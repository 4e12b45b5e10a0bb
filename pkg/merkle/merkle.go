// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"strings"
	"sync"

	"golang.org/x/crypto/sha3"
)

// DigestSize is the byte length of all leaves, internal nodes and roots.
const DigestSize = 32

// NewHasher is the base hash function of the tree.
var NewHasher = sha3.NewLegacyKeccak256

var hasherPool = sync.Pool{
	New: func() interface{} { return NewHasher() },
}

// Digest is a fixed-width hash value. Digests are compared by exact byte
// equality; there are no partial-order semantics beyond the byte order
// used internally by Combine.
type Digest [DigestSize]byte

// ZeroDigest is the zero value of Digest.
var ZeroDigest = Digest{}

// NewDigest constructs a Digest from a byte slice of exactly DigestSize
// bytes.
func NewDigest(b []byte) (Digest, error) {
	var d Digest
	if len(b) != DigestSize {
		return d, fmt.Errorf("digest length %v, want %v", len(b), DigestSize)
	}
	copy(d[:], b)
	return d, nil
}

// ParseDigest decodes a hex string, with or without 0x prefix, into a
// Digest.
func ParseDigest(s string) (Digest, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return Digest{}, err
	}
	return NewDigest(b)
}

// MustParseDigest decodes a hex string into a Digest and panics on error.
// Test use only.
func MustParseDigest(s string) Digest {
	d, err := ParseDigest(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Bytes returns a copy of the digest bytes.
func (d Digest) Bytes() []byte {
	b := make([]byte, DigestSize)
	copy(b, d[:])
	return b
}

// Equal reports whether two digests are byte-wise identical.
func (d Digest) Equal(o Digest) bool {
	return d == o
}

// IsZero reports whether the digest is the zero value.
func (d Digest) IsZero() bool {
	return d == ZeroDigest
}

// String returns the hex representation of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (d Digest) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Digest) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseDigest(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Leaf derives the leaf digest for a canonically encoded member value by
// hashing it twice. Both the encoding and the double hash are part of the
// committed format: an off-chain producer and a verifier that disagree on
// either will disagree on every leaf, and the mismatch surfaces only as
// failed verifications downstream.
func Leaf(data []byte) Digest {
	h := hasherPool.Get().(hash.Hash)
	defer hasherPool.Put(h)

	h.Reset()
	_, _ = h.Write(data)
	inner := h.Sum(nil)

	h.Reset()
	_, _ = h.Write(inner)

	var d Digest
	h.Sum(d[:0])
	return d
}

// Combine computes the parent digest of two siblings. The smaller digest
// under byte-lexicographic comparison is hashed first, so Combine(a, b)
// and Combine(b, a) are identical. Self-pairs, which occur for the last
// node of an odd level, hash the value concatenated with itself.
func Combine(a, b Digest) Digest {
	h := hasherPool.Get().(hash.Hash)
	defer hasherPool.Put(h)

	h.Reset()
	if bytes.Compare(a[:], b[:]) <= 0 {
		_, _ = h.Write(a[:])
		_, _ = h.Write(b[:])
	} else {
		_, _ = h.Write(b[:])
		_, _ = h.Write(a[:])
	}

	var d Digest
	h.Sum(d[:0])
	return d
}
