// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reference is a brute force implementation of the sorted-pair
// allowlist tree, optimized for obviousness rather than speed. It shares
// no code with the production implementation beyond the digest type and
// serves as the oracle in cross-check tests.
package reference

import (
	"bytes"

	"github.com/ethersphere/mintgate/pkg/merkle"
	"golang.org/x/crypto/sha3"
)

// Root computes the tree root recursively, one level per call.
func Root(leaves []merkle.Digest) (merkle.Digest, error) {
	if len(leaves) == 0 {
		return merkle.Digest{}, merkle.ErrEmptyInput
	}
	if len(leaves) == 1 {
		return leaves[0], nil
	}

	var parents []merkle.Digest
	for i := 0; i < len(leaves); i += 2 {
		if i+1 < len(leaves) {
			parents = append(parents, combine(leaves[i], leaves[i+1]))
		} else {
			parents = append(parents, combine(leaves[i], leaves[i]))
		}
	}
	return Root(parents)
}

// Proof collects the sibling path for the leaf at the given index by
// recomputing every level on the way up.
func Proof(leaves []merkle.Digest, index int) ([]merkle.Digest, error) {
	if len(leaves) == 0 {
		return nil, merkle.ErrEmptyInput
	}
	if index < 0 || index >= len(leaves) {
		return nil, merkle.ErrIndexOutOfRange
	}

	var proof []merkle.Digest
	level := leaves
	for len(level) > 1 {
		if sibling := index ^ 1; sibling < len(level) {
			proof = append(proof, level[sibling])
		} else {
			proof = append(proof, level[index])
		}

		var parents []merkle.Digest
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				parents = append(parents, combine(level[i], level[i+1]))
			} else {
				parents = append(parents, combine(level[i], level[i]))
			}
		}
		level = parents
		index /= 2
	}
	return proof, nil
}

func combine(a, b merkle.Digest) merkle.Digest {
	h := sha3.NewLegacyKeccak256()
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	_, _ = h.Write(a[:])
	_, _ = h.Write(b[:])

	var d merkle.Digest
	copy(d[:], h.Sum(nil))
	return d
}
