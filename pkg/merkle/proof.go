// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

// Proof is the ordered sequence of sibling digests on the path from a leaf
// to the root, root excluded. A level whose path node was self-paired
// contributes the node's own digest, since under the duplication policy the
// node is its own sibling; every proof therefore has exactly Depth()-1
// elements. The element order matters for reconstruction even though each
// individual pairing is commutative.
type Proof []Digest

// Clone returns a copy of the proof.
func (p Proof) Clone() Proof {
	if p == nil {
		return nil
	}
	c := make(Proof, len(p))
	copy(c, p)
	return c
}

// Proof extracts the sibling path for the leaf at the given index of level
// 0. It returns ErrIndexOutOfRange when the index has no leaf. On every
// level below the root the sibling index is the path index with the lowest
// bit flipped; when that position is beyond the end of the level the path
// node was duplicated during the build, making the node its own sibling,
// and the node's own digest is emitted. Emission must match the build
// policy exactly, otherwise generated proofs will not verify against
// compliant roots.
func (t *Tree) Proof(index int) (Proof, error) {
	if index < 0 || index >= len(t.levels[0]) {
		return nil, ErrIndexOutOfRange
	}

	proof := make(Proof, 0, len(t.levels)-1)
	for _, level := range t.levels[:len(t.levels)-1] {
		if sibling := index ^ 1; sibling < len(level) {
			proof = append(proof, level[sibling])
		} else {
			proof = append(proof, level[index])
		}
		index >>= 1
	}
	return proof, nil
}

// Verify reports whether proof connects leaf to root. It folds Combine
// over the proof elements in order, starting from the leaf, and compares
// the result with the claimed root. No leaf index is needed: pair ordering
// is resolved by byte comparison and self-paired levels already carry the
// duplicated digest as their proof element.
func Verify(leaf Digest, proof Proof, root Digest) bool {
	current := leaf
	for _, sibling := range proof {
		current = Combine(current, sibling)
	}
	return current == root
}
