// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

// Tree is a fully materialized allowlist tree. Level 0 holds the leaves in
// the order they were given, every following level holds the pairwise
// parents of the previous one, and the last level holds exactly the root.
// The zero value is not usable; trees are obtained from Build.
//
// A built tree is immutable and safe for concurrent use.
type Tree struct {
	levels [][]Digest
}

// Build constructs the tree for the given ordered leaves. It returns
// ErrEmptyInput when no leaves are given. Each level is derived from the
// previous one by combining nodes pairwise left to right; a trailing
// unpaired node is combined with itself. Building performs O(n) hashes and
// keeps all levels, so proofs can be generated without rehashing.
//
// The leaf order is significant: the same set in a different order
// generally yields a different root. Callers committing a root must
// therefore fix a canonical member ordering first.
func Build(leaves []Digest) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyInput
	}

	level := make([]Digest, len(leaves))
	copy(level, leaves)
	levels := [][]Digest{level}

	for len(level) > 1 {
		next := make([]Digest, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next[i/2] = Combine(level[i], level[i+1])
			} else {
				next[i/2] = Combine(level[i], level[i])
			}
		}
		levels = append(levels, next)
		level = next
	}

	return &Tree{levels: levels}, nil
}

// Root returns the root digest of the tree.
func (t *Tree) Root() Digest {
	return t.levels[len(t.levels)-1][0]
}

// Size returns the number of leaves.
func (t *Tree) Size() int {
	return len(t.levels[0])
}

// Depth returns the number of levels, including the leaf level and the
// root level. A single-leaf tree has depth 1.
func (t *Tree) Depth() int {
	return len(t.levels)
}

// Leaves returns a copy of level 0.
func (t *Tree) Leaves() []Digest {
	leaves := make([]Digest, len(t.levels[0]))
	copy(leaves, t.levels[0])
	return leaves
}

// Levels returns a deep copy of all levels, leaf level first. It exists
// for inspection and diagnostics; proof generation does not need it.
func (t *Tree) Levels() [][]Digest {
	levels := make([][]Digest, len(t.levels))
	for i, level := range t.levels {
		levels[i] = make([]Digest, len(level))
		copy(levels[i], level)
	}
	return levels
}
