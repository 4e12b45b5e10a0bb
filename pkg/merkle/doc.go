// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package merkle implements the sorted-pair Merkle tree used for allowlist
// membership commitments.
//
// Leaves are derived by hashing the canonically encoded member value twice
// with keccak256. The double hash, together with the fixed-width encoding
// chosen by the caller, prevents an internal node from being replayed as a
// valid leaf. Parents are the keccak256 hash of the two children
// concatenated in ascending byte order, which makes pair hashing
// commutative: a verifier never needs to know whether a sibling sat on the
// left or on the right of the path.
//
// Trees are built bottom up with every level materialized. A level with an
// odd number of nodes pairs its last node with itself. The alternative of
// promoting the odd node unchanged would produce different roots and
// shorter, position-dependent proofs; it is a distinct, incompatible tree
// family and is deliberately not implemented. A side effect of the
// duplication policy is that the last leaf of a small odd tree carries
// twice the structural weight of its peers. This is a known property of
// this tree family, pinned by tests, and must not be "fixed": changing it
// would invalidate every previously distributed root and proof.
//
// Proofs are the ordered sibling digests along the path from a leaf to the
// root, one per level below the root. On a level where the node was
// self-paired the node is its own sibling, so the proof carries the node's
// own digest there. Verification folds Combine over the proof starting
// from the leaf and compares the result with the claimed root; it needs no
// index bookkeeping and performs exactly one hash per proof element, which
// keeps the operation cheap in metered execution contexts.
package merkle
