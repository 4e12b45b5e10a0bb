// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle_test

import (
	"errors"
	"testing"

	"github.com/ethersphere/mintgate/pkg/merkle"
	"github.com/ethersphere/mintgate/pkg/merkle/reference"
)

func TestProofRoundtrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 16, 33} {
		leaves := testDigests(t, n)
		tree, err := merkle.Build(leaves)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < n; i++ {
			proof, err := tree.Proof(i)
			if err != nil {
				t.Fatal(err)
			}
			if !merkle.Verify(leaves[i], proof, tree.Root()) {
				t.Fatalf("size %v: proof for leaf %v does not verify", n, i)
			}
			if merkle.Verify(leaves[i], proof, merkle.Combine(tree.Root(), tree.Root())) {
				t.Fatalf("size %v: proof for leaf %v verifies against a wrong root", n, i)
			}
		}
	}
}

func TestProofIndexOutOfRange(t *testing.T) {
	tree, err := merkle.Build(testDigests(t, 5))
	if err != nil {
		t.Fatal(err)
	}
	for _, index := range []int{-1, 5, 100} {
		if _, err := tree.Proof(index); !errors.Is(err, merkle.ErrIndexOutOfRange) {
			t.Fatalf("index %v: got %v, want %v", index, err, merkle.ErrIndexOutOfRange)
		}
	}
}

// TestProofShape pins proof lengths: every proof carries one element per
// level below the root, self-paired levels included, so all proofs of an n
// leaf tree have ceil(log2(n)) elements.
func TestProofShape(t *testing.T) {
	for _, tc := range []struct {
		leaves  int
		wantLen int
	}{
		{leaves: 1, wantLen: 0},
		{leaves: 2, wantLen: 1},
		{leaves: 3, wantLen: 2},
		{leaves: 5, wantLen: 3},
		{leaves: 8, wantLen: 3},
		{leaves: 9, wantLen: 4},
	} {
		tree, err := merkle.Build(testDigests(t, tc.leaves))
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < tc.leaves; i++ {
			proof, err := tree.Proof(i)
			if err != nil {
				t.Fatal(err)
			}
			if len(proof) != tc.wantLen {
				t.Fatalf("%v leaves, leaf %v: proof length %v, want %v", tc.leaves, i, len(proof), tc.wantLen)
			}
		}
	}
}

// TestProofSelfSibling pins the duplicated node case: the last leaf of a
// three leaf tree is its own sibling on the base level, and the proof for
// it must carry the leaf's own digest there.
func TestProofSelfSibling(t *testing.T) {
	d := testDigests(t, 3)
	tree, err := merkle.Build(d)
	if err != nil {
		t.Fatal(err)
	}

	proof, err := tree.Proof(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(proof) != 2 {
		t.Fatalf("proof length %v, want 2", len(proof))
	}
	if !proof[0].Equal(d[2]) {
		t.Fatal("first element is not the leaf's own digest")
	}
	if !proof[1].Equal(merkle.Combine(d[0], d[1])) {
		t.Fatal("second element is not the sibling parent")
	}
	if !merkle.Verify(d[2], proof, tree.Root()) {
		t.Fatal("self sibling proof does not verify")
	}
}

func TestProofBitFlip(t *testing.T) {
	leaves := testDigests(t, 8)
	tree, err := merkle.Build(leaves)
	if err != nil {
		t.Fatal(err)
	}

	for i := range leaves {
		proof, err := tree.Proof(i)
		if err != nil {
			t.Fatal(err)
		}
		for e := range proof {
			for bit := 0; bit < merkle.DigestSize*8; bit++ {
				mutated := proof.Clone()
				mutated[e][bit/8] ^= 1 << (bit % 8)
				if merkle.Verify(leaves[i], mutated, tree.Root()) {
					t.Fatalf("leaf %v: flipped bit %v of element %v still verifies", i, bit, e)
				}
			}
		}
	}
}

func TestFiveLeafScenario(t *testing.T) {
	leaves := testDigests(t, 5)
	tree, err := merkle.Build(leaves)
	if err != nil {
		t.Fatal(err)
	}

	proof, err := tree.Proof(2)
	if err != nil {
		t.Fatal(err)
	}
	if !merkle.Verify(leaves[2], proof, tree.Root()) {
		t.Fatal("proof for the third leaf does not verify")
	}
	if merkle.Verify(leaves[1], proof, tree.Root()) {
		t.Fatal("proof for the third leaf verifies a different leaf")
	}
}

func TestVerifyEmptyProof(t *testing.T) {
	leaf := testDigests(t, 1)[0]
	if !merkle.Verify(leaf, nil, leaf) {
		t.Fatal("single leaf tree: empty proof against the leaf root must verify")
	}
	if merkle.Verify(leaf, nil, merkle.Combine(leaf, leaf)) {
		t.Fatal("empty proof verified against an unrelated root")
	}
}

func TestProofAgainstReference(t *testing.T) {
	for _, n := range []int{1, 3, 5, 12, 16} {
		leaves := testDigests(t, n)
		tree, err := merkle.Build(leaves)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < n; i++ {
			proof, err := tree.Proof(i)
			if err != nil {
				t.Fatal(err)
			}
			want, err := reference.Proof(leaves, i)
			if err != nil {
				t.Fatal(err)
			}
			if len(proof) != len(want) {
				t.Fatalf("size %v leaf %v: proof length %v, want %v", n, i, len(proof), len(want))
			}
			for e := range proof {
				if !proof[e].Equal(want[e]) {
					t.Fatalf("size %v leaf %v: element %v diverges from reference", n, i, e)
				}
			}
		}
	}
}

func BenchmarkVerify(b *testing.B) {
	leaves := testDigestsB(b, 1024)
	tree, err := merkle.Build(leaves)
	if err != nil {
		b.Fatal(err)
	}
	proof, err := tree.Proof(511)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !merkle.Verify(leaves[511], proof, tree.Root()) {
			b.Fatal("proof does not verify")
		}
	}
}
