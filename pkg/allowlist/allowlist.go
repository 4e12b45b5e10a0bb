// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package allowlist builds membership trees over sets of Ethereum account
// addresses and produces the artifacts distributed to list members.
package allowlist

import (
	"bytes"
	"runtime"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/ethersphere/mintgate/pkg/merkle"
)

// LeafOf returns the tree leaf digest for an address. The canonical leaf
// encoding is the raw 20 address bytes.
func LeafOf(addr common.Address) merkle.Digest {
	return merkle.Leaf(addr.Bytes())
}

// List is an immutable built allowlist. Members are held in canonical
// order: ascending byte order with duplicates removed. The order is fixed
// here and persisted through every derived artifact, since member index
// determines the proof path.
type List struct {
	members []common.Address
	leaves  []merkle.Digest
	tree    *merkle.Tree
	index   map[common.Address]int
}

// New builds a list from the provided members. The input slice is not
// retained.
func New(members []common.Address) (*List, error) {
	if len(members) == 0 {
		return nil, ErrEmptyList
	}

	sorted := make([]common.Address, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Bytes(), sorted[j].Bytes()) < 0
	})

	deduped := sorted[:1]
	for _, addr := range sorted[1:] {
		if addr != deduped[len(deduped)-1] {
			deduped = append(deduped, addr)
		}
	}

	leaves, err := computeLeaves(deduped)
	if err != nil {
		return nil, err
	}

	tree, err := merkle.Build(leaves)
	if err != nil {
		return nil, err
	}

	index := make(map[common.Address]int, len(deduped))
	for i, addr := range deduped {
		index[addr] = i
	}

	return &List{
		members: deduped,
		leaves:  leaves,
		tree:    tree,
		index:   index,
	}, nil
}

// computeLeaves derives the leaf digests for all members concurrently.
func computeLeaves(members []common.Address) ([]merkle.Digest, error) {
	leaves := make([]merkle.Digest, len(members))

	workers := runtime.NumCPU()
	if workers > len(members) {
		workers = len(members)
	}

	var g errgroup.Group
	indexes := make(chan int)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for i := range indexes {
				leaves[i] = LeafOf(members[i])
			}
			return nil
		})
	}
	for i := range members {
		indexes <- i
	}
	close(indexes)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return leaves, nil
}

// Root returns the list tree root.
func (l *List) Root() merkle.Digest {
	return l.tree.Root()
}

// Size returns the number of members after deduplication.
func (l *List) Size() int {
	return len(l.members)
}

// Members returns the members in canonical order.
func (l *List) Members() []common.Address {
	members := make([]common.Address, len(l.members))
	copy(members, l.members)
	return members
}

// Contains reports whether the address is a list member.
func (l *List) Contains(addr common.Address) bool {
	_, ok := l.index[addr]
	return ok
}

// IndexOf returns the canonical index of the address, or -1 when the
// address is not a member.
func (l *List) IndexOf(addr common.Address) int {
	if i, ok := l.index[addr]; ok {
		return i
	}
	return -1
}

// ProofFor returns the membership proof for the address.
func (l *List) ProofFor(addr common.Address) (merkle.Proof, error) {
	i, ok := l.index[addr]
	if !ok {
		return nil, ErrNotMember
	}
	return l.tree.Proof(i)
}
