// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mock

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethersphere/mintgate/pkg/merkle"
	"github.com/ethersphere/mintgate/pkg/registry"
)

var _ registry.Interface = (*Registry)(nil)

// Registry is an in-memory registry implementation for tests.
type Registry struct {
	mtx     sync.Mutex
	records map[uint64]*registry.Record
	claims  map[string]bool
}

// Option sets an option on the mock Registry.
type Option func(*Registry)

// NewRegistry creates a new mock Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		records: make(map[uint64]*registry.Record),
		claims:  make(map[string]bool),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// WithRecord preloads a record.
func WithRecord(rec *registry.Record) Option {
	return func(r *Registry) {
		r.records[rec.ID] = rec
	}
}

func claimKey(id uint64, identity common.Address) string {
	return fmt.Sprintf("%d_%x", id, identity)
}

func (r *Registry) Register(id uint64, name string, members []common.Address, root merkle.Digest) error {
	if id == 0 {
		return registry.ErrInvalidListID
	}
	if len(members) == 0 {
		return registry.ErrNoMembers
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.records[id]; ok {
		return registry.ErrExists
	}
	m := make([]common.Address, len(members))
	copy(m, members)
	now := time.Now().UTC()
	r.records[id] = &registry.Record{
		ID:        id,
		Name:      name,
		Root:      root,
		Members:   m,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (r *Registry) RegisterRoot(id uint64, name string, root merkle.Digest) error {
	if id == 0 {
		return registry.ErrInvalidListID
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.records[id]; ok {
		return registry.ErrExists
	}
	now := time.Now().UTC()
	r.records[id] = &registry.Record{
		ID:        id,
		Name:      name,
		Root:      root,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (r *Registry) ReplaceRoot(id uint64, root merkle.Digest) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return registry.ErrNotFound
	}
	rec.Root = root
	rec.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *Registry) Root(id uint64) (merkle.Digest, error) {
	rec, err := r.Get(id)
	if err != nil {
		return merkle.Digest{}, err
	}
	return rec.Root, nil
}

func (r *Registry) Members(id uint64) ([]common.Address, error) {
	rec, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if len(rec.Members) == 0 {
		return nil, registry.ErrNoMembers
	}
	members := make([]common.Address, len(rec.Members))
	copy(members, rec.Members)
	return members, nil
}

func (r *Registry) Get(id uint64) (*registry.Record, error) {
	if id == 0 {
		return nil, registry.ErrInvalidListID
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, registry.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *Registry) Claimed(id uint64, identity common.Address) (bool, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return r.claims[claimKey(id, identity)], nil
}

func (r *Registry) SetClaimed(id uint64, identity common.Address) error {
	if _, err := r.Get(id); err != nil {
		return err
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.claims[claimKey(id, identity)] = true
	return nil
}

func (r *Registry) ClaimCount(id uint64) (int, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	prefix := fmt.Sprintf("%d_", id)
	count := 0
	for k := range r.claims {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			count++
		}
	}
	return count, nil
}

func (r *Registry) Lists() ([]uint64, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	ids := make([]uint64, 0, len(r.records))
	for id := range r.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
