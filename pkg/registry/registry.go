// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registry persists the authoritative binding between list ids,
// their tree roots and the per-identity consumption markers.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethersphere/mintgate/pkg/logging"
	"github.com/ethersphere/mintgate/pkg/merkle"
	"github.com/ethersphere/mintgate/pkg/storage"
)

const (
	listPrefix  = "registry_list_"
	claimPrefix = "registry_claim_"
)

// Interface is the list registry abstraction used by the gate and the API.
type Interface interface {
	// Register commits a new list with its members. The id must be unused.
	Register(id uint64, name string, members []common.Address, root merkle.Digest) error
	// RegisterRoot commits a new root-only list. Member sets and proofs
	// for such lists are distributed out of band.
	RegisterRoot(id uint64, name string, root merkle.Digest) error
	// ReplaceRoot overwrites the root of an existing list. Replacement is
	// always explicit, Register never overwrites.
	ReplaceRoot(id uint64, root merkle.Digest) error
	// Root returns the current root bound to the id.
	Root(id uint64) (merkle.Digest, error)
	// Members returns the member set in canonical order.
	Members(id uint64) ([]common.Address, error)
	// Get returns the full list record.
	Get(id uint64) (*Record, error)
	// Claimed reports whether the identity has consumed its membership.
	Claimed(id uint64, identity common.Address) (bool, error)
	// SetClaimed marks the identity as having consumed its membership.
	// The marker is monotonic and never cleared.
	SetClaimed(id uint64, identity common.Address) error
	// ClaimCount returns the number of claim markers for the list.
	ClaimCount(id uint64) (int, error)
	// Lists returns all registered list ids in ascending order.
	Lists() ([]uint64, error)
}

type service struct {
	store   storage.StateStorer
	logger  logging.Logger
	metrics metrics
}

// New creates a registry over the provided state store.
func New(store storage.StateStorer, logger logging.Logger) Interface {
	return &service{
		store:   store,
		logger:  logger,
		metrics: newMetrics(),
	}
}

func listKey(id uint64) string {
	return fmt.Sprintf("%s%d", listPrefix, id)
}

func claimKey(id uint64, identity common.Address) string {
	return fmt.Sprintf("%s%d_%x", claimPrefix, id, identity)
}

func (s *service) Register(id uint64, name string, members []common.Address, root merkle.Digest) error {
	if id == 0 {
		return ErrInvalidListID
	}
	if len(members) == 0 {
		return ErrNoMembers
	}
	if _, err := s.Get(id); err == nil {
		return ErrExists
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	m := make([]common.Address, len(members))
	copy(m, members)

	now := time.Now().UTC()
	rec := &Record{
		ID:        id,
		Name:      name,
		Root:      root,
		Members:   m,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(listKey(id), rec); err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	s.metrics.RegisteredLists.Inc()
	s.logger.Debugf("registry: registered list %d with %d members", id, len(m))
	return nil
}

func (s *service) RegisterRoot(id uint64, name string, root merkle.Digest) error {
	if id == 0 {
		return ErrInvalidListID
	}
	if _, err := s.Get(id); err == nil {
		return ErrExists
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	now := time.Now().UTC()
	rec := &Record{
		ID:        id,
		Name:      name,
		Root:      root,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(listKey(id), rec); err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	s.metrics.RegisteredLists.Inc()
	s.logger.Debugf("registry: registered root-only list %d", id)
	return nil
}

func (s *service) ReplaceRoot(id uint64, root merkle.Digest) error {
	rec, err := s.Get(id)
	if err != nil {
		return err
	}

	rec.Root = root
	rec.UpdatedAt = time.Now().UTC()
	if err := s.store.Put(listKey(id), rec); err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	s.metrics.RootReplacements.Inc()
	s.logger.Infof("registry: replaced root of list %d with %s", id, root)
	return nil
}

func (s *service) Root(id uint64) (merkle.Digest, error) {
	rec, err := s.Get(id)
	if err != nil {
		return merkle.Digest{}, err
	}
	return rec.Root, nil
}

func (s *service) Members(id uint64) ([]common.Address, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if len(rec.Members) == 0 {
		return nil, ErrNoMembers
	}
	members := make([]common.Address, len(rec.Members))
	copy(members, rec.Members)
	return members, nil
}

func (s *service) Get(id uint64) (*Record, error) {
	if id == 0 {
		return nil, ErrInvalidListID
	}
	rec := new(Record)
	if err := s.store.Get(listKey(id), rec); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

func (s *service) Claimed(id uint64, identity common.Address) (bool, error) {
	var claimed bool
	if err := s.store.Get(claimKey(id, identity), &claimed); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get claim marker: %w", err)
	}
	return claimed, nil
}

func (s *service) SetClaimed(id uint64, identity common.Address) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.store.Put(claimKey(id, identity), true); err != nil {
		return fmt.Errorf("put claim marker: %w", err)
	}
	s.metrics.ClaimsMarked.Inc()
	return nil
}

func (s *service) ClaimCount(id uint64) (int, error) {
	prefix := fmt.Sprintf("%s%d_", claimPrefix, id)
	count := 0
	err := s.store.Iterate(prefix, func(_, _ []byte) (bool, error) {
		count++
		return false, nil
	})
	if err != nil {
		return 0, fmt.Errorf("iterate claim markers: %w", err)
	}
	return count, nil
}

func (s *service) Lists() ([]uint64, error) {
	var ids []uint64
	err := s.store.Iterate(listPrefix, func(key, _ []byte) (bool, error) {
		id, err := strconv.ParseUint(strings.TrimPrefix(string(key), listPrefix), 10, 64)
		if err != nil {
			return false, fmt.Errorf("malformed list key %q: %w", string(key), err)
		}
		ids = append(ids, id)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	// Keys iterate in string order, ids are wanted numeric.
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
