// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gate mediates one-time claims against registered allowlists.
// It composes the registry with proof verification and guarantees that
// for any (list, identity) pair at most one claim is ever granted, no
// matter how many submissions race.
package gate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"resenje.org/singleflight"

	"github.com/ethersphere/mintgate/pkg/allowlist"
	"github.com/ethersphere/mintgate/pkg/logging"
	"github.com/ethersphere/mintgate/pkg/merkle"
	"github.com/ethersphere/mintgate/pkg/registry"
	"github.com/ethersphere/mintgate/pkg/storage"
)

const (
	receiptPrefix = "gate_receipt_"

	defaultProofCacheCapacity = 32
	subscriptionBuffer        = 16
)

// Publisher pushes committed roots to an external registry, typically
// the on-chain gate contract.
type Publisher interface {
	SetRoot(ctx context.Context, id uint64, root merkle.Digest) (common.Hash, error)
}

// Service is the claim gate. Management operations surface the registry
// sentinels (registry.ErrExists, registry.ErrNotFound); the claim flow
// reports through the gate's own taxonomy (ErrUnknownList,
// ErrInvalidProof, ErrAlreadyClaimed).
type Service interface {
	// Register builds the canonical list from members, commits it and,
	// when a publisher is configured, pushes the root out. The local
	// commit is not rolled back on a failed publish.
	Register(ctx context.Context, id uint64, name string, members []common.Address) (*registry.Record, error)
	// RegisterRoot commits a root-only list whose proofs are
	// distributed out of band.
	RegisterRoot(ctx context.Context, id uint64, name string, root merkle.Digest) (*registry.Record, error)
	// ReplaceRoot overwrites the root of a registered list and pushes
	// the new root when a publisher is configured.
	ReplaceRoot(ctx context.Context, id uint64, root merkle.Digest) (*registry.Record, error)
	// Eligibility verifies a proof against the registered root without
	// touching any claim state.
	Eligibility(ctx context.Context, id uint64, identity common.Address, proof merkle.Proof) error
	// Claim verifies the proof and consumes the identity's claim. At
	// most one call per (list, identity) ever returns a receipt.
	Claim(ctx context.Context, id uint64, identity common.Address, proof merkle.Proof) (*Receipt, error)
	// ClaimStatus reports whether the identity has claimed and returns
	// the stored receipt if one exists.
	ClaimStatus(ctx context.Context, id uint64, identity common.Address) (*Receipt, bool, error)
	// ProofFor issues a membership proof from the stored member set.
	// Returns registry.ErrNoMembers for root-only lists and
	// allowlist.ErrNotMember for absent identities.
	ProofFor(ctx context.Context, id uint64, identity common.Address) (*Membership, error)
	// Document bundles the full member set with proofs for
	// distribution.
	Document(ctx context.Context, id uint64) (*allowlist.Document, error)
	// Subscribe returns a channel of granted claims. A subscriber that
	// does not keep up loses events instead of blocking the claim
	// path. The returned function is safe to call multiple times.
	Subscribe() (<-chan ClaimEvent, func())
}

// Options configure non-essential service knobs.
type Options struct {
	ProofCacheCapacity int
}

type service struct {
	store     storage.StateStorer
	registry  registry.Interface
	logger    logging.Logger
	publisher Publisher
	metrics   metrics

	cache *lru.Cache
	sf    singleflight.Group

	claimsMu sync.Mutex

	subsMu sync.Mutex
	subs   []chan ClaimEvent
}

// New constructs the gate over the given registry. The statestore holds
// claim receipts. publisher may be nil, in which case roots stay local.
func New(store storage.StateStorer, reg registry.Interface, logger logging.Logger, publisher Publisher, o *Options) (Service, error) {
	if o == nil {
		o = &Options{}
	}
	if o.ProofCacheCapacity <= 0 {
		o.ProofCacheCapacity = defaultProofCacheCapacity
	}
	cache, err := lru.New(o.ProofCacheCapacity)
	if err != nil {
		return nil, err
	}
	return &service{
		store:     store,
		registry:  reg,
		logger:    logger,
		publisher: publisher,
		metrics:   newMetrics(),
		cache:     cache,
	}, nil
}

func receiptKey(id uint64, identity common.Address) string {
	return fmt.Sprintf("%s%d_%x", receiptPrefix, id, identity)
}

func (s *service) Register(ctx context.Context, id uint64, name string, members []common.Address) (*registry.Record, error) {
	l, err := allowlist.New(members)
	if err != nil {
		return nil, err
	}
	if err := s.registry.Register(id, name, l.Members(), l.Root()); err != nil {
		return nil, err
	}
	s.cache.Remove(id)
	rec, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, id, l.Root()); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) RegisterRoot(ctx context.Context, id uint64, name string, root merkle.Digest) (*registry.Record, error) {
	if err := s.registry.RegisterRoot(id, name, root); err != nil {
		return nil, err
	}
	s.cache.Remove(id)
	rec, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, id, root); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) ReplaceRoot(ctx context.Context, id uint64, root merkle.Digest) (*registry.Record, error) {
	if err := s.registry.ReplaceRoot(id, root); err != nil {
		return nil, err
	}
	s.cache.Remove(id)
	rec, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, id, root); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) publish(ctx context.Context, id uint64, root merkle.Digest) error {
	if s.publisher == nil {
		return nil
	}
	txHash, err := s.publisher.SetRoot(ctx, id, root)
	if err != nil {
		s.logger.Warningf("gate: list %d root %s publish failed: %v", id, root, err)
		return fmt.Errorf("publish root: %w", err)
	}
	s.logger.Infof("gate: list %d root %s publish transaction %x", id, root, txHash)
	return nil
}

func (s *service) Eligibility(_ context.Context, id uint64, identity common.Address, proof merkle.Proof) error {
	root, err := s.registry.Root(id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return ErrUnknownList
		}
		return err
	}
	if !merkle.Verify(allowlist.LeafOf(identity), proof, root) {
		return ErrInvalidProof
	}
	return nil
}

func (s *service) Claim(_ context.Context, id uint64, identity common.Address, proof merkle.Proof) (*Receipt, error) {
	s.metrics.ClaimsAttempted.Inc()

	root, err := s.registry.Root(id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			s.metrics.ClaimsRejected.WithLabelValues("unknown_list").Inc()
			return nil, ErrUnknownList
		}
		return nil, err
	}
	if !merkle.Verify(allowlist.LeafOf(identity), proof, root) {
		s.metrics.ClaimsRejected.WithLabelValues("invalid_proof").Inc()
		return nil, ErrInvalidProof
	}

	// The claimed check and the mark must not interleave for the same
	// identity. Verification stays outside the critical section.
	s.claimsMu.Lock()
	defer s.claimsMu.Unlock()

	claimed, err := s.registry.Claimed(id, identity)
	if err != nil {
		return nil, err
	}
	if claimed {
		s.metrics.ClaimsRejected.WithLabelValues("already_claimed").Inc()
		return nil, ErrAlreadyClaimed
	}
	if err := s.registry.SetClaimed(id, identity); err != nil {
		return nil, err
	}

	r := &Receipt{
		ID:       uuid.NewString(),
		ListID:   id,
		Identity: identity,
		Root:     root,
		At:       time.Now().UTC(),
	}
	if err := s.store.Put(receiptKey(id, identity), r); err != nil {
		return nil, fmt.Errorf("put receipt: %w", err)
	}

	s.metrics.ClaimsGranted.Inc()
	s.logger.Debugf("gate: list %d claim granted to %s, receipt %s", id, identity, r.ID)
	s.notify(ClaimEvent{
		ReceiptID: r.ID,
		ListID:    id,
		Identity:  identity,
		Root:      root,
		At:        r.At,
	})
	return r, nil
}

func (s *service) ClaimStatus(_ context.Context, id uint64, identity common.Address) (*Receipt, bool, error) {
	if _, err := s.registry.Get(id); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return nil, false, ErrUnknownList
		}
		return nil, false, err
	}
	claimed, err := s.registry.Claimed(id, identity)
	if err != nil {
		return nil, false, err
	}
	if !claimed {
		return nil, false, nil
	}
	r := new(Receipt)
	if err := s.store.Get(receiptKey(id, identity), r); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Marked without a stored receipt, for example through
			// the registry directly.
			return nil, true, nil
		}
		return nil, false, err
	}
	return r, true, nil
}

func (s *service) ProofFor(ctx context.Context, id uint64, identity common.Address) (*Membership, error) {
	l, err := s.loadList(ctx, id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return nil, ErrUnknownList
		}
		return nil, err
	}
	proof, err := l.ProofFor(identity)
	if err != nil {
		return nil, err
	}
	s.metrics.ProofsIssued.Inc()
	return &Membership{
		Identity: identity,
		Leaf:     allowlist.LeafOf(identity),
		Proof:    proof,
		Root:     l.Root(),
	}, nil
}

func (s *service) Document(ctx context.Context, id uint64) (*allowlist.Document, error) {
	rec, err := s.registry.Get(id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return nil, ErrUnknownList
		}
		return nil, err
	}
	l, err := s.loadList(ctx, id)
	if err != nil {
		return nil, err
	}
	return allowlist.BuildDocument(l, id, rec.Name)
}

// loadList returns the built list for id, rebuilding the tree from the
// stored member set at most once across concurrent callers. Trees are
// derived state and never persisted.
func (s *service) loadList(ctx context.Context, id uint64) (*allowlist.List, error) {
	if v, ok := s.cache.Get(id); ok {
		s.metrics.ProofCacheHits.Inc()
		return v.(*allowlist.List), nil
	}
	v, _, err := s.sf.Do(ctx, strconv.FormatUint(id, 10), func(_ context.Context) (interface{}, error) {
		if v, ok := s.cache.Get(id); ok {
			s.metrics.ProofCacheHits.Inc()
			return v.(*allowlist.List), nil
		}
		members, err := s.registry.Members(id)
		if err != nil {
			return nil, err
		}
		l, err := allowlist.New(members)
		if err != nil {
			return nil, err
		}
		s.metrics.TreeRebuilds.Inc()
		_ = s.cache.Add(id, l)
		return l, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*allowlist.List), nil
}

func (s *service) Subscribe() (<-chan ClaimEvent, func()) {
	channel := make(chan ClaimEvent, subscriptionBuffer)
	var closeOnce sync.Once

	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	s.subs = append(s.subs, channel)

	unsubscribe := func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()

		for i, c := range s.subs {
			if c == channel {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
		closeOnce.Do(func() { close(channel) })
	}

	return channel, unsubscribe
}

func (s *service) notify(ev ClaimEvent) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for _, c := range s.subs {
		// A full subscriber loses the event rather than holding up
		// the claim.
		select {
		case c <- ev:
		default:
		}
	}
}
