// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mock

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethersphere/mintgate/pkg/allowlist"
	"github.com/ethersphere/mintgate/pkg/gate"
	"github.com/ethersphere/mintgate/pkg/merkle"
	"github.com/ethersphere/mintgate/pkg/registry"
)

type gateServiceMock struct {
	register     func(ctx context.Context, id uint64, name string, members []common.Address) (*registry.Record, error)
	registerRoot func(ctx context.Context, id uint64, name string, root merkle.Digest) (*registry.Record, error)
	replaceRoot  func(ctx context.Context, id uint64, root merkle.Digest) (*registry.Record, error)
	eligibility  func(ctx context.Context, id uint64, identity common.Address, proof merkle.Proof) error
	claim        func(ctx context.Context, id uint64, identity common.Address, proof merkle.Proof) (*gate.Receipt, error)
	claimStatus  func(ctx context.Context, id uint64, identity common.Address) (*gate.Receipt, bool, error)
	proofFor     func(ctx context.Context, id uint64, identity common.Address) (*gate.Membership, error)
	document     func(ctx context.Context, id uint64) (*allowlist.Document, error)
	subscribe    func() (<-chan gate.ClaimEvent, func())
}

func (m *gateServiceMock) Register(ctx context.Context, id uint64, name string, members []common.Address) (*registry.Record, error) {
	if m.register != nil {
		return m.register(ctx, id, name, members)
	}
	return nil, errors.New("not implemented")
}

func (m *gateServiceMock) RegisterRoot(ctx context.Context, id uint64, name string, root merkle.Digest) (*registry.Record, error) {
	if m.registerRoot != nil {
		return m.registerRoot(ctx, id, name, root)
	}
	return nil, errors.New("not implemented")
}

func (m *gateServiceMock) ReplaceRoot(ctx context.Context, id uint64, root merkle.Digest) (*registry.Record, error) {
	if m.replaceRoot != nil {
		return m.replaceRoot(ctx, id, root)
	}
	return nil, errors.New("not implemented")
}

func (m *gateServiceMock) Eligibility(ctx context.Context, id uint64, identity common.Address, proof merkle.Proof) error {
	if m.eligibility != nil {
		return m.eligibility(ctx, id, identity, proof)
	}
	return errors.New("not implemented")
}

func (m *gateServiceMock) Claim(ctx context.Context, id uint64, identity common.Address, proof merkle.Proof) (*gate.Receipt, error) {
	if m.claim != nil {
		return m.claim(ctx, id, identity, proof)
	}
	return nil, errors.New("not implemented")
}

func (m *gateServiceMock) ClaimStatus(ctx context.Context, id uint64, identity common.Address) (*gate.Receipt, bool, error) {
	if m.claimStatus != nil {
		return m.claimStatus(ctx, id, identity)
	}
	return nil, false, errors.New("not implemented")
}

func (m *gateServiceMock) ProofFor(ctx context.Context, id uint64, identity common.Address) (*gate.Membership, error) {
	if m.proofFor != nil {
		return m.proofFor(ctx, id, identity)
	}
	return nil, errors.New("not implemented")
}

func (m *gateServiceMock) Document(ctx context.Context, id uint64) (*allowlist.Document, error) {
	if m.document != nil {
		return m.document(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *gateServiceMock) Subscribe() (<-chan gate.ClaimEvent, func()) {
	if m.subscribe != nil {
		return m.subscribe()
	}
	c := make(chan gate.ClaimEvent)
	return c, func() {}
}

// Option is the option passed to the mock gate service.
type Option interface {
	apply(*gateServiceMock)
}

type optionFunc func(*gateServiceMock)

func (f optionFunc) apply(r *gateServiceMock) { f(r) }

func WithRegisterFunc(f func(ctx context.Context, id uint64, name string, members []common.Address) (*registry.Record, error)) Option {
	return optionFunc(func(s *gateServiceMock) {
		s.register = f
	})
}

func WithRegisterRootFunc(f func(ctx context.Context, id uint64, name string, root merkle.Digest) (*registry.Record, error)) Option {
	return optionFunc(func(s *gateServiceMock) {
		s.registerRoot = f
	})
}

func WithReplaceRootFunc(f func(ctx context.Context, id uint64, root merkle.Digest) (*registry.Record, error)) Option {
	return optionFunc(func(s *gateServiceMock) {
		s.replaceRoot = f
	})
}

func WithEligibilityFunc(f func(ctx context.Context, id uint64, identity common.Address, proof merkle.Proof) error) Option {
	return optionFunc(func(s *gateServiceMock) {
		s.eligibility = f
	})
}

func WithClaimFunc(f func(ctx context.Context, id uint64, identity common.Address, proof merkle.Proof) (*gate.Receipt, error)) Option {
	return optionFunc(func(s *gateServiceMock) {
		s.claim = f
	})
}

func WithClaimStatusFunc(f func(ctx context.Context, id uint64, identity common.Address) (*gate.Receipt, bool, error)) Option {
	return optionFunc(func(s *gateServiceMock) {
		s.claimStatus = f
	})
}

func WithProofForFunc(f func(ctx context.Context, id uint64, identity common.Address) (*gate.Membership, error)) Option {
	return optionFunc(func(s *gateServiceMock) {
		s.proofFor = f
	})
}

func WithDocumentFunc(f func(ctx context.Context, id uint64) (*allowlist.Document, error)) Option {
	return optionFunc(func(s *gateServiceMock) {
		s.document = f
	})
}

func WithSubscribeFunc(f func() (<-chan gate.ClaimEvent, func())) Option {
	return optionFunc(func(s *gateServiceMock) {
		s.subscribe = f
	})
}

func New(opts ...Option) gate.Service {
	mock := new(gateServiceMock)
	for _, o := range opts {
		o.apply(mock)
	}
	return mock
}
