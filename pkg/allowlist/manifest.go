// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allowlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	"github.com/ethersphere/mintgate/pkg/resolver"
)

// Manifest is the operator-provided list description. Members are either
// plain hex addresses or names to be resolved.
type Manifest struct {
	ListID  uint64   `yaml:"list"`
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

// ParseManifest parses and validates a YAML manifest.
func ParseManifest(b []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if m.ListID == 0 {
		return nil, errors.New("manifest: list id must not be zero")
	}
	if len(m.Members) == 0 {
		return nil, ErrEmptyList
	}
	return &m, nil
}

// ReadManifest reads a manifest from the provided filesystem.
func ReadManifest(fs afero.Fs, path string) (*Manifest, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(b)
}

// Resolve maps the manifest member entries to addresses. Plain hex entries
// are decoded directly and never touch the resolver; any other entry is
// treated as a name. Resolution failures name the offending entry.
func (m *Manifest) Resolve(ctx context.Context, res resolver.Interface) ([]common.Address, error) {
	addrs := make([]common.Address, 0, len(m.Members))
	for _, entry := range m.Members {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if common.IsHexAddress(entry) {
			addrs = append(addrs, common.HexToAddress(entry))
			continue
		}
		if res == nil {
			return nil, fmt.Errorf("member %q: %w", entry, resolver.ErrNotConnected)
		}
		addr, err := res.Resolve(entry)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", entry, err)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}
