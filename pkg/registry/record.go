// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ethersphere/mintgate/pkg/merkle"
)

// Record is the persisted form of a registered list. Members is nil for
// root-only lists.
type Record struct {
	ID        uint64
	Name      string
	Root      merkle.Digest
	Members   []common.Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Size returns the number of members known for the list. Root-only lists
// have size zero.
func (r *Record) Size() int {
	return len(r.Members)
}

// record strips the Record method set so msgpack does not re-enter the
// BinaryMarshaler path while encoding.
type record Record

// MarshalBinary implements encoding.BinaryMarshaler, taking the state
// store's binary path instead of JSON.
func (r *Record) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal((*record)(r))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *Record) UnmarshalBinary(b []byte) error {
	return msgpack.Unmarshal(b, (*record)(r))
}
