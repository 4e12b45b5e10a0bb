// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolver

import (
	"io"

	"github.com/ethereum/go-ethereum/common"
)

// Address is the Ethereum account address a name resolves to.
type Address = common.Address

// Interface can resolve a name into an associated Ethereum address.
type Interface interface {
	Resolve(name string) (Address, error)
	io.Closer
}
