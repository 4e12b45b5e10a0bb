// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolver

import "errors"

var (
	// ErrNotConnected denotes there is no active connection to an Ethereum
	// endpoint.
	ErrNotConnected = errors.New("not connected to an endpoint")

	// ErrResolveFailed denotes a name that did not resolve to a usable
	// address.
	ErrResolveFailed = errors.New("name resolution failed")
)
