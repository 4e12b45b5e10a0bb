// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allowlist

import "errors"

var (
	// ErrEmptyList denotes building a list with no members.
	ErrEmptyList = errors.New("empty member set")

	// ErrNotMember denotes requesting a proof for an address that is not
	// on the list.
	ErrNotMember = errors.New("address not a member of the list")

	// ErrIncompatibleSchema denotes a document of an unsupported major
	// schema version.
	ErrIncompatibleSchema = errors.New("incompatible document schema version")

	// ErrInvalidDocument denotes a document that fails self verification.
	ErrInvalidDocument = errors.New("document verification failed")
)
