// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gate

import "errors"

var (
	// ErrUnknownList is returned for claims against unregistered list
	// ids.
	ErrUnknownList = errors.New("unknown list")

	// ErrInvalidProof is returned when a proof does not connect the
	// identity to the registered root. It carries no detail about
	// which reconstruction step failed.
	ErrInvalidProof = errors.New("invalid membership proof")

	// ErrAlreadyClaimed is returned when the identity's claim was
	// already consumed.
	ErrAlreadyClaimed = errors.New("identity already claimed")
)
