// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"errors"
)

var (
	// ErrEmptyInput is returned by Build when called with no leaves. A
	// root is undefined for an empty set, so the caller must reject empty
	// allowlists before committing any state.
	ErrEmptyInput = errors.New("empty leaf set")

	// ErrIndexOutOfRange is returned by Tree.Proof for a leaf index that
	// has no position on the base level. Given valid inputs it indicates
	// a caller bug, not a malformed tree.
	ErrIndexOutOfRange = errors.New("leaf index out of range")
)
