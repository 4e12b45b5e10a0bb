// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import "errors"

var (
	// ErrInvalidListID denotes a zero list id.
	ErrInvalidListID = errors.New("list id must not be zero")

	// ErrExists denotes registering an id that already has a record.
	ErrExists = errors.New("list already registered")

	// ErrNotFound denotes an id with no record.
	ErrNotFound = errors.New("list not registered")

	// ErrNoMembers denotes a member operation on a root-only list.
	ErrNoMembers = errors.New("list has no member set")
)
