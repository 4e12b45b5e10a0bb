// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package test_test

import (
	"testing"

	"github.com/ethersphere/mintgate/pkg/statestore/mock"
	"github.com/ethersphere/mintgate/pkg/statestore/test"
	"github.com/ethersphere/mintgate/pkg/storage"
)

func TestMockStateStore(t *testing.T) {
	test.Run(t, func(t *testing.T) storage.StateStorer {
		return mock.NewStateStore()
	})
}
