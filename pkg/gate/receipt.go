// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gate

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethersphere/mintgate/pkg/merkle"
)

// Receipt is the durable record of a granted claim. Root pins the list
// root the claim was verified against at grant time.
type Receipt struct {
	ID       string         `json:"id"`
	ListID   uint64         `json:"listId"`
	Identity common.Address `json:"identity"`
	Root     merkle.Digest  `json:"root"`
	At       time.Time      `json:"at"`
}

// ClaimEvent is the notification emitted for every granted claim.
type ClaimEvent struct {
	ReceiptID string         `json:"receiptId"`
	ListID    uint64         `json:"listId"`
	Identity  common.Address `json:"identity"`
	Root      merkle.Digest  `json:"root"`
	At        time.Time      `json:"at"`
}

// Membership is a self-contained proof of list membership. It verifies
// against Root without any further context.
type Membership struct {
	Identity common.Address `json:"identity"`
	Leaf     merkle.Digest  `json:"leaf"`
	Proof    merkle.Proof   `json:"proof"`
	Root     merkle.Digest  `json:"root"`
}
