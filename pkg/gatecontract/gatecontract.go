// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gatecontract provides the client for the on-chain gate registry
// contract which anchors allowlist roots.
package gatecontract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethersphere/mintgate/pkg/merkle"
	"github.com/ethersphere/mintgate/pkg/transaction"
)

// GateRegistryABI is the abi of the gate registry contract.
const GateRegistryABI = `[{"anonymous":false,"inputs":[{"indexed":true,"internalType":"uint256","name":"listId","type":"uint256"},{"indexed":false,"internalType":"bytes32","name":"root","type":"bytes32"}],"name":"RootUpdated","type":"event"},{"inputs":[{"internalType":"uint256","name":"listId","type":"uint256"}],"name":"roots","outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"uint256","name":"listId","type":"uint256"},{"internalType":"bytes32","name":"root","type":"bytes32"}],"name":"setRoot","outputs":[],"stateMutability":"nonpayable","type":"function"}]`

var (
	gateRegistryABI  = transaction.ParseABIUnchecked(GateRegistryABI)
	rootUpdatedTopic = gateRegistryABI.Events["RootUpdated"].ID

	// ErrSetRootFailed is returned when a mined set root transaction did not
	// emit the expected root update event.
	ErrSetRootFailed = errors.New("set root failed")

	setRootDescription = "Allowlist root update"
)

// Interface is the client side of the gate registry contract.
type Interface interface {
	// SetRoot publishes the root of the given list on the contract. It returns
	// as soon as the transaction has been sent.
	SetRoot(ctx context.Context, listID uint64, root merkle.Digest) (common.Hash, error)
	// WaitSetRoot waits until the given set root transaction has been mined
	// and verifies that it succeeded.
	WaitSetRoot(ctx context.Context, txHash common.Hash) error
	// Root reads the published root of the given list from the contract. The
	// zero digest means no root has been published.
	Root(ctx context.Context, listID uint64) (merkle.Digest, error)
}

type gateContract struct {
	contractAddress    common.Address
	transactionService transaction.Service
}

func New(contractAddress common.Address, transactionService transaction.Service) Interface {
	return &gateContract{
		contractAddress:    contractAddress,
		transactionService: transactionService,
	}
}

func (c *gateContract) SetRoot(ctx context.Context, listID uint64, root merkle.Digest) (common.Hash, error) {
	callData, err := gateRegistryABI.Pack("setRoot", new(big.Int).SetUint64(listID), common.Hash(root))
	if err != nil {
		return common.Hash{}, err
	}

	txHash, err := c.transactionService.Send(ctx, &transaction.TxRequest{
		To:          &c.contractAddress,
		Data:        callData,
		GasPrice:    nil,
		GasLimit:    0,
		Value:       big.NewInt(0),
		Description: setRootDescription,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("set root for list %d: %w", listID, err)
	}

	return txHash, nil
}

func (c *gateContract) WaitSetRoot(ctx context.Context, txHash common.Hash) error {
	receipt, err := c.transactionService.WaitForReceipt(ctx, txHash)
	if err != nil {
		return err
	}

	if receipt.Status == 0 {
		return transaction.ErrTransactionReverted
	}

	for _, ev := range receipt.Logs {
		if ev.Address == c.contractAddress && len(ev.Topics) > 0 && ev.Topics[0] == rootUpdatedTopic {
			return nil
		}
	}

	return ErrSetRootFailed
}

func (c *gateContract) Root(ctx context.Context, listID uint64) (merkle.Digest, error) {
	callData, err := gateRegistryABI.Pack("roots", new(big.Int).SetUint64(listID))
	if err != nil {
		return merkle.Digest{}, err
	}

	result, err := c.transactionService.Call(ctx, &transaction.TxRequest{
		To:   &c.contractAddress,
		Data: callData,
	})
	if err != nil {
		return merkle.Digest{}, err
	}

	results, err := gateRegistryABI.Unpack("roots", result)
	if err != nil {
		return merkle.Digest{}, err
	}

	root := *abi.ConvertType(results[0], new([32]byte)).(*[32]byte)

	return merkle.Digest(root), nil
}
