// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/ethersphere/mintgate/pkg/config"
	"github.com/ethersphere/mintgate/pkg/crypto"
	"github.com/ethersphere/mintgate/pkg/gatecontract"
	"github.com/ethersphere/mintgate/pkg/logging"
	"github.com/ethersphere/mintgate/pkg/storage"
	"github.com/ethersphere/mintgate/pkg/transaction"
	"github.com/ethersphere/mintgate/pkg/transaction/wrapped"
)

// InitChain will initialize the Ethereum backend at the given endpoint and
// set up the Transaction Service to interact with it using the provided signer.
func InitChain(
	ctx context.Context,
	logger logging.Logger,
	stateStore storage.StateStorer,
	endpoint string,
	signer crypto.Signer,
) (transaction.Backend, func(), common.Address, *big.Int, transaction.Service, error) {
	backend, err := ethclient.Dial(endpoint)
	if err != nil {
		return nil, nil, common.Address{}, nil, nil, fmt.Errorf("dial eth client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		logger.Infof("could not connect to backend at %v, with a chain endpoint configured a working blockchain node is required, check your node or specify another node using --chain-endpoint", endpoint)
		return nil, nil, common.Address{}, nil, nil, fmt.Errorf("get chain id: %w", err)
	}

	ethereumAddress, err := signer.EthereumAddress()
	if err != nil {
		return nil, nil, common.Address{}, nil, nil, fmt.Errorf("eth address: %w", err)
	}

	chainBackend := wrapped.NewBackend(backend)

	transactionService, err := transaction.NewService(logger, chainBackend, signer, stateStore, chainID)
	if err != nil {
		return nil, nil, common.Address{}, nil, nil, fmt.Errorf("new transaction service: %w", err)
	}

	return chainBackend, backend.Close, ethereumAddress, chainID, transactionService, nil
}

// InitGateContract resolves the gate registry contract for the connected
// chain and binds the publisher to it. An empty contractAddress falls back
// to the known deployment for the chain.
func InitGateContract(
	logger logging.Logger,
	chainID *big.Int,
	transactionService transaction.Service,
	contractAddress string,
) (gatecontract.Interface, common.Address, error) {
	var addr common.Address
	if contractAddress == "" {
		chainCfg, found := config.GetChainConfig(chainID.Int64())
		if !found {
			return nil, common.Address{}, fmt.Errorf("no known gate registry for chain id %v, provide a contract address", chainID)
		}
		addr = chainCfg.GateRegistry
		logger.Infof("using default gate registry address for chain id %v: %x", chainID, addr)
	} else if !common.IsHexAddress(contractAddress) {
		return nil, common.Address{}, errors.New("malformed gate registry address")
	} else {
		addr = common.HexToAddress(contractAddress)
		logger.Infof("using custom gate registry address: %x", addr)
	}
	return gatecontract.New(addr, transactionService), addr, nil
}
