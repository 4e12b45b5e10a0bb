// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"github.com/ethereum/go-ethereum/common"
)

var (
	// chain ID
	goerliChainID = int64(5)
	xdaiChainID   = int64(100)
	// start block
	goerliStartBlock = uint64(7930788)
	xdaiStartBlock   = uint64(24261070)
	// gate registry address
	goerliGateRegistryAddress = common.HexToAddress("0x3c8a2a6a2e65bd44ba07caa3ef0f4c23f62f92a8")
	xdaiGateRegistryAddress   = common.HexToAddress("0x91A9CcC344e8B2460cdd71b3d97e38d3bC783a1E")
)

type ChainConfig struct {
	StartBlock   uint64
	GateRegistry common.Address
}

func GetChainConfig(chainID int64) (*ChainConfig, bool) {
	var cfg ChainConfig
	switch chainID {
	case goerliChainID:
		cfg.GateRegistry = goerliGateRegistryAddress
		cfg.StartBlock = goerliStartBlock
		return &cfg, true
	case xdaiChainID:
		cfg.GateRegistry = xdaiGateRegistryAddress
		cfg.StartBlock = xdaiStartBlock
		return &cfg, true
	default:
		return &cfg, false
	}
}
