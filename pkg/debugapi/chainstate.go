// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package debugapi

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethersphere/mintgate/pkg/jsonhttp"
)

type chainStateResponse struct {
	EthereumAddress common.Address `json:"ethereumAddress"`
	ContractAddress common.Address `json:"contractAddress"`
	Block           uint64         `json:"block"`
}

func (s *Service) chainStateHandler(w http.ResponseWriter, r *http.Request) {
	block, err := s.backend.BlockNumber(r.Context())
	if err != nil {
		s.logger.Debugf("debug api: chainstate: block number: %v", err)
		s.logger.Error("debug api: chainstate: unable to read block number")
		jsonhttp.InternalServerError(w, "cannot read block number")
		return
	}

	jsonhttp.OK(w, chainStateResponse{
		EthereumAddress: s.ethereumAddress,
		ContractAddress: s.contractAddress,
		Block:           block,
	})
}
