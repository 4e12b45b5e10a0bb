// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"

	"github.com/ethersphere/mintgate/pkg/allowlist"
	"github.com/ethersphere/mintgate/pkg/gate"
	"github.com/ethersphere/mintgate/pkg/jsonhttp"
	"github.com/ethersphere/mintgate/pkg/registry"
)

func (s *server) proofGetHandler(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		s.logger.Debugf("proof: parse id %s: %v", idStr, err)
		s.logger.Error("proof: parse id")
		jsonhttp.BadRequest(w, "invalid list id")
		return
	}

	addrStr := mux.Vars(r)["address"]
	if !common.IsHexAddress(addrStr) {
		s.logger.Debugf("proof: invalid address %s", addrStr)
		s.logger.Error("proof: invalid address")
		jsonhttp.BadRequest(w, "invalid address")
		return
	}
	addr := common.HexToAddress(addrStr)

	membership, err := s.gate.ProofFor(r.Context(), id, addr)
	if err != nil {
		switch {
		case errors.Is(err, gate.ErrUnknownList), errors.Is(err, registry.ErrInvalidListID):
			s.logger.Debugf("proof: list %d not registered: %v", id, err)
			s.logger.Error("proof: list not registered")
			jsonhttp.NotFound(w, "list not registered")
		case errors.Is(err, registry.ErrNoMembers):
			s.logger.Debugf("proof: list %d has no member set: %v", id, err)
			s.logger.Error("proof: list has no member set")
			jsonhttp.NotFound(w, "list has no member set")
		case errors.Is(err, allowlist.ErrNotMember):
			s.logger.Debugf("proof: list %d address %s: %v", id, addr, err)
			s.logger.Error("proof: address not a member")
			jsonhttp.NotFound(w, "address not a member")
		default:
			s.logger.Debugf("proof: list %d address %s: %v", id, addr, err)
			s.logger.Error("proof: cannot issue proof")
			jsonhttp.InternalServerError(w, "cannot issue proof")
		}
		return
	}

	w.Header().Set("Cache-Control", "no-cache, private, max-age=0")
	jsonhttp.OK(w, membership)
}
