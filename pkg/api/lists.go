// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"

	"github.com/ethersphere/mintgate/pkg/allowlist"
	"github.com/ethersphere/mintgate/pkg/jsonhttp"
	"github.com/ethersphere/mintgate/pkg/merkle"
	"github.com/ethersphere/mintgate/pkg/registry"
)

type listRegisterRequest struct {
	ID      uint64           `json:"id"`
	Name    string           `json:"name"`
	Members []common.Address `json:"members"`
}

type listRegisterResponse struct {
	ID   uint64        `json:"id"`
	Name string        `json:"name"`
	Root merkle.Digest `json:"root"`
	Size int           `json:"size"`
}

type listsResponse struct {
	Lists []uint64 `json:"lists"`
}

type listResponse struct {
	ID        uint64        `json:"id"`
	Name      string        `json:"name"`
	Root      merkle.Digest `json:"root"`
	Size      int           `json:"size"`
	Claims    int           `json:"claims"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type listRootPutRequest struct {
	Root merkle.Digest `json:"root"`
	Name string        `json:"name"`
}

type listRootPutResponse struct {
	ID   uint64        `json:"id"`
	Root merkle.Digest `json:"root"`
}

func (s *server) listsPostHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		if jsonhttp.HandleBodyReadError(err, w) {
			return
		}
		s.logger.Debugf("lists register: read request body: %v", err)
		s.logger.Error("lists register: read request body")
		jsonhttp.InternalServerError(w, "cannot read request")
		return
	}

	var req listRegisterRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.logger.Debugf("lists register: unmarshal request body: %v", err)
		s.logger.Error("lists register: unmarshal request body")
		jsonhttp.BadRequest(w, "invalid request body")
		return
	}

	rec, err := s.gate.Register(r.Context(), req.ID, req.Name, req.Members)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrInvalidListID):
			s.logger.Debugf("lists register: list %d: %v", req.ID, err)
			s.logger.Error("lists register: invalid list id")
			jsonhttp.BadRequest(w, "list id must not be zero")
		case errors.Is(err, allowlist.ErrEmptyList), errors.Is(err, registry.ErrNoMembers):
			s.logger.Debugf("lists register: list %d: %v", req.ID, err)
			s.logger.Error("lists register: empty member set")
			jsonhttp.BadRequest(w, "empty member set")
		case errors.Is(err, registry.ErrExists):
			s.logger.Debugf("lists register: list %d: %v", req.ID, err)
			s.logger.Error("lists register: list exists")
			jsonhttp.Conflict(w, "list already registered")
		default:
			s.logger.Debugf("lists register: list %d: %v", req.ID, err)
			s.logger.Error("lists register: cannot register list")
			jsonhttp.InternalServerError(w, "cannot register list")
		}
		return
	}

	jsonhttp.Created(w, listRegisterResponse{
		ID:   rec.ID,
		Name: rec.Name,
		Root: rec.Root,
		Size: rec.Size(),
	})
}

func (s *server) listsGetHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := s.registry.Lists()
	if err != nil {
		s.logger.Debugf("lists: list ids: %v", err)
		s.logger.Error("lists: list ids")
		jsonhttp.InternalServerError(w, "cannot list registered ids")
		return
	}
	if ids == nil {
		ids = make([]uint64, 0)
	}
	jsonhttp.OK(w, listsResponse{Lists: ids})
}

func (s *server) listGetHandler(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		s.logger.Debugf("list: parse id %s: %v", idStr, err)
		s.logger.Error("list: parse id")
		jsonhttp.BadRequest(w, "invalid list id")
		return
	}

	rec, err := s.registry.Get(id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) || errors.Is(err, registry.ErrInvalidListID) {
			s.logger.Debugf("list: list %d not registered: %v", id, err)
			s.logger.Error("list: list not registered")
			jsonhttp.NotFound(w, "list not registered")
			return
		}
		s.logger.Debugf("list: list %d: %v", id, err)
		s.logger.Error("list: cannot get list")
		jsonhttp.InternalServerError(w, "cannot get list")
		return
	}
	claims, err := s.registry.ClaimCount(id)
	if err != nil {
		s.logger.Debugf("list: claim count %d: %v", id, err)
		s.logger.Error("list: claim count")
		jsonhttp.InternalServerError(w, "cannot count claims")
		return
	}

	jsonhttp.OK(w, listResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		Root:      rec.Root,
		Size:      rec.Size(),
		Claims:    claims,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	})
}

// listRootPutHandler replaces the root of a registered list, or commits a
// root-only registration when the id is still free. Both are explicit
// operator actions; proofs minted against a replaced root stop verifying.
func (s *server) listRootPutHandler(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		s.logger.Debugf("list root: parse id %s: %v", idStr, err)
		s.logger.Error("list root: parse id")
		jsonhttp.BadRequest(w, "invalid list id")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		if jsonhttp.HandleBodyReadError(err, w) {
			return
		}
		s.logger.Debugf("list root: read request body: %v", err)
		s.logger.Error("list root: read request body")
		jsonhttp.InternalServerError(w, "cannot read request")
		return
	}

	var req listRootPutRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.logger.Debugf("list root: unmarshal request body: %v", err)
		s.logger.Error("list root: unmarshal request body")
		jsonhttp.BadRequest(w, "invalid request body")
		return
	}
	if req.Root.IsZero() {
		s.logger.Error("list root: zero root")
		jsonhttp.BadRequest(w, "root must not be zero")
		return
	}

	rec, err := s.gate.ReplaceRoot(r.Context(), id, req.Root)
	if errors.Is(err, registry.ErrNotFound) {
		rec, err = s.gate.RegisterRoot(r.Context(), id, req.Name, req.Root)
	}
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrInvalidListID):
			s.logger.Debugf("list root: list %d: %v", id, err)
			s.logger.Error("list root: invalid list id")
			jsonhttp.BadRequest(w, "list id must not be zero")
		default:
			s.logger.Debugf("list root: list %d: %v", id, err)
			s.logger.Error("list root: cannot set root")
			jsonhttp.InternalServerError(w, "cannot set root")
		}
		return
	}

	jsonhttp.OK(w, listRootPutResponse{
		ID:   rec.ID,
		Root: rec.Root,
	})
}
