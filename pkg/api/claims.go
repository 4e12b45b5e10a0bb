// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/ethersphere/mintgate/pkg/gate"
	"github.com/ethersphere/mintgate/pkg/jsonhttp"
	"github.com/ethersphere/mintgate/pkg/merkle"
	"github.com/ethersphere/mintgate/pkg/registry"
)

// writeDeadline should be smaller than the shutdown timeout on api close
// so that open websockets are drained in time.
var writeDeadline = 4 * time.Second

type claimRequest struct {
	Identity common.Address `json:"identity"`
	Proof    merkle.Proof   `json:"proof"`
}

type claimStatusResponse struct {
	Claimed bool          `json:"claimed"`
	Receipt *gate.Receipt `json:"receipt,omitempty"`
}

func (s *server) claimsPostHandler(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !s.limiter.Allow(host, 1) {
			s.metrics.RateLimitedCount.Inc()
			s.logger.Debugf("claims submit: rate limited %s", host)
			if wait := s.limiter.RetryAfter(host, 1); wait > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			}
			jsonhttp.TooManyRequests(w, "rate limit exceeded")
			return
		}
	}

	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		s.logger.Debugf("claims submit: parse id %s: %v", idStr, err)
		s.logger.Error("claims submit: parse id")
		jsonhttp.BadRequest(w, "invalid list id")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		if jsonhttp.HandleBodyReadError(err, w) {
			return
		}
		s.logger.Debugf("claims submit: read request body: %v", err)
		s.logger.Error("claims submit: read request body")
		jsonhttp.InternalServerError(w, "cannot read request")
		return
	}

	var req claimRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.logger.Debugf("claims submit: unmarshal request body: %v", err)
		s.logger.Error("claims submit: unmarshal request body")
		jsonhttp.BadRequest(w, "invalid request body")
		return
	}
	if len(req.Proof) > maxProofLength {
		s.logger.Debugf("claims submit: list %d: proof length %d", id, len(req.Proof))
		s.logger.Error("claims submit: proof too long")
		jsonhttp.BadRequest(w, "proof too long")
		return
	}

	receipt, err := s.gate.Claim(r.Context(), id, req.Identity, req.Proof)
	if err != nil {
		switch {
		case errors.Is(err, gate.ErrUnknownList), errors.Is(err, registry.ErrInvalidListID):
			s.logger.Debugf("claims submit: list %d not registered: %v", id, err)
			s.logger.Error("claims submit: list not registered")
			jsonhttp.NotFound(w, "list not registered")
		case errors.Is(err, gate.ErrInvalidProof):
			// No detail about which reconstruction step failed.
			s.logger.Debugf("claims submit: list %d identity %s: %v", id, req.Identity, err)
			s.logger.Error("claims submit: not eligible")
			jsonhttp.Forbidden(w, "not eligible")
		case errors.Is(err, gate.ErrAlreadyClaimed):
			s.logger.Debugf("claims submit: list %d identity %s: %v", id, req.Identity, err)
			s.logger.Error("claims submit: already claimed")
			jsonhttp.Conflict(w, "already claimed")
		default:
			s.logger.Debugf("claims submit: list %d identity %s: %v", id, req.Identity, err)
			s.logger.Error("claims submit: cannot claim")
			jsonhttp.InternalServerError(w, "cannot claim")
		}
		return
	}

	jsonhttp.Created(w, receipt)
}

func (s *server) claimGetHandler(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		s.logger.Debugf("claim status: parse id %s: %v", idStr, err)
		s.logger.Error("claim status: parse id")
		jsonhttp.BadRequest(w, "invalid list id")
		return
	}

	addrStr := mux.Vars(r)["address"]
	if !common.IsHexAddress(addrStr) {
		s.logger.Debugf("claim status: invalid address %s", addrStr)
		s.logger.Error("claim status: invalid address")
		jsonhttp.BadRequest(w, "invalid address")
		return
	}
	addr := common.HexToAddress(addrStr)

	receipt, claimed, err := s.gate.ClaimStatus(r.Context(), id, addr)
	if err != nil {
		switch {
		case errors.Is(err, gate.ErrUnknownList), errors.Is(err, registry.ErrInvalidListID):
			s.logger.Debugf("claim status: list %d not registered: %v", id, err)
			s.logger.Error("claim status: list not registered")
			jsonhttp.NotFound(w, "list not registered")
		default:
			s.logger.Debugf("claim status: list %d address %s: %v", id, addr, err)
			s.logger.Error("claim status: cannot get status")
			jsonhttp.InternalServerError(w, "cannot get status")
		}
		return
	}

	w.Header().Set("Cache-Control", "no-cache, private, max-age=0")
	jsonhttp.OK(w, claimStatusResponse{
		Claimed: claimed,
		Receipt: receipt,
	})
}

func (s *server) claimsWsHandler(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		s.logger.Debugf("claims ws: parse id %s: %v", idStr, err)
		s.logger.Error("claims ws: parse id")
		jsonhttp.BadRequest(w, "invalid list id")
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debugf("claims ws: upgrade: %v", err)
		s.logger.Error("claims ws: cannot upgrade")
		jsonhttp.BadRequest(w, "not a websocket connection")
		return
	}

	s.wsWg.Add(1)
	go s.pumpClaims(conn, id)
}

// pumpClaims forwards granted claims of one list to the websocket
// connection until the client disconnects or the api shuts down.
func (s *server) pumpClaims(conn *websocket.Conn, id uint64) {
	defer s.wsWg.Done()

	var (
		gone   = make(chan struct{})
		ticker = time.NewTicker(s.WsPingPeriod)
		err    error
	)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	events, unsubscribe := s.gate.Subscribe()
	defer unsubscribe()

	conn.SetCloseHandler(func(code int, text string) error {
		s.logger.Debugf("claims ws: client gone. code %d message %s", code, text)
		close(gone)
		return nil
	})

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.ListID != id {
				continue
			}
			b, err := json.Marshal(ev)
			if err != nil {
				s.logger.Debugf("claims ws: marshal event: %v", err)
				return
			}
			err = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err != nil {
				s.logger.Debugf("claims ws: set write deadline: %v", err)
				return
			}
			err = conn.WriteMessage(websocket.TextMessage, b)
			if err != nil {
				s.logger.Debugf("claims ws: write to websocket: %v", err)
				return
			}
		case <-s.quit:
			// shutdown
			err = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err != nil {
				s.logger.Debugf("claims ws: set write deadline: %v", err)
				return
			}
			err = conn.WriteMessage(websocket.CloseMessage, []byte{})
			if err != nil {
				s.logger.Debugf("claims ws: write close message: %v", err)
			}
			return
		case <-gone:
			// client gone
			return
		case <-ticker.C:
			err = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err != nil {
				s.logger.Debugf("claims ws: set write deadline: %v", err)
				return
			}
			if err = conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
