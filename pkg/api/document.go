// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ethersphere/langos"
	"github.com/gorilla/mux"

	"github.com/ethersphere/mintgate/pkg/gate"
	"github.com/ethersphere/mintgate/pkg/jsonhttp"
	"github.com/ethersphere/mintgate/pkg/registry"
)

// lookaheadBufferSize is the size of the buffer used for prefetching the
// document body with langos.
const lookaheadBufferSize = 8 * 32 * 1024

// documentGetHandler serves the full distribution document of a list as a
// file download. The document is derived on demand; only the root is
// persisted.
func (s *server) documentGetHandler(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		s.logger.Debugf("document: parse id %s: %v", idStr, err)
		s.logger.Error("document: parse id")
		jsonhttp.BadRequest(w, "invalid list id")
		return
	}

	doc, err := s.gate.Document(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, gate.ErrUnknownList), errors.Is(err, registry.ErrInvalidListID):
			s.logger.Debugf("document: list %d not registered: %v", id, err)
			s.logger.Error("document: list not registered")
			jsonhttp.NotFound(w, "list not registered")
		case errors.Is(err, registry.ErrNoMembers):
			s.logger.Debugf("document: list %d has no member set: %v", id, err)
			s.logger.Error("document: list has no member set")
			jsonhttp.NotFound(w, "list has no member set")
		default:
			s.logger.Debugf("document: list %d: %v", id, err)
			s.logger.Error("document: cannot build document")
			jsonhttp.InternalServerError(w, "cannot build document")
		}
		return
	}

	b, err := doc.Bytes()
	if err != nil {
		s.logger.Debugf("document: marshal list %d: %v", id, err)
		s.logger.Error("document: marshal")
		jsonhttp.InternalServerError(w, "cannot marshal document")
		return
	}

	w.Header().Set("Content-Type", jsonhttp.DefaultContentTypeHeader)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"list-%d.json\"", id))
	http.ServeContent(w, r, "", time.Now(), langos.NewBufferedLangos(bytes.NewReader(b), lookaheadBufferSize))
}
