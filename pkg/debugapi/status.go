// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package debugapi

import (
	"net/http"

	"github.com/ethersphere/mintgate"
	"github.com/ethersphere/mintgate/pkg/jsonhttp"
)

type statusResponse struct {
	Version string `json:"version"`
	Lists   int    `json:"lists"`
	Claims  int    `json:"claims"`
}

// statusHandler reports registry totals. Counts are assembled with
// point-in-time reads, concurrent claims may shift them while iterating.
func (s *Service) statusHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := s.registry.Lists()
	if err != nil {
		s.logger.Debugf("debug api: status: list ids: %v", err)
		s.logger.Error("debug api: status: unable to list registered ids")
		jsonhttp.InternalServerError(w, nil)
		return
	}

	var claims int
	for _, id := range ids {
		c, err := s.registry.ClaimCount(id)
		if err != nil {
			s.logger.Debugf("debug api: status: claim count %d: %v", id, err)
			s.logger.Error("debug api: status: unable to count claims")
			jsonhttp.InternalServerError(w, nil)
			return
		}
		claims += c
	}

	jsonhttp.OK(w, statusResponse{
		Version: mintgate.Version,
		Lists:   len(ids),
		Claims:  claims,
	})
}
