// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package debugapi

import (
	"net/http"

	"github.com/ethersphere/mintgate"
	"github.com/ethersphere/mintgate/pkg/jsonhttp"
)

type healthStatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Service) healthHandler(w http.ResponseWriter, r *http.Request) {
	jsonhttp.OK(w, healthStatusResponse{
		Status:  "ok",
		Version: mintgate.Version,
	})
}

// readinessHandler is only routed after Configure, so a successful response
// doubles as the signal that all dependencies are injected.
func (s *Service) readinessHandler(w http.ResponseWriter, r *http.Request) {
	jsonhttp.OK(w, healthStatusResponse{
		Status:  "ok",
		Version: mintgate.Version,
	})
}
