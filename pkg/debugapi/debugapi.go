// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package debugapi exposes the debug API used to
// control and analyze low-level and runtime
// features and functionalities of mintgate.
package debugapi

import (
	"net/http"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ethersphere/mintgate/pkg/logging"
	"github.com/ethersphere/mintgate/pkg/registry"
	"github.com/ethersphere/mintgate/pkg/tracing"
	"github.com/ethersphere/mintgate/pkg/transaction"
)

// Service implements http.Handler interface to be used in HTTP server.
type Service struct {
	registry           registry.Interface
	logger             logging.Logger
	tracer             *tracing.Tracer
	corsAllowedOrigins []string
	metricsRegistry    *prometheus.Registry
	chainEnabled       bool
	ethereumAddress    common.Address
	contractAddress    common.Address
	backend            transaction.Backend
	// handler is changed in the Configure method
	handler   http.Handler
	handlerMu sync.RWMutex
}

// New creates a new Debug API Service with only basic routers enabled in order
// to expose /health, Go metrics and pprof. It is useful to expose these
// endpoints before all dependencies are configured and injected to have
// access to basic debugging tools and /health endpoint.
func New(logger logging.Logger, tracer *tracing.Tracer, corsAllowedOrigins []string) *Service {
	s := new(Service)
	s.logger = logger
	s.tracer = tracer
	s.corsAllowedOrigins = corsAllowedOrigins
	s.metricsRegistry = newMetricsRegistry()

	s.setRouter(s.newBasicRouter())

	return s
}

// Configure injects required dependencies and configuration parameters and
// constructs HTTP routes that depend on them. It is intended and safe to call
// this method only once.
func (s *Service) Configure(reg registry.Interface, chainEnabled bool, ethereumAddress, contractAddress common.Address, backend transaction.Backend) {
	s.registry = reg
	s.chainEnabled = chainEnabled
	s.ethereumAddress = ethereumAddress
	s.contractAddress = contractAddress
	s.backend = backend

	s.setRouter(s.newRouter())
}

// ServeHTTP implements http.Handler interface.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// protect handler as it is changed by the Configure method
	s.handlerMu.RLock()
	h := s.handler
	s.handlerMu.RUnlock()

	h.ServeHTTP(w, r)
}
