// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package api provides the operator facing HTTP API of mintgate: list
// registration, proof retrieval, distribution document downloads and the
// claim endpoints.
package api

import (
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/ethersphere/mintgate/pkg/gate"
	"github.com/ethersphere/mintgate/pkg/logging"
	m "github.com/ethersphere/mintgate/pkg/metrics"
	"github.com/ethersphere/mintgate/pkg/ratelimit"
	"github.com/ethersphere/mintgate/pkg/registry"
	"github.com/ethersphere/mintgate/pkg/tracing"
	"go.uber.org/atomic"
)

const (
	// maxRequestBodySize protects the body-reading endpoints. Member lists in
	// the tens of thousands still fit comfortably.
	maxRequestBodySize = 1024 * 1024

	// maxProofLength caps accepted proofs. A full proof for 2^64 leaves has
	// 64 siblings, anything longer is garbage.
	maxProofLength = 64
)

type Service interface {
	http.Handler
	m.Collector
	io.Closer
	// SetReady marks the node as fully booted. Claim submissions made before
	// that are answered with Service Unavailable.
	SetReady()
}

type server struct {
	gate     gate.Service
	registry registry.Interface
	logger   logging.Logger
	tracer   *tracing.Tracer
	Options
	http.Handler
	metrics metrics

	limiter *ratelimit.Limiter
	ready   *atomic.Bool
	wsWg    sync.WaitGroup // wait for all websockets to close on exit
	quit    chan struct{}
}

type Options struct {
	CORSAllowedOrigins []string
	WsPingPeriod       time.Duration
	// ClaimRate is the refill interval of a client's claim budget. Zero
	// disables rate limiting.
	ClaimRate  time.Duration
	ClaimBurst int
}

func New(gateService gate.Service, reg registry.Interface, logger logging.Logger, tracer *tracing.Tracer, o Options) Service {
	if o.WsPingPeriod == 0 {
		o.WsPingPeriod = 45 * time.Second
	}
	if o.ClaimBurst == 0 {
		o.ClaimBurst = 1
	}

	s := &server{
		gate:     gateService,
		registry: reg,
		logger:   logger,
		tracer:   tracer,
		Options:  o,
		metrics:  newMetrics(),
		ready:    atomic.NewBool(false),
		quit:     make(chan struct{}),
	}
	if o.ClaimRate > 0 {
		s.limiter = ratelimit.New(o.ClaimRate, o.ClaimBurst)
	}

	s.setupRouting()

	return s
}

func (s *server) SetReady() {
	s.ready.Store(true)
}

// Close waits for open websocket connections to drain before returning.
func (s *server) Close() error {
	s.logger.Info("api shutting down")
	close(s.quit)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wsWg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		return errors.New("api shutting down with open websockets")
	}

	return nil
}

func (s *server) newTracingHandler(spanName string) func(h http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := s.tracer.WithContextFromHTTPHeaders(r.Context(), r.Header)
			if err != nil && !errors.Is(err, tracing.ErrContextNotFound) {
				s.logger.Debugf("span '%s': extract tracing context: %v", spanName, err)
				// ignore
			}

			span, _, ctx := s.tracer.StartSpanFromContext(ctx, spanName, s.logger)
			defer span.Finish()

			err = s.tracer.AddContextHTTPHeader(ctx, r.Header)
			if err != nil {
				s.logger.Debugf("span '%s': inject tracing context: %v", spanName, err)
				// ignore
			}

			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
