// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"resenje.org/web"

	"github.com/ethersphere/mintgate/pkg/api"
	"github.com/ethersphere/mintgate/pkg/gate"
	"github.com/ethersphere/mintgate/pkg/logging"
	"github.com/ethersphere/mintgate/pkg/registry"
	registrymock "github.com/ethersphere/mintgate/pkg/registry/mock"
	statestore "github.com/ethersphere/mintgate/pkg/statestore/mock"
)

type testServerOptions struct {
	Gate         gate.Service
	Registry     registry.Interface
	Logger       logging.Logger
	NotReady     bool
	ClaimRate    time.Duration
	ClaimBurst   int
	WsPingPeriod time.Duration
}

func newTestServer(t *testing.T, o testServerOptions) (*http.Client, *httptest.Server) {
	t.Helper()

	if o.Logger == nil {
		o.Logger = logging.New(io.Discard, 0)
	}
	if o.Registry == nil {
		o.Registry = registrymock.NewRegistry()
	}
	s := api.New(o.Gate, o.Registry, o.Logger, nil, api.Options{
		ClaimRate:    o.ClaimRate,
		ClaimBurst:   o.ClaimBurst,
		WsPingPeriod: o.WsPingPeriod,
	})
	if !o.NotReady {
		s.SetReady()
	}
	t.Cleanup(func() { _ = s.Close() })
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)

	client := &http.Client{
		Transport: web.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			u, err := url.Parse(ts.URL + r.URL.String())
			if err != nil {
				return nil, err
			}
			r.URL = u
			return ts.Client().Transport.RoundTrip(r)
		}),
	}
	return client, ts
}

// newTestGate builds a real gate service over in-memory stores, so that
// handler tests exercise the full claim path.
func newTestGate(t *testing.T, reg registry.Interface) gate.Service {
	t.Helper()

	logger := logging.New(io.Discard, 0)
	store := statestore.NewStateStore()
	t.Cleanup(func() { _ = store.Close() })
	g, err := gate.New(store, reg, logger, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return g
}
