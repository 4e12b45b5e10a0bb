// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package debugapi_test

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"resenje.org/web"

	"github.com/ethersphere/mintgate/pkg/debugapi"
	"github.com/ethersphere/mintgate/pkg/logging"
	"github.com/ethersphere/mintgate/pkg/registry"
	"github.com/ethersphere/mintgate/pkg/transaction"
)

type testServerOptions struct {
	BasicOnly       bool
	Registry        registry.Interface
	ChainEnabled    bool
	EthereumAddress common.Address
	ContractAddress common.Address
	Backend         transaction.Backend
}

func newTestServer(t *testing.T, o testServerOptions) *http.Client {
	t.Helper()

	s := debugapi.New(logging.New(ioutil.Discard, 0), nil, nil)
	if !o.BasicOnly {
		s.Configure(o.Registry, o.ChainEnabled, o.EthereumAddress, o.ContractAddress, o.Backend)
	}
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)

	return &http.Client{
		Transport: web.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			u, err := url.Parse(ts.URL + r.URL.String())
			if err != nil {
				return nil, err
			}
			r.URL = u
			return ts.Client().Transport.RoundTrip(r)
		}),
	}
}
