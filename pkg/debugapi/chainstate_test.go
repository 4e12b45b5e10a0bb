// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package debugapi_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethersphere/mintgate/pkg/debugapi"
	"github.com/ethersphere/mintgate/pkg/jsonhttp"
	"github.com/ethersphere/mintgate/pkg/jsonhttp/jsonhttptest"
	registrymock "github.com/ethersphere/mintgate/pkg/registry/mock"
	"github.com/ethersphere/mintgate/pkg/transaction/backendmock"
)

func TestChainState(t *testing.T) {
	ethereumAddress := common.HexToAddress("0xabcd")
	contractAddress := common.HexToAddress("0xdcba")

	t.Run("ok", func(t *testing.T) {
		client := newTestServer(t, testServerOptions{
			Registry:        registrymock.NewRegistry(),
			ChainEnabled:    true,
			EthereumAddress: ethereumAddress,
			ContractAddress: contractAddress,
			Backend: backendmock.New(
				backendmock.WithBlockNumberFunc(func(context.Context) (uint64, error) {
					return 100, nil
				}),
			),
		})

		jsonhttptest.Request(t, client, http.MethodGet, "/chainstate", http.StatusOK,
			jsonhttptest.WithExpectedJSONResponse(debugapi.ChainStateResponse{
				EthereumAddress: ethereumAddress,
				ContractAddress: contractAddress,
				Block:           100,
			}),
		)
	})

	t.Run("backend error", func(t *testing.T) {
		client := newTestServer(t, testServerOptions{
			Registry:        registrymock.NewRegistry(),
			ChainEnabled:    true,
			EthereumAddress: ethereumAddress,
			ContractAddress: contractAddress,
			Backend: backendmock.New(
				backendmock.WithBlockNumberFunc(func(context.Context) (uint64, error) {
					return 0, errors.New("rpc: connection refused")
				}),
			),
		})

		jsonhttptest.Request(t, client, http.MethodGet, "/chainstate", http.StatusInternalServerError,
			jsonhttptest.WithExpectedJSONResponse(jsonhttp.StatusResponse{
				Message: "cannot read block number",
				Code:    http.StatusInternalServerError,
			}),
		)
	})

	t.Run("chain disabled", func(t *testing.T) {
		client := newTestServer(t, testServerOptions{
			Registry: registrymock.NewRegistry(),
		})

		jsonhttptest.Request(t, client, http.MethodGet, "/chainstate", http.StatusNotFound,
			jsonhttptest.WithExpectedJSONResponse(jsonhttp.StatusResponse{
				Message: "Not Found",
				Code:    http.StatusNotFound,
			}),
		)
	})
}
