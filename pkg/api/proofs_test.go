// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/ethersphere/mintgate/pkg/allowlist"
	"github.com/ethersphere/mintgate/pkg/gate"
	"github.com/ethersphere/mintgate/pkg/jsonhttp"
	"github.com/ethersphere/mintgate/pkg/jsonhttp/jsonhttptest"
	"github.com/ethersphere/mintgate/pkg/merkle"
	registrymock "github.com/ethersphere/mintgate/pkg/registry/mock"
)

func TestProofs(t *testing.T) {
	reg := registrymock.NewRegistry()
	g := newTestGate(t, reg)
	client, _ := newTestServer(t, testServerOptions{
		Gate:     g,
		Registry: reg,
	})

	if _, err := g.Register(context.Background(), 1, "drop", testMembers); err != nil {
		t.Fatal(err)
	}
	if _, err := g.RegisterRoot(context.Background(), 2, "root only", merkle.Leaf([]byte("opaque"))); err != nil {
		t.Fatal(err)
	}

	l := mustList(t, testMembers)

	t.Run("ok", func(t *testing.T) {
		member := testMembers[2]
		proof, err := l.ProofFor(member)
		if err != nil {
			t.Fatal(err)
		}

		jsonhttptest.Request(t, client, http.MethodGet, fmt.Sprintf("/lists/1/proofs/%s", member.Hex()), http.StatusOK,
			jsonhttptest.WithExpectedJSONResponse(gate.Membership{
				Identity: member,
				Leaf:     allowlist.LeafOf(member),
				Proof:    proof,
				Root:     l.Root(),
			}),
		)

		// The issued proof must verify against the registered root.
		if !merkle.Verify(allowlist.LeafOf(member), proof, l.Root()) {
			t.Fatal("issued proof does not verify")
		}
	})

	t.Run("not a member", func(t *testing.T) {
		jsonhttptest.Request(t, client, http.MethodGet, "/lists/1/proofs/0x9999999999999999999999999999999999999999", http.StatusNotFound,
			jsonhttptest.WithExpectedJSONResponse(jsonhttp.StatusResponse{
				Message: "address not a member",
				Code:    http.StatusNotFound,
			}),
		)
	})

	t.Run("unknown list", func(t *testing.T) {
		jsonhttptest.Request(t, client, http.MethodGet, fmt.Sprintf("/lists/55/proofs/%s", testMembers[0].Hex()), http.StatusNotFound,
			jsonhttptest.WithExpectedJSONResponse(jsonhttp.StatusResponse{
				Message: "list not registered",
				Code:    http.StatusNotFound,
			}),
		)
	})

	t.Run("root-only list", func(t *testing.T) {
		jsonhttptest.Request(t, client, http.MethodGet, fmt.Sprintf("/lists/2/proofs/%s", testMembers[0].Hex()), http.StatusNotFound,
			jsonhttptest.WithExpectedJSONResponse(jsonhttp.StatusResponse{
				Message: "list has no member set",
				Code:    http.StatusNotFound,
			}),
		)
	})

	t.Run("invalid address", func(t *testing.T) {
		jsonhttptest.Request(t, client, http.MethodGet, "/lists/1/proofs/nothex", http.StatusBadRequest,
			jsonhttptest.WithExpectedJSONResponse(jsonhttp.StatusResponse{
				Message: "invalid address",
				Code:    http.StatusBadRequest,
			}),
		)
	})
}
