// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ethersphere/mintgate/pkg/allowlist"
	"github.com/ethersphere/mintgate/pkg/jsonhttp"
	"github.com/ethersphere/mintgate/pkg/jsonhttp/jsonhttptest"
	"github.com/ethersphere/mintgate/pkg/merkle"
	registrymock "github.com/ethersphere/mintgate/pkg/registry/mock"
)

func TestDocumentDownload(t *testing.T) {
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

	t.Run("ok", func(t *testing.T) {
		var body []byte
		jsonhttptest.Request(t, client, http.MethodGet, "/lists/1/document", http.StatusOK,
			jsonhttptest.WithExpectedResponseHeader("Content-Disposition", `attachment; filename="list-1.json"`),
			jsonhttptest.WithNonEmptyResponseHeader("Content-Length"),
			jsonhttptest.WithPutResponseBody(&body),
		)

		var doc allowlist.Document
		if err := json.Unmarshal(body, &doc); err != nil {
			t.Fatal(err)
		}
		if err := doc.Verify(); err != nil {
			t.Fatal(err)
		}
		if doc.ListID != 1 {
			t.Fatalf("got list id %d, want 1", doc.ListID)
		}
		if len(doc.Entries) != len(testMembers) {
			t.Fatalf("got %d entries, want %d", len(doc.Entries), len(testMembers))
		}
		if want := mustList(t, testMembers).Root(); !doc.Root.Equal(want) {
			t.Fatalf("got root %s, want %s", doc.Root, want)
		}
	})

	t.Run("unknown list", func(t *testing.T) {
		jsonhttptest.Request(t, client, http.MethodGet, "/lists/55/document", http.StatusNotFound,
			jsonhttptest.WithExpectedJSONResponse(jsonhttp.StatusResponse{
				Message: "list not registered",
				Code:    http.StatusNotFound,
			}),
		)
	})

	t.Run("root-only list", func(t *testing.T) {
		jsonhttptest.Request(t, client, http.MethodGet, "/lists/2/document", http.StatusNotFound,
			jsonhttptest.WithExpectedJSONResponse(jsonhttp.StatusResponse{
				Message: "list has no member set",
				Code:    http.StatusNotFound,
			}),
		)
	})
}
