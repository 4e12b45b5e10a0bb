// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"resenje.org/web"

	"github.com/ethersphere/mintgate/pkg/jsonhttp"
	"github.com/ethersphere/mintgate/pkg/logging/httpaccess"
)

func (s *server) setupRouting() {
	apiVersion := "v1" // only one api version exists, this should be configurable with more

	handle := func(router *mux.Router, path string, handler http.Handler) {
		router.Handle(path, handler)
		router.Handle("/"+apiVersion+path, handler)
	}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(jsonhttp.NotFoundHandler)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Mintgate")
	})

	router.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "User-agent: *\nDisallow: /")
	})

	handle(router, "/lists", jsonhttp.MethodHandler{
		"GET": http.HandlerFunc(s.listsGetHandler),
		"POST": web.ChainHandlers(
			s.newTracingHandler("lists-register"),
			jsonhttp.NewMaxBodyBytesHandler(maxRequestBodySize),
			web.FinalHandlerFunc(s.listsPostHandler),
		),
	})

	handle(router, "/lists/{id}", jsonhttp.MethodHandler{
		"GET": http.HandlerFunc(s.listGetHandler),
	})

	handle(router, "/lists/{id}/root", jsonhttp.MethodHandler{
		"PUT": web.ChainHandlers(
			s.newTracingHandler("lists-root-replace"),
			jsonhttp.NewMaxBodyBytesHandler(maxRequestBodySize),
			web.FinalHandlerFunc(s.listRootPutHandler),
		),
	})

	handle(router, "/lists/{id}/proofs/{address}", jsonhttp.MethodHandler{
		"GET": web.ChainHandlers(
			s.newTracingHandler("proofs-get"),
			web.FinalHandlerFunc(s.proofGetHandler),
		),
	})

	handle(router, "/lists/{id}/document", jsonhttp.MethodHandler{
		"GET": web.ChainHandlers(
			s.newTracingHandler("document-download"),
			web.FinalHandlerFunc(s.documentGetHandler),
		),
	})

	handle(router, "/lists/{id}/claims", jsonhttp.MethodHandler{
		"POST": web.ChainHandlers(
			s.newTracingHandler("claims-submit"),
			s.readyGuardHandler,
			jsonhttp.NewMaxBodyBytesHandler(maxRequestBodySize),
			web.FinalHandlerFunc(s.claimsPostHandler),
		),
	})

	handle(router, "/lists/{id}/claims/ws", http.HandlerFunc(s.claimsWsHandler))

	handle(router, "/lists/{id}/claims/{address}", jsonhttp.MethodHandler{
		"GET": http.HandlerFunc(s.claimGetHandler),
	})

	s.Handler = web.ChainHandlers(
		httpaccess.NewHTTPAccessLogHandler(s.logger, logrus.InfoLevel, s.tracer, "api access"),
		handlers.CompressHandler,
		s.pageviewMetricsHandler,
		func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if o := r.Header.Get("Origin"); o != "" && s.checkOrigin(r) {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
					w.Header().Set("Access-Control-Allow-Origin", o)
					w.Header().Set("Access-Control-Allow-Headers", "Origin, Accept, Authorization, Content-Type, X-Requested-With, Access-Control-Request-Headers, Access-Control-Request-Method")
					w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS, POST, PUT, DELETE")
					w.Header().Set("Access-Control-Max-Age", "3600")
				}
				h.ServeHTTP(w, r)
			})
		},
		web.FinalHandler(router),
	)
}

func (s *server) readyGuardHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.ready.Load() {
			s.logger.Tracef("not ready: rejected %s", r.URL.String())
			jsonhttp.ServiceUnavailable(w, "node is warming up")
			return
		}
		h.ServeHTTP(w, r)
	})
}

// checkOrigin returns true if the origin is not set or is equal to the request host.
func (s *server) checkOrigin(r *http.Request) bool {
	origin := r.Header["Origin"]
	if len(origin) == 0 {
		return true
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	hosts := append(s.CORSAllowedOrigins, scheme+"://"+r.Host)
	for _, v := range hosts {
		if equalASCIIFold(origin[0], v) || v == "*" {
			return true
		}
	}

	return false
}

// equalASCIIFold returns true if s is equal to t with ASCII case folding as
// defined in RFC 4790.
func equalASCIIFold(s, t string) bool {
	for s != "" && t != "" {
		sr, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		tr, size := utf8.DecodeRuneInString(t)
		t = t[size:]
		if sr == tr {
			continue
		}
		if 'A' <= sr && sr <= 'Z' {
			sr = sr + 'a' - 'A'
		}
		if 'A' <= tr && tr <= 'Z' {
			tr = tr + 'a' - 'A'
		}
		if sr != tr {
			return false
		}
	}
	return s == t
}
