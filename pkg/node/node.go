// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package node defines the concept of a mintgate node
// by bootstrapping and injecting all necessary
// dependencies.
package node

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ethersphere/mintgate/pkg/api"
	"github.com/ethersphere/mintgate/pkg/crypto"
	"github.com/ethersphere/mintgate/pkg/debugapi"
	"github.com/ethersphere/mintgate/pkg/gate"
	"github.com/ethersphere/mintgate/pkg/logging"
	m "github.com/ethersphere/mintgate/pkg/metrics"
	"github.com/ethersphere/mintgate/pkg/registry"
	"github.com/ethersphere/mintgate/pkg/tracing"
	"github.com/ethersphere/mintgate/pkg/transaction"
)

// Mintgate is a fully assembled node. Services are wired at construction
// and torn down in reverse dependency order by Shutdown.
type Mintgate struct {
	apiCloser         io.Closer
	apiServer         *http.Server
	debugAPIServer    *http.Server
	errorLogWriter    *io.PipeWriter
	tracerCloser      io.Closer
	stateStoreCloser  io.Closer
	transactionCloser io.Closer
	ethClientCloser   func()
}

type Options struct {
	DataDir            string
	APIAddr            string
	DebugAPIAddr       string
	CORSAllowedOrigins []string
	TracingEnabled     bool
	TracingEndpoint    string
	TracingServiceName string
	ChainEndpoint      string
	ContractAddress    string
	ProofCacheCapacity int
	ClaimRate          time.Duration
	ClaimBurst         int
	WsPingPeriod       time.Duration
}

// NewMintgate assembles a node from the options. The signer is only
// consulted when a chain endpoint is configured; a nil signer with chain
// publication enabled is an error.
func NewMintgate(signer crypto.Signer, logger logging.Logger, o Options) (mg *Mintgate, err error) {
	tracer, tracerCloser, err := tracing.NewTracer(&tracing.Options{
		Enabled:     o.TracingEnabled,
		Endpoint:    o.TracingEndpoint,
		ServiceName: o.TracingServiceName,
	})
	if err != nil {
		return nil, fmt.Errorf("tracer: %w", err)
	}

	mg = &Mintgate{
		errorLogWriter: logger.WriterLevel(logrus.ErrorLevel),
		tracerCloser:   tracerCloser,
	}

	defer func(mg *Mintgate) {
		// tear down the partially constructed node on error
		if err != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err2 := mg.Shutdown(ctx); err2 != nil {
				logger.Errorf("got error while shutting down: %v", err2)
			}
		}
	}(mg)

	var debugAPIService *debugapi.Service
	if o.DebugAPIAddr != "" {
		debugAPIListener, err := net.Listen("tcp", o.DebugAPIAddr)
		if err != nil {
			return nil, fmt.Errorf("debug api listener: %w", err)
		}

		// expose pprof and metrics before the rest of the node is up
		debugAPIService = debugapi.New(logger, tracer, o.CORSAllowedOrigins)

		debugAPIServer := &http.Server{
			IdleTimeout:       30 * time.Second,
			ReadHeaderTimeout: 3 * time.Second,
			Handler:           debugAPIService,
			ErrorLog:          log.New(mg.errorLogWriter, "", 0),
		}

		go func() {
			logger.Infof("debug api address: %s", debugAPIListener.Addr())

			if err := debugAPIServer.Serve(debugAPIListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Debugf("debug api server: %v", err)
				logger.Error("unable to serve debug api")
			}
		}()

		mg.debugAPIServer = debugAPIServer
	}

	stateStore, err := InitStateStore(logger, o.DataDir)
	if err != nil {
		return nil, err
	}
	mg.stateStoreCloser = stateStore

	registryService := registry.New(stateStore, logger)

	var (
		chainBackend    transaction.Backend
		ethereumAddress common.Address
		contractAddress common.Address
		publisher       gate.Publisher
	)
	chainEnabled := o.ChainEndpoint != ""
	if chainEnabled {
		if signer == nil {
			return nil, errors.New("chain endpoint configured without a signer")
		}

		backend, ethClientCloser, ethAddress, chainID, transactionService, err := InitChain(
			context.Background(),
			logger,
			stateStore,
			o.ChainEndpoint,
			signer,
		)
		if err != nil {
			return nil, fmt.Errorf("init chain: %w", err)
		}
		chainBackend = backend
		ethereumAddress = ethAddress
		mg.ethClientCloser = ethClientCloser
		mg.transactionCloser = transactionService

		logger.Infof("using chain with network id %d at %s", chainID.Uint64(), o.ChainEndpoint)

		gateContract, addr, err := InitGateContract(logger, chainID, transactionService, o.ContractAddress)
		if err != nil {
			return nil, fmt.Errorf("init gate contract: %w", err)
		}
		contractAddress = addr
		publisher = gateContract
	}

	gateService, err := gate.New(stateStore, registryService, logger, publisher, &gate.Options{
		ProofCacheCapacity: o.ProofCacheCapacity,
	})
	if err != nil {
		return nil, fmt.Errorf("gate service: %w", err)
	}

	var apiService api.Service
	if o.APIAddr != "" {
		apiListener, err := net.Listen("tcp", o.APIAddr)
		if err != nil {
			return nil, fmt.Errorf("api listener: %w", err)
		}

		apiService = api.New(gateService, registryService, logger, tracer, api.Options{
			CORSAllowedOrigins: o.CORSAllowedOrigins,
			WsPingPeriod:       o.WsPingPeriod,
			ClaimRate:          o.ClaimRate,
			ClaimBurst:         o.ClaimBurst,
		})

		apiServer := &http.Server{
			IdleTimeout:       30 * time.Second,
			ReadHeaderTimeout: 3 * time.Second,
			Handler:           apiService,
			ErrorLog:          log.New(mg.errorLogWriter, "", 0),
		}

		go func() {
			logger.Infof("api address: %s", apiListener.Addr())

			if err := apiServer.Serve(apiListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Debugf("api server: %v", err)
				logger.Error("unable to serve api")
			}
		}()

		mg.apiServer = apiServer
		mg.apiCloser = apiService
	}

	if debugAPIService != nil {
		// register metrics from components
		if c, ok := registryService.(m.Collector); ok {
			debugAPIService.MustRegisterMetrics(c.Metrics()...)
		}
		if c, ok := gateService.(m.Collector); ok {
			debugAPIService.MustRegisterMetrics(c.Metrics()...)
		}
		if c, ok := chainBackend.(m.Collector); ok {
			debugAPIService.MustRegisterMetrics(c.Metrics()...)
		}
		if apiService != nil {
			debugAPIService.MustRegisterMetrics(apiService.Metrics()...)
		}
		if l, ok := logger.(m.Collector); ok {
			debugAPIService.MustRegisterMetrics(l.Metrics()...)
		}

		// inject dependencies and enable the full debug api
		debugAPIService.Configure(registryService, chainEnabled, ethereumAddress, contractAddress, chainBackend)
	}

	if apiService != nil {
		apiService.SetReady()
	}

	return mg, nil
}

func (mg *Mintgate) Shutdown(ctx context.Context) error {
	var mErr error

	// tryClose is a convenient closure which decrease
	// repetitive io.Closer tryClose procedure.
	tryClose := func(c io.Closer, errMsg string) {
		if c == nil {
			return
		}
		if err := c.Close(); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("%s: %w", errMsg, err))
		}
	}

	tryClose(mg.apiCloser, "api")

	var eg errgroup.Group
	if mg.apiServer != nil {
		eg.Go(func() error {
			if err := mg.apiServer.Shutdown(ctx); err != nil {
				return fmt.Errorf("api server: %w", err)
			}
			return nil
		})
	}
	if mg.debugAPIServer != nil {
		eg.Go(func() error {
			if err := mg.debugAPIServer.Shutdown(ctx); err != nil {
				return fmt.Errorf("debug api server: %w", err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		mErr = multierror.Append(mErr, err)
	}

	tryClose(mg.transactionCloser, "transaction")
	if mg.ethClientCloser != nil {
		mg.ethClientCloser()
	}

	tryClose(mg.tracerCloser, "tracer")
	tryClose(mg.stateStoreCloser, "statestore")

	if err := mg.errorLogWriter.Close(); err != nil {
		mErr = multierror.Append(mErr, fmt.Errorf("error log writer: %w", err))
	}

	return mErr
}
