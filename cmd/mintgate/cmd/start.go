// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kardianos/service"
	"github.com/spf13/cobra"

	"github.com/ethersphere/mintgate"
	"github.com/ethersphere/mintgate/pkg/crypto"
	"github.com/ethersphere/mintgate/pkg/keystore"
	filekeystore "github.com/ethersphere/mintgate/pkg/keystore/file"
	memkeystore "github.com/ethersphere/mintgate/pkg/keystore/mem"
	"github.com/ethersphere/mintgate/pkg/logging"
	"github.com/ethersphere/mintgate/pkg/node"
)

const (
	serviceName = "MintgateSvc"
)

func (c *command) initStartCmd() (err error) {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a mintgate node",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if len(args) > 0 {
				return cmd.Help()
			}

			v := strings.ToLower(c.config.GetString(optionNameVerbosity))
			logger, err := newLogger(cmd, v)
			if err != nil {
				return fmt.Errorf("new logger: %v", err)
			}

			isWindowsService, err := isWindowsService()
			if err != nil {
				return fmt.Errorf("failed to determine if we are running in service: %w", err)
			}

			logger.Infof("version: %v", mintgate.Version)

			debugAPIAddr := c.config.GetString(optionNameDebugAPIAddr)
			if !c.config.GetBool(optionNameDebugAPIEnable) {
				debugAPIAddr = ""
			}

			// The signer unlocks a chain key, so it is only configured
			// when roots are published to a chain backend.
			var signer crypto.Signer
			if c.config.GetString(optionNameChainEndpoint) != "" {
				signerConfig, err := c.configureSigner(cmd, logger)
				if err != nil {
					return err
				}
				signer = signerConfig.signer
			}

			mg, err := node.NewMintgate(signer, logger, node.Options{
				DataDir:            c.config.GetString(optionNameDataDir),
				APIAddr:            c.config.GetString(optionNameAPIAddr),
				DebugAPIAddr:       debugAPIAddr,
				CORSAllowedOrigins: c.config.GetStringSlice(optionCORSAllowedOrigins),
				TracingEnabled:     c.config.GetBool(optionNameTracingEnabled),
				TracingEndpoint:    c.config.GetString(optionNameTracingEndpoint),
				TracingServiceName: c.config.GetString(optionNameTracingServiceName),
				ChainEndpoint:      c.config.GetString(optionNameChainEndpoint),
				ContractAddress:    c.config.GetString(optionNameContractAddress),
				ProofCacheCapacity: c.config.GetInt(optionNameProofCacheCapacity),
				ClaimRate:          c.config.GetDuration(optionNameClaimRate),
				ClaimBurst:         c.config.GetInt(optionNameClaimBurst),
				WsPingPeriod:       60 * time.Second,
			})
			if err != nil {
				return err
			}

			// Wait for termination or interrupt signals.
			// We want to clean up things at the end.
			interruptChannel := make(chan os.Signal, 1)
			signal.Notify(interruptChannel, syscall.SIGINT, syscall.SIGTERM)

			p := &program{
				start: func() {
					// Block main goroutine until it is interrupted
					sig := <-interruptChannel

					logger.Debugf("received signal: %v", sig)
					logger.Info("shutting down")
				},
				stop: func() {
					// Shutdown
					done := make(chan struct{})
					go func() {
						defer close(done)

						ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
						defer cancel()

						if err := mg.Shutdown(ctx); err != nil {
							logger.Errorf("shutdown: %v", err)
						}
					}()

					// If shutdown function is blocking too long,
					// allow process termination by receiving another signal.
					select {
					case sig := <-interruptChannel:
						logger.Debugf("received signal: %v", sig)
					case <-done:
					}
				},
			}

			if isWindowsService {
				s, err := service.New(p, &service.Config{
					Name:        serviceName,
					DisplayName: "Mintgate",
					Description: "Mintgate, a Merkle allowlist claim gate.",
				})
				if err != nil {
					return err
				}

				if err = s.Run(); err != nil {
					return err
				}
			} else {
				// start blocks until some interrupt is received
				p.start()
				p.stop()
			}

			return nil
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.config.BindPFlags(cmd.Flags())
		},
	}

	c.setAllFlags(cmd)
	c.root.AddCommand(cmd)

	return nil
}

type program struct {
	start func()
	stop  func()
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	go p.start()
	return nil
}

func (p *program) Stop(s service.Service) error {
	p.stop()
	return nil
}

type signerConfig struct {
	signer  crypto.Signer
	address common.Address
}

func (c *command) configureSigner(cmd *cobra.Command, logger logging.Logger) (config *signerConfig, err error) {
	var ks keystore.Service
	if c.config.GetString(optionNameDataDir) == "" {
		ks = memkeystore.New()
		logger.Warning("data directory not provided, keys are not persisted")
	} else {
		ks = filekeystore.New(filepath.Join(c.config.GetString(optionNameDataDir), "keys"))
	}

	var password string
	if p := c.config.GetString(optionNamePassword); p != "" {
		password = p
	} else if pf := c.config.GetString(optionNamePasswordFile); pf != "" {
		b, err := ioutil.ReadFile(pf)
		if err != nil {
			return nil, err
		}
		password = string(bytes.Trim(b, "\n"))
	} else {
		// if the key exists prompt for a password to unlock it
		// otherwise prompt for a new password with confirmation to create one
		exists, err := ks.Exists("mintgate")
		if err != nil {
			return nil, err
		}
		if exists {
			password, err = terminalPromptPassword(cmd, c.passwordReader, "Password")
			if err != nil {
				return nil, err
			}
		} else {
			password, err = terminalPromptCreatePassword(cmd, c.passwordReader)
			if err != nil {
				return nil, err
			}
		}
	}

	privateKey, created, err := ks.Key("mintgate", password)
	if err != nil {
		return nil, fmt.Errorf("mintgate key: %w", err)
	}
	signer := crypto.NewDefaultSigner(privateKey)

	address, err := signer.EthereumAddress()
	if err != nil {
		return nil, err
	}
	if created {
		logger.Infof("new chain key created, ethereum address: %x", address)
	} else {
		logger.Infof("using existing chain key, ethereum address: %x", address)
	}

	return &signerConfig{
		signer:  signer,
		address: address,
	}, nil
}
