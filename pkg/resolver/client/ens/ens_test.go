// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ens_test

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/ethersphere/mintgate/pkg/resolver"
	"github.com/ethersphere/mintgate/pkg/resolver/client/ens"
)

func TestNewClient(t *testing.T) {
	c := ens.NewClient()

	if c.IsConnected() {
		t.Error("new client is connected")
	}
	if c.Endpoint != "" {
		t.Errorf("endpoint is %q, want empty", c.Endpoint)
	}
}

func TestConnect(t *testing.T) {
	testEndpoint := "test"

	t.Run("connect failure", func(t *testing.T) {
		wantErr := errors.New("dial failed")

		c := ens.NewClient(
			ens.WithDialFunc(func(ep string) (*ethclient.Client, error) {
				return nil, wantErr
			}),
		)
		if err := c.Connect(testEndpoint); !errors.Is(err, wantErr) {
			t.Errorf("got error %v, want %v", err, wantErr)
		}
		if c.IsConnected() {
			t.Error("client is connected")
		}
	})

	t.Run("connect success", func(t *testing.T) {
		c := ens.NewClient(
			ens.WithDialFunc(func(ep string) (*ethclient.Client, error) {
				return ethclient.NewClient(nil), nil
			}),
		)
		if err := c.Connect(testEndpoint); err != nil {
			t.Fatal(err)
		}
		if !c.IsConnected() {
			t.Error("client is not connected")
		}
		if c.Endpoint != testEndpoint {
			t.Errorf("endpoint is %q, want %q", c.Endpoint, testEndpoint)
		}
	})

	t.Run("missing dial function", func(t *testing.T) {
		c := ens.NewClient(
			ens.WithDialFunc(nil),
		)
		if err := c.Connect(testEndpoint); !errors.Is(err, ens.ErrNotImplemented) {
			t.Errorf("got error %v, want %v", err, ens.ErrNotImplemented)
		}
	})
}

func TestResolve(t *testing.T) {
	testName := "core.mintgate.eth"
	testAddress := common.HexToAddress("0x812fa48458e12e71fb4b12f75ef1afbd06bcfc36")

	connect := func(t *testing.T, c *ens.Client) {
		t.Helper()

		if err := c.Connect("test"); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("resolved address", func(t *testing.T) {
		c := ens.NewClient(
			ens.WithDialFunc(func(ep string) (*ethclient.Client, error) {
				return ethclient.NewClient(nil), nil
			}),
			ens.WithResolveFunc(func(_ bind.ContractBackend, name string) (ens.Address, error) {
				if name != testName {
					t.Errorf("got name %q, want %q", name, testName)
				}
				return testAddress, nil
			}),
		)
		connect(t, c)

		addr, err := c.Resolve(testName)
		if err != nil {
			t.Fatal(err)
		}
		if addr != testAddress {
			t.Errorf("got address %s, want %s", addr.Hex(), testAddress.Hex())
		}
	})

	t.Run("not connected", func(t *testing.T) {
		c := ens.NewClient(
			ens.WithResolveFunc(func(_ bind.ContractBackend, name string) (ens.Address, error) {
				return testAddress, nil
			}),
		)

		if _, err := c.Resolve(testName); !errors.Is(err, resolver.ErrNotConnected) {
			t.Errorf("got error %v, want %v", err, resolver.ErrNotConnected)
		}
	})

	t.Run("resolve failure", func(t *testing.T) {
		wantErr := errors.New("no addr record")

		c := ens.NewClient(
			ens.WithDialFunc(func(ep string) (*ethclient.Client, error) {
				return ethclient.NewClient(nil), nil
			}),
			ens.WithResolveFunc(func(_ bind.ContractBackend, name string) (ens.Address, error) {
				return ens.Address{}, wantErr
			}),
		)
		connect(t, c)

		if _, err := c.Resolve(testName); !errors.Is(err, wantErr) {
			t.Errorf("got error %v, want %v", err, wantErr)
		}
	})

	t.Run("zero address", func(t *testing.T) {
		c := ens.NewClient(
			ens.WithDialFunc(func(ep string) (*ethclient.Client, error) {
				return ethclient.NewClient(nil), nil
			}),
			ens.WithResolveFunc(func(_ bind.ContractBackend, name string) (ens.Address, error) {
				return ens.Address{}, nil
			}),
		)
		connect(t, c)

		if _, err := c.Resolve(testName); !errors.Is(err, resolver.ErrResolveFailed) {
			t.Errorf("got error %v, want %v", err, resolver.ErrResolveFailed)
		}
	})

	t.Run("missing resolve function", func(t *testing.T) {
		c := ens.NewClient(
			ens.WithResolveFunc(nil),
		)

		if _, err := c.Resolve(testName); !errors.Is(err, ens.ErrNotImplemented) {
			t.Errorf("got error %v, want %v", err, ens.ErrNotImplemented)
		}
	})
}

func TestClose(t *testing.T) {
	c := ens.NewClient()

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if c.IsConnected() {
		t.Error("client is connected after close")
	}
}
