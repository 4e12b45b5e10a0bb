// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ens

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/ethersphere/mintgate/pkg/resolver"
	"github.com/ethersphere/mintgate/pkg/resolver/client"
)

// Address is the Ethereum account address a name resolves to.
type Address = resolver.Address

// Make sure Client implements the client.Interface interface.
var _ client.Interface = (*Client)(nil)

// errNotImplemented denotes that a resolution function is not set.
var errNotImplemented = errors.New("function not implemented")

type dialType func(string) (*ethclient.Client, error)
type resolveType func(bind.ContractBackend, string) (Address, error)

// Client is a name resolution client that can connect to ENS via an
// Ethereum endpoint.
type Client struct {
	mu        sync.Mutex
	Endpoint  string
	ethCl     *ethclient.Client
	dialFn    dialType
	resolveFn resolveType
}

// Option is a function that applies an option to a Client.
type Option func(*Client)

// NewClient will return a new Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		dialFn:    wrapDial,
		resolveFn: wrapResolve,
	}

	// Apply all options to the Client.
	for _, o := range opts {
		o(c)
	}

	return c
}

// Connect implements the client.Interface interface.
func (c *Client) Connect(ep string) error {
	if c.dialFn == nil {
		return fmt.Errorf("%w: dialFn", errNotImplemented)
	}

	ethCl, err := c.dialFn(ep)
	if err != nil {
		return err
	}

	// Lock and set the parameters.
	c.mu.Lock()
	c.ethCl = ethCl
	c.Endpoint = ep
	c.mu.Unlock()

	return nil
}

// IsConnected returns true if there is an active RPC connection with an
// Ethereum node at the configured endpoint.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ethCl != nil
}

// Resolve implements the resolver.Interface. The name is resolved to the
// Ethereum address its ENS addr record points to.
func (c *Client) Resolve(name string) (Address, error) {
	if c.resolveFn == nil {
		return Address{}, fmt.Errorf("%w: resolveFn", errNotImplemented)
	}

	// Obtain our copy of the client under lock.
	c.mu.Lock()
	ethCl := c.ethCl
	c.mu.Unlock()

	if ethCl == nil {
		return Address{}, resolver.ErrNotConnected
	}

	addr, err := c.resolveFn(ethCl, name)
	if err != nil {
		return Address{}, err
	}

	// A name pointing at the zero address is as good as no record at all.
	if addr == (Address{}) {
		return Address{}, fmt.Errorf("%w: %s resolved to the zero address", resolver.ErrResolveFailed, name)
	}

	return addr, nil
}

// Close closes the RPC connection with the client, terminating all unfinished
// requests.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ethCl != nil {
		c.ethCl.Close()
	}
	c.ethCl = nil

	return nil
}
