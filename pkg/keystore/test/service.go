// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package test provides tests for implementations
// of the keystore.Service interface.
package test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ethersphere/mintgate/pkg/crypto"
	"github.com/ethersphere/mintgate/pkg/keystore"
)

// Service is a utility testing function that can be used to test
// implementations of the keystore.Service interface.
func Service(t *testing.T, s keystore.Service) {
	t.Helper()

	exists, err := s.Exists("gate")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("key should not exist")
	}

	// create a new key
	k1, created, err := s.Key("gate", "password4321")
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("key is not created")
	}
	if k1 == nil {
		t.Fatal("nil key")
	}

	exists, err = s.Exists("gate")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("key should exist")
	}

	// get the existing key
	k2, created, err := s.Key("gate", "password4321")
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("key is created, but should not be")
	}
	if !bytes.Equal(crypto.EncodeSecp256k1PrivateKey(k1), crypto.EncodeSecp256k1PrivateKey(k2)) {
		t.Fatal("two keys for the same name are not equal")
	}

	// invalid password
	if _, _, err := s.Key("gate", "invalid password"); !errors.Is(err, keystore.ErrInvalidPassword) {
		t.Fatalf("got error %v, want %v", err, keystore.ErrInvalidPassword)
	}

	// a different name yields a different key
	k3, created, err := s.Key("publisher", "password4321")
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("key is not created")
	}
	if bytes.Equal(crypto.EncodeSecp256k1PrivateKey(k1), crypto.EncodeSecp256k1PrivateKey(k3)) {
		t.Fatal("keys with different names are equal")
	}
}
