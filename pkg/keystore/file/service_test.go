// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package file_test

import (
	"bytes"
	"io/ioutil"
	"os"
	"testing"

	"github.com/ethersphere/mintgate/pkg/crypto"
	"github.com/ethersphere/mintgate/pkg/keystore/file"
	"github.com/ethersphere/mintgate/pkg/keystore/test"
)

func TestService(t *testing.T) {
	dir, err := ioutil.TempDir("", "mintgate-keystore-file-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	test.Service(t, file.New(dir))
}

func TestServicePersistence(t *testing.T) {
	dir, err := ioutil.TempDir("", "mintgate-keystore-file-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	k1, created, err := file.New(dir).Key("publisher", "password4321")
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("key is not created")
	}

	// A new service over the same directory sees the same key.
	k2, created, err := file.New(dir).Key("publisher", "password4321")
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("key is created, but should not be")
	}
	if !bytes.Equal(crypto.EncodeSecp256k1PrivateKey(k1), crypto.EncodeSecp256k1PrivateKey(k2)) {
		t.Fatal("keys across service instances are not equal")
	}
}
