// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keystore

import (
	"crypto/ecdsa"
	"errors"
)

// ErrInvalidPassword is returned when the password cannot decrypt the
// stored private key.
var ErrInvalidPassword = errors.New("invalid password")

// Service manages named private keys.
type Service interface {
	// Key returns the private key stored under name, decrypted with the
	// provided password. If no key is stored under name a new one is
	// generated, persisted under the password, and returned with created
	// set to true.
	Key(name, password string) (k *ecdsa.PrivateKey, created bool, err error)
	// Exists returns true if a key with the specified name exists.
	Exists(name string) (bool, error)
}
