// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crypto_test

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/ethersphere/mintgate/pkg/crypto"
)

func TestDefaultSigner(t *testing.T) {
	testBytes := []byte("test string")
	privKey, err := crypto.GenerateSecp256k1Key()
	if err != nil {
		t.Fatal(err)
	}

	signer := crypto.NewDefaultSigner(privKey)
	signature, err := signer.Sign(testBytes)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("OK - sign & recover", func(t *testing.T) {
		pubKey, err := crypto.Recover(signature, testBytes)
		if err != nil {
			t.Fatal(err)
		}

		if pubKey.X.Cmp(privKey.PublicKey.X) != 0 || pubKey.Y.Cmp(privKey.PublicKey.Y) != 0 {
			t.Fatalf("wanted %v but got %v", pubKey, &privKey.PublicKey)
		}
	})

	t.Run("OK - recover with invalid data", func(t *testing.T) {
		pubKey, err := crypto.Recover(signature, []byte("invalid"))
		if err != nil {
			t.Fatal(err)
		}

		if pubKey.X.Cmp(privKey.PublicKey.X) == 0 && pubKey.Y.Cmp(privKey.PublicKey.Y) == 0 {
			t.Fatal("should have been different")
		}
	})

	t.Run("invalid signature length", func(t *testing.T) {
		if _, err := crypto.Recover(signature[:64], testBytes); err != crypto.ErrInvalidLength {
			t.Fatalf("got error %v, want %v", err, crypto.ErrInvalidLength)
		}
	})
}

func TestDefaultSignerEthereumAddress(t *testing.T) {
	privKeyBytes, err := hex.DecodeString("2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae")
	if err != nil {
		t.Fatal(err)
	}
	privKey, err := crypto.DecodeSecp256k1PrivateKey(privKeyBytes)
	if err != nil {
		t.Fatal(err)
	}

	signer := crypto.NewDefaultSigner(privKey)
	address, err := signer.EthereumAddress()
	if err != nil {
		t.Fatal(err)
	}

	if want := common.HexToAddress("2f63cbeb054ce76050827e42dd75268f6b9d87c5"); address != want {
		t.Fatalf("address mismatch %s %s", address, want)
	}
}

func TestDefaultSignerSignTx(t *testing.T) {
	privKey, err := crypto.GenerateSecp256k1Key()
	if err != nil {
		t.Fatal(err)
	}
	signer := crypto.NewDefaultSigner(privKey)
	sender, err := signer.EthereumAddress()
	if err != nil {
		t.Fatal(err)
	}

	chainID := big.NewInt(10)
	to := common.HexToAddress("1815cac638d1525b29f655d2cfbc4400bd5e9b4b")
	tx := types.NewTransaction(42, to, big.NewInt(1), 21000, big.NewInt(1000000000), nil)

	signedTx, err := signer.SignTx(tx, chainID)
	if err != nil {
		t.Fatal(err)
	}

	recovered, err := types.Sender(types.NewEIP155Signer(chainID), signedTx)
	if err != nil {
		t.Fatal(err)
	}
	if recovered != sender {
		t.Fatalf("recovered sender %s, want %s", recovered, sender)
	}
	if signedTx.Nonce() != 42 {
		t.Errorf("got nonce %d, want 42", signedTx.Nonce())
	}
}
