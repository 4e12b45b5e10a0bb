// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package test provides the shared acceptance suite that every state store
// implementation must pass.
package test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/ethersphere/mintgate/pkg/storage"
)

const (
	key1 = "key1" // stores the serialized type
	key2 = "key2" // stores a json array
)

var (
	value1 = &serializing{value: "value1"}
	value2 = []string{"a", "b", "c"}
)

type serializing struct {
	value           string
	marshalCalled   bool
	unmarshalCalled bool
}

func (st *serializing) MarshalBinary() (data []byte, err error) {
	d := []byte(st.value)
	st.marshalCalled = true

	return d, nil
}

func (st *serializing) UnmarshalBinary(data []byte) (err error) {
	st.value = string(data)
	st.unmarshalCalled = true
	return nil
}

// Run tests the given store implementation against the suite.
func Run(t *testing.T, f func(t *testing.T) storage.StateStorer) {
	t.Helper()

	t.Run("put get", func(t *testing.T) {
		store := f(t)

		insertValues(t, store)
		testPersistedValues(t, store)
	})

	t.Run("not found", func(t *testing.T) {
		store := f(t)

		var v string
		if err := store.Get("missing", &v); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("got %v, want %v", err, storage.ErrNotFound)
		}
	})

	t.Run("delete", func(t *testing.T) {
		store := f(t)

		insertValues(t, store)
		if err := store.Delete(key2); err != nil {
			t.Fatal(err)
		}
		var v []string
		if err := store.Get(key2, &v); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("got %v, want %v", err, storage.ErrNotFound)
		}
		// deleting an absent key is not an error
		if err := store.Delete("missing"); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		store := f(t)

		if err := store.Put(key1, "before"); err != nil {
			t.Fatal(err)
		}
		if err := store.Put(key1, "after"); err != nil {
			t.Fatal(err)
		}
		var v string
		if err := store.Get(key1, &v); err != nil {
			t.Fatal(err)
		}
		if v != "after" {
			t.Fatalf("got %q, want %q", v, "after")
		}
	})

	t.Run("iterator", func(t *testing.T) {
		store := f(t)

		testStoreIterator(t, store)
	})
}

// RunPersist tests that values survive closing and reopening the store in
// the same directory.
func RunPersist(t *testing.T, f func(t *testing.T, dir string) storage.StateStorer) {
	t.Helper()

	dir := t.TempDir()

	store := f(t, dir)
	insertValues(t, store)
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	store = f(t, dir)
	defer store.Close()
	testPersistedValues(t, store)
}

func insertValues(t *testing.T, store storage.StateStorer) {
	t.Helper()

	if err := store.Put(key1, value1); err != nil {
		t.Fatal(err)
	}
	if !value1.marshalCalled {
		t.Fatal("binary marshaler not called on serialized type")
	}
	if err := store.Put(key2, value2); err != nil {
		t.Fatal(err)
	}
}

func testPersistedValues(t *testing.T, store storage.StateStorer) {
	t.Helper()

	v := &serializing{}
	if err := store.Get(key1, v); err != nil {
		t.Fatal(err)
	}
	if !v.unmarshalCalled {
		t.Fatal("binary unmarshaler not called on serialized type")
	}
	if v.value != value1.value {
		t.Fatalf("expected persisted to be %s but got %s", value1.value, v.value)
	}

	s := []string{}
	if err := store.Get(key2, &s); err != nil {
		t.Fatal(err)
	}
	for i, ss := range value2 {
		if s[i] != ss {
			t.Fatalf("deserialized data mismatch. expected %s but got %s", ss, s[i])
		}
	}
}

func testStoreIterator(t *testing.T, store storage.StateStorer) {
	t.Helper()

	storePrefix := "test_"
	if err := store.Put(storePrefix+"key1", "value1"); err != nil {
		t.Fatal(err)
	}
	// do not include prefix in one of the entries
	if err := store.Put("key2", "value2"); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(storePrefix+"key3", "value3"); err != nil {
		t.Fatal(err)
	}

	entries := make(map[string]string)
	err := store.Iterate(storePrefix, func(key, value []byte) (stop bool, err error) {
		var entry string
		if err := json.Unmarshal(value, &entry); err != nil {
			t.Fatal(err)
		}
		entries[string(key)] = entry
		return false, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	expectedEntries := map[string]string{"test_key1": "value1", "test_key3": "value3"}
	if !reflect.DeepEqual(entries, expectedEntries) {
		t.Fatalf("expected store entries to be %v, are %v instead", expectedEntries, entries)
	}
}
