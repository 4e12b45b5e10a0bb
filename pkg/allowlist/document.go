// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allowlist

import (
	"encoding/json"
	"fmt"

	"github.com/coreos/go-semver/semver"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/afero"

	"github.com/ethersphere/mintgate/pkg/merkle"
)

// DocumentSchemaVersion is the schema version written into new documents.
// Documents with a different major version are rejected on import.
const DocumentSchemaVersion = "1.0.0"

// Entry holds the distribution artifact for a single member.
type Entry struct {
	Identity common.Address `json:"identity"`
	Leaf     merkle.Digest  `json:"leaf"`
	Proof    merkle.Proof   `json:"proof"`
}

// Document is the structured artifact distributed to list members. Every
// entry is self-contained: identity, its leaf and the proof against the
// document root.
type Document struct {
	SchemaVersion string        `json:"schemaVersion"`
	ListID        uint64        `json:"listId"`
	Name          string        `json:"name,omitempty"`
	Root          merkle.Digest `json:"root"`
	Entries       []Entry       `json:"entries"`
}

// BuildDocument derives the distribution document for a built list.
func BuildDocument(l *List, id uint64, name string) (*Document, error) {
	entries := make([]Entry, len(l.members))
	for i, addr := range l.members {
		proof, err := l.tree.Proof(i)
		if err != nil {
			return nil, fmt.Errorf("proof for %s: %w", addr.Hex(), err)
		}
		entries[i] = Entry{
			Identity: addr,
			Leaf:     l.leaves[i],
			Proof:    proof,
		}
	}
	return &Document{
		SchemaVersion: DocumentSchemaVersion,
		ListID:        id,
		Name:          name,
		Root:          l.tree.Root(),
		Entries:       entries,
	}, nil
}

// Verify checks the document against itself: schema compatibility, the
// identity to leaf binding of every entry and every proof against the
// document root.
func (d *Document) Verify() error {
	if err := d.checkSchema(); err != nil {
		return err
	}
	for _, e := range d.Entries {
		if leaf := LeafOf(e.Identity); !leaf.Equal(e.Leaf) {
			return fmt.Errorf("%w: entry %s: leaf does not match identity", ErrInvalidDocument, e.Identity.Hex())
		}
		if !merkle.Verify(e.Leaf, e.Proof, d.Root) {
			return fmt.Errorf("%w: entry %s: proof does not verify", ErrInvalidDocument, e.Identity.Hex())
		}
	}
	return nil
}

func (d *Document) checkSchema() error {
	v, err := semver.NewVersion(d.SchemaVersion)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrIncompatibleSchema, d.SchemaVersion)
	}
	if current := semver.New(DocumentSchemaVersion); v.Major != current.Major {
		return fmt.Errorf("%w: document %s, supported %s", ErrIncompatibleSchema, d.SchemaVersion, DocumentSchemaVersion)
	}
	return nil
}

// Bytes returns the canonical serialized form of the document.
func (d *Document) Bytes() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// WriteDocument writes the document to the provided filesystem.
func WriteDocument(fs afero.Fs, path string, d *Document) error {
	b, err := d.Bytes()
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	return afero.WriteFile(fs, path, b, 0644)
}

// ReadDocument reads a document from the provided filesystem. The schema
// version is checked on import; the proofs are not, call Verify for a full
// check.
func ReadDocument(fs afero.Fs, path string) (*Document, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	if err := d.checkSchema(); err != nil {
		return nil, err
	}
	return &d, nil
}
