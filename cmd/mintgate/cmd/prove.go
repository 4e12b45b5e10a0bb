// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ethersphere/mintgate/pkg/allowlist"
	"github.com/ethersphere/mintgate/pkg/gate"
)

func (c *command) initProveCmd() error {
	cmd := &cobra.Command{
		Use:   "prove <address>",
		Short: "Print the membership proof for an address from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if !common.IsHexAddress(args[0]) {
				return fmt.Errorf("malformed address %q", args[0])
			}
			addr := common.HexToAddress(args[0])

			docPath := c.config.GetString(optionNameDocument)
			if docPath == "" {
				return errors.New("no document provided")
			}

			doc, err := allowlist.ReadDocument(afero.NewOsFs(), docPath)
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			for _, e := range doc.Entries {
				if e.Identity == addr {
					b, err := json.MarshalIndent(gate.Membership{
						Identity: e.Identity,
						Leaf:     e.Leaf,
						Proof:    e.Proof,
						Root:     doc.Root,
					}, "", "  ")
					if err != nil {
						return err
					}
					cmd.Println(string(b))
					return nil
				}
			}

			return fmt.Errorf("address %s is not a member of list %d", addr.Hex(), doc.ListID)
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.config.BindPFlags(cmd.Flags())
		},
	}

	cmd.Flags().String(optionNameDocument, "", "path to the distribution document")

	c.root.AddCommand(cmd)

	return nil
}
