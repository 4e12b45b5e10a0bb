// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ethersphere/mintgate/pkg/allowlist"
	"github.com/ethersphere/mintgate/pkg/merkle"
)

func (c *command) initVerifyCmd() error {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify every proof in a distribution document",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if len(args) > 0 {
				return cmd.Help()
			}

			docPath := c.config.GetString(optionNameDocument)
			if docPath == "" {
				return errors.New("no document provided")
			}

			doc, err := allowlist.ReadDocument(afero.NewOsFs(), docPath)
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			if err := doc.Verify(); err != nil {
				return err
			}

			if r := c.config.GetString(optionNameRoot); r != "" {
				root, err := merkle.ParseDigest(r)
				if err != nil {
					return fmt.Errorf("parse root: %w", err)
				}
				if !doc.Root.Equal(root) {
					return fmt.Errorf("document root %s does not match %s", doc.Root, root)
				}
			}

			cmd.Printf("list %d: %d entries verified, root %s\n", doc.ListID, len(doc.Entries), doc.Root)

			return nil
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.config.BindPFlags(cmd.Flags())
		},
	}

	cmd.Flags().String(optionNameDocument, "", "path to the distribution document")
	cmd.Flags().String(optionNameRoot, "", "expected root to compare the document root against")

	c.root.AddCommand(cmd)

	return nil
}
