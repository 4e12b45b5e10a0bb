// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ethersphere/mintgate/pkg/allowlist"
	"github.com/ethersphere/mintgate/pkg/merkle"
	"github.com/ethersphere/mintgate/pkg/node"
)

func (c *command) initPublishCmd() error {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a list root to the gate registry contract",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if len(args) > 0 {
				return cmd.Help()
			}

			v := strings.ToLower(c.config.GetString(optionNameVerbosity))
			logger, err := newLogger(cmd, v)
			if err != nil {
				return fmt.Errorf("new logger: %v", err)
			}

			var (
				listID uint64
				root   merkle.Digest
			)
			if docPath := c.config.GetString(optionNameDocument); docPath != "" {
				doc, err := allowlist.ReadDocument(afero.NewOsFs(), docPath)
				if err != nil {
					return fmt.Errorf("read document: %w", err)
				}
				if err := doc.Verify(); err != nil {
					return err
				}
				listID = doc.ListID
				root = doc.Root
			} else {
				listID = c.config.GetUint64(optionNameListID)
				if listID == 0 {
					return errors.New("no list id provided")
				}
				root, err = merkle.ParseDigest(c.config.GetString(optionNameRoot))
				if err != nil {
					return fmt.Errorf("parse root: %w", err)
				}
			}

			chainEndpoint := c.config.GetString(optionNameChainEndpoint)
			if chainEndpoint == "" {
				return errors.New("no chain endpoint provided")
			}

			dataDir := c.config.GetString(optionNameDataDir)

			stateStore, err := node.InitStateStore(logger, dataDir)
			if err != nil {
				return err
			}

			defer stateStore.Close()

			signerConfig, err := c.configureSigner(cmd, logger)
			if err != nil {
				return err
			}
			signer := signerConfig.signer

			ctx := cmd.Context()

			_, ethClientCloser, _, chainID, transactionService, err := node.InitChain(
				ctx,
				logger,
				stateStore,
				chainEndpoint,
				signer,
			)
			if err != nil {
				return err
			}
			defer ethClientCloser()
			defer transactionService.Close()

			contract, _, err := node.InitGateContract(logger, chainID, transactionService, c.config.GetString(optionNameContractAddress))
			if err != nil {
				return err
			}

			txHash, err := contract.SetRoot(ctx, listID, root)
			if err != nil {
				return fmt.Errorf("set root: %w", err)
			}
			logger.Infof("set root transaction: %x", txHash)

			if err := contract.WaitSetRoot(ctx, txHash); err != nil {
				return fmt.Errorf("wait set root: %w", err)
			}

			logger.Infof("list %d root published: %s", listID, root)
			cmd.Println(txHash)

			return nil
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.config.BindPFlags(cmd.Flags())
		},
	}

	c.setAllFlags(cmd)
	cmd.Flags().String(optionNameDocument, "", "path to the distribution document to publish")
	cmd.Flags().Uint64(optionNameListID, 0, "list id to publish, when no document is provided")
	cmd.Flags().String(optionNameRoot, "", "root to publish, when no document is provided")

	c.root.AddCommand(cmd)

	return nil
}
