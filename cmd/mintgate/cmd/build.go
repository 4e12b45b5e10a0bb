// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ethersphere/mintgate/pkg/allowlist"
	"github.com/ethersphere/mintgate/pkg/resolver"
	"github.com/ethersphere/mintgate/pkg/resolver/client/ens"
)

func (c *command) initBuildCmd() error {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a distribution document from a membership manifest",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if len(args) > 0 {
				return cmd.Help()
			}

			v := strings.ToLower(c.config.GetString(optionNameVerbosity))
			logger, err := newLogger(cmd, v)
			if err != nil {
				return fmt.Errorf("new logger: %v", err)
			}

			manifestPath := c.config.GetString(optionNameManifest)
			if manifestPath == "" {
				return errors.New("no manifest provided")
			}

			fs := afero.NewOsFs()

			m, err := allowlist.ReadManifest(fs, manifestPath)
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}

			var res resolver.Interface
			if ep := c.config.GetString(optionNameResolverEndpoint); ep != "" {
				ensClient := ens.NewClient()
				if err := ensClient.Connect(ep); err != nil {
					return fmt.Errorf("connect resolver: %w", err)
				}
				defer ensClient.Close()
				res = ensClient
			}

			members, err := m.Resolve(cmd.Context(), res)
			if err != nil {
				return fmt.Errorf("resolve members: %w", err)
			}

			list, err := allowlist.New(members)
			if err != nil {
				return err
			}

			doc, err := allowlist.BuildDocument(list, m.ListID, m.Name)
			if err != nil {
				return err
			}

			outputPath := c.config.GetString(optionNameOutput)
			if outputPath == "" {
				outputPath = strings.TrimSuffix(manifestPath, filepath.Ext(manifestPath)) + ".json"
			}
			if err := allowlist.WriteDocument(fs, outputPath, doc); err != nil {
				return fmt.Errorf("write document: %w", err)
			}

			logger.Infof("list %d: %d members, document written to %s", m.ListID, list.Size(), outputPath)
			cmd.Println(list.Root())

			return nil
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.config.BindPFlags(cmd.Flags())
		},
	}

	cmd.Flags().String(optionNameVerbosity, "info", "log verbosity level 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace")
	cmd.Flags().String(optionNameManifest, "", "path to the membership manifest")
	cmd.Flags().String(optionNameOutput, "", "path of the written document, defaults to the manifest path with a .json extension")
	cmd.Flags().String(optionNameResolverEndpoint, "", "ENS endpoint for resolving named members")

	c.root.AddCommand(cmd)

	return nil
}
