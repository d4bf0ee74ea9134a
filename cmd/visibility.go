// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repoforge/provisioner/internal/policystore"
	"github.com/repoforge/provisioner/internal/visibility"
)

var (
	visibilityOrg      string
	visibilityUser     string
	visibilityTemplate string
	visibilityFormat   string
)

var visibilityCmd = &cobra.Command{
	Use:   "visibility",
	Short: "Decide repository visibility for an organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := policystore.NewFileStore(cfg.Policy.File, cfg.Policy.TTL)
		if err != nil {
			return err
		}
		defer store.Close()

		req := visibility.Request{Organization: visibilityOrg}
		if visibilityUser != "" {
			v := visibility.Visibility(visibilityUser)
			if !v.Valid() {
				return fmt.Errorf("unknown visibility %q", visibilityUser)
			}
			req.UserPreference = &v
		}
		if visibilityTemplate != "" {
			v := visibility.Visibility(visibilityTemplate)
			if !v.Valid() {
				return fmt.Errorf("unknown visibility %q", visibilityTemplate)
			}
			req.TemplateDefault = &v
		}

		decision, err := visibility.NewResolver(store, store).Resolve(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("resolve visibility: %w", err)
		}

		return emit(decision, visibilityFormat)
	},
}

func init() {
	visibilityCmd.Flags().StringVar(&visibilityOrg, "org", "", "organization name")
	visibilityCmd.Flags().StringVar(&visibilityUser, "preference", "", "requesting user's visibility preference")
	visibilityCmd.Flags().StringVar(&visibilityTemplate, "template-default", "", "template's default visibility")
	visibilityCmd.Flags().StringVar(&visibilityFormat, "format", "yaml", "output format: yaml or json")
	_ = visibilityCmd.MarkFlagRequired("org")
	rootCmd.AddCommand(visibilityCmd)
}
