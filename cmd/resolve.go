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
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/repoforge/provisioner/internal/levelstore"
	"github.com/repoforge/provisioner/internal/resolver"
)

var (
	resolveOrg      string
	resolveTeam     string
	resolveRepoType string
	resolveTemplate string
	resolveFormat   string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Fold the hierarchy into a merged repository configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		provider, err := levelstore.NewFileProvider(cfg.Hierarchy.Root)
		if err != nil {
			return err
		}

		levels, err := provider.GetHierarchy(cmd.Context(), levelstore.Query{
			Organization:   resolveOrg,
			Team:           resolveTeam,
			RepositoryType: resolveRepoType,
			Template:       resolveTemplate,
		})
		if err != nil {
			return fmt.Errorf("load hierarchy: %w", err)
		}

		merged, err := resolver.Resolve(levels)
		if err != nil {
			return fmt.Errorf("resolve configuration: %w", err)
		}

		for _, w := range merged.RulesetWarnings {
			slog.Warn("ruleset warning", slog.String("warning", w))
		}
		for _, issue := range merged.RulesetIssues {
			slog.Warn("ruleset validation issue", slog.String("issue", issue))
		}

		return emit(merged, resolveFormat)
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveOrg, "org", "", "organization name")
	resolveCmd.Flags().StringVar(&resolveTeam, "team", "", "team name within the organization")
	resolveCmd.Flags().StringVar(&resolveRepoType, "repo-type", "", "repository type")
	resolveCmd.Flags().StringVar(&resolveTemplate, "template", "", "template name")
	resolveCmd.Flags().StringVar(&resolveFormat, "format", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(resolveCmd)
}

func emit(v any, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer func() {
			_ = enc.Close()
		}()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
