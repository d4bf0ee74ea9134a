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
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/repoforge/provisioner/internal/levelstore"
	"github.com/repoforge/provisioner/internal/resolver"
)

var (
	validateOrg      string
	validateTeam     string
	validateRepoType string
	validateTemplate string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a hierarchy resolves cleanly without emitting the result",
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
			Organization:   validateOrg,
			Team:           validateTeam,
			RepositoryType: validateRepoType,
			Template:       validateTemplate,
		})
		if err != nil {
			return fmt.Errorf("load hierarchy: %w", err)
		}

		merged, err := resolver.Resolve(levels)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		for _, w := range merged.RulesetWarnings {
			slog.Warn("ruleset warning", slog.String("warning", w))
		}
		for _, issue := range merged.RulesetIssues {
			slog.Warn("ruleset validation issue", slog.String("issue", issue))
		}

		slog.Info("hierarchy resolves cleanly",
			slog.Int("rulesets", len(merged.Rulesets)),
			slog.Int("labels", len(merged.Labels)),
			slog.Int("warnings", len(merged.RulesetWarnings)+len(merged.RulesetIssues)))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateOrg, "org", "", "organization name")
	validateCmd.Flags().StringVar(&validateTeam, "team", "", "team name within the organization")
	validateCmd.Flags().StringVar(&validateRepoType, "repo-type", "", "repository type")
	validateCmd.Flags().StringVar(&validateTemplate, "template", "", "template name")
	rootCmd.AddCommand(validateCmd)
}
