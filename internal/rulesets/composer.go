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

// Package rulesets composes protection rulesets across hierarchy
// levels. Composition is strictly additive: every ruleset from every
// level survives, tagged with its origin; rule bodies are never merged
// and name collisions only produce warnings.
package rulesets

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/repoforge/provisioner/internal/hierarchy"
)

// Result is the outcome of composing per-level ruleset lists. Issues
// are soft failures: the ruleset list remains usable, so validation
// findings ride alongside rather than aborting resolution.
type Result struct {
	Rulesets []hierarchy.LeveledRuleset
	Warnings []string
	Issues   error // *multierror.Error of ref-pattern mismatches, or nil
}

// Compose accumulates the rulesets declared by each level. levels
// must be ordered lowest precedence first; nil entries are skipped.
// The output ruleset count always equals the sum of the input counts.
func Compose(levels []*hierarchy.LevelConfig) Result {
	var out Result
	byName := make(map[string][]hierarchy.Level)
	var nameOrder []string

	for _, lc := range levels {
		if lc == nil {
			continue
		}
		for _, rs := range lc.Rulesets {
			out.Rulesets = append(out.Rulesets, hierarchy.LeveledRuleset{
				Ruleset: rs,
				Origin:  lc.Level,
			})
			if _, seen := byName[rs.Name]; !seen {
				nameOrder = append(nameOrder, rs.Name)
			}
			byName[rs.Name] = append(byName[rs.Name], lc.Level)

			if err := validateRefPatterns(rs); err != nil {
				out.Issues = multierror.Append(out.Issues, err)
			}
		}
	}

	for _, name := range nameOrder {
		origins := byName[name]
		if len(origins) < 2 {
			continue
		}
		names := make([]string, len(origins))
		for i, l := range origins {
			names[i] = l.String()
		}
		out.Warnings = append(out.Warnings, fmt.Sprintf(
			"ruleset name %q declared %d times (levels: %s); all entries kept as independent rulesets",
			name, len(origins), strings.Join(names, ", ")))
	}

	return out
}

// validateRefPatterns checks that a ruleset's ref-name patterns match
// its target type. Branch rulesets take refs/heads/ patterns plus the
// ~ALL and ~DEFAULT_BRANCH shorthands; tag rulesets take refs/tags/
// patterns plus ~ALL.
func validateRefPatterns(rs hierarchy.Ruleset) error {
	var result *multierror.Error

	check := func(pattern string) {
		switch rs.Target {
		case hierarchy.RulesetTargetBranch:
			if strings.HasPrefix(pattern, "refs/tags/") {
				result = multierror.Append(result, fmt.Errorf(
					"ruleset %q: branch target cannot use tag pattern %q", rs.Name, pattern))
			}
		case hierarchy.RulesetTargetTag:
			if strings.HasPrefix(pattern, "refs/heads/") || pattern == "~DEFAULT_BRANCH" {
				result = multierror.Append(result, fmt.Errorf(
					"ruleset %q: tag target cannot use branch pattern %q", rs.Name, pattern))
			}
		default:
			result = multierror.Append(result, fmt.Errorf(
				"ruleset %q: unknown target %q", rs.Name, rs.Target))
		}
	}

	for _, p := range rs.Conditions.Include {
		check(p)
	}
	for _, p := range rs.Conditions.Exclude {
		check(p)
	}

	return result.ErrorOrNil()
}
