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

package hierarchy

// LevelConfig is the raw configuration declared at one hierarchy
// level, already deserialized by the loader. Any section may be empty;
// an entirely absent level is represented as a nil *LevelConfig in the
// resolver input.
type LevelConfig struct {
	Level                Level            `yaml:"-"`
	Settings             Settings         `yaml:"settings,omitempty"`
	Labels               []Label          `yaml:"labels,omitempty"`
	Webhooks             []Webhook        `yaml:"webhooks,omitempty"`
	CustomProperties     []CustomProperty `yaml:"custom_properties,omitempty"`
	Environments         []Environment    `yaml:"environments,omitempty"`
	GithubApps           []GithubApp      `yaml:"github_apps,omitempty"`
	Rulesets             []Ruleset        `yaml:"rulesets,omitempty"`
	RequiredStatusChecks []string         `yaml:"required_status_checks,omitempty"`
	Topics               []string         `yaml:"topics,omitempty"`
}

// MergedConfig is the single coherent configuration produced by
// folding all levels. It is constructed fresh per resolution request
// and never mutated afterwards.
type MergedConfig struct {
	Settings             MergedSettings   `yaml:"settings" json:"settings"`
	Labels               []Label          `yaml:"labels,omitempty" json:"labels,omitempty"`
	Webhooks             []Webhook        `yaml:"webhooks,omitempty" json:"webhooks,omitempty"`
	CustomProperties     []CustomProperty `yaml:"custom_properties,omitempty" json:"custom_properties,omitempty"`
	Environments         []Environment    `yaml:"environments,omitempty" json:"environments,omitempty"`
	GithubApps           []GithubApp      `yaml:"github_apps,omitempty" json:"github_apps,omitempty"`
	Rulesets             []LeveledRuleset `yaml:"rulesets,omitempty" json:"rulesets,omitempty"`
	RequiredStatusChecks []string         `yaml:"required_status_checks,omitempty" json:"required_status_checks,omitempty"`
	Topics               []string         `yaml:"topics,omitempty" json:"topics,omitempty"`

	// RulesetWarnings and RulesetIssues carry the soft findings from
	// ruleset composition: duplicate names and ref-pattern/target
	// mismatches. They never abort a resolution.
	RulesetWarnings []string `yaml:"ruleset_warnings,omitempty" json:"ruleset_warnings,omitempty"`
	RulesetIssues   []string `yaml:"ruleset_issues,omitempty" json:"ruleset_issues,omitempty"`
}
