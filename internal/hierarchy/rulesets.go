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

// RulesetTarget selects what refs a ruleset applies to.
type RulesetTarget string

const (
	RulesetTargetBranch RulesetTarget = "branch"
	RulesetTargetTag    RulesetTarget = "tag"
)

// RulesetEnforcement is the GitHub enforcement mode for a ruleset.
type RulesetEnforcement string

const (
	RulesetEnforcementActive   RulesetEnforcement = "active"
	RulesetEnforcementEvaluate RulesetEnforcement = "evaluate"
	RulesetEnforcementDisabled RulesetEnforcement = "disabled"
)

// RefConditions are the ref-name include/exclude patterns a ruleset is
// scoped to. Patterns follow the GitHub convention: fnmatch-style
// refs/heads/... and refs/tags/... patterns, plus the ~ALL and
// ~DEFAULT_BRANCH shorthands.
type RefConditions struct {
	Include []string `yaml:"include,omitempty" json:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// Rule is a single protection rule inside a ruleset. Parameters are
// passed through opaquely; this engine never interprets or merges rule
// bodies.
type Rule struct {
	Type       string         `yaml:"type" json:"type"`
	Parameters map[string]any `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// BypassActor names an actor allowed to bypass a ruleset.
type BypassActor struct {
	ActorID    int64  `yaml:"actor_id" json:"actor_id"`
	ActorType  string `yaml:"actor_type" json:"actor_type"`
	BypassMode string `yaml:"bypass_mode,omitempty" json:"bypass_mode,omitempty"`
}

// Ruleset is a named, self-contained protection-rule definition.
// Rulesets are additive across hierarchy levels: they are accumulated,
// never merged by name.
type Ruleset struct {
	Name         string             `yaml:"name" json:"name"`
	Target       RulesetTarget      `yaml:"target" json:"target"`
	Enforcement  RulesetEnforcement `yaml:"enforcement" json:"enforcement"`
	Conditions   RefConditions      `yaml:"conditions,omitempty" json:"conditions,omitempty"`
	Rules        []Rule             `yaml:"rules,omitempty" json:"rules,omitempty"`
	BypassActors []BypassActor      `yaml:"bypass_actors,omitempty" json:"bypass_actors,omitempty"`
}

// LeveledRuleset is a ruleset tagged with the hierarchy level that
// declared it.
type LeveledRuleset struct {
	Ruleset `yaml:",inline"`
	Origin  Level `yaml:"origin" json:"origin"`
}
