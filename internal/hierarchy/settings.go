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

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Value pairs a setting value with an optional override_allowed flag.
// A nil flag means the level expressed no opinion; once any level sets
// it to false the setting is closed for every higher-precedence level.
//
// In YAML a Value may be written either as a bare scalar:
//
//	has_wiki: false
//
// or in long form when the flag is needed:
//
//	has_wiki:
//	  value: false
//	  override_allowed: false
type Value[T any] struct {
	Value           T     `yaml:"value" json:"value"`
	OverrideAllowed *bool `yaml:"override_allowed,omitempty" json:"override_allowed,omitempty"`
}

// NewValue returns a Value with no override opinion.
func NewValue[T any](v T) *Value[T] {
	return &Value[T]{Value: v}
}

// Fixed returns a Value whose override_allowed flag is explicitly false.
func Fixed[T any](v T) *Value[T] {
	f := false
	return &Value[T]{Value: v, OverrideAllowed: &f}
}

func (v *Value[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		type plain Value[T]
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*v = Value[T](p)
		return nil
	}
	// bare scalar shorthand
	var raw T
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("setting value: %w", err)
	}
	*v = Value[T]{Value: raw}
	return nil
}

// Settings holds every scalar repository setting the provisioner knows
// about. Each known setting is an explicit tagged field; unknown keys
// in source documents are ignored by the loader. All fields are
// optional at any single level; requiredness and system defaults live
// in the scalar catalog (catalog.go).
type Settings struct {
	HasIssues           *Value[bool]   `yaml:"has_issues,omitempty"`
	HasWiki             *Value[bool]   `yaml:"has_wiki,omitempty"`
	HasProjects         *Value[bool]   `yaml:"has_projects,omitempty"`
	HasDiscussions      *Value[bool]   `yaml:"has_discussions,omitempty"`
	AllowMergeCommit    *Value[bool]   `yaml:"allow_merge_commit,omitempty"`
	AllowSquashMerge    *Value[bool]   `yaml:"allow_squash_merge,omitempty"`
	AllowRebaseMerge    *Value[bool]   `yaml:"allow_rebase_merge,omitempty"`
	AllowAutoMerge      *Value[bool]   `yaml:"allow_auto_merge,omitempty"`
	DeleteBranchOnMerge *Value[bool]   `yaml:"delete_branch_on_merge,omitempty"`
	AllowUpdateBranch   *Value[bool]   `yaml:"allow_update_branch,omitempty"`
	SecurityAdvisories  *Value[bool]   `yaml:"security_advisories,omitempty"`
	VulnerabilityAlerts *Value[bool]   `yaml:"vulnerability_alerts,omitempty"`
	SecretScanning      *Value[bool]   `yaml:"secret_scanning,omitempty"`
	AutoInit            *Value[bool]   `yaml:"auto_init,omitempty"`
	IsTemplate          *Value[bool]   `yaml:"is_template,omitempty"`
	WebCommitSignoff    *Value[bool]   `yaml:"web_commit_signoff_required,omitempty"`
	DefaultBranch       *Value[string] `yaml:"default_branch,omitempty"`
	SquashMergeTitle    *Value[string] `yaml:"squash_merge_commit_title,omitempty"`
	MergeCommitTitle    *Value[string] `yaml:"merge_commit_title,omitempty"`
	Homepage            *Value[string] `yaml:"homepage,omitempty"`
}

// MergedSettings is the scalar portion of a MergedConfig: exactly one
// resolved value per known setting, with optionality discharged by the
// catalog's system defaults.
type MergedSettings struct {
	HasIssues           bool   `yaml:"has_issues" json:"has_issues"`
	HasWiki             bool   `yaml:"has_wiki" json:"has_wiki"`
	HasProjects         bool   `yaml:"has_projects" json:"has_projects"`
	HasDiscussions      bool   `yaml:"has_discussions" json:"has_discussions"`
	AllowMergeCommit    bool   `yaml:"allow_merge_commit" json:"allow_merge_commit"`
	AllowSquashMerge    bool   `yaml:"allow_squash_merge" json:"allow_squash_merge"`
	AllowRebaseMerge    bool   `yaml:"allow_rebase_merge" json:"allow_rebase_merge"`
	AllowAutoMerge      bool   `yaml:"allow_auto_merge" json:"allow_auto_merge"`
	DeleteBranchOnMerge bool   `yaml:"delete_branch_on_merge" json:"delete_branch_on_merge"`
	AllowUpdateBranch   bool   `yaml:"allow_update_branch" json:"allow_update_branch"`
	SecurityAdvisories  bool   `yaml:"security_advisories" json:"security_advisories"`
	VulnerabilityAlerts bool   `yaml:"vulnerability_alerts" json:"vulnerability_alerts"`
	SecretScanning      bool   `yaml:"secret_scanning" json:"secret_scanning"`
	AutoInit            bool   `yaml:"auto_init" json:"auto_init"`
	IsTemplate          bool   `yaml:"is_template" json:"is_template"`
	WebCommitSignoff    bool   `yaml:"web_commit_signoff_required" json:"web_commit_signoff_required"`
	DefaultBranch       string `yaml:"default_branch" json:"default_branch"`
	SquashMergeTitle    string `yaml:"squash_merge_commit_title" json:"squash_merge_commit_title"`
	MergeCommitTitle    string `yaml:"merge_commit_title" json:"merge_commit_title"`
	Homepage            string `yaml:"homepage,omitempty" json:"homepage,omitempty"`
}
