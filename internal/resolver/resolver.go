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

// Package resolver folds per-level repository configuration into one
// MergedConfig, enforcing override permissions and the per-category
// merge strategies. Resolution is pure: identical inputs always
// produce an identical result, and a failure never yields a partially
// merged configuration.
package resolver

import (
	"github.com/hashicorp/go-multierror"

	"github.com/repoforge/provisioner/internal/hierarchy"
	"github.com/repoforge/provisioner/internal/merge"
	"github.com/repoforge/provisioner/internal/override"
	"github.com/repoforge/provisioner/internal/rulesets"
)

// Resolve merges the given levels, ordered System first. Entries may
// be nil for absent levels; the System level must be present.
func Resolve(levels []*hierarchy.LevelConfig) (*hierarchy.MergedConfig, error) {
	if err := validateLevels(levels); err != nil {
		return nil, err
	}

	f := &folder{
		tracker: override.NewTracker(),
		levels:  levels,
	}
	defs := hierarchy.SystemDefaults()

	var ms hierarchy.MergedSettings
	ms.HasIssues = foldScalar(f, "has_issues", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.HasIssues }, defs.HasIssues)
	ms.HasWiki = foldScalar(f, "has_wiki", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.HasWiki }, defs.HasWiki)
	ms.HasProjects = foldScalar(f, "has_projects", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.HasProjects }, defs.HasProjects)
	ms.HasDiscussions = foldScalar(f, "has_discussions", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.HasDiscussions }, defs.HasDiscussions)
	ms.AllowMergeCommit = foldScalar(f, "allow_merge_commit", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.AllowMergeCommit }, defs.AllowMergeCommit)
	ms.AllowSquashMerge = foldScalar(f, "allow_squash_merge", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.AllowSquashMerge }, defs.AllowSquashMerge)
	ms.AllowRebaseMerge = foldScalar(f, "allow_rebase_merge", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.AllowRebaseMerge }, defs.AllowRebaseMerge)
	ms.AllowAutoMerge = foldScalar(f, "allow_auto_merge", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.AllowAutoMerge }, defs.AllowAutoMerge)
	ms.DeleteBranchOnMerge = foldScalar(f, "delete_branch_on_merge", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.DeleteBranchOnMerge }, defs.DeleteBranchOnMerge)
	ms.AllowUpdateBranch = foldScalar(f, "allow_update_branch", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.AllowUpdateBranch }, defs.AllowUpdateBranch)
	ms.SecurityAdvisories = foldScalar(f, "security_advisories", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.SecurityAdvisories }, defs.SecurityAdvisories)
	ms.VulnerabilityAlerts = foldScalar(f, "vulnerability_alerts", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.VulnerabilityAlerts }, defs.VulnerabilityAlerts)
	ms.SecretScanning = foldScalar(f, "secret_scanning", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.SecretScanning }, defs.SecretScanning)
	ms.AutoInit = foldScalar(f, "auto_init", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.AutoInit }, defs.AutoInit)
	ms.IsTemplate = foldScalar(f, "is_template", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.IsTemplate }, defs.IsTemplate)
	ms.WebCommitSignoff = foldScalar(f, "web_commit_signoff_required", func(s *hierarchy.Settings) *hierarchy.Value[bool] { return s.WebCommitSignoff }, defs.WebCommitSignoff)
	ms.DefaultBranch = foldScalar(f, "default_branch", func(s *hierarchy.Settings) *hierarchy.Value[string] { return s.DefaultBranch }, defs.DefaultBranch)
	ms.SquashMergeTitle = foldScalar(f, "squash_merge_commit_title", func(s *hierarchy.Settings) *hierarchy.Value[string] { return s.SquashMergeTitle }, defs.SquashMergeTitle)
	ms.MergeCommitTitle = foldScalar(f, "merge_commit_title", func(s *hierarchy.Settings) *hierarchy.Value[string] { return s.MergeCommitTitle }, defs.MergeCommitTitle)
	ms.Homepage = foldScalar(f, "homepage", func(s *hierarchy.Settings) *hierarchy.Value[string] { return s.Homepage }, defs.Homepage)
	if f.err != nil {
		return nil, f.err
	}

	apps, err := mergeGithubApps(levels)
	if err != nil {
		return nil, err
	}

	composed := rulesets.Compose(levels)

	out := &hierarchy.MergedConfig{
		Settings:             ms,
		Labels:               merge.Keyed(collect(levels, func(lc *hierarchy.LevelConfig) []hierarchy.Label { return lc.Labels }), hierarchy.Label.Key),
		Webhooks:             merge.Keyed(collect(levels, func(lc *hierarchy.LevelConfig) []hierarchy.Webhook { return lc.Webhooks }), hierarchy.Webhook.Key),
		CustomProperties:     merge.Keyed(collect(levels, func(lc *hierarchy.LevelConfig) []hierarchy.CustomProperty { return lc.CustomProperties }), hierarchy.CustomProperty.Key),
		Environments:         merge.Keyed(collect(levels, func(lc *hierarchy.LevelConfig) []hierarchy.Environment { return lc.Environments }), hierarchy.Environment.Key),
		GithubApps:           apps,
		Rulesets:             composed.Rulesets,
		RequiredStatusChecks: merge.OrderedList(collect(levels, func(lc *hierarchy.LevelConfig) []string { return lc.RequiredStatusChecks })),
		Topics:               merge.OrderedList(collect(levels, func(lc *hierarchy.LevelConfig) []string { return lc.Topics })),
		RulesetWarnings:      composed.Warnings,
	}

	if merr, ok := composed.Issues.(*multierror.Error); ok {
		for _, e := range merr.Errors {
			out.RulesetIssues = append(out.RulesetIssues, e.Error())
		}
	}

	return out, nil
}

// folder carries the fold state for scalar settings. The first error
// stops all further merging; later folds become no-ops so the caller
// can assign every field and check once.
type folder struct {
	tracker *override.Tracker
	levels  []*hierarchy.LevelConfig
	err     error
}

func foldScalar[T comparable](f *folder, path string, get func(*hierarchy.Settings) *hierarchy.Value[T], def *T) T {
	var zero T
	if f.err != nil {
		return zero
	}

	var leveled []merge.Leveled[T]
	for _, lc := range f.levels {
		if lc == nil {
			continue
		}
		v := get(&lc.Settings)
		if v == nil {
			continue
		}
		if err := f.tracker.Observe(lc.Level, path, v.Value, v.OverrideAllowed); err != nil {
			f.err = err
			return zero
		}
		leveled = append(leveled, merge.Leveled[T]{Level: lc.Level, Value: v.Value})
	}

	out, _, ok := merge.Scalar(leveled)
	if !ok {
		if def == nil {
			f.err = &hierarchy.RequiredConfigMissingError{Setting: path}
			return zero
		}
		return *def
	}
	return out
}

// collect gathers one collection slice per non-nil level, preserving
// the lowest-precedence-first order the merge functions expect.
func collect[T any](levels []*hierarchy.LevelConfig, get func(*hierarchy.LevelConfig) []T) [][]T {
	out := make([][]T, 0, len(levels))
	for _, lc := range levels {
		if lc == nil {
			continue
		}
		out = append(out, get(lc))
	}
	return out
}

func validateLevels(levels []*hierarchy.LevelConfig) error {
	systemPresent := false
	last := hierarchy.Level(-1)
	for _, lc := range levels {
		if lc == nil {
			continue
		}
		if !lc.Level.Valid() {
			return &hierarchy.InvalidConfigurationError{
				Field:   "levels",
				Message: "entry carries an unknown hierarchy level",
			}
		}
		if lc.Level <= last {
			return &hierarchy.HierarchyResolutionFailedError{
				Level: lc.Level,
				Err: &hierarchy.InvalidConfigurationError{
					Field:   "levels",
					Message: "levels must be ordered System through Template without duplicates",
				},
			}
		}
		last = lc.Level
		if lc.Level == hierarchy.LevelSystem {
			systemPresent = true
		}
	}
	if !systemPresent {
		return &hierarchy.InvalidConfigurationError{
			Field:   "levels",
			Message: "the System level is mandatory",
		}
	}
	return nil
}
