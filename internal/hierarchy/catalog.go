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

// ScalarDefaults carries the hard-coded system fallback per scalar
// setting. A nil entry means the setting has no system default: it is
// required and resolution fails with RequiredConfigMissing when no
// level defines it.
type ScalarDefaults struct {
	HasIssues           *bool
	HasWiki             *bool
	HasProjects         *bool
	HasDiscussions      *bool
	AllowMergeCommit    *bool
	AllowSquashMerge    *bool
	AllowRebaseMerge    *bool
	AllowAutoMerge      *bool
	DeleteBranchOnMerge *bool
	AllowUpdateBranch   *bool
	SecurityAdvisories  *bool
	VulnerabilityAlerts *bool
	SecretScanning      *bool
	AutoInit            *bool
	IsTemplate          *bool
	WebCommitSignoff    *bool
	DefaultBranch       *string
	SquashMergeTitle    *string
	MergeCommitTitle    *string
	Homepage            *string
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

// SystemDefaults returns the baked-in fallback values. DefaultBranch
// deliberately has no fallback: the System level of every deployment
// must declare it explicitly so that a branch-naming decision is
// always on record.
func SystemDefaults() ScalarDefaults {
	return ScalarDefaults{
		HasIssues:           boolPtr(true),
		HasWiki:             boolPtr(false),
		HasProjects:         boolPtr(false),
		HasDiscussions:      boolPtr(false),
		AllowMergeCommit:    boolPtr(false),
		AllowSquashMerge:    boolPtr(true),
		AllowRebaseMerge:    boolPtr(false),
		AllowAutoMerge:      boolPtr(false),
		DeleteBranchOnMerge: boolPtr(true),
		AllowUpdateBranch:   boolPtr(true),
		SecurityAdvisories:  boolPtr(true),
		VulnerabilityAlerts: boolPtr(true),
		SecretScanning:      boolPtr(true),
		AutoInit:            boolPtr(true),
		IsTemplate:          boolPtr(false),
		WebCommitSignoff:    boolPtr(false),
		DefaultBranch:       nil,
		SquashMergeTitle:    strPtr("PR_TITLE"),
		MergeCommitTitle:    strPtr("MERGE_MESSAGE"),
		Homepage:            strPtr(""),
	}
}
