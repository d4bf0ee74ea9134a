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

import "fmt"

// OverrideNotPermittedError reports a level attempting to change a
// setting that a lower level closed to overrides.
type OverrideNotPermittedError struct {
	Setting  string
	Level    Level // the offending level
	ClosedBy Level // the level that set override_allowed=false
}

func (e *OverrideNotPermittedError) Error() string {
	return fmt.Sprintf("setting %q: level %s may not override value fixed by level %s",
		e.Setting, e.Level, e.ClosedBy)
}

// RequiredConfigMissingError reports a setting that no level defined
// and that has no system default.
type RequiredConfigMissingError struct {
	Setting string
}

func (e *RequiredConfigMissingError) Error() string {
	return fmt.Sprintf("setting %q: required but not defined at any level and has no system default", e.Setting)
}

// RequiredGithubAppMissingError reports a GitHub App marked required
// by some level but never actually defined by the loader data.
type RequiredGithubAppMissingError struct {
	AppID      int64
	Slug       string
	RequiredBy Level
}

func (e *RequiredGithubAppMissingError) Error() string {
	name := e.Slug
	if name == "" {
		name = fmt.Sprintf("app %d", e.AppID)
	}
	return fmt.Sprintf("github app %s: marked required by level %s but not defined", name, e.RequiredBy)
}

// InvalidConfigurationError reports structurally invalid loader input,
// e.g. a missing System level or out-of-order level sequence.
type InvalidConfigurationError struct {
	Field   string
	Message string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// HierarchyResolutionFailedError wraps an unexpected failure during
// the level fold, preserving the level being processed.
type HierarchyResolutionFailedError struct {
	Level Level
	Err   error
}

func (e *HierarchyResolutionFailedError) Error() string {
	return fmt.Sprintf("resolving level %s: %v", e.Level, e.Err)
}

func (e *HierarchyResolutionFailedError) Unwrap() error { return e.Err }
