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

package visibility

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPolicyNotFound is the sentinel a PolicyProvider returns when an
// organization has no visibility policy configured.
var ErrPolicyNotFound = errors.New("visibility policy not found")

// PolicyNotFoundError reports an organization with no configured
// visibility policy.
type PolicyNotFoundError struct {
	Organization string
}

func (e *PolicyNotFoundError) Error() string {
	return fmt.Sprintf("organization %q: no visibility policy configured", e.Organization)
}

// PolicyViolationError reports that every candidate visibility,
// including the system default, is prohibited by a Restricted policy.
type PolicyViolationError struct {
	Organization string
	Candidates   []Visibility
	Prohibited   []Visibility
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("organization %q: every candidate visibility (%s) is prohibited by policy (prohibited: %s)",
		e.Organization, joinVisibilities(e.Candidates), joinVisibilities(e.Prohibited))
}

// GitHubConstraintError reports a visibility the hosting platform
// cannot support for this organization.
type GitHubConstraintError struct {
	Organization string
	Visibility   Visibility
	Reason       string
}

func (e *GitHubConstraintError) Error() string {
	return fmt.Sprintf("organization %q: platform cannot support %s visibility: %s",
		e.Organization, e.Visibility, e.Reason)
}

func joinVisibilities(vs []Visibility) string {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
