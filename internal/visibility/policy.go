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

// Package visibility decides the visibility of a repository being
// created, combining the organization's visibility policy, the
// requesting user's preference, the template default, and the system
// default, validated against what the hosting platform supports.
package visibility

import (
	"fmt"

	"github.com/google/uuid"
)

// Visibility is a repository visibility.
type Visibility string

const (
	Public   Visibility = "public"
	Private  Visibility = "private"
	Internal Visibility = "internal"
)

// Valid reports whether v is a known visibility.
func (v Visibility) Valid() bool {
	switch v {
	case Public, Private, Internal:
		return true
	}
	return false
}

// SystemDefault is the visibility used when neither the user nor the
// template expresses a preference and the organization policy permits
// it.
const SystemDefault = Private

// PolicyKind tags the shape of an organization visibility policy.
type PolicyKind string

const (
	PolicyRequired     PolicyKind = "required"
	PolicyRestricted   PolicyKind = "restricted"
	PolicyUnrestricted PolicyKind = "unrestricted"
)

// Policy is an organization's visibility policy. Required carries the
// single mandated visibility; Restricted carries the prohibited set;
// Unrestricted carries nothing.
type Policy struct {
	Kind       PolicyKind   `yaml:"kind" json:"kind"`
	Required   Visibility   `yaml:"required,omitempty" json:"required,omitempty"`
	Prohibited []Visibility `yaml:"prohibited,omitempty" json:"prohibited,omitempty"`
}

// Validate checks internal consistency of a policy document.
func (p Policy) Validate() error {
	switch p.Kind {
	case PolicyRequired:
		if !p.Required.Valid() {
			return fmt.Errorf("required policy needs a valid visibility, got %q", p.Required)
		}
	case PolicyRestricted:
		for _, v := range p.Prohibited {
			if !v.Valid() {
				return fmt.Errorf("restricted policy contains unknown visibility %q", v)
			}
		}
	case PolicyUnrestricted:
	default:
		return fmt.Errorf("unknown policy kind %q", p.Kind)
	}
	return nil
}

// DecisionSource identifies which input supplied the final visibility.
type DecisionSource string

const (
	SourceOrganizationPolicy DecisionSource = "organization_policy"
	SourceUserPreference     DecisionSource = "user_preference"
	SourceTemplateDefault    DecisionSource = "template_default"
	SourceSystemDefault      DecisionSource = "system_default"
)

// Constraint records one policy or platform constraint applied while
// deciding, for audit.
type Constraint string

const (
	ConstraintOrganizationRequired    Constraint = "organization_required"
	ConstraintProhibitedSkipped       Constraint = "prohibited_candidate_skipped"
	ConstraintPlatformCapability      Constraint = "platform_capability_checked"
	ConstraintInternalNeedsEnterprise Constraint = "internal_requires_enterprise"
)

// State is the terminal state of a resolution pass.
type State string

const (
	StateResolving State = "resolving"
	StateDecided   State = "decided"
	StateFailed    State = "failed"
)

// Request carries the per-creation inputs to a visibility decision.
type Request struct {
	Organization    string
	UserPreference  *Visibility
	TemplateDefault *Visibility
}

// Decision is an auditable visibility decision: what was chosen, which
// input chose it, and every constraint applied along the way.
type Decision struct {
	ID           uuid.UUID      `yaml:"id" json:"id"`
	Organization string         `yaml:"organization" json:"organization"`
	Visibility   Visibility     `yaml:"visibility" json:"visibility"`
	Source       DecisionSource `yaml:"source" json:"source"`
	Constraints  []Constraint   `yaml:"constraints,omitempty" json:"constraints,omitempty"`
	State        State          `yaml:"state" json:"state"`
}
