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

import "context"

// PolicyProvider supplies per-organization visibility policies. A
// missing policy is signalled with ErrPolicyNotFound.
type PolicyProvider interface {
	GetPolicy(ctx context.Context, organization string) (Policy, error)
	Invalidate(organization string)
}

// PlanLimitations describes what the hosting platform supports for an
// organization's plan.
type PlanLimitations struct {
	SupportsPrivate  bool `yaml:"supports_private" json:"supports_private"`
	SupportsInternal bool `yaml:"supports_internal" json:"supports_internal"`
	IsEnterprise     bool `yaml:"is_enterprise" json:"is_enterprise"`
	PrivateRepoLimit int  `yaml:"private_repo_limit" json:"private_repo_limit"`
}

// EnvironmentDetector reports platform capability per organization.
type EnvironmentDetector interface {
	GetPlanLimitations(ctx context.Context, organization string) (PlanLimitations, error)
	IsEnterprise(ctx context.Context, organization string) (bool, error)
}
