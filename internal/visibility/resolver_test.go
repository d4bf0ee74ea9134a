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
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProviders is a test double for both provider interfaces.
type mockProviders struct {
	policy          Policy
	policyErr       error
	plan            PlanLimitations
	planErr         error
	policyCalls     atomic.Int32
	planCalls       atomic.Int32
	invalidateCalls atomic.Int32
}

func (m *mockProviders) GetPolicy(ctx context.Context, organization string) (Policy, error) {
	m.policyCalls.Add(1)
	if m.policyErr != nil {
		return Policy{}, m.policyErr
	}
	return m.policy, nil
}

func (m *mockProviders) Invalidate(organization string) {
	m.invalidateCalls.Add(1)
}

func (m *mockProviders) GetPlanLimitations(ctx context.Context, organization string) (PlanLimitations, error) {
	m.planCalls.Add(1)
	if m.planErr != nil {
		return PlanLimitations{}, m.planErr
	}
	return m.plan, nil
}

func (m *mockProviders) IsEnterprise(ctx context.Context, organization string) (bool, error) {
	return m.plan.IsEnterprise, nil
}

func fullPlan() PlanLimitations {
	return PlanLimitations{SupportsPrivate: true, SupportsInternal: true, IsEnterprise: true}
}

func visPtr(v Visibility) *Visibility { return &v }

func TestResolve_RequiredPolicy(t *testing.T) {
	mock := &mockProviders{
		policy: Policy{Kind: PolicyRequired, Required: Internal},
		plan:   fullPlan(),
	}
	r := NewResolver(mock, mock)

	// User preference is ignored; the organization mandate wins.
	decision, err := r.Resolve(context.Background(), Request{
		Organization:   "acme",
		UserPreference: visPtr(Public),
	})
	require.NoError(t, err)
	assert.Equal(t, Internal, decision.Visibility)
	assert.Equal(t, SourceOrganizationPolicy, decision.Source)
	assert.Contains(t, decision.Constraints, ConstraintOrganizationRequired)
	assert.Equal(t, StateDecided, decision.State)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", decision.ID.String())
}

func TestResolve_UnrestrictedCandidateOrder(t *testing.T) {
	t.Run("user preference first", func(t *testing.T) {
		mock := &mockProviders{policy: Policy{Kind: PolicyUnrestricted}, plan: fullPlan()}
		decision, err := NewResolver(mock, mock).Resolve(context.Background(), Request{
			Organization:    "acme",
			UserPreference:  visPtr(Public),
			TemplateDefault: visPtr(Private),
		})
		require.NoError(t, err)
		assert.Equal(t, Public, decision.Visibility)
		assert.Equal(t, SourceUserPreference, decision.Source)
	})

	t.Run("template default when no user preference", func(t *testing.T) {
		mock := &mockProviders{policy: Policy{Kind: PolicyUnrestricted}, plan: fullPlan()}
		decision, err := NewResolver(mock, mock).Resolve(context.Background(), Request{
			Organization:    "acme",
			TemplateDefault: visPtr(Private),
		})
		require.NoError(t, err)
		assert.Equal(t, Private, decision.Visibility)
		assert.Equal(t, SourceTemplateDefault, decision.Source)
	})

	t.Run("system default as last resort", func(t *testing.T) {
		mock := &mockProviders{policy: Policy{Kind: PolicyUnrestricted}, plan: fullPlan()}
		decision, err := NewResolver(mock, mock).Resolve(context.Background(), Request{
			Organization: "acme",
		})
		require.NoError(t, err)
		assert.Equal(t, Private, decision.Visibility)
		assert.Equal(t, SourceSystemDefault, decision.Source)
	})
}

func TestResolve_RestrictedPolicy(t *testing.T) {
	t.Run("explicit prohibited preference is a violation", func(t *testing.T) {
		mock := &mockProviders{
			policy: Policy{Kind: PolicyRestricted, Prohibited: []Visibility{Public}},
			plan:   fullPlan(),
		}
		_, err := NewResolver(mock, mock).Resolve(context.Background(), Request{
			Organization:   "acme",
			UserPreference: visPtr(Public),
		})
		require.Error(t, err)

		var violation *PolicyViolationError
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, []Visibility{Public}, violation.Candidates)
		assert.Equal(t, []Visibility{Public}, violation.Prohibited)
	})

	t.Run("prohibited template default falls through", func(t *testing.T) {
		mock := &mockProviders{
			policy: Policy{Kind: PolicyRestricted, Prohibited: []Visibility{Public}},
			plan:   fullPlan(),
		}
		decision, err := NewResolver(mock, mock).Resolve(context.Background(), Request{
			Organization:    "acme",
			TemplateDefault: visPtr(Public),
		})
		require.NoError(t, err)
		assert.Equal(t, Private, decision.Visibility)
		assert.Equal(t, SourceSystemDefault, decision.Source)
		assert.Contains(t, decision.Constraints, ConstraintProhibitedSkipped)
	})

	t.Run("every candidate prohibited", func(t *testing.T) {
		mock := &mockProviders{
			policy: Policy{Kind: PolicyRestricted, Prohibited: []Visibility{Public, Private}},
			plan:   fullPlan(),
		}
		_, err := NewResolver(mock, mock).Resolve(context.Background(), Request{
			Organization:   "acme",
			UserPreference: visPtr(Public),
		})
		require.Error(t, err)

		var violation *PolicyViolationError
		require.ErrorAs(t, err, &violation)
		assert.Contains(t, violation.Prohibited, Public)
		assert.Contains(t, violation.Prohibited, Private)
	})
}

func TestResolve_PlatformConstraints(t *testing.T) {
	t.Run("internal needs enterprise", func(t *testing.T) {
		mock := &mockProviders{
			policy: Policy{Kind: PolicyRequired, Required: Internal},
			plan:   PlanLimitations{SupportsPrivate: true, SupportsInternal: false, IsEnterprise: false},
		}
		_, err := NewResolver(mock, mock).Resolve(context.Background(), Request{Organization: "acme"})
		require.Error(t, err)

		var constraint *GitHubConstraintError
		require.ErrorAs(t, err, &constraint)
		assert.Equal(t, Internal, constraint.Visibility)
	})

	t.Run("private needs a plan that allows it", func(t *testing.T) {
		mock := &mockProviders{
			policy: Policy{Kind: PolicyUnrestricted},
			plan:   PlanLimitations{SupportsPrivate: false},
		}
		_, err := NewResolver(mock, mock).Resolve(context.Background(), Request{Organization: "acme"})
		require.Error(t, err)

		var constraint *GitHubConstraintError
		require.ErrorAs(t, err, &constraint)
		assert.Equal(t, Private, constraint.Visibility)
	})
}

func TestResolve_PolicyNotFound(t *testing.T) {
	mock := &mockProviders{policyErr: ErrPolicyNotFound}
	_, err := NewResolver(mock, mock).Resolve(context.Background(), Request{Organization: "ghost"})
	require.Error(t, err)

	var notFound *PolicyNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.Organization)
}

func TestResolve_LookupFailurePropagated(t *testing.T) {
	boom := errors.New("metadata store unavailable")
	mock := &mockProviders{policyErr: boom}
	_, err := NewResolver(mock, mock).Resolve(context.Background(), Request{Organization: "acme"})
	require.ErrorIs(t, err, boom)
	// No retry inside the resolver.
	assert.Equal(t, int32(1), mock.policyCalls.Load())
}

func TestResolve_PolicyCached(t *testing.T) {
	mock := &mockProviders{policy: Policy{Kind: PolicyUnrestricted}, plan: fullPlan()}
	r := NewResolver(mock, mock)

	for i := 0; i < 3; i++ {
		_, err := r.Resolve(context.Background(), Request{Organization: "acme"})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), mock.policyCalls.Load())
	assert.Equal(t, int32(1), mock.planCalls.Load())
}

func TestResolver_Invalidate(t *testing.T) {
	mock := &mockProviders{policy: Policy{Kind: PolicyUnrestricted}, plan: fullPlan()}
	r := NewResolver(mock, mock)

	_, err := r.Resolve(context.Background(), Request{Organization: "acme"})
	require.NoError(t, err)

	r.Invalidate("acme")
	assert.Equal(t, int32(1), mock.invalidateCalls.Load())

	_, err = r.Resolve(context.Background(), Request{Organization: "acme"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), mock.policyCalls.Load())
}

func TestPolicyValidate(t *testing.T) {
	assert.NoError(t, Policy{Kind: PolicyUnrestricted}.Validate())
	assert.NoError(t, Policy{Kind: PolicyRequired, Required: Public}.Validate())
	assert.Error(t, Policy{Kind: PolicyRequired}.Validate())
	assert.Error(t, Policy{Kind: PolicyRestricted, Prohibited: []Visibility{"sorta-public"}}.Validate())
	assert.Error(t, Policy{Kind: "whatever"}.Validate())
}
