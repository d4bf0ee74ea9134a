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
	"fmt"
	"log/slog"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/repoforge/provisioner/internal/policycache"
)

const (
	// PolicyTTL bounds how long an organization's visibility policy is
	// served without consulting the provider again.
	PolicyTTL = 5 * time.Minute
	// CapabilityTTL bounds platform-capability lookups; plan changes
	// are rare, so these live considerably longer.
	CapabilityTTL = time.Hour
)

// Resolver decides repository visibility. It wraps the policy and
// capability providers in TTL caches; a single Resolve call is one
// pass through the decision order, with no retries.
type Resolver struct {
	policies *policycache.Cache[string, Policy]
	plans    *policycache.Cache[string, PlanLimitations]
	policy   PolicyProvider
	detector EnvironmentDetector
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCaches substitutes the internal caches, letting tests inject a
// controlled clock.
func WithCaches(policies *policycache.Cache[string, Policy], plans *policycache.Cache[string, PlanLimitations]) ResolverOption {
	return func(r *Resolver) {
		r.policies = policies
		r.plans = plans
	}
}

// NewResolver returns a Resolver over the given providers.
func NewResolver(policy PolicyProvider, detector EnvironmentDetector, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		policies: policycache.New[string, Policy](PolicyTTL),
		plans:    policycache.New[string, PlanLimitations](CapabilityTTL),
		policy:   policy,
		detector: detector,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Invalidate drops the cached policy and capability entries for an
// organization, forcing fresh lookups on the next decision. Callers
// use it on configuration-change notifications.
func (r *Resolver) Invalidate(organization string) {
	r.policies.Invalidate(organization)
	r.plans.Invalidate(organization)
	r.policy.Invalidate(organization)
}

// Resolve runs the decision order: organization policy first, then
// user preference, template default, and the system default, with the
// selected visibility validated against platform capability.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Decision, error) {
	policy, err := r.policies.GetOrLoad(ctx, req.Organization, func(ctx context.Context, org string) (Policy, error) {
		return r.policy.GetPolicy(ctx, org)
	})
	if err != nil {
		if errors.Is(err, ErrPolicyNotFound) {
			return nil, &PolicyNotFoundError{Organization: req.Organization}
		}
		return nil, fmt.Errorf("fetch visibility policy for %q: %w", req.Organization, err)
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("visibility policy for %q: %w", req.Organization, err)
	}

	decision := &Decision{
		ID:           uuid.New(),
		Organization: req.Organization,
		State:        StateResolving,
	}

	switch policy.Kind {
	case PolicyRequired:
		decision.Visibility = policy.Required
		decision.Source = SourceOrganizationPolicy
		decision.Constraints = append(decision.Constraints, ConstraintOrganizationRequired)

	case PolicyRestricted:
		prohibited := mapset.NewThreadUnsafeSet(policy.Prohibited...)
		candidates, sources := candidateOrder(req)

		// An explicit user preference is validated, not silently
		// replaced: asking for a prohibited visibility is a policy
		// violation. Defaults (template, system) merely fall through.
		if req.UserPreference != nil && prohibited.Contains(*req.UserPreference) {
			decision.State = StateFailed
			return nil, &PolicyViolationError{
				Organization: req.Organization,
				Candidates:   []Visibility{*req.UserPreference},
				Prohibited:   policy.Prohibited,
			}
		}

		chosen := -1
		for i, c := range candidates {
			if prohibited.Contains(c) {
				decision.Constraints = append(decision.Constraints, ConstraintProhibitedSkipped)
				continue
			}
			chosen = i
			break
		}
		if chosen < 0 {
			decision.State = StateFailed
			return nil, &PolicyViolationError{
				Organization: req.Organization,
				Candidates:   candidates,
				Prohibited:   policy.Prohibited,
			}
		}
		decision.Visibility = candidates[chosen]
		decision.Source = sources[chosen]

	case PolicyUnrestricted:
		candidates, sources := candidateOrder(req)
		decision.Visibility = candidates[0]
		decision.Source = sources[0]
	}

	if err := r.checkPlatform(ctx, req.Organization, decision); err != nil {
		decision.State = StateFailed
		return nil, err
	}

	decision.State = StateDecided
	slog.Debug("visibility decided",
		slog.String("organization", req.Organization),
		slog.String("visibility", string(decision.Visibility)),
		slog.String("source", string(decision.Source)))
	return decision, nil
}

// candidateOrder lists the candidate visibilities in decision order:
// user preference, template default, system default. The system
// default is always present, so the slices are never empty.
func candidateOrder(req Request) ([]Visibility, []DecisionSource) {
	var candidates []Visibility
	var sources []DecisionSource
	if req.UserPreference != nil {
		candidates = append(candidates, *req.UserPreference)
		sources = append(sources, SourceUserPreference)
	}
	if req.TemplateDefault != nil {
		candidates = append(candidates, *req.TemplateDefault)
		sources = append(sources, SourceTemplateDefault)
	}
	candidates = append(candidates, SystemDefault)
	sources = append(sources, SourceSystemDefault)
	return candidates, sources
}

// checkPlatform validates the chosen visibility against plan
// capability. Internal visibility requires an enterprise-capable
// environment; private requires a plan that allows private repos.
func (r *Resolver) checkPlatform(ctx context.Context, organization string, decision *Decision) error {
	plan, err := r.plans.GetOrLoad(ctx, organization, func(ctx context.Context, org string) (PlanLimitations, error) {
		return r.detector.GetPlanLimitations(ctx, org)
	})
	if err != nil {
		return fmt.Errorf("fetch plan limitations for %q: %w", organization, err)
	}
	decision.Constraints = append(decision.Constraints, ConstraintPlatformCapability)

	switch decision.Visibility {
	case Internal:
		decision.Constraints = append(decision.Constraints, ConstraintInternalNeedsEnterprise)
		if !plan.IsEnterprise || !plan.SupportsInternal {
			return &GitHubConstraintError{
				Organization: organization,
				Visibility:   Internal,
				Reason:       "internal visibility requires an enterprise-capable environment",
			}
		}
	case Private:
		if !plan.SupportsPrivate {
			return &GitHubConstraintError{
				Organization: organization,
				Visibility:   Private,
				Reason:       "plan does not allow private repositories",
			}
		}
	}
	return nil
}
