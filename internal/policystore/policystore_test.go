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

package policystore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repoforge/provisioner/internal/visibility"
)

const testDoc = `
organizations:
  acme:
    policy:
      kind: restricted
      prohibited: [public]
    plan:
      supports_private: true
      supports_internal: true
      is_enterprise: true
  startup:
    policy:
      kind: unrestricted
    plan:
      supports_private: true
`

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDoc), 0o644))

	store, err := NewFileStore(path, time.Minute)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store, path
}

func TestFileStore_GetPolicy(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	policy, err := store.GetPolicy(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, visibility.PolicyRestricted, policy.Kind)
	assert.Equal(t, []visibility.Visibility{visibility.Public}, policy.Prohibited)

	policy, err = store.GetPolicy(ctx, "startup")
	require.NoError(t, err)
	assert.Equal(t, visibility.PolicyUnrestricted, policy.Kind)
}

func TestFileStore_UnknownOrg(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.GetPolicy(context.Background(), "ghost")
	assert.ErrorIs(t, err, visibility.ErrPolicyNotFound)

	// Plan lookups degrade to a conservative default instead.
	plan, err := store.GetPlanLimitations(context.Background(), "ghost")
	require.NoError(t, err)
	assert.True(t, plan.SupportsPrivate)
	assert.False(t, plan.SupportsInternal)
}

func TestFileStore_PlanAndEnterprise(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	plan, err := store.GetPlanLimitations(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, plan.SupportsInternal)

	enterprise, err := store.IsEnterprise(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, enterprise)

	enterprise, err = store.IsEnterprise(ctx, "startup")
	require.NoError(t, err)
	assert.False(t, enterprise)
}

func TestFileStore_InvalidateRereadsFile(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	policy, err := store.GetPolicy(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, visibility.PolicyRestricted, policy.Kind)

	updated := `
organizations:
  acme:
    policy:
      kind: required
      required: internal
    plan:
      supports_internal: true
      is_enterprise: true
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	// Cached row still serves the old policy until invalidated.
	policy, err = store.GetPolicy(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, visibility.PolicyRestricted, policy.Kind)

	store.Invalidate("acme")
	policy, err = store.GetPolicy(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, visibility.PolicyRequired, policy.Kind)
	assert.Equal(t, visibility.Internal, policy.Required)
}

func TestNewFileStore_MissingFile(t *testing.T) {
	_, err := NewFileStore("/does/not/exist.yaml", time.Minute)
	assert.Error(t, err)
}
