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

// Package policystore supplies visibility policies and plan
// capability from a YAML document, one row per organization. Per-org
// lookups are cached; Invalidate evicts a single row so a changed
// document is picked up on the next read.
package policystore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"gopkg.in/yaml.v3"

	"github.com/repoforge/provisioner/internal/visibility"
)

// DefaultTTL bounds how long a per-org row is served before the
// backing file is consulted again.
const DefaultTTL = 30 * time.Second

// OrgEntry is one organization's row in the policy document.
type OrgEntry struct {
	Policy visibility.Policy          `yaml:"policy"`
	Plan   visibility.PlanLimitations `yaml:"plan"`
}

type document struct {
	Organizations map[string]OrgEntry `yaml:"organizations"`
}

type orgCacheValue struct {
	entry OrgEntry
	err   error
}

// FileStore reads organization policy and plan rows from a single
// YAML file. It implements both visibility.PolicyProvider and
// visibility.EnvironmentDetector.
type FileStore struct {
	path  string
	cache *ttlcache.Cache[string, orgCacheValue]
}

var (
	_ visibility.PolicyProvider      = (*FileStore)(nil)
	_ visibility.EnvironmentDetector = (*FileStore)(nil)
)

// NewFileStore returns a FileStore over path with row TTL ttl.
func NewFileStore(path string, ttl time.Duration) (*FileStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("policy store %s: %w", path, err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	cache := ttlcache.New(
		ttlcache.WithTTL[string, orgCacheValue](ttl),
	)
	go cache.Start()
	return &FileStore{path: path, cache: cache}, nil
}

// Close stops the cache background goroutine.
func (s *FileStore) Close() {
	s.cache.Stop()
}

// GetPolicy returns the visibility policy for an organization, or
// visibility.ErrPolicyNotFound when the document has no row for it.
func (s *FileStore) GetPolicy(ctx context.Context, organization string) (visibility.Policy, error) {
	entry, err := s.getOrg(organization)
	if err != nil {
		return visibility.Policy{}, err
	}
	return entry.Policy, nil
}

// Invalidate evicts the cached row for an organization.
func (s *FileStore) Invalidate(organization string) {
	s.cache.Delete(organization)
}

// GetPlanLimitations returns the plan capability row for an
// organization. Organizations without a row get a conservative
// default: private allowed, internal not.
func (s *FileStore) GetPlanLimitations(ctx context.Context, organization string) (visibility.PlanLimitations, error) {
	entry, err := s.getOrg(organization)
	if err != nil {
		if errors.Is(err, visibility.ErrPolicyNotFound) {
			return visibility.PlanLimitations{SupportsPrivate: true}, nil
		}
		return visibility.PlanLimitations{}, err
	}
	return entry.Plan, nil
}

// IsEnterprise reports whether an organization runs on an
// enterprise-capable plan.
func (s *FileStore) IsEnterprise(ctx context.Context, organization string) (bool, error) {
	plan, err := s.GetPlanLimitations(ctx, organization)
	if err != nil {
		return false, err
	}
	return plan.IsEnterprise, nil
}

func (s *FileStore) getOrg(organization string) (OrgEntry, error) {
	loader := ttlcache.LoaderFunc[string, orgCacheValue](
		func(cache *ttlcache.Cache[string, orgCacheValue], key string) *ttlcache.Item[string, orgCacheValue] {
			entry, err := s.readOrg(key)
			return cache.Set(key, orgCacheValue{entry: entry, err: err}, ttlcache.DefaultTTL)
		},
	)
	cached := s.cache.Get(organization, ttlcache.WithLoader(loader)).Value()
	return cached.entry, cached.err
}

func (s *FileStore) readOrg(organization string) (OrgEntry, error) {
	contents, err := os.ReadFile(s.path)
	if err != nil {
		return OrgEntry{}, fmt.Errorf("failed to read policy store %s: %w", s.path, err)
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(contents))
	dec.KnownFields(false)
	if err := dec.Decode(&doc); err != nil {
		return OrgEntry{}, fmt.Errorf("failed to unmarshal policy store %s: %w", s.path, err)
	}

	entry, ok := doc.Organizations[organization]
	if !ok {
		return OrgEntry{}, visibility.ErrPolicyNotFound
	}
	return entry, nil
}
