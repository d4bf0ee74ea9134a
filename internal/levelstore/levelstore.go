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

// Package levelstore materializes the ordered per-level configuration
// objects the resolver consumes. The file provider reads a metadata
// checkout laid out as:
//
//	defaults/system.yaml
//	orgs/<org>.yaml
//	orgs/<org>/teams/<team>.yaml
//	repo-types/<type>.yaml
//	templates/<template>/config.yaml
//
// Every level except System is optional; a missing file simply yields
// a nil entry for that level.
package levelstore

import (
	"context"

	"github.com/repoforge/provisioner/internal/hierarchy"
)

// Query selects which level documents participate in one resolution.
// Empty selectors skip their level entirely.
type Query struct {
	Organization   string
	Team           string
	RepositoryType string
	Template       string
}

// Provider produces the ordered optional level configs for a query,
// lowest precedence first, ready to hand to the resolver.
type Provider interface {
	GetHierarchy(ctx context.Context, q Query) ([]*hierarchy.LevelConfig, error)
}
