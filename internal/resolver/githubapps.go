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

package resolver

import (
	"github.com/repoforge/provisioner/internal/hierarchy"
	"github.com/repoforge/provisioner/internal/merge"
)

// mergeGithubApps merges per-level GitHub App entries by app ID with
// the usual highest-precedence-wins rule, while keeping the Required
// flag sticky: once any level marks an app required, the merged entry
// stays required no matter what higher levels say, and omission at
// higher levels cannot remove it (union semantics already guarantee
// presence).
//
// A level may also declare a requirement by slug alone (required: true
// with no app_id), deferring the concrete app ID to another level. If
// no level supplies a definition for that slug, resolution fails with
// RequiredGithubAppMissing.
func mergeGithubApps(levels []*hierarchy.LevelConfig) ([]hierarchy.GithubApp, error) {
	type requirement struct {
		slug  string
		level hierarchy.Level
	}

	var definitions [][]hierarchy.GithubApp
	var slugRequirements []requirement
	requiredIDs := make(map[int64]bool)

	for _, lc := range levels {
		if lc == nil {
			continue
		}
		var defined []hierarchy.GithubApp
		for _, app := range lc.GithubApps {
			if app.AppID == 0 {
				if !app.Required || app.Slug == "" {
					return nil, &hierarchy.InvalidConfigurationError{
						Field:   "github_apps",
						Message: "entry needs an app_id, or a slug with required: true",
					}
				}
				slugRequirements = append(slugRequirements, requirement{slug: app.Slug, level: lc.Level})
				continue
			}
			if app.Required {
				requiredIDs[app.AppID] = true
			}
			defined = append(defined, app)
		}
		definitions = append(definitions, defined)
	}

	apps := merge.Keyed(definitions, hierarchy.GithubApp.Key)

	definedSlugs := make(map[string]int)
	for i := range apps {
		if apps[i].Slug != "" {
			definedSlugs[apps[i].Slug] = i
		}
		if requiredIDs[apps[i].AppID] {
			apps[i].Required = true
		}
	}

	for _, req := range slugRequirements {
		at, ok := definedSlugs[req.slug]
		if !ok {
			return nil, &hierarchy.RequiredGithubAppMissingError{
				Slug:       req.slug,
				RequiredBy: req.level,
			}
		}
		apps[at].Required = true
	}

	return apps, nil
}
