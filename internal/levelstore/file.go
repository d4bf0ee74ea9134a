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

package levelstore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/repoforge/provisioner/internal/hierarchy"
)

type fileProvider struct {
	root string
}

var _ Provider = (*fileProvider)(nil)

// NewFileProvider returns a Provider reading level documents beneath
// root. The System document must exist; everything else is optional.
func NewFileProvider(root string) (Provider, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("hierarchy root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("hierarchy root %s is not a directory", root)
	}
	return &fileProvider{root: root}, nil
}

func (p *fileProvider) GetHierarchy(ctx context.Context, q Query) ([]*hierarchy.LevelConfig, error) {
	paths := []struct {
		level    hierarchy.Level
		path     string
		required bool
	}{
		{hierarchy.LevelSystem, filepath.Join(p.root, "defaults", "system.yaml"), true},
		{hierarchy.LevelOrganization, p.orgPath(q.Organization), false},
		{hierarchy.LevelTeam, p.teamPath(q.Organization, q.Team), false},
		{hierarchy.LevelRepositoryType, p.repoTypePath(q.RepositoryType), false},
		{hierarchy.LevelTemplate, p.templatePath(q.Template), false},
	}

	out := make([]*hierarchy.LevelConfig, 0, len(paths))
	for _, entry := range paths {
		if entry.path == "" {
			out = append(out, nil)
			continue
		}
		lc, err := readLevelFile(entry.path, entry.level)
		if err != nil {
			if os.IsNotExist(err) && !entry.required {
				out = append(out, nil)
				continue
			}
			return nil, err
		}
		out = append(out, lc)
	}
	return out, nil
}

func (p *fileProvider) orgPath(org string) string {
	if org == "" {
		return ""
	}
	return filepath.Join(p.root, "orgs", org+".yaml")
}

func (p *fileProvider) teamPath(org, team string) string {
	if org == "" || team == "" {
		return ""
	}
	return filepath.Join(p.root, "orgs", org, "teams", team+".yaml")
}

func (p *fileProvider) repoTypePath(repoType string) string {
	if repoType == "" {
		return ""
	}
	return filepath.Join(p.root, "repo-types", repoType+".yaml")
}

func (p *fileProvider) templatePath(template string) string {
	if template == "" {
		return ""
	}
	return filepath.Join(p.root, "templates", template, "config.yaml")
}

// readLevelFile decodes one level document. Unknown fields are
// tolerated so that newer metadata checkouts keep working against
// older provisioner builds.
func readLevelFile(path string, level hierarchy.Level) (*hierarchy.LevelConfig, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lc hierarchy.LevelConfig
	dec := yaml.NewDecoder(bytes.NewReader(contents))
	dec.KnownFields(false)
	if err := dec.Decode(&lc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal level config from file %s: %w", path, err)
	}
	lc.Level = level
	return &lc, nil
}
