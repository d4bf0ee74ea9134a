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

// Package hierarchy defines the configuration hierarchy data model:
// the fixed precedence levels, per-level raw configuration objects,
// and the merged result produced by the resolver.
package hierarchy

import "fmt"

// Level identifies one tier of the configuration hierarchy. Precedence
// is total and fixed: System is always lowest, Template always highest.
type Level int

const (
	LevelSystem Level = iota
	LevelOrganization
	LevelTeam
	LevelRepositoryType
	LevelTemplate
)

// Levels is the complete precedence order, lowest first. Resolution
// folds over this slice; the order is data, never inferred from the
// configs themselves.
var Levels = []Level{
	LevelSystem,
	LevelOrganization,
	LevelTeam,
	LevelRepositoryType,
	LevelTemplate,
}

var levelNames = map[Level]string{
	LevelSystem:         "system",
	LevelOrganization:   "organization",
	LevelTeam:           "team",
	LevelRepositoryType: "repository_type",
	LevelTemplate:       "template",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Valid reports whether l is one of the defined hierarchy levels.
func (l Level) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

// MarshalYAML emits the level name rather than its ordinal.
func (l Level) MarshalYAML() (any, error) {
	return l.String(), nil
}

// MarshalJSON emits the level name rather than its ordinal.
func (l Level) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// ParseLevel maps a level name back to its Level tag.
func ParseLevel(name string) (Level, error) {
	for l, n := range levelNames {
		if n == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown hierarchy level %q", name)
}
