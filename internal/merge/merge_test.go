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

package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repoforge/provisioner/internal/hierarchy"
)

func TestScalar(t *testing.T) {
	t.Run("highest precedence wins", func(t *testing.T) {
		v, origin, ok := Scalar([]Leveled[bool]{
			{Level: hierarchy.LevelSystem, Value: false},
			{Level: hierarchy.LevelOrganization, Value: true},
			{Level: hierarchy.LevelTeam, Value: false},
		})
		assert.True(t, ok)
		assert.False(t, v)
		assert.Equal(t, hierarchy.LevelTeam, origin)
	})

	t.Run("absent levels are transparent", func(t *testing.T) {
		v, origin, ok := Scalar([]Leveled[string]{
			{Level: hierarchy.LevelSystem, Value: "main"},
		})
		assert.True(t, ok)
		assert.Equal(t, "main", v)
		assert.Equal(t, hierarchy.LevelSystem, origin)
	})

	t.Run("no level defines it", func(t *testing.T) {
		_, _, ok := Scalar[int](nil)
		assert.False(t, ok)
	})
}

func TestOrderedList(t *testing.T) {
	t.Run("higher precedence entries first", func(t *testing.T) {
		out := OrderedList([][]string{
			{"lint", "build"},
			{"security-scan"},
		})
		assert.Equal(t, []string{"security-scan", "lint", "build"}, out)
	})

	t.Run("dedup keeps highest-precedence occurrence", func(t *testing.T) {
		out := OrderedList([][]string{
			{"build", "lint"},
			{"lint", "integration"},
		})
		assert.Equal(t, []string{"lint", "integration", "build"}, out)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, OrderedList[string](nil))
	})
}

func TestKeyed(t *testing.T) {
	t.Run("union never drops a unique key", func(t *testing.T) {
		out := Keyed([][]hierarchy.Label{
			{{Name: "bug"}, {Name: "enhancement"}},
			{{Name: "priority-critical"}},
			{{Name: "service-config"}},
		}, hierarchy.Label.Key)
		assert.Len(t, out, 4)
	})

	t.Run("collision replaced in place by higher precedence", func(t *testing.T) {
		out := Keyed([][]hierarchy.Label{
			{{Name: "bug", Color: "ff0000"}, {Name: "docs", Color: "0000ff"}},
			{{Name: "bug", Color: "aa0000"}},
		}, hierarchy.Label.Key)
		assert.Len(t, out, 2)
		assert.Equal(t, "aa0000", out[0].Color)
		assert.Equal(t, "docs", out[1].Name)
	})

	t.Run("webhook keyed by url and events", func(t *testing.T) {
		out := Keyed([][]hierarchy.Webhook{
			{{URL: "https://ci.example.com/hook", Events: []string{"push"}}},
			{{URL: "https://ci.example.com/hook", Events: []string{"push", "pull_request"}}},
		}, hierarchy.Webhook.Key)
		// Different event sets are distinct webhooks, not a collision.
		assert.Len(t, out, 2)
	})
}
