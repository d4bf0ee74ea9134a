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

// Package override enforces the override_allowed contract across
// hierarchy levels: once any level fixes a scalar setting as
// non-overridable, no higher-precedence level may change its value.
package override

import (
	"reflect"

	"github.com/repoforge/provisioner/internal/hierarchy"
)

type settingState struct {
	closed   bool
	closedBy hierarchy.Level
	value    any
}

// Tracker holds the per-setting override state for a single resolution
// request. It carries no cross-request state; the resolver constructs
// one per fold.
type Tracker struct {
	states map[string]settingState
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{states: make(map[string]settingState)}
}

// Observe records level defining path with the given value and
// optional override_allowed flag, enforcing earlier closures.
//
// A closed setting rejects any differing value from a later level with
// OverrideNotPermittedError. Re-supplying the identical value is a
// no-op: it does not change the result and is not treated as an
// override attempt. Once closed, a setting is never reopened, even if
// a later level declares override_allowed=true.
func (t *Tracker) Observe(level hierarchy.Level, path string, value any, overrideAllowed *bool) error {
	state, tracked := t.states[path]

	if tracked && state.closed {
		if !reflect.DeepEqual(state.value, value) {
			return &hierarchy.OverrideNotPermittedError{
				Setting:  path,
				Level:    level,
				ClosedBy: state.closedBy,
			}
		}
		return nil
	}

	if overrideAllowed != nil && !*overrideAllowed {
		t.states[path] = settingState{closed: true, closedBy: level, value: value}
		return nil
	}

	t.states[path] = settingState{value: value}
	return nil
}

// Closed reports whether path has been fixed as non-overridable, and
// by which level.
func (t *Tracker) Closed(path string) (hierarchy.Level, bool) {
	state, ok := t.states[path]
	if !ok || !state.closed {
		return 0, false
	}
	return state.closedBy, true
}
