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

// Package merge implements the pure per-category merge functions used
// by the hierarchy resolver. Each function is stateless and operates
// on inputs ordered lowest precedence first.
package merge

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/repoforge/provisioner/internal/hierarchy"
)

// Leveled pairs a value with the level that defined it.
type Leveled[T any] struct {
	Level hierarchy.Level
	Value T
}

// Scalar returns the highest-precedence defined value. Levels that do
// not define the setting are transparent. ok is false when no level
// defines it.
func Scalar[T any](values []Leveled[T]) (out T, origin hierarchy.Level, ok bool) {
	for _, v := range values {
		out = v.Value
		origin = v.Level
		ok = true
	}
	return out, origin, ok
}

// OrderedList concatenates per-level lists with higher-precedence
// entries first, deduplicating by value equality and keeping the first
// (highest-precedence) occurrence. perLevel is ordered lowest
// precedence first.
func OrderedList[T comparable](perLevel [][]T) []T {
	seen := mapset.NewThreadUnsafeSet[T]()
	var out []T
	for i := len(perLevel) - 1; i >= 0; i-- {
		for _, v := range perLevel[i] {
			if seen.Add(v) {
				out = append(out, v)
			}
		}
	}
	return out
}

// Keyed merges keyed collections across levels: the union of all keys,
// with the highest-precedence value winning a key collision. Output
// order is deterministic: keys appear in the order they are first
// introduced walking levels from lowest to highest precedence, with
// collisions replaced in place. No key unique to any level is ever
// dropped.
func Keyed[T any, K comparable](perLevel [][]T, key func(T) K) []T {
	index := make(map[K]int)
	var out []T
	for _, entries := range perLevel {
		for _, entry := range entries {
			k := key(entry)
			if at, ok := index[k]; ok {
				out[at] = entry
				continue
			}
			index[k] = len(out)
			out = append(out, entry)
		}
	}
	return out
}
