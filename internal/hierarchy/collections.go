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

package hierarchy

import (
	"sort"
	"strings"
)

// Label is a repository issue label, keyed by name.
type Label struct {
	Name        string `yaml:"name" json:"name"`
	Color       string `yaml:"color,omitempty" json:"color,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Key returns the merge key for a label.
func (l Label) Key() string { return l.Name }

// Webhook is an outbound webhook subscription, keyed by URL plus the
// sorted event list: the same URL subscribed to different events is a
// distinct entry.
type Webhook struct {
	URL         string   `yaml:"url" json:"url"`
	Events      []string `yaml:"events" json:"events"`
	ContentType string   `yaml:"content_type,omitempty" json:"content_type,omitempty"`
	SecretRef   string   `yaml:"secret_ref,omitempty" json:"secret_ref,omitempty"`
	Active      *bool    `yaml:"active,omitempty" json:"active,omitempty"`
}

// Key returns the merge key for a webhook.
func (w Webhook) Key() string {
	events := make([]string, len(w.Events))
	copy(events, w.Events)
	sort.Strings(events)
	return w.URL + "|" + strings.Join(events, ",")
}

// CustomProperty is an organization custom property value, keyed by name.
type CustomProperty struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// Key returns the merge key for a custom property.
func (p CustomProperty) Key() string { return p.Name }

// Environment is a deployment environment, keyed by name.
type Environment struct {
	Name             string   `yaml:"name" json:"name"`
	WaitTimerMinutes int      `yaml:"wait_timer_minutes,omitempty" json:"wait_timer_minutes,omitempty"`
	Reviewers        []string `yaml:"reviewers,omitempty" json:"reviewers,omitempty"`
	ProtectedBranches bool    `yaml:"protected_branches,omitempty" json:"protected_branches,omitempty"`
}

// Key returns the merge key for an environment.
func (e Environment) Key() string { return e.Name }

// GithubApp is a GitHub App installation request, keyed by app ID. The
// Required flag is non-overridable: once any level marks an app
// required, it must appear in the merged result even if higher levels
// omit it, and the resolver fails if no level defines the app at all.
type GithubApp struct {
	AppID    int64  `yaml:"app_id" json:"app_id"`
	Slug     string `yaml:"slug,omitempty" json:"slug,omitempty"`
	Required bool   `yaml:"required,omitempty" json:"required,omitempty"`
}

// Key returns the merge key for a GitHub App entry.
func (a GithubApp) Key() int64 { return a.AppID }
