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

package config

import (
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates configuration for the application.
type Config struct {
	Hierarchy HierarchyConfig `mapstructure:"hierarchy"`
	Policy    PolicyConfig    `mapstructure:"policy"`
	Log       LogConfig       `mapstructure:"log"`
}

// HierarchyConfig locates the metadata checkout the level loader
// reads.
type HierarchyConfig struct {
	Root string `mapstructure:"root"`
}

// PolicyConfig locates the visibility policy document and tunes its
// row cache.
type PolicyConfig struct {
	File string        `mapstructure:"file"`
	TTL  time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the baked-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Hierarchy: HierarchyConfig{Root: "/app/config/hierarchy"},
		Policy:    PolicyConfig{File: "/app/config/policies.yaml", TTL: 30 * time.Second},
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads configuration from files and environment variables.
// Environment variables use the prefix "REPOFORGE" and the dot
// character in keys is replaced by an underscore. For example,
// "hierarchy.root" becomes "REPOFORGE_HIERARCHY_ROOT".
func Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.SetEnvPrefix("REPOFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)
	_ = v.ReadInConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(parts, tag)
		if f.Type.Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}
