// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the YAML configuration of a CT Log frontend.
package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	MemoryBackend = "memory"
	MySQLBackend  = "mysql"
)

// Config configures one Log frontend.
type Config struct {
	Log     Log     `yaml:"log"`
	Storage Storage `yaml:"storage"`

	// RootsPath is a PEM file holding the roots the Log accepts chains to.
	RootsPath string `yaml:"roots_path"`
	// MaxChainBytes limits the total DER length of a submitted chain.  Zero
	// means the submission package default.
	MaxChainBytes int `yaml:"max_chain_bytes"`
}

// Log identifies the Log and its signing key.
type Log struct {
	Name string `yaml:"name"`

	// PrivateKeyPath is a PEM file holding the Log's private key, encrypted
	// with PrivateKeyPassword if that is set.
	PrivateKeyPath     string `yaml:"private_key_path"`
	PrivateKeyPassword string `yaml:"private_key_password"`

	// NotAfterStart is the start of the validity range for certificates
	// accepted by this Log, as an RFC 3339 date.
	NotAfterStart string `yaml:"not_after_start"`

	// NotAfterLimit is the end of the validity range (not included) for
	// certificates accepted by this Log, as an RFC 3339 date.
	NotAfterLimit string `yaml:"not_after_limit"`
}

// Storage selects and configures the log store.
type Storage struct {
	// Backend is MemoryBackend or MySQLBackend.
	Backend string `yaml:"backend"`
	// MySQLURI is the data source name used with the MySQL backend.
	MySQLURI string `yaml:"mysql_uri"`
	// CacheSize is the number of logged records kept in memory.  Zero
	// disables the cache.
	CacheSize int `yaml:"cache_size"`
	// Print logs every storage call.
	Print bool `yaml:"print"`
}

// Load reads and validates the config file at configPath.
func Load(configPath string) (*Config, error) {
	file, err := ioutil.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %s", err)
	}
	return Parse(file)
}

// Parse parses and validates a YAML config.
func Parse(b []byte) (*Config, error) {
	cfg := Config{Storage: Storage{Backend: MemoryBackend}}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling: %s", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that c is complete and consistent.
func (c *Config) Validate() error {
	if c.Log.Name == "" {
		return errors.New("log.name is required")
	}
	if c.Log.PrivateKeyPath == "" {
		return errors.New("log.private_key_path is required")
	}
	if c.RootsPath == "" {
		return errors.New("roots_path is required")
	}
	if c.MaxChainBytes < 0 {
		return fmt.Errorf("max_chain_bytes must not be negative, got %d", c.MaxChainBytes)
	}
	if _, _, err := c.Log.NotAfterRange(); err != nil {
		return err
	}
	switch c.Storage.Backend {
	case MemoryBackend:
	case MySQLBackend:
		if c.Storage.MySQLURI == "" {
			return errors.New("storage.mysql_uri is required with the mysql backend")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	if c.Storage.CacheSize < 0 {
		return fmt.Errorf("storage.cache_size must not be negative, got %d", c.Storage.CacheSize)
	}
	return nil
}

// NotAfterRange returns the parsed NotAfterStart and NotAfterLimit.  Unset
// values are returned as the zero time.
func (l *Log) NotAfterRange() (start, limit time.Time, err error) {
	if l.NotAfterStart != "" {
		if start, err = time.Parse(time.RFC3339, l.NotAfterStart); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("log.not_after_start: %s", err)
		}
	}
	if l.NotAfterLimit != "" {
		if limit, err = time.Parse(time.RFC3339, l.NotAfterLimit); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("log.not_after_limit: %s", err)
		}
	}
	if start.IsZero() != limit.IsZero() {
		return time.Time{}, time.Time{}, errors.New("log.not_after_start and log.not_after_limit must be set together")
	}
	return start, limit, nil
}
