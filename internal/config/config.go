// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config handles the intcode.toml configuration file and its
// environment overrides.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// FileName is the name of the configuration file looked up by Find.
const FileName = "intcode.toml"

// Config is the intcode configuration.
type Config struct {
	Log   Log              `toml:"log"`
	Trace Trace            `toml:"trace"`
	Keys  map[string]int64 `toml:"keys"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-"`
}

// Log configures logging.
type Log struct {
	Level   string `toml:"level"`   // debug, info, warn or error
	Format  string `toml:"format"`  // text or json
	File    string `toml:"file"`    // optional JSON log file
	Journal bool   `toml:"journal"` // also log to the systemd journal
}

// Trace configures execution tracing.
type Trace struct {
	Kind string `toml:"kind"` // empty (off), log, csv or sqlite
	Path string `toml:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load parses the given configuration file. Missing values are set to their
// default.
func Load(path string) (*Config, error) {
	c := Default()
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, errors.Wrapf(err, "parse error in %s", path)
	}
	c.Path = path
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return c, nil
}

// Find walks up from startDir to find an intcode.toml file, then loads and
// returns it. Returns the default configuration if no file is found.
func Find(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Environment variables overriding configuration values.
const (
	EnvLogLevel  = "INTCODE_LOG_LEVEL"
	EnvLogFormat = "INTCODE_LOG_FORMAT"
	EnvLogFile   = "INTCODE_LOG_FILE"
	EnvJournal   = "INTCODE_JOURNAL"
	EnvTrace     = "INTCODE_TRACE"
	EnvTracePath = "INTCODE_TRACE_PATH"
)

// ApplyEnv overrides configuration values with the environment variables
// returned by lookup, typically os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, e := range []struct {
		name string
		dst  *string
	}{
		{EnvLogLevel, &c.Log.Level},
		{EnvLogFormat, &c.Log.Format},
		{EnvLogFile, &c.Log.File},
		{EnvTrace, &c.Trace.Kind},
		{EnvTracePath, &c.Trace.Path},
	} {
		if v, ok := lookup(e.name); ok {
			*e.dst = v
		}
	}
	if v, ok := lookup(EnvJournal); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, EnvJournal)
		}
		c.Log.Journal = b
	}
	return c.Validate()
}

// Validate checks that enumerated values are known.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Errorf("invalid log format %q", c.Log.Format)
	}
	switch c.Trace.Kind {
	case "", "log", "csv", "sqlite":
	default:
		return errors.Errorf("invalid trace kind %q", c.Trace.Kind)
	}
	return nil
}

// Resolve loads the configuration from path, or from the first intcode.toml
// found from the current directory up if path is empty. It then loads the
// .env file from the current directory, if any, and applies environment
// overrides.
func Resolve(path string) (*Config, error) {
	var (
		c   *Config
		err error
	)
	if path != "" {
		c, err = Load(path)
	} else {
		c, err = Find(".")
	}
	if err != nil {
		return nil, err
	}
	if err = godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}
	if err = c.ApplyEnv(os.LookupEnv); err != nil {
		return nil, errors.Wrap(err, "environment")
	}
	return c, nil
}
