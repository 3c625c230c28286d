// Copyright 2023 Hopgraph, Inc.
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

package config

import (
	"strings"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	"github.com/hopgraph/hop/util/logutil"
	"github.com/pingcap/errors"
)

// Config contains configuration options.
type Config struct {
	Log     Log     `toml:"log" json:"log"`
	Planner Planner `toml:"planner" json:"planner"`
}

// Log is the log section of config.
type Log struct {
	// Level is the log level, one of "debug", "info", "warn", "error", "fatal".
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"`
	File   string `toml:"file" json:"file"`
}

// Planner is the planner section of config.
type Planner struct {
	// DepthOrderingElimination enables removing sorts that are already
	// satisfied by the emit order of a breadth-first expansion.
	DepthOrderingElimination bool `toml:"depth-ordering-elimination" json:"depth-ordering-elimination"`
	// MaxPlanDepth bounds the operator nesting the planner accepts.
	MaxPlanDepth uint `toml:"max-plan-depth" json:"max-plan-depth"`
}

var defaultConf = Config{
	Log: Log{
		Level:  logutil.DefaultLogLevel,
		Format: logutil.DefaultLogFormat,
	},
	Planner: Planner{
		DepthOrderingElimination: true,
		MaxPlanDepth:             512,
	},
}

var globalConf atomic.Value

func init() {
	conf := defaultConf
	StoreGlobalConfig(&conf)
}

// NewConfig creates a new config instance with default value.
func NewConfig() *Config {
	conf := defaultConf
	return &conf
}

// GetGlobalConfig returns the global configuration for this server.
// It should store configuration from command line and configuration file.
// Other parts of the system can read the global configuration use this function.
func GetGlobalConfig() *Config {
	return globalConf.Load().(*Config)
}

// StoreGlobalConfig stores a new config to the globalConf.
func StoreGlobalConfig(config *Config) {
	globalConf.Store(config)
}

// Load loads config options from a toml file.
func (c *Config) Load(confFile string) error {
	metaData, err := toml.DecodeFile(confFile, c)
	if err != nil {
		return errors.Trace(err)
	}
	// If any items in confFile file are not mapped into the Config struct,
	// issue an error and stop the server from starting.
	undecoded := metaData.Undecoded()
	if len(undecoded) > 0 {
		undecodedItems := make([]string, 0, len(undecoded))
		for _, item := range undecoded {
			undecodedItems = append(undecodedItems, item.String())
		}
		return errors.Errorf("config file %s contained unknown configuration options: %s",
			confFile, strings.Join(undecodedItems, ", "))
	}
	return nil
}
