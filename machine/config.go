// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package machine

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config configures a Machine.
type Config struct {
	// DefaultModule is the context module of handle 0. Default "user".
	DefaultModule string `yaml:"default_module"`
	// MaxTermRefs bounds the term references of one engine. Zero means
	// unbounded.
	MaxTermRefs int `yaml:"max_term_refs"`
	// MangleProgram is a path to a Mangle program loaded at startup.
	MangleProgram string `yaml:"mangle_program"`
	// MangleSource is inline Mangle source loaded after MangleProgram.
	MangleSource string `yaml:"mangle_source"`
	// MangleModule receives the relations of the Mangle program.
	// Default is DefaultModule.
	MangleModule string `yaml:"mangle_module"`

	// Output receives write/1, writeq/1 and nl/0. Default io.Discard.
	Output io.Writer `yaml:"-"`
}

// DefaultConfig returns the configuration used by New(Config{}).
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.DefaultModule == "" {
		c.DefaultModule = "user"
	}
	if c.MangleModule == "" {
		c.MangleModule = c.DefaultModule
	}
	return c
}

// ParseConfig decodes a YAML configuration.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("machine: parse config: %w", err)
	}
	if c.MaxTermRefs < 0 {
		return Config{}, fmt.Errorf("machine: max_term_refs must not be negative, got %d", c.MaxTermRefs)
	}
	return c.withDefaults(), nil
}

// LoadConfig reads and decodes a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("machine: read config: %w", err)
	}
	return ParseConfig(data)
}
