package gen

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultRuntime is the import path of the runtime package used by
	// generated code.
	DefaultRuntime = "github.com/syssam/protoval"
	// FileSuffix is appended to the snake case message name to form the
	// name of a generated file.
	FileSuffix = ".protoval.go"
	// ManifestFile is the name of the manifest kept in the target directory.
	ManifestFile = ".protoval.manifest"
)

// Config holds the global codegen configuration shared by all messages.
type Config struct {
	// Package is the name of the generated Go package, e.g. "example".
	Package string `yaml:"package" toml:"package"`
	// Target is the directory where the generated files are written.
	Target string `yaml:"target" toml:"target"`
	// Header is an optional comment added below the generated code notice.
	Header string `yaml:"header,omitempty" toml:"header,omitempty"`
	// Workers limits concurrent generation. Zero means GOMAXPROCS.
	Workers int `yaml:"workers,omitempty" toml:"workers,omitempty"`
	// Runtime is the import path of the runtime package.
	Runtime string `yaml:"runtime,omitempty" toml:"runtime,omitempty"`
	// Format runs goimports over every file before it is written.
	Format bool `yaml:"format" toml:"format"`
	// Manifest enables the incremental manifest in the target directory.
	Manifest bool `yaml:"manifest" toml:"manifest"`
	// Emitter renders messages. Nil means GoEmitter.
	Emitter Emitter `yaml:"-" toml:"-"`
}

// DefaultConfig returns the configuration used when no option overrides it.
func DefaultConfig() *Config {
	return &Config{
		Runtime:  DefaultRuntime,
		Format:   true,
		Manifest: true,
	}
}

// LoadConfig reads a configuration file. The format is chosen by extension:
// .yaml and .yml for YAML, .toml for TOML. Settings missing from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	default:
		return nil, NewConfigError("Config", path, "unsupported config format; use .yaml, .yml or .toml")
	}
	return c, nil
}

// Validate checks the settings needed to render a message.
func (c *Config) Validate() error {
	if c.Package == "" {
		return NewConfigError("Package", nil, "package cannot be empty")
	}
	if !ValidPackageName(c.Package) {
		return NewConfigError("Package", c.Package, "not a valid Go package name")
	}
	if c.Workers < 0 {
		return NewConfigError("Workers", c.Workers, "workers cannot be negative")
	}
	return nil
}

// ValidPackageName reports if name can be used in a package clause.
func ValidPackageName(name string) bool {
	return name != "_" && token.IsIdentifier(name)
}

func (c *Config) runtime() string {
	if c.Runtime == "" {
		return DefaultRuntime
	}
	return c.Runtime
}

func (c *Config) emitter() Emitter {
	if c.Emitter == nil {
		return GoEmitter{}
	}
	return c.Emitter
}
