package gen

import "errors"

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added below the generated code notice of each file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the name of the generated package.
// For example: "example".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		if !ValidPackageName(pkg) {
			return NewConfigError("Package", pkg, "not a valid Go package name")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithWorkers limits the number of messages generated concurrently.
// Zero restores the default of GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithRuntime sets the import path of the runtime package referenced by
// generated code.
func WithRuntime(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("Runtime", nil, "runtime import path cannot be empty")
		}
		c.Runtime = path
		return nil
	}
}

// WithFormat enables or disables the goimports pass of the writer.
func WithFormat(enabled bool) Option {
	return func(c *Config) error {
		c.Format = enabled
		return nil
	}
}

// WithManifest enables or disables the incremental manifest of the writer.
func WithManifest(enabled bool) Option {
	return func(c *Config) error {
		c.Manifest = enabled
		return nil
	}
}

// WithEmitter sets a custom emitter.
// If not set, defaults to GoEmitter.
func WithEmitter(e Emitter) Option {
	return func(c *Config) error {
		if e == nil {
			return NewConfigError("Emitter", nil, "emitter cannot be nil")
		}
		c.Emitter = e
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config from the defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
