// Package meta implements the search driver that runs a compiled pattern
// over a line of text.
//
// The driver coordinates two components:
//   - Prefilter: fast literal-based candidate finding (optional)
//   - Backtracking matcher: decides whether the pattern matches at an offset
//
// A start-anchored pattern is tried at offset 0 only. Any other pattern is
// tried at every rune boundary from 0 up to and including the end of the
// text, skipping offsets the prefilter rules out. The first offset that
// matches wins.
//
// A compiled Engine is immutable and safe for concurrent use. Per-search
// state comes from a sync.Pool.
package meta

import "errors"

// ErrInvalidConfig is the error every Config.Validate failure matches with
// errors.Is.
var ErrInvalidConfig = errors.New("invalid config")

// Config controls engine behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // Try every offset
//	engine, err := meta.CompileWithConfig(`\d+ apples`, config)
type Config struct {
	// EnablePrefilter enables literal-based prefiltering.
	// When false, every offset is handed to the matcher.
	// Default: true
	EnablePrefilter bool

	// MaxLiterals limits the number of prefix literals extracted for
	// prefiltering.
	// Default: 64
	MaxLiterals int

	// MaxLiteralLen limits the length of each prefix literal in bytes.
	// Default: 64
	MaxLiteralLen int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter: true,
		MaxLiterals:     64,
		MaxLiteralLen:   64,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges (checked only when the prefilter is enabled):
//   - MaxLiterals: 1 to 1,000
//   - MaxLiteralLen: 1 to 256
func (c Config) Validate() error {
	if !c.EnablePrefilter {
		return nil
	}
	if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
		return &ConfigError{
			Field:   "MaxLiterals",
			Message: "must be between 1 and 1,000",
		}
	}
	if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 256 {
		return &ConfigError{
			Field:   "MaxLiteralLen",
			Message: "must be between 1 and 256",
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "btgrep: invalid config: " + e.Field + ": " + e.Message
}

// Is reports whether target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
