package options

import (
	"fmt"

	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/internal/engine"
)

// ParserConfig holds the settings shared by the dom and ondemand parsers.
type ParserConfig struct {
	// MaxDepth is the maximum nesting depth of objects and arrays.
	MaxDepth int
	// MaxCapacity is the largest document, in bytes, the parser accepts.
	MaxCapacity uint64
	// InitialCapacity pre-sizes the parser scratch memory for documents of this many bytes.
	InitialCapacity int
	// SIMD lets the dom parser build tapes with minio/simdjson-go on supported CPUs.
	SIMD bool
}

// NewParserConfig returns the default parser configuration.
func NewParserConfig() *ParserConfig {
	return &ParserConfig{
		MaxDepth:    engine.DefaultMaxDepth,
		MaxCapacity: engine.MaxSize,
	}
}

// SetMaxDepth sets the maximum nesting depth.
func (c *ParserConfig) SetMaxDepth(depth int) error {
	if depth <= 0 {
		return errs.Config("options.SetMaxDepth", fmt.Sprintf("max depth must be positive, got %d", depth))
	}
	c.MaxDepth = depth

	return nil
}

// SetMaxCapacity sets the largest accepted document size.
func (c *ParserConfig) SetMaxCapacity(capacity uint64) error {
	if capacity == 0 || capacity > engine.MaxSize {
		return errs.Config("options.SetMaxCapacity",
			fmt.Sprintf("max capacity must be in [1, %d], got %d", uint64(engine.MaxSize), capacity))
	}
	c.MaxCapacity = capacity

	return nil
}

// SetInitialCapacity sets the document size the scratch memory is pre-sized for.
func (c *ParserConfig) SetInitialCapacity(capacity int) error {
	if capacity < 0 {
		return errs.Config("options.SetInitialCapacity",
			fmt.Sprintf("initial capacity cannot be negative, got %d", capacity))
	}
	c.InitialCapacity = capacity

	return nil
}

// SetSIMD enables or disables the simdjson-go tape backend.
func (c *ParserConfig) SetSIMD(enabled bool) {
	c.SIMD = enabled
}

// Validate checks the combination of settings.
func (c *ParserConfig) Validate() error {
	if uint64(c.InitialCapacity) > c.MaxCapacity {
		return errs.Config("options.Validate",
			fmt.Sprintf("initial capacity %d exceeds max capacity %d", c.InitialCapacity, c.MaxCapacity))
	}

	return nil
}
