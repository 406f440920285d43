package ondemand

import "github.com/arloliu/jsimd/internal/options"

// ParserOption configures a Parser.
type ParserOption = options.Option[*options.ParserConfig]

// WithMaxDepth sets the maximum nesting depth accepted while iterating.
func WithMaxDepth(depth int) ParserOption {
	return options.New(func(c *options.ParserConfig) error {
		return c.SetMaxDepth(depth)
	})
}

// WithMaxCapacity sets the largest document, in bytes, the parser accepts.
func WithMaxCapacity(capacity uint64) ParserOption {
	return options.New(func(c *options.ParserConfig) error {
		return c.SetMaxCapacity(capacity)
	})
}

// WithInitialCapacity pre-sizes the structural index for documents of the given size.
func WithInitialCapacity(capacity int) ParserOption {
	return options.New(func(c *options.ParserConfig) error {
		return c.SetInitialCapacity(capacity)
	})
}
