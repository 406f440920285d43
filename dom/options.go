package dom

import "github.com/arloliu/jsimd/internal/options"

// ParserOption configures a Parser.
type ParserOption = options.Option[*options.ParserConfig]

// WithMaxDepth sets the maximum nesting depth of objects and arrays (default 1024).
// Deeper documents fail with errs.ErrDepthExceeded.
func WithMaxDepth(depth int) ParserOption {
	return options.New(func(c *options.ParserConfig) error {
		return c.SetMaxDepth(depth)
	})
}

// WithMaxCapacity sets the largest document, in bytes, the parser accepts (default 4GiB-1).
// Larger documents fail with errs.ErrBufferTooSmall.
func WithMaxCapacity(capacity uint64) ParserOption {
	return options.New(func(c *options.ParserConfig) error {
		return c.SetMaxCapacity(capacity)
	})
}

// WithInitialCapacity pre-sizes the scratch memory for documents of capacity bytes.
func WithInitialCapacity(capacity int) ParserOption {
	return options.New(func(c *options.ParserConfig) error {
		return c.SetInitialCapacity(capacity)
	})
}

// WithSIMD builds tapes with minio/simdjson-go on CPUs with AVX2 and CLMUL. Other CPUs, and
// documents whose tape could differ, use the portable builder; results are identical either way.
func WithSIMD(enabled bool) ParserOption {
	return options.New(func(c *options.ParserConfig) error {
		c.SetSIMD(enabled)
		return nil
	})
}
