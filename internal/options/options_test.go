package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/internal/engine"
)

type testConfig struct {
	value int
	calls []string
}

func withValue(v int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if v < 0 {
			return errors.New("value cannot be negative")
		}
		c.value = v
		c.calls = append(c.calls, "value")

		return nil
	})
}

func withCall(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.calls = append(c.calls, name)
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &testConfig{}

		err := Apply(cfg, withCall("a"), withValue(7), withCall("b"))
		require.NoError(t, err)
		require.Equal(t, 7, cfg.value)
		require.Equal(t, []string{"a", "value", "b"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}

		err := Apply(cfg, withValue(5), withValue(-1), withCall("skipped"))
		require.ErrorContains(t, err, "value cannot be negative")
		require.Equal(t, 5, cfg.value)
		require.Equal(t, []string{"value"}, cfg.calls)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &testConfig{}

		require.NoError(t, Apply(cfg, nil, withCall("x"), nil))
		require.Equal(t, []string{"x"}, cfg.calls)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &testConfig{}

		require.NoError(t, Apply(cfg))
		require.Zero(t, cfg.value)
	})
}

func TestNewParserConfig_Defaults(t *testing.T) {
	cfg := NewParserConfig()

	require.Equal(t, engine.DefaultMaxDepth, cfg.MaxDepth)
	require.Equal(t, uint64(engine.MaxSize), cfg.MaxCapacity)
	require.Zero(t, cfg.InitialCapacity)
	require.NoError(t, cfg.Validate())
}

func TestParserConfig_Setters(t *testing.T) {
	cfg := NewParserConfig()

	require.NoError(t, cfg.SetMaxDepth(16))
	require.Equal(t, 16, cfg.MaxDepth)
	require.ErrorContains(t, cfg.SetMaxDepth(0), "max depth must be positive")
	require.Equal(t, 16, cfg.MaxDepth, "a rejected value must not be stored")

	require.NoError(t, cfg.SetMaxCapacity(1024))
	require.Equal(t, uint64(1024), cfg.MaxCapacity)
	require.Error(t, cfg.SetMaxCapacity(0))
	require.Error(t, cfg.SetMaxCapacity(uint64(engine.MaxSize)+1))

	require.NoError(t, cfg.SetInitialCapacity(512))
	require.Error(t, cfg.SetInitialCapacity(-1))
	require.NoError(t, cfg.Validate())

	require.NoError(t, cfg.SetInitialCapacity(4096))
	require.ErrorContains(t, cfg.Validate(), "exceeds max capacity")

	cfg.SetSIMD(true)
	require.True(t, cfg.SIMD)
}

func TestParserConfig_ErrorsAreConfigKind(t *testing.T) {
	cfg := NewParserConfig()

	for _, err := range []error{
		cfg.SetMaxDepth(-1),
		cfg.SetMaxCapacity(0),
		cfg.SetInitialCapacity(-5),
	} {
		require.ErrorIs(t, err, errs.ErrConfig)
		var e *errs.Error
		require.ErrorAs(t, err, &e)
		require.NotEmpty(t, e.Op)
	}

	cfg.InitialCapacity = int(cfg.MaxCapacity) + 1
	require.ErrorIs(t, cfg.Validate(), errs.ErrConfig)
}
