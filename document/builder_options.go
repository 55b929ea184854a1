package document

import (
	"github.com/arloliu/bdoc/internal/options"
	"github.com/arloliu/bdoc/internal/pool"
)

type builderConfig struct {
	initialCapacity int
	pooled          bool
}

func defaultBuilderConfig() *builderConfig {
	return &builderConfig{initialCapacity: pool.DocumentBufferDefaultSize}
}

// BuilderOption configures a Builder.
type BuilderOption = options.Option[*builderConfig]

// WithInitialCapacity sets the initial buffer capacity in bytes.
//
// The buffer still grows on demand; a good estimate only saves reallocations.
// Values below the minimum document size are raised to it. Defaults to 512.
func WithInitialCapacity(n int) BuilderOption {
	return options.NoError(func(c *builderConfig) {
		c.initialCapacity = max(n, minBuilderCapacity)
	})
}

// WithPooledBuffer takes the builder buffer from a shared pool.
//
// Pooled buffers pay off for short-lived builders that are finished with
// Bytes and then Discarded, the way nested documents are built. A buffer that
// ends up owned by a Document returned from Done is not returned to the pool.
// WithInitialCapacity is ignored for pooled builders.
func WithPooledBuffer(enabled bool) BuilderOption {
	return options.NoError(func(c *builderConfig) {
		c.pooled = enabled
	})
}
