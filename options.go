package chaintable

import (
	"math"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const (
	// DefaultLoadFactor is used unless WithLoadFactor is given.
	DefaultLoadFactor = 0.75

	defaultMapCapacity   = 1 << 4
	defaultChainCapacity = 17
)

// An Option configures a Map or ChainMap at construction.
type Option func(*config)

type config struct {
	capacity   int
	loadFactor float64
	logger     *zap.Logger
}

// WithCapacity sets the initial number of buckets.
// Capacity is a hint: Map rounds it up to a power of 2,
// ChainMap rounds it up to a prime. Neither goes above 1<<30 buckets.
func WithCapacity(n int) Option {
	return func(c *config) { c.capacity = n }
}

// WithLoadFactor sets the ratio of entries to buckets above
// which the table grows.
func WithLoadFactor(f float64) Option {
	return func(c *config) { c.loadFactor = f }
}

// WithLogger sets the logger used to report table growth at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

func newConfig(defaultCapacity int, opts []Option) (config, error) {
	c := config{
		capacity:   defaultCapacity,
		loadFactor: DefaultLoadFactor,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if err := c.validate(); err != nil {
		return config{}, err
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

func (c *config) validate() error {
	if c.capacity < 0 {
		return errors.Wrapf(ErrInvalidArgument, "illegal initial capacity: %d", c.capacity)
	}
	if c.loadFactor <= 0 || math.IsNaN(c.loadFactor) {
		return errors.Wrapf(ErrInvalidArgument, "illegal load factor: %v", c.loadFactor)
	}
	return nil
}

func checkHashers[K, V any](keys Hasher[K], values Hasher[V]) error {
	if keys == nil {
		return errors.Wrap(ErrInvalidArgument, "nil key hasher")
	}
	if values == nil {
		return errors.Wrap(ErrInvalidArgument, "nil value hasher")
	}
	return nil
}
