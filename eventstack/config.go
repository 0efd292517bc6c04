package eventstack

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-loadable form of the construction options, for
// integrators that select the backing strategy from deployment
// configuration rather than code.
//
//	backend: lockfree
//	threads: 8
//	capacity: 100000
//	compound_lock: true
type Config struct {
	Backend      string `yaml:"backend"` // "mutex" (default) or "lockfree"
	Threads      int    `yaml:"threads"`
	Capacity     int    `yaml:"capacity"`
	CompoundLock bool   `yaml:"compound_lock"`
}

// ParseConfig decodes and validates a YAML document.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("eventstack: parse config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Backend {
	case "", "mutex", "lockfree":
	default:
		return fmt.Errorf("eventstack: unknown backend %q", c.Backend)
	}
	if c.Threads < 0 {
		return fmt.Errorf("eventstack: negative threads %d", c.Threads)
	}
	if c.Capacity < 0 {
		return fmt.Errorf("eventstack: negative capacity %d", c.Capacity)
	}
	return nil
}

// FromConfig converts a Config into construction options. Extra options
// (typically WithCodec) are appended after the config-derived ones.
func FromConfig[T any](c Config, extra ...Option[T]) []Option[T] {
	opts := make([]Option[T], 0, 4+len(extra))
	if c.Backend == "lockfree" {
		opts = append(opts, WithLockFree[T]())
	}
	if c.Threads > 0 {
		opts = append(opts, WithThreads[T](c.Threads))
	}
	if c.Capacity > 0 {
		opts = append(opts, WithCapacity[T](c.Capacity))
	}
	if c.CompoundLock {
		opts = append(opts, WithCompoundLock[T]())
	}
	return append(opts, extra...)
}

// NewFromYAML builds a stack straight from a YAML document.
func NewFromYAML[T any](data []byte, extra ...Option[T]) (*EventStack[T], error) {
	c, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	return New(FromConfig[T](c, extra...)...), nil
}
