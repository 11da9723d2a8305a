package merge

import (
	"github.com/matthewcarbone/iss-xas-tools/outlier"
	"github.com/matthewcarbone/iss-xas-tools/robust"
)

// Config collects the tuning constants of the rejection pipeline.
// All defaults are empirically calibrated on beamline scan groups.
type Config struct {
	ChiSquareThreshold float64
	TrimFraction       float64
	TrimMethod         outlier.TrimMethod
	Neighbors          int
	LOFOffset          float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default pipeline tuning.
func DefaultConfig() Config {
	return Config{
		ChiSquareThreshold: robust.DefaultChiSquareThreshold,
		TrimFraction:       outlier.DefaultTrimFraction,
		TrimMethod:         outlier.TrimValues,
		Neighbors:          outlier.DefaultNeighbors,
		LOFOffset:          outlier.DefaultLOFOffset,
	}
}

// WithChiSquareThreshold sets the modified chi-square rejection threshold.
func WithChiSquareThreshold(threshold float64) Option {
	return func(cfg *Config) {
		if threshold > 0 {
			cfg.ChiSquareThreshold = threshold
		}
	}
}

// WithTrimFraction sets the fraction trimmed before the density fit.
func WithTrimFraction(fraction float64) Option {
	return func(cfg *Config) {
		if fraction >= 0 && fraction < 1 {
			cfg.TrimFraction = fraction
		}
	}
}

// WithTrimMethod selects value-based or row-based trimming for the
// density fit.
func WithTrimMethod(method outlier.TrimMethod) Option {
	return func(cfg *Config) {
		cfg.TrimMethod = method
	}
}

// WithNeighbors sets the neighbor count of the density model.
func WithNeighbors(k int) Option {
	return func(cfg *Config) {
		if k > 0 {
			cfg.Neighbors = k
		}
	}
}

// WithLOFOffset sets the decision threshold of the density model.
func WithLOFOffset(offset float64) Option {
	return func(cfg *Config) {
		if offset > 0 {
			cfg.LOFOffset = offset
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
