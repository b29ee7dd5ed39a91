package pool

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

type poolConfigBuilder struct {
	config *PoolConfig
}

func NewPoolConfigBuilder() *poolConfigBuilder {
	return &poolConfigBuilder{
		config: &PoolConfig{
			controlPeriod:  defaultControlPeriod,
			initialIdle:    defaultInitialIdle,
			resizeStrategy: TrackDemand,
			logger:         zap.NewNop(),
		},
	}
}

// SetControlPeriod sets the interval between controller ticks.
// Zero or negative values are ignored, the default (500ms) is kept.
func (b *poolConfigBuilder) SetControlPeriod(period time.Duration) *poolConfigBuilder {
	if period > 0 {
		b.config.controlPeriod = period
	}
	return b
}

// SetInitialIdle pre-warms the pool with count objects. The capacity
// limit starts at count and is re-derived on the first controller tick.
func (b *poolConfigBuilder) SetInitialIdle(count int) *poolConfigBuilder {
	if count > 0 {
		b.config.initialIdle = count
	}
	return b
}

// SetResizeStrategy replaces the default demand-tracking rule.
func (b *poolConfigBuilder) SetResizeStrategy(strategy ResizeStrategy) *poolConfigBuilder {
	if strategy != nil {
		b.config.resizeStrategy = strategy
	}
	return b
}

// SetVerbose enables per-tick debug logging.
func (b *poolConfigBuilder) SetVerbose(verbose bool) *poolConfigBuilder {
	b.config.verbose = verbose
	return b
}

// SetLogger sets the logger used for hook failures and, when verbose is
// enabled, controller activity. Defaults to a no-op logger.
func (b *poolConfigBuilder) SetLogger(logger *zap.Logger) *poolConfigBuilder {
	if logger != nil {
		b.config.logger = logger
	}
	return b
}

func (b *poolConfigBuilder) Build() (*PoolConfig, error) {
	if b.config.controlPeriod <= 0 {
		return nil, fmt.Errorf("ControlPeriod must be greater than 0")
	}
	if b.config.initialIdle < 0 {
		return nil, fmt.Errorf("InitialIdle must not be negative")
	}
	return b.config, nil
}

func createDefaultConfig() *PoolConfig {
	config, _ := NewPoolConfigBuilder().Build()
	return config
}

// applyDefaults backfills a config that did not come from the builder,
// such as new(PoolConfig).
func (c *PoolConfig) applyDefaults() {
	if c.controlPeriod <= 0 {
		c.controlPeriod = defaultControlPeriod
	}
	if c.initialIdle < 0 {
		c.initialIdle = defaultInitialIdle
	}
	if c.resizeStrategy == nil {
		c.resizeStrategy = TrackDemand
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
}
