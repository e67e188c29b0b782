package blackjack

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// RoundOption configures a Round during creation.
type RoundOption func(*roundConfig)

type roundConfig struct {
	rng    *rand.Rand
	source CardSource
	logger *log.Logger
	bus    EventBus
	clock  quartz.Clock
}

// WithRNG sets the random source used to build the shoe.
func WithRNG(rng *rand.Rand) RoundOption {
	return func(c *roundConfig) {
		c.rng = rng
	}
}

// WithCardSource replaces the shoe entirely. This overrides WithRNG and is
// mainly used to stack the cards in tests.
func WithCardSource(source CardSource) RoundOption {
	return func(c *roundConfig) {
		c.source = source
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) RoundOption {
	return func(c *roundConfig) {
		c.logger = logger
	}
}

// WithEventBus sets the bus that round events are published to.
func WithEventBus(bus EventBus) RoundOption {
	return func(c *roundConfig) {
		c.bus = bus
	}
}

// WithClock sets the clock used to timestamp events.
func WithClock(clock quartz.Clock) RoundOption {
	return func(c *roundConfig) {
		c.clock = clock
	}
}

func newRoundConfig(opts []RoundOption) *roundConfig {
	cfg := &roundConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.source == nil {
		if cfg.rng == nil {
			panic("a card source or rng is required for round creation")
		}
		cfg.source = NewShoe(cfg.rng)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	return cfg
}
