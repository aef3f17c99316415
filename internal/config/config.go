// Package config loads the construction-time parameters of a pricebook
// Book from a config file or environment: a viper-backed loader with
// sane defaults when no file is present, returning a plain error on
// malformed or out-of-range values rather than panicking.
package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mattyv/HashOrderBook/internal/pricebook"
)

// BookSettings is the plain-data form of pricebook.Config, expressed with
// primitive fields so it can round-trip through YAML/env without needing
// a custom viper decode hook for the pricebook.Key interface.
type BookSettings struct {
	TickSize         int64 `mapstructure:"tick_size"`
	FastSize         int   `mapstructure:"fast_size"`
	CollisionBuckets int   `mapstructure:"collision_buckets"`
	Anchor           int64 `mapstructure:"anchor"`
}

// ToPricebookConfig converts validated settings into a pricebook.Config
// using pricebook.IntKey for TickSize/Anchor. Callers that want
// DecimalKey-based books construct pricebook.Config directly; this
// loader is the integer-ticks path, matching the base design's default
// units-of-TickSize framing.
func (s BookSettings) ToPricebookConfig() pricebook.Config {
	return pricebook.Config{
		TickSize:         pricebook.IntKey(s.TickSize),
		FastSize:         s.FastSize,
		CollisionBuckets: s.CollisionBuckets,
		Anchor:           pricebook.IntKey(s.Anchor),
	}
}

func defaultSettings() BookSettings {
	return BookSettings{
		TickSize:         1,
		FastSize:         64,
		CollisionBuckets: 4,
		Anchor:           0,
	}
}

// Loader loads and validates BookSettings the way
// SimpleStrongConsistencyConfigManager loads its own domain's settings:
// a named, mutex-guarded viper instance, defaults applied when no file
// is found, and validation run eagerly so a misconfigured book is never
// handed to pricebook.New.
type Loader struct {
	configPath string
	logger     *zap.Logger
	mu         sync.RWMutex
	settings   BookSettings
	viper      *viper.Viper
}

func NewLoader(configPath string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		configPath: configPath,
		logger:     logger.Named("pricebook-config"),
		viper:      viper.New(),
	}
}

// LoadConfig reads configPath (or falls back to defaults if it does not
// exist), decodes it into BookSettings, and validates the result.
func (l *Loader) LoadConfig() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	settings := defaultSettings()

	if l.configPath != "" {
		if _, err := os.Stat(l.configPath); os.IsNotExist(err) {
			l.logger.Warn("pricebook config file not found, using defaults",
				zap.String("path", l.configPath))
			return l.setValidated(settings)
		}
		l.viper.SetConfigFile(l.configPath)
	} else {
		l.viper.SetConfigName("pricebook")
		l.viper.SetConfigType("yaml")
		l.viper.AddConfigPath(".")
		l.viper.AddConfigPath("./configs")
	}
	l.viper.SetEnvPrefix("PRICEBOOK")
	l.viper.AutomaticEnv()

	if err := l.viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			l.logger.Warn("pricebook config file not found, using defaults")
			return l.setValidated(settings)
		}
		return fmt.Errorf("pricebook config: read: %w", err)
	}

	if err := l.viper.Unmarshal(&settings); err != nil {
		return fmt.Errorf("pricebook config: decode: %w", err)
	}
	return l.setValidated(settings)
}

func (l *Loader) setValidated(settings BookSettings) error {
	if err := validate(settings); err != nil {
		return err
	}
	l.settings = settings
	l.logger.Info("pricebook config loaded",
		zap.Int64("tick_size", settings.TickSize),
		zap.Int("fast_size", settings.FastSize),
		zap.Int("collision_buckets", settings.CollisionBuckets),
		zap.Int64("anchor", settings.Anchor))
	return nil
}

// validate rejects the construction-time misconfigurations the base
// design calls out as caller error, not invariant violation (FastSize ==
// 0, odd FastSize, and non-positive TickSize), plus negative
// CollisionBuckets.
func validate(s BookSettings) error {
	if s.FastSize == 0 {
		return fmt.Errorf("pricebook config: fast_size must be nonzero")
	}
	if s.FastSize%2 != 0 {
		return fmt.Errorf("pricebook config: fast_size must be even, got %d", s.FastSize)
	}
	if s.CollisionBuckets < 0 {
		return fmt.Errorf("pricebook config: collision_buckets must be non-negative, got %d", s.CollisionBuckets)
	}
	if s.TickSize <= 0 {
		return fmt.Errorf("pricebook config: tick_size must be positive, got %d", s.TickSize)
	}
	return nil
}

// Settings returns the most recently loaded, validated BookSettings.
func (l *Loader) Settings() BookSettings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.settings
}
