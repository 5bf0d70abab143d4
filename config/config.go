// Package config loads runtime settings from the environment and an optional .env file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/typecast/engine"
	"github.com/lixenwraith/typecast/match"
	"github.com/lixenwraith/typecast/parameter"
)

// ErrInvalid marks a value that parsed but is out of range
var ErrInvalid = errors.New("invalid config")

// Config is the runtime configuration; unset variables keep the parameter defaults
type Config struct {
	Script         match.Script  `env:"TYPECAST_SCRIPT"`
	QueueEnabled   bool          `env:"TYPECAST_QUEUE_ENABLED"`
	QueueCapacity  int           `env:"TYPECAST_QUEUE_CAPACITY"`
	CastTimeout    time.Duration `env:"TYPECAST_CAST_TIMEOUT"`
	ReassignDelay  time.Duration `env:"TYPECAST_REASSIGN_DELAY"`
	SmoothRotation bool          `env:"TYPECAST_SMOOTH_ROTATION"`
	AllowBackspace bool          `env:"TYPECAST_ALLOW_BACKSPACE"`
	Enemies        int           `env:"TYPECAST_ENEMIES"`
	AttackInterval time.Duration `env:"TYPECAST_ATTACK_INTERVAL"`
	PlayerHP       int           `env:"TYPECAST_PLAYER_HP"`
	Invincibility  time.Duration `env:"TYPECAST_INVINCIBILITY"`

	WordsFile string `env:"TYPECAST_WORDS_FILE"`
	DBPath    string `env:"TYPECAST_DB_PATH" envDefault:"typecast.db"`
	Audio     bool   `env:"TYPECAST_AUDIO" envDefault:"true"`
	Volume    int    `env:"TYPECAST_VOLUME"`
	Debug     bool   `env:"TYPECAST_DEBUG"`
	LogLevel  string `env:"TYPECAST_LOG_LEVEL" envDefault:"info"`
}

// Default returns the configuration built from compiled-in parameters
func Default() Config {
	return Config{
		Script:         match.ScriptLatin,
		QueueEnabled:   parameter.CombatQueueEnabled,
		QueueCapacity:  parameter.CombatQueueCapacity,
		CastTimeout:    parameter.CombatCastTimeout,
		ReassignDelay:  parameter.TypingReassignDelay,
		SmoothRotation: parameter.CombatSmoothRotation,
		AllowBackspace: parameter.TypingAllowBackspace,
		Enemies:        parameter.EnemyDefaultCount,
		AttackInterval: parameter.EnemyAttackInterval,
		PlayerHP:       parameter.PlayerInitialHP,
		Invincibility:  parameter.PlayerInvincibleDuration,
		Volume:         parameter.AudioMasterVolume,
	}
}

// Load reads envFile if it exists, then overlays environment variables on Default
// Variables already set in the process environment win over the file
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	switch {
	case c.QueueCapacity < 1:
		return fmt.Errorf("%w: queue capacity %d, must be at least 1", ErrInvalid, c.QueueCapacity)
	case c.CastTimeout <= 0:
		return fmt.Errorf("%w: cast timeout %v, must be positive", ErrInvalid, c.CastTimeout)
	case c.ReassignDelay < 0:
		return fmt.Errorf("%w: reassign delay %v, must not be negative", ErrInvalid, c.ReassignDelay)
	case c.Enemies < 1 || c.Enemies > parameter.EnemyMaxCount:
		return fmt.Errorf("%w: enemies %d, must be in [1, %d]", ErrInvalid, c.Enemies, parameter.EnemyMaxCount)
	case c.AttackInterval < 0:
		return fmt.Errorf("%w: attack interval %v, must not be negative", ErrInvalid, c.AttackInterval)
	case c.PlayerHP < 1:
		return fmt.Errorf("%w: player hp %d, must be at least 1", ErrInvalid, c.PlayerHP)
	case c.Invincibility < 0:
		return fmt.Errorf("%w: invincibility %v, must not be negative", ErrInvalid, c.Invincibility)
	case c.Volume < 0 || c.Volume > 100:
		return fmt.Errorf("%w: volume %d, must be in [0, 100]", ErrInvalid, c.Volume)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level: %w", ErrInvalid, err)
	}
	return nil
}

// Level returns the parsed log level, debug when Debug is set
func (c Config) Level() zerolog.Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Settings maps the gameplay fields to engine settings
func (c Config) Settings() engine.Settings {
	s := engine.DefaultSettings()
	s.Script = c.Script
	s.QueueEnabled = c.QueueEnabled
	s.QueueCapacity = c.QueueCapacity
	s.CastTimeout = c.CastTimeout
	s.ReassignDelay = c.ReassignDelay
	s.SmoothRotation = c.SmoothRotation
	s.AllowBackspace = c.AllowBackspace
	return s
}
