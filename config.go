package goCred

import (
	"errors"
	"time"
)

// Config carries every tunable of the engine. It is constructed once,
// validated at [Builder.Build], and treated as immutable afterwards.
type Config struct {
	JWT       JWTConfig
	Password  PasswordConfig
	Turnstile TurnstileConfig
	Store     StoreConfig
	Metrics   MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig controls token issuance. TTL is the lifetime of every issued
// token; there are no refresh tokens.
type JWTConfig struct {
	TTL    time.Duration
	Issuer string
	Leeway time.Duration
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig holds the Argon2id cost parameters.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

/*
====================================
TURNSTILE CONFIG
====================================
*/

// TurnstileConfig configures the bot-challenge verifier used by the API
// surface. The engine itself never consults it.
type TurnstileConfig struct {
	SecretKey string
	VerifyURL string
	Timeout   time.Duration
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig controls the Redis key layout.
type StoreConfig struct {
	RedisPrefix string
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig toggles the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the production defaults: 15-minute tokens and
// interactive-login Argon2id parameters.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			TTL:    15 * time.Minute,
			Issuer: "gocred",
			Leeway: 0,
		},
		Password: PasswordConfig{
			Memory:      64 * 1024,
			Time:        3,
			Parallelism: 4,
			SaltLength:  16,
			KeyLength:   32,
		},
		Store: StoreConfig{
			RedisPrefix: "user",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks cross-field consistency. Password parameters are
// validated separately by the password package.
func (c Config) Validate() error {
	if c.JWT.TTL <= 0 {
		return errors.New("JWT TTL must be positive")
	}
	if c.JWT.TTL > 24*time.Hour {
		return errors.New("JWT TTL must not exceed 24h")
	}
	if c.JWT.Leeway < 0 || c.JWT.Leeway > 2*time.Minute {
		return errors.New("JWT leeway out of range")
	}
	if c.Turnstile.Timeout < 0 {
		return errors.New("turnstile timeout must not be negative")
	}

	return nil
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}
