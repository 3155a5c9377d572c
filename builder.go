package goCred

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goCred/password"
	"github.com/MrEthical07/goCred/store"
	"github.com/MrEthical07/goCred/token"
)

// Builder assembles an [Engine]. Construction is allocation-only; no I/O
// happens until the first Engine method call.
type Builder struct {
	config Config
	redis  *redis.Client
	users  store.UserStore

	built bool
}

// New returns a Builder preloaded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis backs the engine with a Redis user store built from client and
// the configured key prefix.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithStore backs the engine with an explicit [store.UserStore],
// overriding WithRedis. Useful with [store.MemoryStore] in tests.
func (b *Builder) WithStore(users store.UserStore) *Builder {
	b.users = users
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and returns a ready Engine. A Builder
// must not be reused after a successful Build.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	users := b.users
	if users == nil {
		if b.redis == nil {
			return nil, errors.New("user store required: provide WithRedis or WithStore")
		}
		users = store.NewRedisStore(b.redis, cfg.Store.RedisPrefix)
	}

	hasher, err := password.NewArgon2(password.Config{
		Memory:      cfg.Password.Memory,
		Time:        cfg.Password.Time,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	tokens, err := token.NewManager(token.Config{
		Issuer: cfg.JWT.Issuer,
		Leeway: cfg.JWT.Leeway,
	})
	if err != nil {
		return nil, err
	}

	b.built = true

	return &Engine{
		config:       cfg,
		users:        users,
		passwordHash: hasher,
		tokens:       tokens,
		metrics:      NewMetrics(cfg.Metrics),
	}, nil
}
