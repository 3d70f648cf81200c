package redis

import (
	"text2phenotype.com/postag/utils"
	"context"
	"errors"
	"fmt"
	"github.com/bsm/redislock"
	"github.com/go-redis/redis/v8"
	"github.com/kelseyhightower/envconfig"
	"time"
)

const keyPrefix = "postag"

type ReleaseLock func() error

// Client caches tagged responses. Filling a key happens under a redis lock so
// identical concurrent requests are decoded once.
type Client struct {
	client         redis.UniversalClient
	lockExpiration time.Duration
	ttl            time.Duration
}

type Config struct {
	LockExpirationSeconds   int     `envconfig:"POSTAG_REDIS_LOCK_EXPIRATION" default:"3"`
	TTLSeconds              int     `envconfig:"POSTAG_REDIS_TTL" default:"3600"`
	Host                    string  `envconfig:"POSTAG_REDIS_HOST" default:""`
	Port                    string  `envconfig:"POSTAG_REDIS_PORT" default:"6379"`
	DB                      int     `envconfig:"POSTAG_REDIS_DB" default:"0"`
	HASentinelPort          string  `envconfig:"POSTAG_REDIS_HA_SENTINEL_PORT" default:"26379"`
	HASentinelMasterName    string  `envconfig:"POSTAG_REDIS_HA_MASTER_NAME" default:"mymaster"`
	Password                string  `envconfig:"POSTAG_REDIS_AUTH_PASSWORD" default:""`
	AuthRequired            bool    `envconfig:"POSTAG_REDIS_AUTH_REQUIRED" default:"false"`
	HAMode                  bool    `envconfig:"POSTAG_REDIS_HA_MODE" default:"false"`
	HASentinelSocketTimeout float32 `envconfig:"POSTAG_REDIS_SOCKET_TIMEOUT" default:"0.5"`
}

// Enabled reports whether a redis host was configured at all.
func (cfg Config) Enabled() bool {
	return len(cfg.Host) > 0
}

func ReadEnvironment() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func NewClient(cfg *Config) *Client {
	var client redis.UniversalClient
	if cfg.HAMode {
		client = CreateClusterClient(cfg)
	} else {
		client = CreateClient(cfg)
	}
	return &Client{
		client:         client,
		lockExpiration: time.Duration(cfg.LockExpirationSeconds) * time.Second,
		ttl:            time.Duration(cfg.TTLSeconds) * time.Second,
	}
}

func CreateClusterClient(cfg *Config) *redis.ClusterClient {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.HASentinelPort)
	timeout := time.Duration(float64(cfg.HASentinelSocketTimeout) * float64(time.Second))
	options := redis.FailoverOptions{
		SentinelAddrs: []string{addr},
		ReadTimeout:   timeout,
		WriteTimeout:  timeout,
		MaxRetries:    6,
		DB:            cfg.DB,
		MasterName:    cfg.HASentinelMasterName,
	}
	if cfg.AuthRequired {
		options.Password = cfg.Password
	}
	return redis.NewFailoverClusterClient(&options)
}

func CreateClient(cfg *Config) *redis.Client {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	options := redis.Options{
		Addr:       addr,
		MaxRetries: 6,
		DB:         cfg.DB,
	}
	if cfg.AuthRequired {
		options.Password = cfg.Password
	}
	return redis.NewClient(&options)
}

// CacheKey identifies the tagged output of text under one trained model.
func CacheKey(fingerprint string, text string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, fingerprint, utils.Fingerprint(utils.HashString(text)))
}

func (client *Client) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := client.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (client *Client) Set(ctx context.Context, key string, value string) error {
	return client.client.Set(ctx, key, value, client.ttl).Err()
}

func (client *Client) Lock(ctx context.Context, key string) (ReleaseLock, error) {
	lockCl := redislock.New(client.client)
	str := redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 30)
	lockKey := fmt.Sprintf("lock:%s", key)
	lock, err := lockCl.Obtain(ctx, lockKey, client.lockExpiration, &redislock.Options{RetryStrategy: str})
	if err != nil {
		return nil, err
	}
	return func() error {
		return lock.Release(ctx)
	}, nil
}

// store is the part of Client getOrCompute needs.
type store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Lock(ctx context.Context, key string) (ReleaseLock, error)
}

// GetOrCompute returns the cached value of key or fills it with compute.
// Errors from compute are returned as is and nothing is cached.
func (client *Client) GetOrCompute(ctx context.Context, key string, compute func() (string, error)) (string, error) {
	return getOrCompute(ctx, client, key, compute)
}

// getOrCompute checks the key again once the lock is held: another holder may
// have filled it while this one waited.
func getOrCompute(ctx context.Context, st store, key string, compute func() (string, error)) (value string, err error) {
	value, isOk, err := st.Get(ctx, key)
	if err != nil || isOk {
		return value, err
	}

	releaseLock, err := st.Lock(ctx, key)
	if err != nil {
		return "", err
	}
	defer func() {
		if releaseErr := releaseLock(); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()

	value, isOk, err = st.Get(ctx, key)
	if err != nil || isOk {
		return value, err
	}
	value, err = compute()
	if err != nil {
		return "", err
	}
	return value, st.Set(ctx, key, value)
}

func (client *Client) Close() error {
	return client.client.Close()
}
