package authn

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/guard"
)

const defaultRedisPrefix = "crossweb:user:"

// A HashGetter reads a Redis hash. *redis.Client is one.
type HashGetter interface {
	HGetAll(ctx context.Context, key string) *redis.StringStringMapCmd
}

// Redis authenticates Plain credentials against user hashes
// stored under prefix+username, with the fields "password" and "roles".
// Roles are comma separated.
type Redis struct {
	client HashGetter
	prefix string
}

func NewRedis(client HashGetter, prefix string) *Redis {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}

	return &Redis{client: client, prefix: prefix}
}

// RedisFactory connects to the Redis server the guard configuration describes.
func RedisFactory(cfg *config.Guard) (guard.Authenticator, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("%w: guard.redis", ErrNoConfig)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return NewRedis(client, cfg.Redis.Prefix), nil
}

func (a *Redis) Authenticate(ctx context.Context, cred guard.Credential) (guard.Identity, error) {
	plain, ok := cred.(guard.Plain)
	if !ok {
		return guard.Identity{}, guard.ErrAuthenticateInvalidType.WithReference(cred)
	}

	fields, err := a.client.HGetAll(ctx, a.prefix+plain.Username).Result()
	if err != nil {
		return guard.Identity{}, fmt.Errorf("%w: %s", ErrLookup, err)
	}

	stored, ok := fields["password"]
	if !ok {
		return guard.Identity{}, guard.ErrAuthenticateNoUser.WithReference(plain.Username)
	}

	if !guard.PasswordMatches(stored, plain.Password) {
		return guard.Identity{}, guard.ErrAuthenticateWrongPassword.WithReference(plain.Username)
	}

	return guard.Identity{Username: plain.Username, Roles: splitRoles(fields["roles"])}, nil
}
