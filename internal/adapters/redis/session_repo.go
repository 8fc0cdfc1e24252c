// Package redis provides Redis-based adapters for the TillFlow admin system.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/tillflow/admin-api/internal/domain/auth"
)

const keyPrefix = "tillflow:session:"

// SessionRepo is a Redis-backed session repository for production use. Each
// repository is bound to one client scope and stores the full session record
// as JSON under a single namespaced key, so the persisted state is always the
// last complete write.
type SessionRepo struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// SessionRepoOptions configures a SessionRepo.
type SessionRepoOptions struct {
	// Scope distinguishes client instances (e.g. a browser session ID, or
	// "cli" for the operator tool). Required.
	Scope string
	// TTL bounds how long an untouched record survives; zero means no expiry.
	TTL time.Duration
}

// NewSessionRepo creates a Redis session repository for one client scope.
func NewSessionRepo(client redis.UniversalClient, opts SessionRepoOptions) (*SessionRepo, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if opts.Scope == "" {
		return nil, errors.New("session scope is required")
	}
	return &SessionRepo{
		client: client,
		key:    keyPrefix + opts.Scope,
		ttl:    opts.TTL,
	}, nil
}

func (r *SessionRepo) Save(ctx context.Context, sess domainauth.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.client.Set(ctx, r.key, data, r.ttl).Err()
}

func (r *SessionRepo) Load(ctx context.Context) (domainauth.Session, bool, error) {
	data, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, false, nil
		}
		return domainauth.Session{}, false, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		// A record we cannot decode is as good as absent; the store clears it.
		return domainauth.Session{}, true, nil
	}
	return sess, true, nil
}

func (r *SessionRepo) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
