// Package redisrepo is an alternative session backend for deployments that
// already run Redis. The record is stored as a JSON envelope under a fixed
// key with no native TTL: expiry is evaluated at read time by the Store,
// not by the backend.
package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jrsteele09/go-onboarding-server/session"
)

const recordKey = "onboarding:session"

var _ session.Repo = (*Repo)(nil)

// Repo is a Redis-backed session.Repo.
type Repo struct {
	client *redis.Client
}

// New creates a Repo over an existing Redis client.
func New(client *redis.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) Load() (*session.OnboardingSession, error) {
	raw, err := r.client.Get(context.Background(), recordKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session record: %w", err)
	}

	var sess session.OnboardingSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decoding session record: %w", err)
	}
	return &sess, nil
}

func (r *Repo) Save(sess *session.OnboardingSession) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}
	if err := r.client.Set(context.Background(), recordKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("writing session record: %w", err)
	}
	return nil
}

func (r *Repo) Delete() error {
	if err := r.client.Del(context.Background(), recordKey).Err(); err != nil {
		return fmt.Errorf("deleting session record: %w", err)
	}
	return nil
}
