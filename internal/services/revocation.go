package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// revocationTTL outlives the longest token lifetime, after which the
// marker is useless anyway.
const revocationTTL = 48 * time.Hour

// TokenRevocation records, per subject, the instant their sessions were
// invalidated. The auth middleware rejects tokens issued before it.
type TokenRevocation struct {
	client *redis.Client
}

func NewTokenRevocation(client *redis.Client) *TokenRevocation {
	return &TokenRevocation{client: client}
}

func revocationKey(email string) string {
	return fmt.Sprintf("revoked:%s", email)
}

// Revoke invalidates every token issued to the subject before now.
func (t *TokenRevocation) Revoke(ctx context.Context, email string) error {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	return t.client.Set(ctx, revocationKey(email), now, revocationTTL).Err()
}

// RevokedAt returns the last revocation instant for the subject, or the
// zero time when none is recorded.
func (t *TokenRevocation) RevokedAt(ctx context.Context, email string) (time.Time, error) {
	val, err := t.client.Get(ctx, revocationKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}

	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(unix, 0), nil
}
