package repository

import (
	"context"
	"time"

	domainRepo "clinic-admin-api/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const revokedTokenKeyPrefix = "revoked_token:"

type tokenRepository struct {
	redisClient *redis.Client
}

func NewTokenRepository(redisClient *redis.Client) domainRepo.TokenRepository {
	return &tokenRepository{redisClient: redisClient}
}

// Revoke keeps tokenID on the deny list for ttl, which should be the time left
// until the token expires on its own.
func (r *tokenRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.redisClient.Set(ctx, revokedTokenKeyPrefix+tokenID, "revoked", ttl).Err()
}

func (r *tokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := r.redisClient.Exists(ctx, revokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
