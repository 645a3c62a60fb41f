package session

import (
	"bank-backoffice/internal/domain/auth"
	"bank-backoffice/internal/pkg/apperrors"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	captchaKeyPrefix = "captcha:"
)

// commands is the slice of the go-redis client the store needs.
type commands interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
}

var _ commands = (*redis.Client)(nil)

type RedisStore struct {
	rdb    commands
	logger *slog.Logger
}

var _ auth.SessionStore = (*RedisStore)(nil)

func NewRedisStore(rdb commands, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		logger: logger.With("component", "RedisSessionStore"),
	}
}

type storedSession struct {
	UserID int64     `json:"userId"`
	Name   string    `json:"name"`
	Role   auth.Role `json:"role"`
}

func (s *RedisStore) SaveSession(ctx context.Context, sessionID string, id auth.Identity, ttl time.Duration) error {
	payload, err := json.Marshal(storedSession{UserID: id.UserID, Name: id.Name, Role: id.Role})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+sessionID, payload, ttl).Err(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save session", "error", err)
		return fmt.Errorf("%w: failed to save session: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func (s *RedisStore) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to look up session", "error", err)
		return false, fmt.Errorf("%w: failed to look up session: %w", apperrors.ErrDatabase, err)
	}
	return n > 0, nil
}

func (s *RedisStore) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete session", "error", err)
		return fmt.Errorf("%w: failed to delete session: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func (s *RedisStore) SaveCaptcha(ctx context.Context, captchaID, value string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, captchaKeyPrefix+captchaID, value, ttl).Err(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save captcha", "error", err)
		return fmt.Errorf("%w: failed to save captcha: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func (s *RedisStore) TakeCaptcha(ctx context.Context, captchaID string) (string, error) {
	value, err := s.rdb.GetDel(ctx, captchaKeyPrefix+captchaID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to take captcha", "error", err)
		return "", fmt.Errorf("%w: failed to take captcha: %w", apperrors.ErrDatabase, err)
	}
	return value, nil
}

func (s *RedisStore) DeleteCaptcha(ctx context.Context, captchaID string) error {
	if err := s.rdb.Del(ctx, captchaKeyPrefix+captchaID).Err(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete captcha", "error", err)
		return fmt.Errorf("%w: failed to delete captcha: %w", apperrors.ErrDatabase, err)
	}
	return nil
}
