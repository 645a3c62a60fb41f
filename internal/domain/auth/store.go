package auth

import (
	"context"
	"time"
)

// SessionStore keeps the server-side half of sessions and CAPTCHA challenges.
type SessionStore interface {
	SaveSession(ctx context.Context, sessionID string, id Identity, ttl time.Duration) error

	SessionExists(ctx context.Context, sessionID string) (bool, error)

	DeleteSession(ctx context.Context, sessionID string) error

	SaveCaptcha(ctx context.Context, captchaID, value string, ttl time.Duration) error

	// TakeCaptcha returns the stored challenge and removes it. A missing or expired
	// challenge yields apperrors.ErrNotFound.
	TakeCaptcha(ctx context.Context, captchaID string) (string, error)

	// DeleteCaptcha drops a challenge that was superseded. Deleting an unknown id is not an error.
	DeleteCaptcha(ctx context.Context, captchaID string) error
}
