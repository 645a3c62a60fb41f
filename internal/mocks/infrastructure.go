package mocks

import (
	"context"
	"time"

	"bank-backoffice/internal/domain/auth"
	"bank-backoffice/internal/event"
	"github.com/stretchr/testify/mock"
)

type EventPublisher struct {
	mock.Mock
}

func (_m *EventPublisher) PublishAccountRequestResolved(ctx context.Context, e event.AccountRequestResolvedEvent) error {
	ret := _m.Called(ctx, e)

	return ret.Error(0)
}

func (_m *EventPublisher) PublishLoanResolved(ctx context.Context, e event.LoanResolvedEvent) error {
	ret := _m.Called(ctx, e)

	return ret.Error(0)
}

func (_m *EventPublisher) PublishLoanRepaid(ctx context.Context, e event.LoanRepaidEvent) error {
	ret := _m.Called(ctx, e)

	return ret.Error(0)
}

func (_m *EventPublisher) PublishCustomerClosed(ctx context.Context, e event.CustomerClosedEvent) error {
	ret := _m.Called(ctx, e)

	return ret.Error(0)
}

type SessionStore struct {
	mock.Mock
}

func (_m *SessionStore) SaveSession(ctx context.Context, sessionID string, id auth.Identity, ttl time.Duration) error {
	ret := _m.Called(ctx, sessionID, id, ttl)

	return ret.Error(0)
}

func (_m *SessionStore) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	ret := _m.Called(ctx, sessionID)

	return ret.Bool(0), ret.Error(1)
}

func (_m *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	ret := _m.Called(ctx, sessionID)

	return ret.Error(0)
}

func (_m *SessionStore) SaveCaptcha(ctx context.Context, captchaID string, value string, ttl time.Duration) error {
	ret := _m.Called(ctx, captchaID, value, ttl)

	return ret.Error(0)
}

func (_m *SessionStore) TakeCaptcha(ctx context.Context, captchaID string) (string, error) {
	ret := _m.Called(ctx, captchaID)

	return ret.String(0), ret.Error(1)
}

func (_m *SessionStore) DeleteCaptcha(ctx context.Context, captchaID string) error {
	ret := _m.Called(ctx, captchaID)

	return ret.Error(0)
}
