package event

import (
	"context"
	"log/slog"
)

// NoopPublisher stands in when RabbitMQ is disabled or unreachable. Events are only logged.
type NoopPublisher struct {
	logger *slog.Logger
}

var _ EventPublisher = (*NoopPublisher)(nil)

func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger.With("component", "NoopPublisher")}
}

func (p *NoopPublisher) PublishAccountRequestResolved(ctx context.Context, e AccountRequestResolvedEvent) error {
	p.logger.DebugContext(ctx, "Dropping event", "routingKey", e.RoutingKey(), "requestID", e.RequestID)
	return nil
}

func (p *NoopPublisher) PublishLoanResolved(ctx context.Context, e LoanResolvedEvent) error {
	p.logger.DebugContext(ctx, "Dropping event", "routingKey", e.RoutingKey(), "loanID", e.LoanID)
	return nil
}

func (p *NoopPublisher) PublishLoanRepaid(ctx context.Context, e LoanRepaidEvent) error {
	p.logger.DebugContext(ctx, "Dropping event", "routingKey", RoutingKeyLoanRepaid, "loanID", e.LoanID)
	return nil
}

func (p *NoopPublisher) PublishCustomerClosed(ctx context.Context, e CustomerClosedEvent) error {
	p.logger.DebugContext(ctx, "Dropping event", "routingKey", RoutingKeyCustomerClosed, "accountNumber", e.AccountNumber)
	return nil
}
