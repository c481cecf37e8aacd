package ledger

import (
	"context"

	"github.com/agristore/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// requestLogger enriches the service logger with the request id and resolved
// principal that the HTTP middleware carries on the context.
func requestLogger(ctx context.Context, base *zap.Logger) *zap.Logger {
	log := base
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}
	if principalID := logger.GetPrincipalID(ctx); principalID != "" {
		log = log.With(zap.String("principal_id", principalID))
	}
	return log
}
