package services

import (
	"context"
	"log/slog"

	"github.com/pft-app/pft_backend/internal/apperrors"
	"github.com/pft-app/pft_backend/internal/middleware"
)

// requireOwner rejects access to a resource owned by a different user.
// Ownership failures are reported as ErrForbidden, never as ErrNotFound, so
// callers can distinguish "not yours" from "does not exist".
func requireOwner(ownerID, userID string) error {
	if ownerID != userID {
		return apperrors.ErrForbidden
	}
	return nil
}

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}
