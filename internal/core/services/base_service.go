package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/middleware"
	"github.com/google/uuid"
)

// BaseService provides common functionality for all services
type BaseService struct {
	now   func() time.Time
	newID func() string
}

func newBaseService() BaseService {
	return BaseService{now: time.Now, newID: uuid.NewString}
}

// Now returns the service clock's current time in UTC.
func (s *BaseService) Now() time.Time {
	return s.now().UTC()
}

// NewID returns a fresh identifier.
func (s *BaseService) NewID() string {
	return s.newID()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.now = now
	}
}

// WithIDGenerator overrides how new identifiers are generated.
func WithIDGenerator(newID func() string) ServiceOption {
	return func(s *BaseService) {
		s.newID = newID
	}
}

func (s *BaseService) apply(options []ServiceOption) {
	for _, option := range options {
		option(s)
	}
}
