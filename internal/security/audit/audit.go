package audit

import (
	"context"
	"log/slog"
	"time"
)

// Logger writes a structured audit trail for privileged actions: user
// management, position changes, applicant lifecycle transitions, and denials.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

func (al *Logger) LogAction(ctx context.Context, companyID, userID, action, resource, resourceID, status string) {
	al.logger.Info("audit",
		slog.String("action", action),
		slog.String("resource", resource),
		slog.String("resource_id", resourceID),
		slog.String("company_id", companyID),
		slog.String("user_id", userID),
		slog.String("status", status),
		slog.Time("timestamp", time.Now()),
	)
}

func (al *Logger) LogUserCreated(ctx context.Context, companyID, actorID, newUserID string) {
	al.LogAction(ctx, companyID, actorID, "create", "user", newUserID, "success")
}

func (al *Logger) LogUserDeleted(ctx context.Context, companyID, actorID, deletedUserID string) {
	al.LogAction(ctx, companyID, actorID, "delete", "user", deletedUserID, "success")
}

func (al *Logger) LogPositionDeleted(ctx context.Context, companyID, actorID, positionID string) {
	al.LogAction(ctx, companyID, actorID, "delete", "position", positionID, "success")
}

func (al *Logger) LogStatusChange(ctx context.Context, companyID, actorID, applicantID, status string) {
	al.LogAction(ctx, companyID, actorID, "status_change", "applicant", applicantID, status)
}

func (al *Logger) LogDenied(ctx context.Context, companyID, userID, resource string) {
	al.LogAction(ctx, companyID, userID, "access_denied", resource, "", "denied")
}
