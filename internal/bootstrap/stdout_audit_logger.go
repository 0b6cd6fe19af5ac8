package bootstrap

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
)

type StdoutAuditLogger struct {
	host string
}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	host, _ := os.Hostname()
	return &StdoutAuditLogger{host: host}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	zap.L().Named("audit").Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("host", l.host),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
