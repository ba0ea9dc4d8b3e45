package notification

import (
	"context"

	"go.uber.org/zap"

	"pawcare/internal/pkg/logger"
)

// logTransport records notifications instead of delivering them. Used in
// development and tests where no Twilio credentials exist.
type logTransport struct{}

func (logTransport) send(_ context.Context, to, body string) error {
	logger.Get().Info("notification",
		zap.String("to", to),
		zap.String("body", body),
	)
	return nil
}
