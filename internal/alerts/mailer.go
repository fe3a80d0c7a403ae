package alerts

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Mailer delivers a plain text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// MailConfig selects and configures the mailer.
type MailConfig struct {
	PlunkAPIKey string
	PlunkFrom   string
	PlunkAPIURL string
}

// NewMailer sends through Plunk when an API key is configured and only logs
// otherwise.
func NewMailer(cfg MailConfig, log *zap.Logger) Mailer {
	if cfg.PlunkAPIKey == "" {
		log.Warn("plunk not configured, emails will only be logged")
		return LogMailer{log: log}
	}
	return NewPlunkMailer(cfg.PlunkAPIKey, cfg.PlunkFrom, cfg.PlunkAPIURL, http.DefaultClient)
}

// LogMailer writes emails to the log instead of sending them.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) LogMailer {
	return LogMailer{log: log}
}

func (m LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.log.Info("email (not sent)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)),
	)
	return nil
}
