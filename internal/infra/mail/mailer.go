// Package mail renders and delivers the verification mail sent by the mail worker.
package mail

import (
	"log/slog"
	"strings"

	"finsync/config"
	"finsync/internal/domain/constants"
	"finsync/internal/domain/service"

	"github.com/pkg/errors"
)

// NewMailer selects the delivery backend named by mail.provider.
func NewMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	mailCfg := cfg.Mail
	if mailCfg == nil || mailCfg.Provider == "" || mailCfg.Provider == constants.MailProviderLog {
		if cfg.Env.Env == constants.EnvProduction {
			logger.Warn("Mail provider is log; verification mail will only be written to the log")
		}

		return NewLogMailer(logger), nil
	}

	switch strings.ToLower(mailCfg.Provider) {
	case constants.MailProviderSMTP:
		return NewSMTPMailer(mailCfg)
	default:
		return nil, errors.Errorf("unknown mail provider: %s", mailCfg.Provider)
	}
}
