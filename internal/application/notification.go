package application

import (
	"context"
	"expvar"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/acara-auth/config"
	"github.com/oksasatya/acara-auth/internal/domain/entity"
	"github.com/oksasatya/acara-auth/pkg/mailer"
	"github.com/oksasatya/acara-auth/pkg/mailer/templates"
)

var (
	notificationsSent   = expvar.NewInt("notifications_sent")
	notificationsFailed = expvar.NewInt("notifications_failed")
)

// MailNotifier emails the activation link to a freshly registered user.
// Failures are logged and dropped.
type MailNotifier struct {
	Sender  mailer.Sender
	Cfg     *config.Config
	Timeout time.Duration
	Logger  *logrus.Logger
}

func NewMailNotifier(sender mailer.Sender, cfg *config.Config, logger *logrus.Logger) *MailNotifier {
	return &MailNotifier{Sender: sender, Cfg: cfg, Timeout: cfg.MailSendTimeout, Logger: logger}
}

func (n *MailNotifier) NotifyRegistration(ctx context.Context, u entity.User) {
	log := n.logger().WithFields(logrus.Fields{"user_id": u.ID, "to": u.Email})

	data := templates.NewRegistrationData(n.Cfg.AppName, u.Username, u.FullName, u.Email, u.CreatedAt, n.Cfg.ActivationLink(u.ActivationCode))
	subject, text, html, err := templates.Render(templates.RegistrationSuccess, data)
	if err != nil {
		notificationsFailed.Add(1)
		log.WithError(err).Error("render registration email failed")
		return
	}

	if n.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.Timeout)
		defer cancel()
	}
	msg := mailer.Message{From: n.Cfg.MailSender, To: u.Email, Subject: subject, Text: text, HTML: html}
	if err := n.Sender.Send(ctx, msg); err != nil {
		notificationsFailed.Add(1)
		log.WithError(err).Warn("send registration email failed")
		return
	}
	notificationsSent.Add(1)
	log.Debug("registration email sent")
}

func (n *MailNotifier) logger() *logrus.Logger {
	if n.Logger == nil {
		return logrus.StandardLogger()
	}
	return n.Logger
}
