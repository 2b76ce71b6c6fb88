package mail

import (
	"crypto/tls"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/ashokpds15/Myself/pkg/config"
	"github.com/ashokpds15/Myself/pkg/metrics"
)

type Sender interface {
	Send(receivers []string, subject, body string) error
	GetHost() string
	GetPort() int
}

type sender struct {
	dialer        *gomail.Dialer
	senderAddress string
	senderName    string
	log           *zap.SugaredLogger
}

// NewSender returns an SMTP sender. Every Send makes exactly one attempt.
func NewSender(cfg config.Mail, brandingName string, log *zap.SugaredLogger) Sender {
	log = log.Named("mail")
	log.Infow("Initializing mail sender", "host", cfg.Host, "port", cfg.Port, "user", cfg.User)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	if cfg.InsecureSkipVerify {
		log.Warn("InsecureSkipVerify is enabled for mail TLS connection")
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for local relays
	}

	senderAddr := cfg.SenderAddress
	if senderAddr == "" {
		senderAddr = cfg.User
	}
	senderName := cfg.SenderName
	if senderName == "" {
		senderName = brandingName
	}

	return &sender{
		dialer:        d,
		senderAddress: senderAddr,
		senderName:    senderName,
		log:           log,
	}
}

func (s *sender) Send(receivers []string, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.senderAddress, s.senderName)
	msg.SetHeader("To", receivers...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		s.log.Warnw("Failed to send mail", "receivers", len(receivers), "error", err)
		metrics.MailSendFailure.WithLabelValues(s.GetHost()).Inc()
		return err
	}
	s.log.Debugw("Mail sent", "receivers", len(receivers))
	metrics.MailSendSuccess.WithLabelValues(s.GetHost()).Inc()
	return nil
}

func (s *sender) GetHost() string {
	return s.dialer.Host
}

func (s *sender) GetPort() int {
	return s.dialer.Port
}

type noopSender struct {
	log *zap.SugaredLogger
}

// NewNoopSender returns a Sender that only logs. It is used when mail is disabled.
func NewNoopSender(log *zap.SugaredLogger) Sender {
	return noopSender{log: log.Named("mail")}
}

func (n noopSender) Send(receivers []string, subject, _ string) error {
	n.log.Infow("Mail disabled, skipping send", "receivers", receivers, "subject", subject)
	return nil
}

func (noopSender) GetHost() string { return "" }
func (noopSender) GetPort() int    { return 0 }
