package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"finsync/config"
	"finsync/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const smtpDialTimeout = 10 * time.Second

type smtpMailer struct {
	host     string
	port     int
	from     mail.Address
	username string
	password string
	now      func() time.Time
}

// NewSMTPMailer builds a mailer that speaks SMTP with opportunistic STARTTLS.
func NewSMTPMailer(cfg *config.MailConfig) (service.Mailer, error) {
	if cfg.SMTPHost == "" {
		return nil, errors.New("mail.smtpHost is required for the smtp provider")
	}
	from, err := mail.ParseAddress(cfg.From)
	if err != nil {
		return nil, errors.Wrap(err, "mail.from")
	}

	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}

	return &smtpMailer{
		host:     cfg.SMTPHost,
		port:     port,
		from:     *from,
		username: cfg.SMTPUserName,
		password: cfg.SMTPPassword,
		now:      time.Now,
	}, nil
}

// Send delivers msg. Connection problems and 4xx replies wrap service.ErrMailUnavailable.
func (m *smtpMailer) Send(ctx context.Context, msg *service.MailMessage) error {
	to, err := mail.ParseAddress(msg.To)
	if err != nil {
		return errors.Wrap(err, "invalid recipient")
	}

	payload, err := m.buildMessage(to, msg)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	dialer := &net.Dialer{Timeout: smtpDialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return classifySMTPError(err, "dial")
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()

		return classifySMTPError(err, "greeting")
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.host, MinVersion: tls.VersionTLS12}); err != nil {
			return classifySMTPError(err, "starttls")
		}
	}
	if m.username != "" {
		if err := client.Auth(smtp.PlainAuth("", m.username, m.password, m.host)); err != nil {
			return classifySMTPError(err, "auth")
		}
	}
	if err := client.Mail(m.from.Address); err != nil {
		return classifySMTPError(err, "mail from")
	}
	if err := client.Rcpt(to.Address); err != nil {
		return classifySMTPError(err, "rcpt to")
	}

	w, err := client.Data()
	if err != nil {
		return classifySMTPError(err, "data")
	}
	if _, err := w.Write(payload); err != nil {
		return classifySMTPError(err, "write body")
	}
	if err := w.Close(); err != nil {
		return classifySMTPError(err, "end data")
	}

	return classifySMTPError(client.Quit(), "quit")
}

func (m *smtpMailer) buildMessage(to *mail.Address, msg *service.MailMessage) ([]byte, error) {
	if strings.ContainsAny(msg.Subject, "\r\n") {
		return nil, errors.New("subject must be a single line")
	}

	var buf bytes.Buffer
	headers := [][2]string{
		{"From", m.from.String()},
		{"To", to.String()},
		{"Subject", mime.QEncoding.Encode("utf-8", msg.Subject)},
		{"Date", m.now().UTC().Format(time.RFC1123Z)},
		{"Message-ID", "<" + uuid.NewString() + "@" + m.host + ">"},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=UTF-8"},
		{"Content-Transfer-Encoding", "8bit"},
	}
	for _, header := range headers {
		buf.WriteString(header[0] + ": " + header[1] + "\r\n")
	}
	buf.WriteString("\r\n")

	body := strings.ReplaceAll(msg.Body, "\r\n", "\n")
	buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))

	return buf.Bytes(), nil
}

// classifySMTPError keeps 5xx replies permanent and marks everything else retryable.
func classifySMTPError(err error, step string) error {
	if err == nil {
		return nil
	}

	var protoErr *textproto.Error
	if errors.As(err, &protoErr) && protoErr.Code >= 500 {
		return errors.Wrapf(err, "smtp %s", step)
	}

	return errors.Wrapf(service.ErrMailUnavailable, "smtp %s: %v", step, err)
}
