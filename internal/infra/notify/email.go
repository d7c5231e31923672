package notify

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"couponbot/internal/pkg/config"
	"couponbot/internal/pkg/errs"
)

// EmailClient delivers over implicit-TLS SMTP (port 465 style).
type EmailClient struct {
	cfg config.SMTPConfig
}

func NewEmailClient(cfg config.SMTPConfig) *EmailClient {
	return &EmailClient{cfg: cfg}
}

func (c *EmailClient) Send(to, subject, body string) error {
	addr := c.cfg.Host + ":" + c.cfg.Port

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: c.cfg.Host})
	if err != nil {
		return errs.Wrap(err, "failed to dial smtp server")
	}

	client, err := smtp.NewClient(conn, c.cfg.Host)
	if err != nil {
		conn.Close()
		return errs.Wrap(err, "failed to open smtp session")
	}
	defer client.Close()

	auth := smtp.PlainAuth("", c.cfg.User, c.cfg.Password, c.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return errs.Wrap(err, "smtp auth failed")
	}

	if err := client.Mail(c.cfg.From); err != nil {
		return errs.Wrap(err, "smtp mail from rejected")
	}
	if err := client.Rcpt(to); err != nil {
		return errs.Wrap(err, "smtp recipient rejected")
	}

	w, err := client.Data()
	if err != nil {
		return errs.Wrap(err, "failed to open smtp data stream")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		c.cfg.From, to, subject, body)
	if _, err := w.Write([]byte(msg)); err != nil {
		return errs.Wrap(err, "failed to write email body")
	}
	if err := w.Close(); err != nil {
		return errs.Wrap(err, "failed to finish email body")
	}

	return client.Quit()
}
