package service

import (
	"errors"
	"strconv"

	gomail "gopkg.in/gomail.v2"

	"rentix_backend/internals/configs"
)

/* ===================== Mailer (SMTP) ===================== */

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailerFromEnv devolve nil quando o SMTP não está configurado;
// o sender trata mailer nil como canal desabilitado.
func NewMailerFromEnv() *Mailer {
	host := configs.GetEnv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port, err := strconv.Atoi(configs.GetEnv("SMTP_PORT", "587"))
	if err != nil {
		port = 587
	}
	user := configs.GetEnv("SMTP_USER")
	pass := configs.GetEnv("SMTP_PASS")

	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   configs.GetEnv("SMTP_FROM", user),
	}
}

func (m *Mailer) SendEmail(to, subject, html string) error {
	if m == nil || m.dialer == nil {
		return errors.New("smtp não configurado")
	}
	if to == "" {
		return errors.New("destinatário vazio")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	return m.dialer.DialAndSend(msg)
}
