package mailer

import (
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"mindd/internal/providers"
	"mindd/internal/structures"
)

const smtpDialTimeout = 30 * time.Second

// SMTPNotifier renders a template and delivers it over plain SMTP with
// optional STARTTLS-less auth. Errors are returned to the caller; the
// batch jobs decide whether to log-and-continue.
type SMTPNotifier struct {
	conf      structures.MailerConfig
	logger    providers.Logger
	templates map[TemplateKind]Template
}

func NewSMTPNotifier(conf *structures.Config, logger providers.Logger, templates map[TemplateKind]Template) *SMTPNotifier {
	return &SMTPNotifier{
		conf:      conf.Mailer,
		logger:    logger,
		templates: templates,
	}
}

func (m *SMTPNotifier) Send(recipient string, kind TemplateKind, values map[string]string) error {
	if recipient == "" || !strings.Contains(recipient, "@") {
		return fmt.Errorf("invalid recipient address %q", recipient)
	}

	tpl, err := templateFor(m.templates, kind)
	if err != nil {
		return err
	}
	rendered := Render(tpl, values)

	from := rendered.From
	if m.conf.From != "" {
		from = m.conf.From
	}

	if err := m.deliver(from, recipient, rendered); err != nil {
		return fmt.Errorf("smtp delivery of %s to %s: %w", kind, recipient, err)
	}
	m.logger.Infof(providers.TypeApp, "Sent %s notification to %s", kind, recipient)
	return nil
}

func (m *SMTPNotifier) deliver(from, to string, tpl Template) error {
	addr := net.JoinHostPort(m.conf.Host, strconv.Itoa(m.conf.Port))

	conn, err := net.DialTimeout("tcp", addr, smtpDialTimeout)
	if err != nil {
		return err
	}
	client, err := smtp.NewClient(conn, m.conf.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if m.conf.Username != "" {
		auth := smtp.PlainAuth("", m.conf.Username, m.conf.Password, m.conf.Host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(buildMessage(from, to, tpl)); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildMessage(from, to string, tpl Template) []byte {
	contentType := "text/plain; charset=UTF-8"
	if tpl.HTML {
		contentType = "text/html; charset=UTF-8"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", tpl.Subject)
	fmt.Fprintf(&b, "MIME-Version: 1.0\r\nContent-Type: %s\r\n\r\n", contentType)
	b.WriteString(tpl.Body)
	return []byte(b.String())
}
