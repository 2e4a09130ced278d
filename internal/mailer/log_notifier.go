package mailer

import "mindd/internal/providers"

// LogNotifier renders templates like the real transport but only logs
// the result. Used when mailing is disabled.
type LogNotifier struct {
	logger    providers.Logger
	templates map[TemplateKind]Template
}

func (m *LogNotifier) Send(recipient string, kind TemplateKind, values map[string]string) error {
	tpl, err := templateFor(m.templates, kind)
	if err != nil {
		return err
	}
	rendered := Render(tpl, values)
	m.logger.Infof(providers.TypeApp, "[dry-run] %s to %s: %s", kind, recipient, rendered.Subject)
	return nil
}
