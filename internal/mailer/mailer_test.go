package mailer

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindd/internal/providers"
	"mindd/internal/structures"
)

// local mock logger to avoid an import cycle with testutil
type mailerTestLogger struct {
	infos []string
}

func (m *mailerTestLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mailerTestLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mailerTestLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mailerTestLogger) Infof(_ providers.TypeEnum, format string, args ...interface{}) {
	m.infos = append(m.infos, fmt.Sprintf(format, args...))
}
func (m *mailerTestLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mailerTestLogger) Close()                                                  {}

func TestNewNotifier_DisabledYieldsLogNotifier(t *testing.T) {
	conf := &structures.Config{
		Mailer: structures.MailerConfig{Enabled: false},
	}
	n, err := NewNotifier(conf, &mailerTestLogger{})
	require.NoError(t, err)
	assert.IsType(t, &LogNotifier{}, n)
}

func TestNewNotifier_EnabledYieldsSMTPNotifier(t *testing.T) {
	conf := &structures.Config{
		Mailer: structures.MailerConfig{Enabled: true, Host: "localhost", Port: 25},
	}
	n, err := NewNotifier(conf, &mailerTestLogger{})
	require.NoError(t, err)
	assert.IsType(t, &SMTPNotifier{}, n)
}

func TestNewNotifier_BadTemplateDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "streak.json"), []byte("{broken"), 0644))

	conf := &structures.Config{
		Mailer: structures.MailerConfig{Enabled: false, TemplateDir: dir},
	}
	_, err := NewNotifier(conf, &mailerTestLogger{})
	assert.Error(t, err)
}

func TestLogNotifier_SendLogsRenderedSubject(t *testing.T) {
	logger := &mailerTestLogger{}
	templates, err := LoadTemplates("")
	require.NoError(t, err)

	n := &LogNotifier{logger: logger, templates: templates}
	err = n.Send("ada@example.com", KindStreak, map[string]string{
		ValueUserName:       "Ada",
		ValueActualStreak:   "4",
		ValueExtendedStreak: "5",
	})
	require.NoError(t, err)
	require.Len(t, logger.infos, 1)
	assert.Contains(t, logger.infos[0], "ada@example.com")
	assert.Contains(t, logger.infos[0], "4-day streak")
}

func TestLogNotifier_UnknownKind(t *testing.T) {
	templates, err := LoadTemplates("")
	require.NoError(t, err)

	n := &LogNotifier{logger: &mailerTestLogger{}, templates: templates}
	err = n.Send("ada@example.com", TemplateKind("BOGUS"), nil)
	assert.Error(t, err)
}

func TestSMTPNotifier_RejectsInvalidRecipient(t *testing.T) {
	conf := &structures.Config{
		Mailer: structures.MailerConfig{Enabled: true, Host: "localhost", Port: 25},
	}
	templates, err := LoadTemplates("")
	require.NoError(t, err)

	n := NewSMTPNotifier(conf, &mailerTestLogger{}, templates)
	assert.Error(t, n.Send("", KindStreak, nil))
	assert.Error(t, n.Send("not-an-address", KindStreak, nil))
}

func TestBuildMessage_Headers(t *testing.T) {
	msg := string(buildMessage("from@mind.example", "to@example.com", Template{
		Subject: "Hello",
		Body:    "Body text",
	}))
	assert.Contains(t, msg, "From: from@mind.example\r\n")
	assert.Contains(t, msg, "To: to@example.com\r\n")
	assert.Contains(t, msg, "Subject: Hello\r\n")
	assert.Contains(t, msg, "text/plain")
	assert.Contains(t, msg, "Body text")
}

func TestBuildMessage_HTMLContentType(t *testing.T) {
	msg := string(buildMessage("a@b.c", "d@e.f", Template{Subject: "s", Body: "<b>hi</b>", HTML: true}))
	assert.Contains(t, msg, "text/html")
}
