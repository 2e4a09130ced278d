// Package mailer renders and dispatches templated retention messages.
// Batch callers treat a failed Send as that recipient's problem only:
// the error is returned, never panicked, and no state is touched here.
package mailer

import (
	"mindd/internal/providers"
	"mindd/internal/structures"
)

// TemplateKind names the three message templates the engagement engine
// sends.
type TemplateKind string

const (
	KindStreak   TemplateKind = "STREAK"
	KindPlan     TemplateKind = "PLAN"
	KindInactive TemplateKind = "INACTIVE"
)

// FileName is the on-disk template file for this kind, matching the
// template dir layout.
func (k TemplateKind) FileName() string {
	switch k {
	case KindStreak:
		return "streak.json"
	case KindPlan:
		return "plan.json"
	case KindInactive:
		return "inactivity.json"
	default:
		return ""
	}
}

// Substitution keys the templates may reference as {key}.
const (
	ValueUserName       = "userName"
	ValueActualStreak   = "actualStreak"
	ValueExtendedStreak = "extendedStreak"
	ValueVideoTitle     = "videoTitle"
	ValueVideoDuration  = "videoDuration"
	ValueDaysInactive   = "daysInactive"
	ValueLastLoginDate  = "lastLoginDate"
)

// Notifier is the single capability the scheduling engine needs from the
// messaging side: render the template of the given kind with the named
// substitutions and dispatch it to the recipient address.
type Notifier interface {
	Send(recipient string, kind TemplateKind, values map[string]string) error
}

// NewNotifier wires the configured transport. With mailing disabled the
// log-only notifier keeps the batch jobs runnable; dispatches succeed
// without leaving the process.
func NewNotifier(conf *structures.Config, logger providers.Logger) (Notifier, error) {
	templates, err := LoadTemplates(conf.Mailer.TemplateDir)
	if err != nil {
		return nil, err
	}
	if !conf.Mailer.Enabled {
		logger.Infof(providers.TypeApp, "Mailer disabled, notifications are log-only")
		return &LogNotifier{logger: logger, templates: templates}, nil
	}
	return NewSMTPNotifier(conf, logger, templates), nil
}
