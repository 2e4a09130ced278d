package mailer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
)

// Template is one renderable message: subject and body carry {key}
// placeholders that Render substitutes from the caller's values.
type Template struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	HTML    bool   `json:"html"`
}

// Builtin templates used when the template dir has no override file.
var builtinTemplates = map[TemplateKind]Template{
	KindStreak: {
		From:    "no-reply@mind.local",
		Subject: "Your {actualStreak}-day streak is on the line",
		Body:    "Hi {userName}, log in today to push your streak from {actualStreak} to {extendedStreak} days!",
	},
	KindPlan: {
		From:    "no-reply@mind.local",
		Subject: "Today on your learning plan: {videoTitle}",
		Body:    "Hi {userName}, today's pick is \"{videoTitle}\" ({videoDuration} min). Enjoy!",
	},
	KindInactive: {
		From:    "no-reply@mind.local",
		Subject: "We miss you",
		Body:    "Hi {userName}, it has been {daysInactive} days since your last visit on {lastLoginDate}. Come back!",
	},
}

// LoadTemplates returns the builtin set with any per-kind JSON override
// found in dir applied on top. An empty dir means builtins only.
func LoadTemplates(dir string) (map[TemplateKind]Template, error) {
	templates := make(map[TemplateKind]Template, len(builtinTemplates))
	for kind, tpl := range builtinTemplates {
		templates[kind] = tpl
	}
	if dir == "" {
		return templates, nil
	}

	for kind := range builtinTemplates {
		path := filepath.Join(dir, kind.FileName())
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read template %s: %w", path, err)
		}
		var tpl Template
		if err := json.Unmarshal(data, &tpl); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", path, err)
		}
		if tpl.From == "" {
			tpl.From = builtinTemplates[kind].From
		}
		templates[kind] = tpl
	}
	return templates, nil
}

// Render substitutes every {key} from values into the subject and body.
// Placeholders without a matching value are left as-is so a malformed
// call is visible in the delivered message rather than silently blank.
func Render(tpl Template, values map[string]string) Template {
	out := tpl
	for key, val := range values {
		placeholder := "{" + key + "}"
		out.Subject = strings.ReplaceAll(out.Subject, placeholder, val)
		out.Body = strings.ReplaceAll(out.Body, placeholder, val)
	}
	return out
}

func templateFor(templates map[TemplateKind]Template, kind TemplateKind) (Template, error) {
	tpl, ok := templates[kind]
	if !ok {
		return Template{}, fmt.Errorf("unknown template kind %q", kind)
	}
	return tpl, nil
}
