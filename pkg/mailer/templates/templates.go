// Package templates renders the account emails. Templates are compiled in so
// the worker has no runtime file dependencies.
package templates

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
)

// Template names
const (
	AccountActivation = "account_activation"
	PasswordReset     = "password_reset"
)

// EmailData defines the standard fields for account email templates.
// UID is the url-safe encoding of the user id; Token is the signed account
// token. Both are embedded in the action link.
type EmailData struct {
	Name   string `json:"Name"`
	Domain string `json:"Domain"`
	UID    string `json:"UID"`
	Token  string `json:"Token"`
	Link   string `json:"Link"`
}

type emailTemplate struct {
	subject string
	text    string
	html    string
}

var registry = map[string]emailTemplate{
	AccountActivation: {
		subject: "Please activate your account",
		text: `Hi {{.Name}},

Thanks for registering at {{.Domain}}. Please activate your account:

{{.Link}}

If you did not register, you can ignore this email.
`,
		html: `<p>Hi {{.Name}},</p>
<p>Thanks for registering at {{.Domain}}. Please activate your account by clicking the link below.</p>
<p><a href="{{.Link}}">Activate my account</a></p>
<p>If you did not register, you can ignore this email.</p>
`,
	},
	PasswordReset: {
		subject: "Reset your password",
		text: `Hi {{.Name}},

We received a request to reset the password for your account at {{.Domain}}:

{{.Link}}

If you did not request a reset, you can ignore this email.
`,
		html: `<p>Hi {{.Name}},</p>
<p>We received a request to reset the password for your account at {{.Domain}}.</p>
<p><a href="{{.Link}}">Reset my password</a></p>
<p>If you did not request a reset, you can ignore this email.</p>
`,
	},
}

// ToMap converts EmailData into the generic EmailJob data payload.
func ToMap(d EmailData) map[string]any {
	return map[string]any{
		"Name":   d.Name,
		"Domain": d.Domain,
		"UID":    d.UID,
		"Token":  d.Token,
		"Link":   d.Link,
	}
}

// Render produces subject, text, and html bodies for the named template.
func Render(name string, data any) (subject, text, html string, err error) {
	tpl, ok := registry[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	text, err = renderText(name+".text", tpl.text, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderHTML(name+".html", tpl.html, data)
	if err != nil {
		return "", "", "", err
	}
	return tpl.subject, text, html, nil
}

func renderText(name, body string, data any) (string, error) {
	t, err := texttpl.New(name).Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse text %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}

func renderHTML(name, body string, data any) (string, error) {
	t, err := htmpl.New(name).Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse html %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}
