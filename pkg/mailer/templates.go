package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var templates = template.Must(template.New("emails").Parse(`
{{define "welcome"}}
<html><body>
<h2>Welcome to the marketplace, {{.Name}}!</h2>
<p>Your account is ready. Browse listings or post your first ad whenever you like.</p>
</body></html>
{{end}}

{{define "ad_posted"}}
<html><body>
<h2>Your ad is live</h2>
<p>Hi {{.Name}},</p>
<p>Your listing <strong>{{.Title}}</strong> in {{.Category}} was published successfully.</p>
<p>Price: {{.Price}} &middot; Location: {{.Location}}</p>
</body></html>
{{end}}
`))

var subjects = map[string]string{
	TemplateWelcome:  "Welcome to the marketplace",
	TemplateAdPosted: "Your ad was published",
}

// Render produces the subject and HTML body for a named template.
func Render(name string, data map[string]any) (subject, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
