package mailer

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
)

const welcomeSubject = "Welcome aboard"

const welcomeText = `Hi {{.Email}},

Your account has been created. You can sign in with this email address
right away.

If you did not create this account, you can ignore this message.
`

const welcomeHTML = `<html><body>
<p>Hi {{.Email}},</p>
<p>Your account has been created. You can sign in with this email address right away.</p>
<p style="color:#888">If you did not create this account, you can ignore this message.</p>
</body></html>`

var (
	welcomeTextTpl = texttpl.Must(texttpl.New("welcome_text").Parse(welcomeText))
	welcomeHTMLTpl = htmltpl.Must(htmltpl.New("welcome_html").Parse(welcomeHTML))
)

// Render produces subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case TemplateWelcome:
		var tb, hb bytes.Buffer
		if err = welcomeTextTpl.Execute(&tb, data); err != nil {
			return "", "", "", err
		}
		if err = welcomeHTMLTpl.Execute(&hb, data); err != nil {
			return "", "", "", err
		}
		return welcomeSubject, tb.String(), hb.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
