package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names understood by the email worker.
const (
	Welcome = "welcome"
)

var welcomeHTML = template.Must(template.New(Welcome).Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Welcome to LearnSphere, {{.Name}}!</h2>
    <p>Your account was created successfully. You can now browse courses,
    enroll, and build your wishlist.</p>
    <p>Happy learning!</p>
    <p style="color:#888; font-size:12px;">If you did not create this account,
    please contact support.</p>
  </body>
</html>`))

// Render renders the named template and returns subject, text and html bodies.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case Welcome:
		var buf bytes.Buffer
		if err = welcomeHTML.Execute(&buf, data); err != nil {
			return "", "", "", err
		}
		subject = "Registration Successful. Welcome!"
		text = fmt.Sprintf("Welcome to LearnSphere, %v! Your account was created successfully.", data["Name"])
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
