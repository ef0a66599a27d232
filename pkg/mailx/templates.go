package mailx

import (
	"bytes"
	"html/template"
)

var acceptanceTmpl = template.Must(template.New("acceptance").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Application Accepted</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 20px auto; background-color: #ffffff; border-radius: 8px;">
    <div style="background-color: #007bff; color: #ffffff; padding: 20px; text-align: center;">
      <h1 style="margin: 0;">iRecruit</h1>
      <p>Recruitment Platform</p>
    </div>
    <div style="padding: 30px; color: #333333; line-height: 1.6;">
      <h2 style="color: #007bff;">Congratulations! Your Application Has Been Accepted</h2>
      <p>Dear {{if .FullName}}{{.FullName}}{{else}}Candidate{{end}},</p>
      <p>Your profile has been selected for the next stage of our recruitment process{{if .OfferTitle}} for <strong>{{.OfferTitle}}</strong>{{end}}.</p>
      {{- if .Message}}
      <div style="background-color: #f8f9fa; padding: 15px; border-left: 4px solid #007bff; white-space: pre-line;">
        <strong>Message from our team:</strong><br>{{.Message}}
      </div>
      {{- end}}
      <p>Please keep an eye on your email for further instructions regarding the next steps.</p>
      <a href="mailto:{{.SupportEmail}}" style="background-color: #28a745; color: #ffffff; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Contact Support</a>
    </div>
    <div style="background-color: #f8f9fa; padding: 20px; text-align: center; color: #666666; font-size: 14px;">
      <p>If you have questions, reply to this email or contact us at {{.SupportEmail}}</p>
    </div>
  </div>
</body>
</html>`))

// AcceptanceData fills the acceptance email
type AcceptanceData struct {
	FullName   string
	OfferTitle string
	Message    string
	// defaults to DefaultSupportEmail
	SupportEmail string
}

const (
	AcceptanceSubject   = "Your Application Has Been Accepted - iRecruit"
	DefaultSupportEmail = "support@irecruit.com"
)

// AcceptanceEmail renders the acceptance message for to
func AcceptanceEmail(to string, data AcceptanceData) (Message, error) {
	if data.SupportEmail == "" {
		data.SupportEmail = DefaultSupportEmail
	}
	var buf bytes.Buffer
	if err := acceptanceTmpl.Execute(&buf, data); err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: AcceptanceSubject,
		HTML:    buf.String(),
	}, nil
}
