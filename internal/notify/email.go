// Package notify delivers best-effort "result ready" messages to patients.
// Delivery is a single attempt: callers log failures and move on, they never
// roll back the work that triggered the notification.
package notify

import (
	"bytes"
	"context"
	"html/template"

	"gopkg.in/gomail.v2"
)

// Subject line of the result-ready message.
const resultReadySubject = "Your NeuroScan AI Portal Result is Ready"

// Notifier is the delivery channel for result-ready notifications.
type Notifier interface {
	NotifyResultReady(ctx context.Context, email, fullName string) error
}

var resultReadyBody = template.Must(template.New("resultReady").Parse(`<html>
  <body style="font-family: Arial, sans-serif; text-align: center;">
    <div style="padding: 20px; border: 1px solid #e0e0e0; border-radius: 10px;">
      <h2 style="color: #333;">Hello {{.FullName}},</h2>
      <p>Your medical result has been processed and is now available on the <b>NeuroScan AI Portal</b>.</p>
      <a href="{{.PortalURL}}"
         style="display:inline-block;padding:10px 20px;
                background:linear-gradient(to right, #3b82f6, #9333ea);
                color:white;text-decoration:none;border-radius:8px;">
        View Result
      </a>
    </div>
  </body>
</html>`))

// renderResultReady fills the HTML body for one recipient.
func renderResultReady(fullName, portalURL string) (string, error) {
	var buf bytes.Buffer
	err := resultReadyBody.Execute(&buf, struct {
		FullName  string
		PortalURL string
	}{fullName, portalURL})
	return buf.String(), err
}

// SMTPNotifier sends the notification over SMTP.
type SMTPNotifier struct {
	dialer    *gomail.Dialer
	from      string
	portalURL string
}

func NewSMTPNotifier(host string, port int, user, pass, from, portalURL string) *SMTPNotifier {
	return &SMTPNotifier{
		dialer:    gomail.NewDialer(host, port, user, pass),
		from:      from,
		portalURL: portalURL,
	}
}

// NotifyResultReady sends one HTML message to the patient. gomail dials per
// call, which is fine at this volume.
func (n *SMTPNotifier) NotifyResultReady(ctx context.Context, email, fullName string) error {
	body, err := renderResultReady(fullName, n.portalURL)
	if err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", resultReadySubject)
	m.SetBody("text/html", body)
	return n.dialer.DialAndSend(m)
}
