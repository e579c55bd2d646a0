package smtp

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/matcornic/hermes/v2"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"gopkg.in/gomail.v2"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

// The newsletter body embeds the editor-produced content fragment verbatim,
// so it is rendered with html/template and template.HTML rather than a
// theming library that would escape or re-layout it.
var newsletterTmpl = template.Must(template.New("newsletter").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #f8f9fa; padding: 20px; text-align: center; }
    .content { padding: 20px 0; }
    .footer { background: #f8f9fa; padding: 20px; text-align: center; font-size: 12px; color: #666; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>{{.Title}}</h1>
      {{if .Description}}<p>{{.Description}}</p>{{end}}
    </div>
    <div class="content">
      <p>{{.Greeting}}</p>
      {{.Content}}
      {{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}" style="max-width: 100%; height: auto;">{{end}}
    </div>
    <div class="footer">
      <p>You're receiving this because you subscribed to {{.Product}}.</p>
      <p><a href="{{.UnsubscribeURL}}">Unsubscribe</a></p>
    </div>
  </div>
</body>
</html>
`))

type mailer struct {
	ServerURL string
	*visiontech.Config
}

// NewMailer returns a gomail-backed mail transport. serverURL is the public
// base URL used in unsubscribe links.
func NewMailer(config *visiontech.Config, serverURL string) visiontech.Mailer {
	return &mailer{
		Config:    config,
		ServerURL: serverURL,
	}
}

func (m *mailer) configured() bool {
	return m.Config.SMTP.Host != "" && m.Config.SMTP.Username != ""
}

// SendNewsletter renders and delivers one issue to one subscriber, returning
// the generated Message-ID on success.
func (m *mailer) SendNewsletter(n *visiontech.Newsletter, sub *visiontech.Subscriber) (string, error) {
	greeting := "Hello,"
	if sub.Name != "" {
		greeting = fmt.Sprintf("Hi %s,", sub.Name)
	}

	var body bytes.Buffer
	err := newsletterTmpl.Execute(&body, struct {
		Title          string
		Description    string
		Content        template.HTML
		ImageURL       string
		Greeting       string
		Product        string
		UnsubscribeURL string
	}{
		Title:          n.Title,
		Description:    n.Description,
		Content:        template.HTML(n.Content),
		ImageURL:       n.ImageURL,
		Greeting:       greeting,
		Product:        m.Config.Newsletter.Product.Name,
		UnsubscribeURL: fmt.Sprintf("%s/subscribers/unsubscribe/%s", m.ServerURL, sub.UnsubscribeToken),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to render newsletter email")
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewV4(), m.Config.SMTP.Host)
	if err := m.sendEmail(sub.Email, n.Title, body.String(), messageID); err != nil {
		return "", err
	}

	return messageID, nil
}

// SendWelcomeEmail sends a hermes-generated greeting to a brand-new
// subscriber.
func (m *mailer) SendWelcomeEmail(sub *visiontech.Subscriber) error {
	h := hermes.Hermes{
		Product: hermes.Product{
			Name: m.Config.Newsletter.Product.Name,
			Link: m.ServerURL,
		},
	}

	email := hermes.Email{
		Body: hermes.Body{
			Name: sub.Name,
			Intros: []string{
				fmt.Sprintf("Welcome to %s", m.Config.Newsletter.Product.Name),
			},
			Actions: []hermes.Action{
				{
					Instructions: "You will receive new issues to your inbox.",
				},
			},
		},
	}

	emailBody, err := h.GenerateHTML(email)
	if err != nil {
		return errors.Errorf("failed to generate HTML email: %v", err)
	}

	return m.sendEmail(sub.Email, fmt.Sprintf("Welcome to %s", m.Config.Newsletter.Product.Name), emailBody, "")
}

func (m *mailer) sendEmail(to, subject, body, messageID string) error {
	// An absent transport is a deployment precondition failure; every send
	// reports it so each dispatch result stays observable.
	if !m.configured() {
		return errors.New("no mail transport configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.Config.Newsletter.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	if messageID != "" {
		msg.SetHeader("Message-ID", messageID)
	}
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.Config.SMTP.Host, m.Config.SMTP.Port, m.Config.SMTP.Username, m.Config.SMTP.Password)
	if err := d.DialAndSend(msg); err != nil {
		return errors.Errorf("failed to send mail to %s: %v", to, err)
	}

	return nil
}
