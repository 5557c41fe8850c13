// Package mailer entrega invitaciones por correo SMTP cuando no hay API del proveedor de identidad.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/ports"
	"github.com/jhoicas/salesflow-api/pkg/config"
)

var _ ports.InvitationSender = (*SMTPSender)(nil)

// dialer lo que SMTPSender necesita de *gomail.Dialer.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender implementa InvitationSender enviando un correo con el enlace de registro.
type SMTPSender struct {
	from      string
	signupURL string
	appName   string
	dialer    dialer
}

var inviteTmpl = template.Must(template.New("invite").Parse(
	`<p>Hola,</p>
<p>Te invitaron a unirte al equipo en <strong>{{.App}}</strong>.</p>
<p><a href="{{.URL}}">Crear mi cuenta</a></p>
<p>Si no esperabas este correo puedes ignorarlo.</p>`))

// NewSMTPSender construye el adaptador. signupURL es el enlace incluido en el correo.
func NewSMTPSender(cfg config.SMTPConfig, appName, signupURL string) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	if cfg.User == "" {
		d.Auth = nil
	}
	return &SMTPSender{from: cfg.From, signupURL: signupURL, appName: appName, dialer: d}
}

// SendInvitation arma y envía el mensaje. gomail no acepta contexto: se respeta
// una cancelación previa al envío.
func (s *SMTPSender) SendInvitation(ctx context.Context, email string) (*dto.InvitationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("smtp: %w", err)
	}
	var body bytes.Buffer
	if err := inviteTmpl.Execute(&body, struct{ App, URL string }{s.appName, s.signupURL}); err != nil {
		return nil, fmt.Errorf("smtp: plantilla: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Invitación a %s", s.appName))
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return nil, fmt.Errorf("smtp: enviar a %s: %w", email, err)
	}
	return &dto.InvitationResult{
		Provider:     "smtp",
		EmailAddress: email,
		Status:       "sent",
		URL:          s.signupURL,
	}, nil
}
