// Package notify correo saliente: confirmaciones de pedido, facturas y alertas de stock.
// Un fallo de envío se registra y nunca se propaga al caso de uso que lo originó.
package notify

import (
	"context"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/rs/zerolog"
)

// Message correo listo para enviar.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Sender entrega un mensaje (SMTP, log...).
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer filtra destinatarios y delega en el Sender.
type Mailer struct {
	sender   Sender
	fallback string
	log      zerolog.Logger
}

// NewMailer construye el mailer. fallback es la dirección usada cuando ningún destinatario es válido.
func NewMailer(sender Sender, fallback string, log zerolog.Logger) *Mailer {
	return &Mailer{sender: sender, fallback: strings.TrimSpace(fallback), log: log}
}

// Send envía msg a sus destinatarios válidos y devuelve cuántos recibieron el correo.
// Sin destinatarios válidos usa la dirección de respaldo; sin respaldo descarta el mensaje con un warning.
func (m *Mailer) Send(ctx context.Context, msg Message) int {
	to := ValidRecipients(msg.To)
	if len(to) == 0 {
		if m.fallback == "" || !govalidator.IsEmail(m.fallback) {
			m.log.Warn().Str("subject", msg.Subject).Strs("to", msg.To).Msg("correo descartado: sin destinatarios válidos")
			return 0
		}
		to = []string{m.fallback}
	}
	msg.To = to
	if err := m.sender.Send(ctx, msg); err != nil {
		m.log.Error().Err(err).Str("subject", msg.Subject).Strs("to", to).Msg("no se pudo enviar el correo")
		return 0
	}
	m.log.Debug().Str("subject", msg.Subject).Int("recipients", len(to)).Msg("correo enviado")
	return len(to)
}

// ValidRecipients limpia, valida y deduplica direcciones.
func ValidRecipients(addrs []string) []string {
	seen := make(map[string]struct{}, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		a = strings.TrimSpace(a)
		if a == "" || !govalidator.IsEmail(a) {
			continue
		}
		key := strings.ToLower(a)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
