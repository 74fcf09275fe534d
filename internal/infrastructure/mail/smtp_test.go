package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/notify"
)

func TestBuildMessage(t *testing.T) {
	m := buildMessage("tienda@example.com", notify.Message{
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Factura FAC-1",
		Text:    "hola",
		HTML:    "<p>hola</p>",
	})
	assert.Equal(t, []string{"tienda@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Factura FAC-1"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(zerolog.New(&buf))
	require.NoError(t, s.Send(context.Background(), notify.Message{To: []string{"x@example.com"}, Subject: "hola"}))
	assert.Contains(t, buf.String(), "x@example.com")
}
