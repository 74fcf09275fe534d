package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/shopspring/decimal"
)

const receiptText = `{{.Subject}}

{{range .Lines}}{{.Quantity}} x {{.Description}}  {{money .UnitPrice}}  = {{money .Subtotal}}
{{end}}
{{range .Totals}}{{.Label}}: {{money .Value}}
{{end}}`

const receiptHTML = `<!DOCTYPE html>
<html><body style="font-family: sans-serif">
<h2>{{.Subject}}</h2>
<table cellpadding="4" cellspacing="0" border="1">
<tr><th>Cant.</th><th>Producto</th><th>Precio</th><th>Subtotal</th></tr>
{{range .Lines}}<tr><td>{{.Quantity}}</td><td>{{.Description}}</td><td align="right">{{money .UnitPrice}}</td><td align="right">{{money .Subtotal}}</td></tr>
{{end}}</table>
<p>{{range .Totals}}<b>{{.Label}}:</b> {{money .Value}}<br>{{end}}</p>
</body></html>`

const stockAlertText = `Stock bajo: {{.ProductName}} talla {{.SizeName}}

Existencias: {{.Stock}} (umbral {{.Threshold}})
Registro: {{.InventoryID}}
`

const stockAlertHTML = `<!DOCTYPE html>
<html><body style="font-family: sans-serif">
<h2>Stock bajo: {{.ProductName}} talla {{.SizeName}}</h2>
<p>Existencias: <b>{{.Stock}}</b> (umbral {{.Threshold}})</p>
<p style="color:#666">Registro {{.InventoryID}}</p>
</body></html>`

var funcs = map[string]any{
	"money": func(d decimal.Decimal) string { return "$" + d.StringFixed(2) },
}

var (
	receiptTextTmpl    = texttemplate.Must(texttemplate.New("receipt.txt").Funcs(funcs).Parse(receiptText))
	receiptHTMLTmpl    = htmltemplate.Must(htmltemplate.New("receipt.html").Funcs(funcs).Parse(receiptHTML))
	stockAlertTextTmpl = texttemplate.Must(texttemplate.New("alert.txt").Parse(stockAlertText))
	stockAlertHTMLTmpl = htmltemplate.Must(htmltemplate.New("alert.html").Parse(stockAlertHTML))
)

type receiptData struct {
	Subject string
	Lines   []ReceiptLine
	Totals  []Amount
}

// RenderReceipt arma el mensaje (texto + HTML) de un comprobante.
func RenderReceipt(r Receipt) (Message, error) {
	data := receiptData{Subject: r.Subject(), Lines: r.LineItems(), Totals: r.Totals()}
	var text, html bytes.Buffer
	if err := receiptTextTmpl.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("plantilla texto: %w", err)
	}
	if err := receiptHTMLTmpl.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("plantilla html: %w", err)
	}
	return Message{To: []string{r.RecipientEmail()}, Subject: data.Subject, Text: text.String(), HTML: html.String()}, nil
}

// StockAlertMail datos del correo de stock bajo.
type StockAlertMail struct {
	InventoryID string
	ProductName string
	SizeName    string
	Stock       int
	Threshold   int
}

// RenderStockAlert arma el correo de alerta para los destinatarios dados.
func RenderStockAlert(to []string, a StockAlertMail) (Message, error) {
	var text, html bytes.Buffer
	if err := stockAlertTextTmpl.Execute(&text, a); err != nil {
		return Message{}, fmt.Errorf("plantilla texto: %w", err)
	}
	if err := stockAlertHTMLTmpl.Execute(&html, a); err != nil {
		return Message{}, fmt.Errorf("plantilla html: %w", err)
	}
	subject := fmt.Sprintf("Alerta de stock: %s (%s)", a.ProductName, a.SizeName)
	return Message{To: to, Subject: subject, Text: text.String(), HTML: html.String()}, nil
}
