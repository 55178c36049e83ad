package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"scoop_storefront/internal/models"

	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer envoie les confirmations de commande
type Mailer struct {
	cfg     SMTPConfig
	baseURL string
}

func NewMailer(cfg SMTPConfig, baseURL string) *Mailer {
	return &Mailer{cfg: cfg, baseURL: baseURL}
}

var confirmationTmpl = template.Must(template.New("confirmation").Funcs(template.FuncMap{
	"money": Money,
	"mul":   func(price float64, qty int) float64 { return price * float64(qty) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Order confirmation</title></head>
<body style="font-family: Arial, sans-serif; background-color: #fff7f0; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2>Thanks for your order, {{.Order.Shipping.Name}}!</h2>
		<p>Order <strong>{{.Order.OrderNumber}}</strong></p>
		<table style="width: 100%; border-collapse: collapse;">
			{{range .Order.Items}}
			<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{money (mul .Price .Quantity)}}</td></tr>
			{{end}}
		</table>
		<p>Subtotal: {{money .Order.Payment.Subtotal}}</p>
		{{if .Order.Payment.DiscountAmount}}<p>Discount ({{.Order.Payment.DiscountCode}}): -{{money .Order.Payment.DiscountAmount}}</p>{{end}}
		<p>Tax: {{money .Order.Payment.Tax}}</p>
		<p><strong>Total: {{money .Order.Payment.Total}}</strong></p>
		<p><a href="{{.Link}}">View your order</a></p>
	</div>
</body>
</html>`))

// Money formate un montant en dollars
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func OrderConfirmationHTML(order models.Order, link string) (string, error) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, map[string]interface{}{
		"Order": order,
		"Link":  link,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (m *Mailer) OrderPlaced(order models.Order, to string) {
	if err := m.sendConfirmation(order, to); err != nil {
		log.Printf("❌ Email de confirmation non envoyé (%s): %v", order.OrderNumber, err)
		return
	}
	log.Printf("📧 Confirmation de commande envoyée à %s", to)
}

func (m *Mailer) sendConfirmation(order models.Order, to string) error {
	body, err := OrderConfirmationHTML(order, OrderURL(m.baseURL, order.OrderNumber))
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("🍦 Your order " + order.OrderNumber)
	msg.SetBodyString(mail.TypeTextHTML, body)

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}
