package services

import (
	"fmt"
	"log"
	"os"
	"strings"

	"mani_electrical_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendMail envoie un e-mail HTML via le SMTP configuré
func SendMail(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@manielectrical.in"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// OrderConfirmationHTML génère le HTML de confirmation de commande
func OrderConfirmationHTML(order models.Order) string {
	var items strings.Builder
	for _, item := range order.Items {
		items.WriteString(fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>₹%.2f</td>
				<td>₹%.2f</td>
			</tr>`, item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity)))
	}

	giftHTML := ""
	if order.FreeGift != nil {
		giftHTML = fmt.Sprintf(`<p>🎁 Cadeau inclus : %s</p>`, order.FreeGift.Name)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Confirmation de commande</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Mani Electrical — Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande <strong>%s</strong> a bien été enregistrée.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left;">Produit</th>
					<th style="padding: 10px; text-align: left;">Quantité</th>
					<th style="padding: 10px; text-align: left;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>
		%s
		<p>Livraison : ₹%.2f — <strong>Total : ₹%.2f</strong></p>
		<p>Merci pour votre confiance.</p>
	</div>
</body>
</html>`, order.ID.Hex(), items.String(), giftHTML, order.ShippingFee, order.Total)
}

// SupportAckHTML génère l'accusé de réception du formulaire de contact
func SupportAckHTML(name, subject string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif;">
	<p>Bonjour %s,</p>
	<p>Nous avons bien reçu votre message « %s ». Notre équipe vous répondra sous 48h.</p>
	<p>— Mani Electrical</p>
</body>
</html>`, name, subject)
}
