package services

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"os"

	qrcode "github.com/skip2/go-qrcode"
)

// BuildUPIIntent construit l'URI d'intent UPI pour le montant d'une commande
func BuildUPIIntent(amount float64, orderRef string) string {
	vpa := os.Getenv("UPI_MERCHANT_VPA")
	if vpa == "" {
		vpa = "manielectrical@okhdfcbank"
	}

	params := url.Values{}
	params.Set("pa", vpa)
	params.Set("pn", "Mani Electrical")
	params.Set("am", fmt.Sprintf("%.2f", amount))
	params.Set("cu", "INR")
	params.Set("tn", "Commande "+orderRef)

	return "upi://pay?" + params.Encode()
}

// UPIQRCode génère le QR code PNG (base64) de l'intent UPI d'une commande.
// Le client l'affiche à l'étape de paiement, aucun prestataire n'est appelé.
func UPIQRCode(amount float64, orderRef string) (string, error) {
	png, err := qrcode.Encode(BuildUPIIntent(amount, orderRef), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
