package storefront

import (
	"regexp"
	"strings"
)

// Règles de validation paiement, appliquées AVANT tout appel réseau.
// Le serveur revalide de son côté : ceci coupe juste les allers-retours
// inutiles.
var (
	cardDigitsPattern = regexp.MustCompile(`^[0-9]{16}$`)
	cvvPattern        = regexp.MustCompile(`^[0-9]{3,4}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	upiPattern        = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,}@[a-zA-Z]{2,}$`)
)

// stripSeparators retire espaces et tirets du numéro de carte saisi
func stripSeparators(number string) string {
	r := strings.NewReplacer(" ", "", "-", "")
	return r.Replace(number)
}

// validatePayment vérifie la saisie selon le mode choisi et construit les
// détails à transmettre. Le numéro de carte est tronqué au last-4 ici :
// le numéro complet ne part jamais.
func validatePayment(p PaymentInput) (details draftPayment, field, message string, valid bool) {
	switch normalizeMethod(p.Method) {
	case "cod":
		// paiement à la livraison : rien à valider
		return draftPayment{}, "", "", true

	case "card":
		if strings.TrimSpace(p.CardHolder) == "" {
			return draftPayment{}, "cardHolder", "Nom du titulaire requis", false
		}
		digits := stripSeparators(p.CardNumber)
		if !cardDigitsPattern.MatchString(digits) {
			return draftPayment{}, "cardNumber", "Numéro de carte invalide (16 chiffres attendus)", false
		}
		if !cvvPattern.MatchString(p.CVV) {
			return draftPayment{}, "cvv", "CVV invalide", false
		}
		if !expiryPattern.MatchString(p.Expiry) {
			return draftPayment{}, "expiry", "Date d'expiration invalide (MM/YY)", false
		}
		return draftPayment{
			CardHolder: strings.TrimSpace(p.CardHolder),
			CardLast4:  digits[len(digits)-4:],
		}, "", "", true

	case "upi":
		if !upiPattern.MatchString(strings.TrimSpace(p.UPIID)) {
			return draftPayment{}, "upiId", "Identifiant UPI invalide", false
		}
		return draftPayment{UPIID: strings.TrimSpace(p.UPIID)}, "", "", true
	}

	return draftPayment{}, "paymentMethod", "Mode de paiement non reconnu", false
}
