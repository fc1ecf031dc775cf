package storefront

import (
	"context"
	"strings"

	"mani_electrical_back_end/internal/models"
)

// CheckoutState est l'état courant de la soumission de commande.
// Transitions : Idle -> Validating -> Submitting -> Confirmed | Failed.
// Failed autorise une nouvelle tentative ; Confirmed est terminal.
type CheckoutState int

const (
	StateIdle CheckoutState = iota
	StateValidating
	StateSubmitting
	StateConfirmed
	StateFailed
)

func (s CheckoutState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateConfirmed:
		return "confirmed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// PaymentInput est la saisie brute du formulaire de paiement. Le numéro
// de carte complet ne quitte jamais cette struct : seul le last-4 part
// dans l'OrderDraft.
type PaymentInput struct {
	Method     string // cod, card, upi
	CardHolder string
	CardNumber string
	CVV        string
	Expiry     string // MM/YY
	UPIID      string
}

// DraftItem ne porte que l'identifiant et la quantité : le serveur
// re-tarife depuis le catalogue, jamais depuis le client
type DraftItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type draftPayment struct {
	CardHolder string `json:"cardHolder,omitempty"`
	CardLast4  string `json:"cardLast4,omitempty"`
	UPIID      string `json:"upiId,omitempty"`
}

// OrderDraft est le corps envoyé à POST /api/orders
type OrderDraft struct {
	Items           []DraftItem            `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	PaymentDetails  draftPayment           `json:"paymentDetails"`
}

type orderAPI interface {
	Authenticated() bool
	SubmitOrder(ctx context.Context, draft OrderDraft) (OrderResponse, error)
}

// Checkout pilote la soumission de commande pour les lignes sélectionnées
type Checkout struct {
	api   orderAPI
	store *CartStore
	sel   *Selection

	state   CheckoutState
	message string
	orderID string
	upiQR   string
}

func NewCheckout(api orderAPI, store *CartStore, sel *Selection) *Checkout {
	return &Checkout{api: api, store: store, sel: sel, state: StateIdle}
}

// State retourne l'état courant de la machine
func (co *Checkout) State() CheckoutState {
	return co.state
}

// Message retourne le dernier message utilisateur (confirmation ou erreur)
func (co *Checkout) Message() string {
	return co.message
}

// OrderID retourne l'identifiant de la commande confirmée
func (co *Checkout) OrderID() string {
	return co.orderID
}

// UPIQR retourne le QR code de paiement encodé en base64 (UPI uniquement)
func (co *Checkout) UPIQR() string {
	return co.upiQR
}

// Submit valide le paiement puis envoie la commande. Toute sortie en
// échec repasse par StateFailed, qui autorise une nouvelle tentative.
// Sélection vide : refus local, zéro appel réseau.
func (co *Checkout) Submit(ctx context.Context, address models.ShippingAddress, payment PaymentInput) Result {
	if co.state == StateConfirmed {
		return fail(ValidationFailed, "Commande déjà confirmée")
	}
	if co.state == StateValidating || co.state == StateSubmitting {
		return fail(ValidationFailed, "Une soumission est déjà en cours")
	}

	if !co.api.Authenticated() {
		co.state = StateFailed
		co.message = "Connectez-vous pour commander"
		return fail(NotAuthenticated, co.message)
	}

	items := co.sel.SelectedItems(co.store.Items())
	if len(items) == 0 {
		// refus local : rien ne part sur le réseau
		co.state = StateFailed
		co.message = "Sélectionnez au moins un article"
		return fail(EmptyState, co.message)
	}

	co.state = StateValidating

	if address.FullName == "" || address.Street == "" || address.City == "" || address.PostalCode == "" {
		co.state = StateFailed
		co.message = "Adresse de livraison incomplète"
		return Result{Kind: ValidationFailed, Message: co.message, Field: "shippingAddress"}
	}

	details, field, msg, valid := validatePayment(payment)
	if !valid {
		co.state = StateFailed
		co.message = msg
		return Result{Kind: ValidationFailed, Message: msg, Field: field}
	}

	draft := OrderDraft{
		Items:           make([]DraftItem, 0, len(items)),
		ShippingAddress: address,
		PaymentMethod:   normalizeMethod(payment.Method),
		PaymentDetails:  details,
	}
	for _, it := range items {
		draft.Items = append(draft.Items, DraftItem{Product: it.ProductID, Quantity: it.Quantity})
	}

	co.state = StateSubmitting

	resp, err := co.api.SubmitOrder(ctx, draft)
	if err != nil {
		co.state = StateFailed
		co.message = serverMessage(err, "La commande n'a pas pu être enregistrée")
		return fail(NetworkOrServerError, co.message)
	}

	co.state = StateConfirmed
	co.message = resp.Message
	co.orderID = resp.OrderID
	co.upiQR = resp.UPIQr
	return ok()
}

// Reset repasse la machine à Idle pour une nouvelle commande
func (co *Checkout) Reset() {
	co.state = StateIdle
	co.message = ""
	co.orderID = ""
	co.upiQR = ""
}

func normalizeMethod(method string) string {
	m := strings.ToLower(strings.TrimSpace(method))
	switch m {
	case "credit", "debit", "credit_card", "debit_card":
		return "card"
	case "":
		return "cod"
	}
	return m
}
