package storefront

import (
	"context"
	"log"

	"mani_electrical_back_end/internal/models"
)

// CartSource marque la provenance de l'état local du panier
type CartSource int

const (
	// SourcePersisted : l'état vient du panier serveur de l'utilisateur connecté
	SourcePersisted CartSource = iota
	// SourceEphemeral : session anonyme, panier vide non persisté
	SourceEphemeral
)

// cartAPI est la surface serveur dont le store a besoin. Interface pour
// pouvoir injecter un faux client dans les tests.
type cartAPI interface {
	Authenticated() bool
	FetchCart(ctx context.Context) (models.Cart, error)
	AddCartItem(ctx context.Context, productID string, quantity int) (models.Cart, error)
	UpdateCartItem(ctx context.Context, productID string, quantity int) (models.Cart, error)
	RemoveCartItem(ctx context.Context, productID string) (models.Cart, error)
	ClearCart(ctx context.Context) (models.Cart, error)
	FetchProduct(ctx context.Context, productID string) (*models.Product, error)
}

// CartStore tient l'état local du panier. Le serveur fait autorité :
// chaque mutation réussie REMPLACE l'état local par la réponse serveur,
// on ne patch jamais localement.
type CartStore struct {
	api       cartAPI
	cart      models.Cart
	source    CartSource
	listeners []func([]models.CartItem)
}

func NewCartStore(api cartAPI) *CartStore {
	return &CartStore{api: api, source: SourceEphemeral}
}

// OnChange enregistre un observateur notifié après chaque remplacement
// d'état (la couche de sélection s'y accroche pour purger les orphelins)
func (s *CartStore) OnChange(fn func([]models.CartItem)) {
	s.listeners = append(s.listeners, fn)
}

func (s *CartStore) replace(cart models.Cart, source CartSource) {
	s.cart = cart
	s.source = source
	for _, fn := range s.listeners {
		fn(s.cart.Items)
	}
}

// Items retourne les lignes du panier
func (s *CartStore) Items() []models.CartItem {
	return s.cart.Items
}

// TotalAmount retourne le total tel que calculé par le serveur
func (s *CartStore) TotalAmount() float64 {
	return s.cart.TotalAmount
}

// Source indique la provenance de l'état courant
func (s *CartStore) Source() CartSource {
	return s.source
}

// ItemCount retourne le nombre total d'unités (badge du header)
func (s *CartStore) ItemCount() int {
	n := 0
	for _, it := range s.cart.Items {
		n += it.Quantity
	}
	return n
}

// Initialize charge le panier persisté si une session existe, sinon pose
// un panier éphémère vide. Jamais d'erreur remontée : un échec réseau
// laisse simplement un panier vide affichable.
func (s *CartStore) Initialize(ctx context.Context) Result {
	if !s.api.Authenticated() {
		s.replace(models.Cart{Items: []models.CartItem{}}, SourceEphemeral)
		return ok()
	}

	cart, err := s.api.FetchCart(ctx)
	if err != nil {
		// fail-soft : l'utilisateur voit un panier vide, pas un écran d'erreur
		log.Println("⚠️ Chargement du panier échoué:", err)
		s.replace(models.Cart{Items: []models.CartItem{}}, SourceEphemeral)
		return fail(NetworkOrServerError, "Impossible de charger le panier")
	}

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	s.replace(cart, SourcePersisted)
	return ok()
}

// Logout efface l'état local et repasse en éphémère. Le panier persisté
// reste intact côté serveur.
func (s *CartStore) Logout() {
	s.replace(models.Cart{Items: []models.CartItem{}}, SourceEphemeral)
}

// AddItem ajoute un produit au panier. Si known est nil, la fiche est
// résolue côté serveur avant l'ajout pour vérifier existence et stock.
func (s *CartStore) AddItem(ctx context.Context, productID string, quantity int, known *models.Product) Result {
	if !s.api.Authenticated() {
		// échec local, aucun appel réseau
		return fail(NotAuthenticated, "Connectez-vous pour ajouter au panier")
	}
	if quantity < 1 {
		quantity = 1
	}

	if known == nil {
		p, err := s.api.FetchProduct(ctx, productID)
		if err != nil || p == nil {
			return fail(NetworkOrServerError, "Produit introuvable")
		}
		known = p
	}
	if known.Stock < 1 {
		return fail(ValidationFailed, "Produit en rupture de stock")
	}

	cart, err := s.api.AddCartItem(ctx, productID, quantity)
	if err != nil {
		return fail(NetworkOrServerError, serverMessage(err, "Impossible d'ajouter au panier"))
	}
	s.replace(cart, SourcePersisted)
	return ok()
}

// UpdateItemQuantity change la quantité d'une ligne. Quantité minimale 1 :
// la suppression est une opération distincte.
func (s *CartStore) UpdateItemQuantity(ctx context.Context, productID string, quantity int) Result {
	if !s.api.Authenticated() {
		return fail(NotAuthenticated, "Connectez-vous pour modifier le panier")
	}
	if quantity < 1 {
		return fail(ValidationFailed, "Quantité invalide")
	}

	cart, err := s.api.UpdateCartItem(ctx, productID, quantity)
	if err != nil {
		return fail(NetworkOrServerError, serverMessage(err, "Impossible de modifier la quantité"))
	}
	s.replace(cart, SourcePersisted)
	return ok()
}

// RemoveItem retire une ligne du panier
func (s *CartStore) RemoveItem(ctx context.Context, productID string) Result {
	if !s.api.Authenticated() {
		return fail(NotAuthenticated, "Connectez-vous pour modifier le panier")
	}

	cart, err := s.api.RemoveCartItem(ctx, productID)
	if err != nil {
		return fail(NetworkOrServerError, serverMessage(err, "Impossible de retirer l'article"))
	}
	s.replace(cart, SourcePersisted)
	return ok()
}

// Clear vide le panier persisté
func (s *CartStore) Clear(ctx context.Context) Result {
	if !s.api.Authenticated() {
		return fail(NotAuthenticated, "Connectez-vous pour modifier le panier")
	}
	if len(s.cart.Items) == 0 {
		return fail(EmptyState, "Le panier est déjà vide")
	}

	cart, err := s.api.ClearCart(ctx)
	if err != nil {
		return fail(NetworkOrServerError, serverMessage(err, "Impossible de vider le panier"))
	}
	s.replace(cart, SourcePersisted)
	return ok()
}

// serverMessage préfère le message renvoyé par l'API au message générique
func serverMessage(err error, fallback string) string {
	if e, okCast := err.(*apiError); okCast && e.Message != "" {
		return e.Message
	}
	return fallback
}
