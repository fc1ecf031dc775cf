package storefront

import (
	"mani_electrical_back_end/internal/models"
)

// Selection est l'ensemble des lignes cochées pour le checkout. État
// purement local, jamais persisté : un rechargement repart de zéro.
type Selection struct {
	ids map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Bind accroche la sélection au store : tout changement du panier purge
// immédiatement les identifiants qui n'y figurent plus
func (s *Selection) Bind(store *CartStore) {
	store.OnChange(s.Reconcile)
}

// Toggle inverse l'état d'une ligne. Involutive : deux appels successifs
// restaurent l'état initial.
func (s *Selection) Toggle(productID string) {
	if _, selected := s.ids[productID]; selected {
		delete(s.ids, productID)
	} else {
		s.ids[productID] = struct{}{}
	}
}

// SelectAll coche toutes les lignes du panier courant
func (s *Selection) SelectAll(items []models.CartItem) {
	s.ids = make(map[string]struct{}, len(items))
	for _, it := range items {
		s.ids[it.ProductID] = struct{}{}
	}
}

// ClearAll décoche tout
func (s *Selection) ClearAll() {
	s.ids = make(map[string]struct{})
}

// Reconcile purge les identifiants absents du panier. Une ligne retirée
// ne peut jamais rester sélectionnée.
func (s *Selection) Reconcile(items []models.CartItem) {
	present := make(map[string]struct{}, len(items))
	for _, it := range items {
		present[it.ProductID] = struct{}{}
	}
	for id := range s.ids {
		if _, found := present[id]; !found {
			delete(s.ids, id)
		}
	}
}

// Has indique si la ligne est cochée
func (s *Selection) Has(productID string) bool {
	_, selected := s.ids[productID]
	return selected
}

// Count retourne le nombre de lignes cochées
func (s *Selection) Count() int {
	return len(s.ids)
}

// SelectedItems retourne les lignes du panier actuellement cochées,
// dans l'ordre du panier
func (s *Selection) SelectedItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, 0, len(s.ids))
	for _, it := range items {
		if s.Has(it.ProductID) {
			out = append(out, it)
		}
	}
	return out
}

// Subtotal calcule le sous-total des lignes cochées (prix x quantité)
func (s *Selection) Subtotal(items []models.CartItem) float64 {
	total := 0.0
	for _, it := range s.SelectedItems(items) {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// GiftEligible indique si le sous-total sélectionné atteint le seuil du
// cadeau promotionnel. Le serveur refait le calcul à la commande : ceci
// ne sert qu'à l'affichage.
func (s *Selection) GiftEligible(items []models.CartItem) bool {
	return models.GiftEligible(s.Subtotal(items))
}

// ShippingFee calcule les frais de port affichés pour la sélection
func (s *Selection) ShippingFee(items []models.CartItem) float64 {
	return models.ShippingFeeFor(s.Subtotal(items))
}
