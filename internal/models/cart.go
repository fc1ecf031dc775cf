package models

// CartItem est une ligne de panier. Le prix est figé au moment de l'ajout
// (snapshot), le serveur reste la seule source de vérité.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Stock     int     `json:"stock"`
	ImageURL  string  `json:"image"`
}

// Cart est le panier tel qu'il est renvoyé au client : items + total dérivé.
type Cart struct {
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
}

// Total calcule le montant total du panier
func (c Cart) Total() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
