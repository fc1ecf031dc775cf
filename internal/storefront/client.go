// Package storefront est la bibliothèque cliente du front Mani Electrical :
// panier persisté côté serveur, sélection locale pour le checkout et
// soumission de commande. Les stores sont injectés explicitement, jamais
// des singletons ambiants.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mani_electrical_back_end/internal/models"
)

// Toutes les requêtes sont bornées par un timeout fixe. Pas de retry,
// pas d'annulation : un timeout est traité comme un échec.
const RequestTimeout = 15 * time.Second

// FailureKind classe les échecs côté client
type FailureKind int

const (
	FailureNone FailureKind = iota
	// NotAuthenticated : l'opération exige une session, aucun appel réseau émis
	NotAuthenticated
	// ValidationFailed : champ invalide détecté localement, aucun appel réseau émis
	ValidationFailed
	// NetworkOrServerError : requête émise, réponse non-2xx ou timeout
	NetworkOrServerError
	// EmptyState : panier ou sélection vide, no-op
	EmptyState
)

// Result est le résultat structuré des opérations : jamais de panique,
// l'appelant affiche Message tel quel
type Result struct {
	Success bool
	Kind    FailureKind
	Message string
	Field   string // champ fautif pour ValidationFailed
}

func ok() Result {
	return Result{Success: true}
}

func fail(kind FailureKind, message string) Result {
	return Result{Kind: kind, Message: message}
}

// Client est le client REST de l'API boutique. Le token bearer est posé
// au login et effacé au logout ; le panier persisté, lui, reste côté
// serveur.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: RequestTimeout},
	}
}

// SetToken pose le credential après login
func (c *Client) SetToken(token string) {
	c.token = token
}

// ClearToken efface le credential (logout). Le panier persisté n'est
// pas touché : une reconnexion le retrouvera.
func (c *Client) ClearToken() {
	c.token = ""
}

// Authenticated indique si un credential est présent. Sans credential,
// aucune mutation panier n'émet d'appel réseau.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Le message serveur est remonté tel quel à l'utilisateur
		var e struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		message := "Erreur serveur"
		if json.Unmarshal(data, &e) == nil {
			if e.Error != "" {
				message = e.Error
			} else if e.Message != "" {
				message = e.Message
			}
		}
		return &apiError{Status: resp.StatusCode, Message: message}
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

type cartEnvelope struct {
	Cart    models.Cart `json:"cart"`
	Message string      `json:"message"`
}

// FetchCart récupère le panier persisté
func (c *Client) FetchCart(ctx context.Context) (models.Cart, error) {
	var env cartEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &env); err != nil {
		return models.Cart{}, err
	}
	return env.Cart, nil
}

// AddCartItem persiste un ajout et retourne le panier serveur
func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int) (models.Cart, error) {
	body := map[string]interface{}{"productId": productID, "quantity": quantity}
	var env cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/cart/add", body, &env); err != nil {
		return models.Cart{}, err
	}
	return env.Cart, nil
}

// UpdateCartItem persiste un changement de quantité
func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int) (models.Cart, error) {
	body := map[string]interface{}{"productId": productID, "quantity": quantity}
	var env cartEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/cart/update", body, &env); err != nil {
		return models.Cart{}, err
	}
	return env.Cart, nil
}

// RemoveCartItem persiste une suppression de ligne
func (c *Client) RemoveCartItem(ctx context.Context, productID string) (models.Cart, error) {
	var env cartEnvelope
	if err := c.do(ctx, http.MethodDelete, "/api/cart/remove/"+productID, nil, &env); err != nil {
		return models.Cart{}, err
	}
	return env.Cart, nil
}

// ClearCart persiste un panier vide
func (c *Client) ClearCart(ctx context.Context) (models.Cart, error) {
	var env cartEnvelope
	if err := c.do(ctx, http.MethodDelete, "/api/cart/clear", nil, &env); err != nil {
		return models.Cart{}, err
	}
	return env.Cart, nil
}

// FetchProduct récupère une fiche produit (backfill à l'ajout panier)
func (c *Client) FetchProduct(ctx context.Context, productID string) (*models.Product, error) {
	var env struct {
		Product *models.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products/"+productID, nil, &env); err != nil {
		return nil, err
	}
	return env.Product, nil
}

// OrderResponse est la confirmation renvoyée par POST /api/orders
type OrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
	UPIQr   string `json:"upiQr"`
}

// SubmitOrder envoie l'OrderDraft au backend
func (c *Client) SubmitOrder(ctx context.Context, draft OrderDraft) (OrderResponse, error) {
	var resp OrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", draft, &resp); err != nil {
		return OrderResponse{}, err
	}
	return resp, nil
}
