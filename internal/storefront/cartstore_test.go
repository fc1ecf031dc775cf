package storefront

import (
	"context"
	"errors"
	"sync"
	"testing"

	"mani_electrical_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI rejoue les règles serveur (fusion des lignes, clamp au stock,
// panier autoritaire) sans réseau. Compte chaque appel pour vérifier
// qu'aucune requête ne part quand l'opération doit échouer localement.
type fakeAPI struct {
	mu       sync.RWMutex
	authed   bool
	cart     models.Cart
	products map[string]*models.Product
	calls    int
	failWith error
	upiQR    string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		authed:   true,
		cart:     models.Cart{Items: []models.CartItem{}},
		products: make(map[string]*models.Product),
	}
}

func (f *fakeAPI) addProduct(id, name string, price float64, stock int) {
	f.products[id] = &models.Product{Name: name, Price: price, Stock: stock}
}

func (f *fakeAPI) callCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls
}

func (f *fakeAPI) Authenticated() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.authed
}

func (f *fakeAPI) snapshot() models.Cart {
	items := make([]models.CartItem, len(f.cart.Items))
	copy(items, f.cart.Items)
	return models.Cart{Items: items, TotalAmount: models.Cart{Items: items}.Total()}
}

func (f *fakeAPI) FetchCart(ctx context.Context) (models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failWith != nil {
		return models.Cart{}, f.failWith
	}
	return f.snapshot(), nil
}

func (f *fakeAPI) AddCartItem(ctx context.Context, productID string, quantity int) (models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failWith != nil {
		return models.Cart{}, f.failWith
	}
	p, found := f.products[productID]
	if !found {
		return models.Cart{}, &apiError{Status: 404, Message: "Produit introuvable"}
	}
	for i, it := range f.cart.Items {
		if it.ProductID == productID {
			q := it.Quantity + quantity
			if q > p.Stock {
				q = p.Stock
			}
			f.cart.Items[i].Quantity = q
			return f.snapshot(), nil
		}
	}
	if quantity > p.Stock {
		quantity = p.Stock
	}
	f.cart.Items = append(f.cart.Items, models.CartItem{
		ProductID: productID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  quantity,
		Stock:     p.Stock,
	})
	return f.snapshot(), nil
}

func (f *fakeAPI) UpdateCartItem(ctx context.Context, productID string, quantity int) (models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failWith != nil {
		return models.Cart{}, f.failWith
	}
	for i, it := range f.cart.Items {
		if it.ProductID == productID {
			if p, found := f.products[productID]; found && quantity > p.Stock {
				quantity = p.Stock
			}
			f.cart.Items[i].Quantity = quantity
			return f.snapshot(), nil
		}
	}
	return models.Cart{}, &apiError{Status: 404, Message: "Article absent du panier"}
}

func (f *fakeAPI) RemoveCartItem(ctx context.Context, productID string) (models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failWith != nil {
		return models.Cart{}, f.failWith
	}
	kept := f.cart.Items[:0]
	for _, it := range f.cart.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	f.cart.Items = kept
	return f.snapshot(), nil
}

func (f *fakeAPI) ClearCart(ctx context.Context) (models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failWith != nil {
		return models.Cart{}, f.failWith
	}
	f.cart.Items = []models.CartItem{}
	return f.snapshot(), nil
}

func (f *fakeAPI) FetchProduct(ctx context.Context, productID string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, found := f.products[productID]
	if !found {
		return nil, &apiError{Status: 404, Message: "Produit introuvable"}
	}
	return p, nil
}

func (f *fakeAPI) SubmitOrder(ctx context.Context, draft OrderDraft) (OrderResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failWith != nil {
		return OrderResponse{}, f.failWith
	}
	return OrderResponse{Success: true, Message: "Commande enregistrée", OrderID: "ord-1", UPIQr: f.upiQR}, nil
}

func TestInitializeAnonymousIsEphemeral(t *testing.T) {
	api := newFakeAPI()
	api.authed = false
	store := NewCartStore(api)

	res := store.Initialize(context.Background())

	require.True(t, res.Success)
	assert.Equal(t, SourceEphemeral, store.Source())
	assert.Empty(t, store.Items())
	assert.Equal(t, 0, api.callCount(), "session anonyme : aucun appel réseau")
}

func TestInitializeLoadsPersistedCart(t *testing.T) {
	api := newFakeAPI()
	api.cart.Items = []models.CartItem{{ProductID: "p1", Name: "Multimètre", Price: 450, Quantity: 2}}
	store := NewCartStore(api)

	res := store.Initialize(context.Background())

	require.True(t, res.Success)
	assert.Equal(t, SourcePersisted, store.Source())
	require.Len(t, store.Items(), 1)
	assert.Equal(t, 900.0, store.TotalAmount())
}

func TestInitializeFailSoft(t *testing.T) {
	api := newFakeAPI()
	api.failWith = errors.New("connection refused")
	store := NewCartStore(api)

	res := store.Initialize(context.Background())

	// pas de panique, pas d'erreur fatale : panier vide affichable
	assert.False(t, res.Success)
	assert.Equal(t, NetworkOrServerError, res.Kind)
	assert.NotEmpty(t, res.Message)
	assert.Empty(t, store.Items())
}

func TestAddItemUnauthenticatedNoNetworkCall(t *testing.T) {
	api := newFakeAPI()
	api.authed = false
	store := NewCartStore(api)

	res := store.AddItem(context.Background(), "p1", 1, nil)

	require.False(t, res.Success)
	assert.Equal(t, NotAuthenticated, res.Kind)
	assert.Equal(t, 0, api.callCount())
}

func TestStateEqualsLastServerResponse(t *testing.T) {
	api := newFakeAPI()
	api.addProduct("p1", "Disjoncteur 16A", 120, 10)
	store := NewCartStore(api)
	require.True(t, store.Initialize(context.Background()).Success)

	res := store.AddItem(context.Background(), "p1", 3, nil)
	require.True(t, res.Success)

	// l'état local est exactement la réponse serveur, pas un patch local
	server, err := api.FetchCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, server.Items, store.Items())
	assert.Equal(t, server.TotalAmount, store.TotalAmount())
	assert.Equal(t, SourcePersisted, store.Source())
}

func TestAddItemClampedToStock(t *testing.T) {
	api := newFakeAPI()
	api.addProduct("p1", "Câble 2.5mm", 80, 4)
	store := NewCartStore(api)
	store.Initialize(context.Background())

	require.True(t, store.AddItem(context.Background(), "p1", 3, nil).Success)
	require.True(t, store.AddItem(context.Background(), "p1", 3, nil).Success)

	require.Len(t, store.Items(), 1)
	assert.Equal(t, 4, store.Items()[0].Quantity, "quantité plafonnée au stock")
}

func TestAddItemOutOfStock(t *testing.T) {
	api := newFakeAPI()
	api.addProduct("p1", "Rallonge 5m", 300, 0)
	store := NewCartStore(api)
	store.Initialize(context.Background())
	before := api.callCount()

	res := store.AddItem(context.Background(), "p1", 1, nil)

	require.False(t, res.Success)
	assert.Equal(t, ValidationFailed, res.Kind)
	// la fiche produit a été résolue, mais aucun ajout n'est parti
	assert.Equal(t, before+1, api.callCount())
}

func TestAddItemWithKnownProductSkipsLookup(t *testing.T) {
	api := newFakeAPI()
	api.addProduct("p1", "Interrupteur", 60, 5)
	store := NewCartStore(api)
	store.Initialize(context.Background())
	before := api.callCount()

	known := &models.Product{Name: "Interrupteur", Price: 60, Stock: 5}
	res := store.AddItem(context.Background(), "p1", 1, known)

	require.True(t, res.Success)
	assert.Equal(t, before+1, api.callCount(), "fiche déjà connue : un seul appel, l'ajout")
}

func TestUpdateQuantityZeroRejectedLocally(t *testing.T) {
	api := newFakeAPI()
	api.addProduct("p1", "Douille E27", 25, 10)
	store := NewCartStore(api)
	store.Initialize(context.Background())
	store.AddItem(context.Background(), "p1", 2, nil)
	before := api.callCount()

	res := store.UpdateItemQuantity(context.Background(), "p1", 0)

	require.False(t, res.Success)
	assert.Equal(t, ValidationFailed, res.Kind)
	assert.Equal(t, before, api.callCount(), "quantité 0 refusée sans appel réseau")
	assert.Equal(t, 2, store.Items()[0].Quantity)
}

func TestRemoveItemReplacesState(t *testing.T) {
	api := newFakeAPI()
	api.addProduct("p1", "Tournevis isolé", 150, 10)
	api.addProduct("p2", "Pince coupante", 220, 10)
	store := NewCartStore(api)
	store.Initialize(context.Background())
	store.AddItem(context.Background(), "p1", 1, nil)
	store.AddItem(context.Background(), "p2", 1, nil)

	res := store.RemoveItem(context.Background(), "p1")

	require.True(t, res.Success)
	require.Len(t, store.Items(), 1)
	assert.Equal(t, "p2", store.Items()[0].ProductID)
	assert.Equal(t, 220.0, store.TotalAmount())
}

func TestClearEmptyCartIsNoOp(t *testing.T) {
	api := newFakeAPI()
	store := NewCartStore(api)
	store.Initialize(context.Background())
	before := api.callCount()

	res := store.Clear(context.Background())

	require.False(t, res.Success)
	assert.Equal(t, EmptyState, res.Kind)
	assert.Equal(t, before, api.callCount())
}

func TestServerErrorKeepsLocalState(t *testing.T) {
	api := newFakeAPI()
	api.addProduct("p1", "Détecteur de tension", 90, 10)
	store := NewCartStore(api)
	store.Initialize(context.Background())
	store.AddItem(context.Background(), "p1", 2, nil)

	api.failWith = errors.New("timeout")
	res := store.UpdateItemQuantity(context.Background(), "p1", 5)

	require.False(t, res.Success)
	assert.Equal(t, NetworkOrServerError, res.Kind)
	// échec serveur : l'état local n'est pas touché
	assert.Equal(t, 2, store.Items()[0].Quantity)
}

func TestServerErrorMessageSurfaced(t *testing.T) {
	api := newFakeAPI()
	store := NewCartStore(api)
	store.Initialize(context.Background())

	res := store.AddItem(context.Background(), "inconnu", 1, nil)

	require.False(t, res.Success)
	assert.Equal(t, "Produit introuvable", res.Message)
}

func TestLogoutKeepsPersistedCartServerSide(t *testing.T) {
	api := newFakeAPI()
	api.addProduct("p1", "Projecteur LED 50W", 1200, 10)
	store := NewCartStore(api)
	store.Initialize(context.Background())
	store.AddItem(context.Background(), "p1", 2, nil)

	store.Logout()

	assert.Empty(t, store.Items(), "état local effacé au logout")
	assert.Equal(t, SourceEphemeral, store.Source())

	// reconnexion : le panier persisté est toujours là
	res := store.Initialize(context.Background())
	require.True(t, res.Success)
	require.Len(t, store.Items(), 1)
	assert.Equal(t, 2, store.Items()[0].Quantity)
	assert.Equal(t, SourcePersisted, store.Source())
}

func TestItemCountSumsQuantities(t *testing.T) {
	api := newFakeAPI()
	api.addProduct("p1", "Gaine ICTA", 35, 20)
	api.addProduct("p2", "Boîte d'encastrement", 15, 20)
	store := NewCartStore(api)
	store.Initialize(context.Background())
	store.AddItem(context.Background(), "p1", 3, nil)
	store.AddItem(context.Background(), "p2", 2, nil)

	assert.Equal(t, 5, store.ItemCount())
}
