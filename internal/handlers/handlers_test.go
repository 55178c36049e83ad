package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"scoop_storefront/internal/handlers"
	"scoop_storefront/internal/middleware"
	"scoop_storefront/internal/models"
	"scoop_storefront/internal/routes"
	"scoop_storefront/internal/services"
	"scoop_storefront/internal/session"
	"scoop_storefront/internal/store/storetest"
	"scoop_storefront/web"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router  *gin.Engine
	catalog *storetest.Catalog
	carts   *storetest.Carts
	users   *storetest.Users
	orders  *storetest.Orders
	redis   *miniredis.Miniredis
	cookie  *http.Cookie
}

var sessionSecret = []byte("0123456789abcdef0123456789abcdef")

// sessionID décode l'identifiant porté par le cookie de session courant
func (a *testApp) sessionID(t *testing.T) string {
	t.Helper()
	require.NotNil(t, a.cookie)
	var id string
	require.NoError(t, securecookie.DecodeMulti(session.Name, a.cookie.Value, &id, securecookie.CodecsFromPairs(sessionSecret)...))
	return id
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	app := &testApp{
		catalog: &storetest.Catalog{},
		carts:   &storetest.Carts{},
		users:   &storetest.Users{},
		orders:  &storetest.Orders{},
	}

	h := handlers.New(
		services.NewCatalogService(app.catalog, nil),
		services.NewCartService(app.catalog, app.carts),
		services.NewAccountService(app.users, bcrypt.MinCost),
		services.NewOrderService(app.carts, app.orders, nil),
		"http://shop.test",
	)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	app.redis = mr
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := session.NewRedisStore(client, sessionSecret)
	store.Options = session.Options(3600, false)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.Session(store))
	routes.RegisterRoutes(r, h, nil)
	app.router = r
	return app
}

// do envoie la requête avec le cookie courant et garde le dernier cookie de session reçu
func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name != session.Name {
			continue
		}
		if c.MaxAge < 0 {
			a.cookie = nil
		} else {
			a.cookie = c
		}
	}
	return rec
}

func (a *testApp) getJSON(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

// register crée un compte et retourne l'id de l'utilisateur connecté
func (a *testApp) register(t *testing.T, email string) string {
	t.Helper()
	rec := a.postForm("/register", url.Values{"name": {"Ana"}, "email": {email}, "password": {"s3cret"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/account", rec.Header().Get("Location"))

	user, err := a.users.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	return user.ID.Hex()
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.getJSON("/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListProductsFilters(t *testing.T) {
	app := newTestApp(t)
	app.catalog.Add(models.Product{Name: "Waffle Cone", Price: 4, Category: models.CategoryCone, Size: models.SizeSmall})
	app.catalog.Add(models.Product{Name: "Family Tub", Price: 12, Category: models.CategoryTub, Size: models.SizeLarge})
	app.catalog.Add(models.Product{Name: "Berry Parfait", Price: 6, Category: models.CategoryParfait})

	rec := app.getJSON("/api/products?categories=cone&categories=tub&maxPrice=10")

	require.Equal(t, http.StatusOK, rec.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Waffle Cone", products[0].Name)
}

func TestListProductsIgnoresBadMaxPriceAndReturnsArray(t *testing.T) {
	app := newTestApp(t)

	rec := app.getJSON("/api/products?maxPrice=abc")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestListProductsStoreFailure(t *testing.T) {
	app := newTestApp(t)
	app.catalog.Err = errors.New("boom")

	rec := app.getJSON("/api/products")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Error fetching products"}`, rec.Body.String())
}

func TestAddToCartRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	p := app.catalog.Add(models.Product{Name: "Waffle Cone", Price: 4})

	rec := app.sendJSON(http.MethodPost, "/api/cart/add", `{"productId":"`+p.ID.Hex()+`"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/login", decode(t, rec)["redirect"])
	count, _ := app.carts.Count(context.Background(), "")
	assert.Zero(t, count)
}

func TestAddToCartMergesAndCounts(t *testing.T) {
	app := newTestApp(t)
	p := app.catalog.Add(models.Product{Name: "Waffle Cone", Price: 4, Image: "/img/cone.png"})
	userID := app.register(t, "ana@example.com")

	body := `{"productId":"` + p.ID.Hex() + `","name":"Free","price":0}`
	app.sendJSON(http.MethodPost, "/api/cart/add", body)
	rec := app.sendJSON(http.MethodPost, "/api/cart/add", body)

	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, float64(2), out["newCount"])

	items, _ := app.carts.Items(context.Background(), userID)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 4.0, items[0].Price)
	assert.Equal(t, "Waffle Cone", items[0].Name)

	rec = app.getJSON("/api/cart/count")
	assert.Equal(t, float64(2), decode(t, rec)["count"])
}

func TestAddUnknownProduct(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "ana@example.com")

	rec := app.sendJSON(http.MethodPost, "/api/cart/add", `{"productId":"not-an-id"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartCountAnonymous(t *testing.T) {
	app := newTestApp(t)

	rec := app.getJSON("/api/cart/count")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"count":0}`, rec.Body.String())
}

func TestUpdateCartItem(t *testing.T) {
	app := newTestApp(t)
	p := app.catalog.Add(models.Product{Name: "Tub", Price: 5})
	userID := app.register(t, "ana@example.com")
	app.sendJSON(http.MethodPost, "/api/cart/add", `{"productId":"`+p.ID.Hex()+`"}`)

	items, _ := app.carts.Items(context.Background(), userID)
	require.Len(t, items, 1)
	path := "/api/cart/update/" + items[0].ID.Hex()

	rec := app.sendJSON(http.MethodPost, path, `{"action":"double"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.sendJSON(http.MethodPost, path, `{"action":"increment"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"reload":true}`, rec.Body.String())

	app.sendJSON(http.MethodPost, path, `{"action":"decrement"}`)
	app.sendJSON(http.MethodPost, path, `{"action":"decrement"}`)

	items, _ = app.carts.Items(context.Background(), userID)
	assert.Empty(t, items)

	rec = app.sendJSON(http.MethodPost, path, `{"action":"increment"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartItemOfAnotherUserIsNotFound(t *testing.T) {
	app := newTestApp(t)
	p := app.catalog.Add(models.Product{Name: "Tub", Price: 5})
	owner := app.register(t, "owner@example.com")
	app.sendJSON(http.MethodPost, "/api/cart/add", `{"productId":"`+p.ID.Hex()+`"}`)
	items, _ := app.carts.Items(context.Background(), owner)
	require.Len(t, items, 1)

	app.cookie = nil
	app.register(t, "other@example.com")

	rec := app.sendJSON(http.MethodDelete, "/api/cart/remove/"+items[0].ID.Hex(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	items, _ = app.carts.Items(context.Background(), owner)
	assert.Len(t, items, 1)
}

func TestApplyDiscount(t *testing.T) {
	app := newTestApp(t)
	p := app.catalog.Add(models.Product{Name: "Tub", Price: 5})
	app.register(t, "ana@example.com")
	app.sendJSON(http.MethodPost, "/api/cart/add", `{"productId":"`+p.ID.Hex()+`"}`)
	app.sendJSON(http.MethodPost, "/api/cart/add", `{"productId":"`+p.ID.Hex()+`"}`)

	rec := app.sendJSON(http.MethodPost, "/api/cart/apply-discount", `{"code":" ConE10 "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])

	summary := decode(t, app.getJSON("/api/cart"))["summary"].(map[string]any)
	assert.Equal(t, 10.0, summary["subtotal"])
	assert.Equal(t, 1.0, summary["discountAmount"])
	assert.Equal(t, 0.9, summary["tax"])
	assert.Equal(t, 9.9, summary["total"])

	rec = app.sendJSON(http.MethodPost, "/api/cart/apply-discount", `{"code":"FREE"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid discount code"}`, rec.Body.String())

	summary = decode(t, app.getJSON("/api/cart"))["summary"].(map[string]any)
	assert.Equal(t, 0.0, summary["discountAmount"])
	assert.Equal(t, 11.0, summary["total"])
}

const orderBody = `{"shipping":{"name":"Ana","address":"1 Main St","city":"Springfield"},
	"payment":{"cardNumber":"4242424242424242","expiry":"12/30","cvc":"123"}}`

func TestPlaceOrderEmptyCartKeepsDiscount(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "ana@example.com")
	app.sendJSON(http.MethodPost, "/api/cart/apply-discount", `{"code":"CONE10"}`)

	rec := app.sendJSON(http.MethodPost, "/api/order/place", orderBody)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Your cart is empty"}`, rec.Body.String())
	assert.Equal(t, "CONE10", decode(t, app.getJSON("/api/cart"))["discountCode"])
}

func TestPlaceOrderMalformedJSON(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "ana@example.com")

	rec := app.sendJSON(http.MethodPost, "/api/order/place", `{"shipping":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceOrderRequiresLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.sendJSON(http.MethodPost, "/api/order/place", orderBody)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlaceOrderClearsCartAndDiscount(t *testing.T) {
	app := newTestApp(t)
	p := app.catalog.Add(models.Product{Name: "Tub", Price: 5})
	userID := app.register(t, "ana@example.com")
	app.sendJSON(http.MethodPost, "/api/cart/add", `{"productId":"`+p.ID.Hex()+`"}`)
	app.sendJSON(http.MethodPost, "/api/cart/add", `{"productId":"`+p.ID.Hex()+`"}`)
	app.sendJSON(http.MethodPost, "/api/cart/apply-discount", `{"code":"cone10"}`)

	rec := app.sendJSON(http.MethodPost, "/api/order/place", orderBody)

	require.Equal(t, http.StatusOK, rec.Code)
	orderID, _ := decode(t, rec)["orderId"].(string)
	require.NotEmpty(t, orderID)

	order, err := app.orders.FindByNumber(context.Background(), userID, orderID)
	require.NoError(t, err)
	assert.Equal(t, 9.9, order.Payment.Total)
	assert.Equal(t, "4242", order.Payment.CardLast4)

	items, _ := app.carts.Items(context.Background(), userID)
	assert.Empty(t, items)
	assert.Equal(t, "", decode(t, app.getJSON("/api/cart"))["discountCode"])

	page := app.getJSON("/order/success/" + orderID)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), orderID)
	assert.Contains(t, page.Body.String(), "data:image/png;base64,")
}

func TestOrderSuccessOfAnotherUser(t *testing.T) {
	app := newTestApp(t)
	p := app.catalog.Add(models.Product{Name: "Tub", Price: 5})
	app.register(t, "ana@example.com")
	app.sendJSON(http.MethodPost, "/api/cart/add", `{"productId":"`+p.ID.Hex()+`"}`)
	orderID := decode(t, app.sendJSON(http.MethodPost, "/api/order/place", orderBody))["orderId"].(string)

	app.cookie = nil
	app.register(t, "bob@example.com")

	rec := app.getJSON("/order/success/" + orderID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "ana@example.com")
	app.cookie = nil

	rec := app.postForm("/register", url.Values{"name": {"Ana"}, "email": {"ANA@example.com"}, "password": {"x"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)
	assert.Equal(t, "register", loc.Query().Get("mode"))
	assert.NotEmpty(t, loc.Query().Get("error"))
}

func TestLoginAndLogout(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "ana@example.com")
	app.cookie = nil

	rec := app.postForm("/login", url.Values{"email": {"ana@example.com"}, "password": {"wrong"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error=Invalid+email+or+password", rec.Header().Get("Location"))

	rec = app.postForm("/login", url.Values{"email": {" Ana@Example.com "}, "password": {"s3cret"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/account", rec.Header().Get("Location"))

	rec = app.getJSON("/account")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ana@example.com")

	rec = app.getJSON("/account/logout")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = app.getJSON("/account")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestCartPageAnonymous(t *testing.T) {
	app := newTestApp(t)

	rec := app.getJSON("/cart")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your cart is empty")
	assert.Contains(t, rec.Body.String(), `href="/login"`)
}

func TestProductsPageStoreFailure(t *testing.T) {
	app := newTestApp(t)
	app.catalog.Err = errors.New("boom")

	rec := app.getJSON("/products")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error loading products", rec.Body.String())
}

func TestHomeShowsFeatured(t *testing.T) {
	app := newTestApp(t)
	app.catalog.Add(models.Product{Name: "Mint Swirl", Price: 3, IsFeatured: true})
	app.catalog.Add(models.Product{Name: "Plain Vanilla", Price: 2})

	rec := app.getJSON("/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mint Swirl")
	assert.NotContains(t, rec.Body.String(), "Plain Vanilla")
}

func TestLoginIssuesNewSessionID(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "ana@example.com")
	app.getJSON("/account/logout")

	app.getJSON("/api/cart/count")
	app.sendJSON(http.MethodPost, "/api/cart/apply-discount", `{"code":"CONE10"}`)
	anonID := app.sessionID(t)

	rec := app.postForm("/login", url.Values{"email": {"ana@example.com"}, "password": {"s3cret"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	loggedID := app.sessionID(t)
	assert.NotEqual(t, anonID, loggedID)
	assert.False(t, app.redis.Exists("session:"+anonID))
	assert.True(t, app.redis.Exists("session:"+loggedID))

	// la remise survit à la connexion
	assert.Equal(t, "CONE10", decode(t, app.getJSON("/api/cart"))["discountCode"])
}
