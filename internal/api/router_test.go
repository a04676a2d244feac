package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"event_marketplace/internal/domain"
	"event_marketplace/internal/middleware"
	"event_marketplace/internal/service"
	"event_marketplace/internal/session"
	"event_marketplace/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *service.Services) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.New(store.New(nil), nil, "vendor123")
	require.NoError(t, svc.Identity.EnsureAdmin(context.Background(), "admin", "admin123"))
	r, err := NewRouter(Deps{
		Services: svc,
		Sessions: session.NewMemoryStore(),
		Cookie:   CookieOptions{Secret: "test-secret"},
	})
	require.NoError(t, err)
	return r, svc
}

// browser keeps the session cookie between requests
type browser struct {
	t      *testing.T
	r      *gin.Engine
	cookie *http.Cookie
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.r.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name != middleware.CookieName {
			continue
		}
		if ck.Value == "" {
			b.cookie = nil
		} else {
			b.cookie = ck
		}
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder { return b.do(http.MethodGet, path, nil) }

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, form)
}

func (b *browser) login(role domain.Role, username, password string) {
	b.t.Helper()
	w := b.post("/"+role.String()+"/login", url.Values{"username": {username}, "password": {password}})
	require.Equal(b.t, http.StatusSeeOther, w.Code, w.Body.String())
	require.Equal(b.t, role.Home(), w.Header().Get("Location"))
	require.NotNil(b.t, b.cookie)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestProtectedRoutesRedirectAnonymous(t *testing.T) {
	r, _ := newTestRouter(t)
	b := &browser{t: t, r: r}
	for _, path := range []string{"/admin/dashboard", "/vendor/products", "/user/cart", "/user/orders"} {
		w := b.get(path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/", w.Header().Get("Location"), path)
	}
}

func TestOtherRoleIsSentToItsDashboard(t *testing.T) {
	r, _ := newTestRouter(t)
	b := &browser{t: t, r: r}
	b.login(domain.RoleAdmin, "admin", "admin123")

	w := b.get("/user/dashboard")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	w = b.post("/vendor/add-item", url.Values{"name": {"x"}, "price": {"1"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
}

func TestLoginChecksTheRoleTable(t *testing.T) {
	r, _ := newTestRouter(t)
	b := &browser{t: t, r: r}

	w := b.post("/user/login", url.Values{"username": {"admin"}, "password": {"admin123"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials!")
	assert.Nil(t, b.cookie)

	w = b.post("/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = b.post("/admin/login", url.Values{"username": {"admin"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupConflictAndLogout(t *testing.T) {
	r, _ := newTestRouter(t)
	b := &browser{t: t, r: r}

	form := url.Values{"username": {"u1"}, "password": {"pw"}, "name": {"User One"}}
	w := b.post("/user/signup", form)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = b.post("/vendor/signup", url.Values{"username": {"u1"}, "name": {"Shop"}})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = b.post("/user/signup", url.Values{"username": {"u2"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	b.login(domain.RoleUser, "u1", "pw")
	assert.Equal(t, http.StatusOK, b.get("/user/dashboard").Code)

	w = b.get("/logout")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Nil(t, b.cookie)
	assert.Equal(t, "/", b.get("/user/dashboard").Header().Get("Location"))
}

func TestBackNavigation(t *testing.T) {
	r, svc := newTestRouter(t)
	_, err := svc.Identity.SignupUser(context.Background(), service.Signup{Username: "u1", Password: "pw", Name: "u"})
	require.NoError(t, err)

	anon := &browser{t: t, r: r}
	assert.Equal(t, "/", anon.get("/back").Header().Get("Location"))

	b := &browser{t: t, r: r}
	b.login(domain.RoleUser, "u1", "pw")
	require.Equal(t, http.StatusOK, b.get("/user/dashboard").Code)
	assert.Equal(t, "/", b.get("/back").Header().Get("Location"))

	require.Equal(t, http.StatusOK, b.get("/user/orders").Code)
	assert.Equal(t, "/user/dashboard", b.get("/back").Header().Get("Location"))
	assert.Equal(t, "/", b.get("/back").Header().Get("Location"))
}

func TestMarketplaceFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	// vendor registers and an admin approves
	anon := &browser{t: t, r: r}
	w := anon.post("/vendor/signup", url.Values{"username": {"v1"}, "password": {"ignored"}, "name": {"Vendor One"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/vendor/login", w.Header().Get("Location"))

	admin := &browser{t: t, r: r}
	admin.login(domain.RoleAdmin, "admin", "admin123")
	var queue struct {
		Notifications []domain.AdminNotification `json:"notifications"`
		UnreadCount   int                        `json:"unread_count"`
	}
	decode(t, admin.get("/admin/notifications"), &queue)
	require.Len(t, queue.Notifications, 1)
	assert.Equal(t, 1, queue.UnreadCount)
	id := strconv.FormatUint(queue.Notifications[0].ID, 10)
	w = admin.post("/admin/notifications", url.Values{"action": {"approve_vendor"}, "notification_id": {id}})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	// vendor lists a product
	vendor := &browser{t: t, r: r}
	vendor.login(domain.RoleVendor, "v1", "vendor123")
	w = vendor.post("/vendor/add-item", url.Values{"name": {"Chair"}, "price": {"100"}, "stock": {"5"}})
	assert.Equal(t, "/vendor/products", w.Header().Get("Location"))
	var products struct {
		Products []domain.Product `json:"products"`
	}
	decode(t, vendor.get("/vendor/products"), &products)
	require.Len(t, products.Products, 1)
	pid := strconv.FormatUint(products.Products[0].ID, 10)

	// user over-orders, which places nothing
	user := &browser{t: t, r: r}
	require.Equal(t, http.StatusSeeOther, user.post("/user/signup", url.Values{"username": {"u1"}, "password": {"pw"}, "name": {"U"}}).Code)
	user.login(domain.RoleUser, "u1", "pw")
	user.post("/user/add-to-cart", url.Values{"product_id": {pid}, "quantity": {"3"}})
	user.post("/user/cart", url.Values{"action": {"update"}, "product_id": {pid}, "quantity": {"10"}})
	w = user.post("/user/cart", url.Values{"action": {"checkout"}})
	assert.Equal(t, "/user/cart", w.Header().Get("Location"))

	var orders struct {
		Orders []domain.Order `json:"orders"`
	}
	decode(t, user.get("/user/orders"), &orders)
	assert.Empty(t, orders.Orders)

	// exactly the stock succeeds
	user.post("/user/cart", url.Values{"action": {"update"}, "product_id": {pid}, "quantity": {"5"}})
	w = user.post("/user/cart", url.Values{"action": {"checkout"}})
	assert.Equal(t, "/user/orders", w.Header().Get("Location"))
	decode(t, user.get("/user/orders"), &orders)
	require.Len(t, orders.Orders, 1)
	assert.True(t, decimal.NewFromInt(500).Equal(orders.Orders[0].Total))

	var cart struct {
		Items []domain.CartItem `json:"cart_items"`
	}
	decode(t, user.get("/user/cart"), &cart)
	assert.Empty(t, cart.Items)

	var ledger service.VendorLedger
	decode(t, vendor.get("/vendor/transactions"), &ledger)
	require.Len(t, ledger.Sales, 1)
	assert.True(t, decimal.NewFromInt(500).Equal(ledger.Earnings))

	var notes struct {
		UnreadCount int `json:"unread_count"`
	}
	decode(t, vendor.get("/vendor/notifications"), &notes)
	assert.Equal(t, 1, notes.UnreadCount)

	// vendor restocks the sold out product
	w = vendor.post("/vendor/add-stock", url.Values{"product_id": {pid}, "add_qty": {"4"}})
	assert.Equal(t, "/vendor/products", w.Header().Get("Location"))
	decode(t, vendor.get("/vendor/products"), &products)
	require.Len(t, products.Products, 1)
	assert.Equal(t, 4, products.Products[0].Stock)

	// a restock from a user session or without add_qty changes nothing
	user.post("/vendor/add-stock", url.Values{"product_id": {pid}, "add_qty": {"4"}})
	vendor.post("/vendor/add-stock", url.Values{"product_id": {pid}, "quantity": {"4"}})
	decode(t, vendor.get("/vendor/products"), &products)
	assert.Equal(t, 4, products.Products[0].Stock)
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	b := &browser{t: t, r: r}
	w := b.get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
