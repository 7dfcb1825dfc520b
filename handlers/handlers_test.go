package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"grambazaar/database/repository/memstore"
	"grambazaar/handlers"
	"grambazaar/models"
	"grambazaar/routes"
	"grambazaar/services/admin"
	"grambazaar/services/booking"
	"grambazaar/services/cart"
	"grambazaar/services/content"
	"grambazaar/services/payment"
	"grambazaar/services/product"
	"grambazaar/services/storage"
	"grambazaar/services/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router  *gin.Engine
	users   *user.DefaultUserService
	gateway *payment.FakeGateway
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := memstore.NewUserRepo()
	products := memstore.NewProductRepo()
	carts := memstore.NewCartRepo()
	bookings := memstore.NewBookingRepo()
	news := memstore.NewNewsRepo()
	gw := payment.NewFakeGateway()

	require.NoError(t, products.Create(context.Background(), &models.Product{ID: "p1", Name: "Millet", Price: 50}))
	require.NoError(t, products.Create(context.Background(), &models.Product{ID: "p2", Name: "Honey", Price: 30.5}))

	cartSvc := cart.NewCartService(carts, products)
	bookingSvc := &booking.DefaultBookingService{
		Bookings: bookings,
		Products: products,
		Users:    users,
		Gateway:  gw,
		BaseURL:  "https://shop.example",
	}
	userSvc := &user.DefaultUserService{Repo: users, Bookings: bookingSvc, Carts: cartSvc}
	contentSvc := &content.DefaultContentService{
		Services: memstore.NewServiceRepo(),
		News:     news,
		Messages: memstore.NewMessageRepo(),
		Settings: memstore.NewSettingRepo(),
		Images:   storage.NoopImageStore{},
	}
	adminSvc := &admin.DefaultAdminService{Products: products, Users: users, Bookings: bookings, News: news}

	hb := &handlers.HandlerBundle{
		Auth:           userSvc,
		AuthHandler:    handlers.NewAuthHandler(userSvc),
		CartHandler:    handlers.NewCartHandler(cartSvc),
		BookingHandler: handlers.NewBookingHandler(bookingSvc, payment.NewPaymentService(gw, 0, "inr")),
		CatalogHandler: handlers.NewCatalogHandler(product.NewProductService(products, storage.NoopImageStore{}), contentSvc),
		AdminHandler:   handlers.NewAdminHandler(adminSvc, userSvc, bookingSvc),
	}
	r := gin.New()
	routes.RegisterRoutes(r, hb)
	return &testServer{router: r, users: userSvc, gateway: gw}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// signup registers and logs in, returning the session cookie.
func (s *testServer) signup(t *testing.T, name, email string) *http.Cookie {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/register", gin.H{
		"name": name, "email": email, "phone": "9876543210",
		"password": "secret123", "confirmPassword": "secret123",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return s.login(t, email)
}

func (s *testServer) login(t *testing.T, email string) *http.Cookie {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/login", gin.H{"email": email, "password": "secret123"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" && c.Value != "" {
			assert.True(t, c.HttpOnly)
			return c
		}
	}
	t.Fatalf("login did not set a session cookie")
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestRegister_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/register", gin.H{
		"name": "A", "email": "not-an-email", "phone": "123",
		"password": "secret123", "confirmPassword": "different",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.signup(t, "Asha Devi", "asha@example.com")
	w = s.do(t, http.MethodPost, "/api/register", gin.H{
		"name": "Asha Devi", "email": "ASHA@example.com", "phone": "9876543210",
		"password": "secret123", "confirmPassword": "secret123",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")
}

func TestMe_ReportsSessionState(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/me", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isAuthenticated":false,"user":null}`, w.Body.String())

	cookie := s.signup(t, "Asha Devi", "asha@example.com")
	w = s.do(t, http.MethodGet, "/api/me", nil, cookie)
	var me struct {
		IsAuthenticated bool            `json:"isAuthenticated"`
		User            models.Identity `json:"user"`
	}
	decode(t, w, &me)
	assert.True(t, me.IsAuthenticated)
	assert.Equal(t, models.RoleUser, me.User.Role)
}

func TestShopRoutes_RequireLogin(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/cart", "/api/bookings", "/api/users/profile"} {
		w := s.do(t, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestServer(t)
	cookie := s.signup(t, "Asha Devi", "asha@example.com")

	w := s.do(t, http.MethodPost, "/api/cart", gin.H{"items": []gin.H{{"productId": "p1", "quantity": 2}}}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var ct models.Cart
	decode(t, w, &ct)
	require.Len(t, ct.Items, 1)
	assert.Equal(t, "Millet", ct.Items[0].Name)

	// The client-sent total is ignored; the server derives it from the catalog.
	w = s.do(t, http.MethodPost, "/api/bookings", gin.H{
		"items":       []gin.H{{"productId": "p1", "quantity": 2}, {"productId": "p2", "quantity": 1}},
		"totalAmount": 1,
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created struct {
		Message string         `json:"message"`
		Booking models.Booking `json:"booking"`
	}
	decode(t, w, &created)
	assert.Equal(t, "Booking successful", created.Message)
	assert.Equal(t, 130.5, created.Booking.TotalAmount)
	assert.Equal(t, models.BookingPending, created.Booking.Status)
	bookingID := created.Booking.ID

	w = s.do(t, http.MethodPost, "/api/payment-intent", gin.H{"amount": 13050, "currency": "INR", "bookingId": bookingID}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var intent models.PaymentIntentResponse
	decode(t, w, &intent)
	assert.True(t, strings.HasPrefix(intent.PaymentIntentID, "pi_"))
	assert.NotEmpty(t, intent.ClientSecret)
	require.Len(t, s.gateway.Intents, 1)
	assert.Equal(t, int64(13050), s.gateway.Intents[0].Amount)
	assert.Equal(t, "inr", s.gateway.Intents[0].Currency)

	// Amounts are whole minor units.
	w = s.do(t, http.MethodPost, "/api/payment-intent", gin.H{"amount": 29.6}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"amount"`)
	assert.Len(t, s.gateway.Intents, 1)

	w = s.do(t, http.MethodPost, "/api/bookings/"+bookingID+"/checkout-session", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sess models.CheckoutSessionResponse
	decode(t, w, &sess)
	require.NotEmpty(t, sess.SessionID)

	confirm := gin.H{"session_id": sess.SessionID, "bookingId": bookingID}
	w = s.do(t, http.MethodPost, "/api/payment-confirm", confirm, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Payment not completed")

	s.gateway.MarkPaid(sess.SessionID)
	w = s.do(t, http.MethodPost, "/api/payment-confirm", confirm, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res booking.ConfirmResult
	decode(t, w, &res)
	assert.True(t, res.Success)
	assert.Equal(t, models.PaymentCompleted, res.Booking.PaymentStatus)
	assert.Equal(t, models.BookingApproved, res.Booking.Status)

	// Clear the cart once the order is paid.
	w = s.do(t, http.MethodPost, "/api/cart", gin.H{"items": []gin.H{{"productId": "p2"}}}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(t, http.MethodDelete, "/api/cart/p2", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var removed struct {
		Message string      `json:"message"`
		Cart    models.Cart `json:"cart"`
	}
	decode(t, w, &removed)
	assert.Equal(t, "Item removed from cart", removed.Message)
	require.Len(t, removed.Cart.Items, 1)
	assert.Equal(t, "p1", removed.Cart.Items[0].ProductID)

	w = s.do(t, http.MethodDelete, "/api/cart/p2", nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	for i := 0; i < 2; i++ {
		w = s.do(t, http.MethodDelete, "/api/cart", nil, cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"message":"Cart cleared successfully","items":[]}`, w.Body.String())
	}
	w = s.do(t, http.MethodGet, "/api/cart", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &ct)
	assert.Empty(t, ct.Items)

	// Another customer cannot see the booking.
	other := s.signup(t, "Ravi Kumar", "ravi@example.com")
	w = s.do(t, http.MethodGet, "/api/bookings/"+bookingID, nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	customer := s.signup(t, "Asha Devi", "asha@example.com")
	s.signup(t, "Owner", "owner@example.com")

	w := s.do(t, http.MethodGet, "/api/admin/overview", nil, customer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	_, err := s.users.PromoteByEmail(context.Background(), "owner@example.com")
	require.NoError(t, err)
	adminCookie := s.login(t, "owner@example.com")

	w = s.do(t, http.MethodPost, "/api/bookings", gin.H{"items": []gin.H{{"productId": "p2", "quantity": 2}}}, customer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/admin/overview", nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"bookings":1`)

	w = s.do(t, http.MethodGet, "/api/admin/bookings/export?status=Pending", nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.Equal(t, `attachment; filename="bookings.csv"`, w.Header().Get("Content-Disposition"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "2 × Honey (₹30.5)")
	assert.Contains(t, lines[1], "asha@example.com")

	w = s.do(t, http.MethodGet, "/api/admin/bookings/export?status=Bogus", nil, adminCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
