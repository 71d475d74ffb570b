package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/duvallglobal/getlyt/internal/handlers"
	"github.com/duvallglobal/getlyt/internal/middleware"
	"github.com/duvallglobal/getlyt/internal/models"
	"github.com/duvallglobal/getlyt/internal/pricing"
	"github.com/duvallglobal/getlyt/internal/repositories"
	"github.com/duvallglobal/getlyt/internal/services"
)

type testEnv struct {
	app         *fiber.App
	userRepo    *repositories.MockUserRepository
	productRepo *repositories.MockProductRepository
	orderRepo   *repositories.MockOrderRepository
}

// newTestEnv wires the API against in-memory repositories, mirroring the
// production route layout.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userRepo := repositories.NewMockUserRepository()
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()
	orderRepo := repositories.NewMockOrderRepository()

	authService := services.NewAuthService(userRepo, "integration-test-secret")
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	checkoutService := services.NewCheckoutService(cartRepo, productRepo, orderRepo, nil)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1)

	authed := apiV1.Group("", middleware.AuthRequired(authService))
	handlers.NewCartHandler(cartService).RegisterRoutes(authed)
	handlers.NewCheckoutHandler(checkoutService).RegisterRoutes(authed)

	admin := apiV1.Group("", middleware.AuthRequired(authService), middleware.AdminRequired())
	handlers.NewAdminHandler(productService, checkoutService, nil).RegisterRoutes(admin)

	return &testEnv{
		app:         app,
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req)
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *testEnv) registerAndLogin(t *testing.T, username string) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = e.request(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"username": username,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)
	return body.Token
}

// loginAsAdmin seeds an admin user directly and logs in through the API.
func (e *testEnv) loginAsAdmin(t *testing.T) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-secret"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	assert.NoError(t, e.userRepo.Create(&models.User{
		Username: "storeadmin",
		Email:    "admin@example.com",
		Password: string(hash),
		Role:     models.RoleAdmin,
	}))

	resp := e.request(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"username": "storeadmin",
		"password": "admin-secret",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	return body.Token
}

func (e *testEnv) seedProduct(t *testing.T, id, price string, stock int) {
	t.Helper()
	assert.NoError(t, e.productRepo.Create(&models.Product{
		ID:    id,
		Name:  "Tee " + id,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}))
}

type cartView struct {
	Cart    models.Cart     `json:"cart"`
	Summary pricing.Summary `json:"summary"`
}

func TestAuthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"username": "maya",
		"email":    "maya@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		User models.User `json:"user"`
	}
	decodeBody(t, resp, &created)
	// Requested roles are ignored; everyone registers as a customer.
	assert.Equal(t, models.RoleCustomer, created.User.Role)

	// Duplicate username conflicts.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"username": "maya",
		"email":    "other@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Short password fails validation.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"username": "newuser",
		"email":    "new@example.com",
		"password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"username": "maya",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCartRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err := env.app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductListing(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "tee-1", "85.00", 10)
	env.seedProduct(t, "tee-2", "95.00", 10)

	// The catalog is public.
	resp := env.request(t, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	decodeBody(t, resp, &products)
	assert.Len(t, products, 2)

	resp = env.request(t, http.MethodGet, "/api/v1/products?min_price=90&sort=price-desc", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &products)
	assert.Len(t, products, 1)
	assert.Equal(t, "tee-2", products[0].ID)

	resp = env.request(t, http.MethodGet, "/api/v1/products/tee-1", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/products/ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "tee-1", "85.00", 10)
	env.seedProduct(t, "tee-2", "95.00", 10)
	token := env.registerAndLogin(t, "shopper")

	resp := env.request(t, http.MethodPost, "/api/v1/cart/items", token, fiber.Map{
		"product_id": "tee-1", "color": "Black", "size": "M", "quantity": 1,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/v1/cart/items", token, fiber.Map{
		"product_id": "tee-2", "color": "Navy", "size": "L", "quantity": 2,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var view cartView
	decodeBody(t, resp, &view)
	assert.Len(t, view.Cart.Items, 2)
	assert.True(t, view.Summary.Subtotal.Equal(decimal.RequireFromString("275.00")))
	// Above the free-shipping threshold.
	assert.True(t, view.Summary.Shipping.IsZero())
	assert.True(t, view.Summary.TotalWithDiscount.Equal(decimal.RequireFromString("275.00")))

	// Unknown promo codes are rejected.
	resp = env.request(t, http.MethodPost, "/api/v1/cart/promo", token, fiber.Map{"code": "SAVE20"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/v1/cart/promo", token, fiber.Map{"code": "WELCOME10"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &view)
	assert.True(t, view.Summary.Discount.Equal(decimal.RequireFromString("27.50")))
	assert.True(t, view.Summary.TotalWithDiscount.Equal(decimal.RequireFromString("247.50")))

	// Applying a second promo while one is active conflicts.
	resp = env.request(t, http.MethodPost, "/api/v1/cart/promo", token, fiber.Map{"code": "WELCOME10"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, "/api/v1/cart/promo", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &view)
	assert.Empty(t, view.Cart.PromoCode)

	// Out-of-stock additions conflict and leave the cart alone.
	env.seedProduct(t, "sold-out", "40.00", 0)
	resp = env.request(t, http.MethodPost, "/api/v1/cart/items", token, fiber.Map{
		"product_id": "sold-out", "quantity": 1,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/cart", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &view)
	assert.Len(t, view.Cart.Items, 2)
}

func TestCheckoutFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "tee-1", "90.00", 5)
	token := env.registerAndLogin(t, "buyer")

	// Checking out an empty cart is rejected.
	resp := env.request(t, http.MethodPost, "/api/v1/checkout", token, fiber.Map{})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/v1/cart/items", token, fiber.Map{
		"product_id": "tee-1", "quantity": 2,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/v1/checkout", token, fiber.Map{
		"shipping_method": "express",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	decodeBody(t, resp, &order)
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("180.00")))
	assert.True(t, order.Shipping.Equal(decimal.RequireFromString("15.00")))
	assert.True(t, order.Tax.Equal(decimal.RequireFromString("14.40")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("209.40")))
	assert.Equal(t, models.OrderStatusPending, order.Status)

	resp = env.request(t, http.MethodGet, "/api/v1/orders", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	decodeBody(t, resp, &orders)
	assert.Len(t, orders, 1)

	resp = env.request(t, http.MethodGet, "/api/v1/orders/"+order.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Another user's token cannot read the order.
	otherToken := env.registerAndLogin(t, "snoop")
	resp = env.request(t, http.MethodGet, "/api/v1/orders/"+order.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminEndpoints(t *testing.T) {
	env := newTestEnv(t)
	customerToken := env.registerAndLogin(t, "customer")
	adminToken := env.loginAsAdmin(t)

	newProduct := fiber.Map{
		"name":     "Statement Tee",
		"price":    "85.00",
		"category": "tees",
		"stock":    10,
	}

	// Customers are kept out of the admin surface.
	resp := env.request(t, http.MethodPost, "/api/v1/admin/products", customerToken, newProduct)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/v1/admin/products", adminToken, newProduct)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var product models.Product
	decodeBody(t, resp, &product)
	assert.NotEmpty(t, product.ID)

	resp = env.request(t, http.MethodPut, "/api/v1/admin/products/"+product.ID, adminToken, fiber.Map{
		"name":  "Statement Tee",
		"price": "95.00",
		"stock": 8,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/products/"+product.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &product)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("95.00")))

	resp = env.request(t, http.MethodDelete, "/api/v1/admin/products/"+product.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/v1/products/"+product.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminOrderStatusAndAnalytics(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "tee-1", "100.00", 10)
	adminToken := env.loginAsAdmin(t)

	buyerToken := env.registerAndLogin(t, "buyer")
	resp := env.request(t, http.MethodPost, "/api/v1/cart/items", buyerToken, fiber.Map{
		"product_id": "tee-1", "quantity": 2,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.request(t, http.MethodPost, "/api/v1/checkout", buyerToken, fiber.Map{})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)

	statusPath := fmt.Sprintf("/api/v1/admin/orders/%s/status", order.ID)

	// pending -> shipped skips processing and is rejected.
	resp = env.request(t, http.MethodPatch, statusPath, adminToken, fiber.Map{"status": "shipped"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = env.request(t, http.MethodPatch, statusPath, adminToken, fiber.Map{"status": "processing"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodPatch, statusPath, adminToken, fiber.Map{
		"status":          "shipped",
		"tracking_number": "TRK-123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	stored, err := env.orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, stored.Status)

	resp = env.request(t, http.MethodGet, "/api/v1/admin/analytics", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var summary repositories.SalesSummary
	decodeBody(t, resp, &summary)
	assert.Equal(t, int64(1), summary.OrderCount)
	// 200 subtotal, free shipping, 16 tax.
	assert.True(t, summary.Revenue.Equal(decimal.RequireFromString("216.00")))
}
