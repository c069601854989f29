package http_test

import (
	"net/http"
	"strings"
	"testing"

	handler "github.com/teran1416/InventarioApp/internal/http/handlers"
	"github.com/teran1416/InventarioApp/internal/models"
)

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(http.MethodGet, "/health", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp map[string]string
	decode(t, w, &resp)
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %v", resp)
	}
}

func TestProducts_RequireToken(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"missing", "", "Not authorized, no token"},
		{"invalid", "garbage", "Not authorized, token failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do(http.MethodGet, "/products", tt.token, nil)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			var resp handler.ErrorResponse
			decode(t, w, &resp)
			if resp.Message != tt.want {
				t.Errorf("expected message %q, got %q", tt.want, resp.Message)
			}
		})
	}
}

func TestCreateProductHandler_Valid(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "ana@example.com")

	w := e.do(http.MethodPost, "/products", token, handler.CreateProductRequest{Name: "Laptop", Price: 1500.0, Quantity: 1})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp models.Product
	decode(t, w, &resp)
	if resp.ID == "" {
		t.Error("expected an id")
	}
	if resp.Name != "Laptop" || resp.Price != 1500.0 || resp.Quantity != 1 {
		t.Errorf("unexpected product %+v", resp)
	}
	if resp.MinStockThreshold != models.DefaultMinStockThreshold {
		t.Errorf("expected default threshold 5, got %d", resp.MinStockThreshold)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "ana@example.com")

	tests := []struct {
		name           string
		payload        handler.CreateProductRequest
		expectedErrors []string
	}{
		{"Empty name", handler.CreateProductRequest{Name: "", Price: 100.0}, []string{"name"}},
		{"Blank name", handler.CreateProductRequest{Name: "   ", Price: 100.0}, []string{"name"}},
		{"Negative price", handler.CreateProductRequest{Name: "Mouse", Price: -5.0}, []string{"price"}},
		{"Negative quantity", handler.CreateProductRequest{Name: "Keyboard", Price: 50.0, Quantity: -1}, []string{"quantity"}},
		{"Negative threshold", handler.CreateProductRequest{Name: "Keyboard", MinStockThreshold: ptr(-1)}, []string{"minStockThreshold"}},
		{"Quantity too large", handler.CreateProductRequest{Name: "Crate", Quantity: 1 << 31}, []string{"quantity"}},
		{"Threshold too large", handler.CreateProductRequest{Name: "Crate", MinStockThreshold: ptr(1 << 31)}, []string{"minStockThreshold"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do(http.MethodPost, "/products", token, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}

			var resp handler.ErrorResponse
			decode(t, w, &resp)
			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp.Errors {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, got %+v", field, resp.Errors)
				}
			}
		})
	}

	if e.productRepo.Len() != 0 {
		t.Errorf("expected nothing stored, got %d products", e.productRepo.Len())
	}
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "ana@example.com")

	w := e.do(http.MethodPost, "/products", token, `{Name: "Invalid" Price: 100 "}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}
	var resp handler.ErrorResponse
	decode(t, w, &resp)
	if resp.Message != "invalid input" {
		t.Errorf("expected message 'invalid input', got %q", resp.Message)
	}
}

func TestProducts_OwnerIsolation(t *testing.T) {
	e := newTestEnv(t)
	ana := e.register(t, "ana@example.com")
	bo := e.register(t, "bo@example.com")

	id := e.createProduct(t, ana, handler.CreateProductRequest{Name: "Hammer", Quantity: 3, Price: 12})

	w := e.do(http.MethodGet, "/products", bo, nil)
	var list []models.Product
	decode(t, w, &list)
	if len(list) != 0 {
		t.Errorf("expected bo to see no products, got %d", len(list))
	}

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w := e.do(method, productPath(id), bo, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s foreign product: expected 404, got %d", method, w.Code)
		}
	}

	w = e.do(http.MethodPut, productPath(id), bo, handler.UpdateProductRequest{Name: ptr("Mine now")})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 updating foreign product, got %d", w.Code)
	}

	w = e.do(http.MethodGet, productPath(id), ana, nil)
	var p models.Product
	decode(t, w, &p)
	if p.Name != "Hammer" {
		t.Errorf("expected product untouched, got %q", p.Name)
	}
}

func TestUpdateProductHandler(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "ana@example.com")
	id := e.createProduct(t, token, handler.CreateProductRequest{Name: "Hammer", Quantity: 10, Price: 12.5})

	w := e.do(http.MethodPut, productPath(id), token, `{"quantity":0,"price":0,"name":""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var p models.Product
	decode(t, w, &p)
	if p.Quantity != 0 {
		t.Errorf("expected quantity 0, got %d", p.Quantity)
	}
	if p.Price != 12.5 || p.Name != "Hammer" {
		t.Errorf("expected price and name untouched, got %v %q", p.Price, p.Name)
	}

	w = e.do(http.MethodPut, productPath("missing"), token, `{"quantity":1}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	w = e.do(http.MethodPut, productPath(id), token, `{"price":-1}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative price, got %d", w.Code)
	}
}

func TestDeleteProductHandler(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "ana@example.com")
	id := e.createProduct(t, token, handler.CreateProductRequest{Name: "Hammer", Quantity: 10, Price: 1})

	w := e.do(http.MethodDelete, productPath(id), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.MessageResponse
	decode(t, w, &resp)
	if resp.Message != "Product removed" {
		t.Errorf("unexpected message %q", resp.Message)
	}

	w = e.do(http.MethodDelete, productPath(id), token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", w.Code)
	}
	var notFound handler.ErrorResponse
	decode(t, w, &notFound)
	if notFound.Message != "Product not found" {
		t.Errorf("unexpected message %q", notFound.Message)
	}
}

func TestAdjustStockHandler(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "ana@example.com")
	id := e.createProduct(t, token, handler.CreateProductRequest{Name: "Bolt", Quantity: 8, Price: 0.5})
	stockPath := productPath(id) + "/stock"

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantQty  int
		wantLow  bool
	}{
		{"add", `{"quantity":2,"isAddition":true}`, http.StatusOK, 10, false},
		{"remove", `{"quantity":4,"isAddition":false}`, http.StatusOK, 6, false},
		{"remove to low", `{"quantity":1}`, http.StatusOK, 5, true},
		{"insufficient", `{"quantity":6,"isAddition":false}`, http.StatusBadRequest, 5, true},
		{"negative", `{"quantity":-1,"isAddition":true}`, http.StatusBadRequest, 5, true},
		{"missing quantity", `{"isAddition":true}`, http.StatusBadRequest, 5, true},
		{"beyond int range", `{"quantity":9223372036854775807,"isAddition":true}`, http.StatusBadRequest, 5, true},
		{"addition past the maximum", `{"quantity":2147483647,"isAddition":true}`, http.StatusBadRequest, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do(http.MethodPut, stockPath, token, tt.body)
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
			if w.Code == http.StatusOK {
				var resp handler.StockResponse
				decode(t, w, &resp)
				if resp.Product.Quantity != tt.wantQty || resp.IsLowStock != tt.wantLow {
					t.Errorf("expected qty %d low %v, got %+v", tt.wantQty, tt.wantLow, resp)
				}
			}

			w = e.do(http.MethodGet, productPath(id), token, nil)
			var p models.Product
			decode(t, w, &p)
			if p.Quantity != tt.wantQty {
				t.Errorf("expected stored quantity %d, got %d", tt.wantQty, p.Quantity)
			}
		})
	}

	w := e.do(http.MethodPut, stockPath, token, `{"quantity":6,"isAddition":false}`)
	var resp handler.ErrorResponse
	decode(t, w, &resp)
	if resp.Message != "Not enough stock available" {
		t.Errorf("unexpected message %q", resp.Message)
	}

	w = e.do(http.MethodPut, stockPath, token, `{"quantity":2147483647,"isAddition":true}`)
	decode(t, w, &resp)
	if resp.Message != "Quantity is out of range" {
		t.Errorf("unexpected message %q", resp.Message)
	}

	w = e.do(http.MethodPut, productPath("missing")+"/stock", token, `{"quantity":1,"isAddition":true}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing product, got %d", w.Code)
	}
}

func TestLowStockAndSummary(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "ana@example.com")
	lowID := e.createProduct(t, token, handler.CreateProductRequest{Name: "Low", Quantity: 3, Price: 2, MinStockThreshold: ptr(5)})
	e.createProduct(t, token, handler.CreateProductRequest{Name: "Plenty", Quantity: 10, Price: 1.25, MinStockThreshold: ptr(5)})

	w := e.do(http.MethodGet, "/products/low-stock", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var low []models.Product
	decode(t, w, &low)
	if len(low) != 1 || low[0].ID != lowID {
		t.Errorf("expected only the low product, got %+v", low)
	}

	w = e.do(http.MethodGet, "/products/summary", token, nil)
	var s handler.SummaryResponse
	decode(t, w, &s)
	if s.TotalProducts != 2 || s.LowStockCount != 1 || s.TotalInventoryValue != 18.5 {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestAuthHandlers(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "ana@example.com")

	w := e.do(http.MethodPost, "/users/register", "", handler.RegisterRequest{FullName: "Ana", Email: "ANA@example.com", Password: "secret1"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate email, got %d", w.Code)
	}

	w = e.do(http.MethodPost, "/users/register", "", handler.RegisterRequest{FullName: "Bo", Email: "not-an-email", Password: "123"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid registration, got %d", w.Code)
	}

	w = e.do(http.MethodPost, "/users/login", "", handler.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", w.Code)
	}

	w = e.do(http.MethodPost, "/users/login", "", handler.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on login, got %d", w.Code)
	}
	var login handler.IdentityResponse
	decode(t, w, &login)
	if login.Token == "" || login.Email != "ana@example.com" {
		t.Errorf("unexpected login response %+v", login)
	}

	w = e.do(http.MethodGet, "/users/profile", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on profile, got %d", w.Code)
	}
	var profile handler.IdentityResponse
	decode(t, w, &profile)
	if profile.ID != login.ID || profile.Token != "" {
		t.Errorf("unexpected profile %+v", profile)
	}

	w = e.do(http.MethodGet, "/users/profile", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
}

func TestWidgetScenario(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "ana@example.com")

	id := e.createProduct(t, token, handler.CreateProductRequest{Name: "Widget", Quantity: 10, Price: 2})

	w := e.do(http.MethodPut, productPath(id)+"/stock", token, handler.StockRequest{Quantity: ptr(7), IsAddition: false})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var stock handler.StockResponse
	decode(t, w, &stock)
	if stock.Product.Quantity != 3 || !stock.IsLowStock || stock.Message != "Warning: Stock is below threshold" {
		t.Errorf("unexpected stock response %+v", stock)
	}

	w = e.do(http.MethodGet, "/products/low-stock", token, nil)
	var low []models.Product
	decode(t, w, &low)
	if len(low) != 1 || low[0].ID != id {
		t.Errorf("expected Widget in low stock, got %+v", low)
	}

	w = e.do(http.MethodPut, productPath(id)+"/stock", token, handler.StockRequest{Quantity: ptr(5), IsAddition: false})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = e.do(http.MethodGet, productPath(id), token, nil)
	var p models.Product
	decode(t, w, &p)
	if p.Quantity != 3 {
		t.Errorf("expected quantity to stay 3, got %d", p.Quantity)
	}

	w = e.do(http.MethodDelete, productPath(id), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", w.Code)
	}
	w = e.do(http.MethodGet, "/products", token, nil)
	var list []models.Product
	decode(t, w, &list)
	if len(list) != 0 {
		t.Errorf("expected empty listing, got %d", len(list))
	}
}

func TestRestockClearsLowStock(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "ana@example.com")

	id := e.createProduct(t, token, handler.CreateProductRequest{Name: "Widget", Quantity: 2, Price: 9.99})

	lowStockIDs := func() []string {
		t.Helper()
		w := e.do(http.MethodGet, "/products/low-stock", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var low []models.Product
		decode(t, w, &low)
		ids := make([]string, 0, len(low))
		for _, p := range low {
			ids = append(ids, p.ID)
		}
		return ids
	}

	if ids := lowStockIDs(); len(ids) != 1 || ids[0] != id {
		t.Fatalf("expected Widget in low stock under the default threshold, got %v", ids)
	}

	w := e.do(http.MethodPut, productPath(id)+"/stock", token, handler.StockRequest{Quantity: ptr(10), IsAddition: true})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var stock handler.StockResponse
	decode(t, w, &stock)
	if stock.Product.Quantity != 12 || stock.IsLowStock || stock.Message != "" {
		t.Errorf("unexpected stock response %+v", stock)
	}

	if ids := lowStockIDs(); len(ids) != 0 {
		t.Errorf("expected no low-stock products after restocking, got %v", ids)
	}
}
