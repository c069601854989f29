package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/teran1416/InventarioApp/internal/alerts"
	"github.com/teran1416/InventarioApp/internal/auth"
	api "github.com/teran1416/InventarioApp/internal/http"
	handler "github.com/teran1416/InventarioApp/internal/http/handlers"
	"github.com/teran1416/InventarioApp/internal/repo"
	"github.com/teran1416/InventarioApp/internal/service"
)

type testEnv struct {
	router      http.Handler
	productRepo *repo.InMemoryProductRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	productRepo := repo.NewInMemoryProductRepository()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	authService := auth.NewService(repo.NewInMemoryUserRepository(), tokens).WithHashCost(bcrypt.MinCost)
	server := handler.NewServer(service.NewProductService(productRepo, alerts.NopNotifier{}, log), authService, log)

	return &testEnv{router: api.NewRouter(server, tokens, log), productRepo: productRepo}
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, _ := json.Marshal(b)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register signs up a fresh user and returns its bearer token.
func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	w := e.do(http.MethodPost, "/users/register", "", handler.RegisterRequest{FullName: "Test User", Email: email, Password: "secret1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created on register, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.IdentityResponse
	decode(t, w, &resp)
	if resp.Token == "" {
		t.Fatal("expected a token on register")
	}
	return resp.Token
}

func (e *testEnv) createProduct(t *testing.T, token string, p handler.CreateProductRequest) string {
	t.Helper()
	w := e.do(http.MethodPost, "/products", token, p)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		ID string `json:"id"`
	}
	decode(t, w, &resp)
	return resp.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
}

func ptr[T any](v T) *T { return &v }

func productPath(id string) string {
	return fmt.Sprintf("/products/%s", id)
}
