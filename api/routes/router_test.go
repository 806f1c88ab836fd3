package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/storage"
	"github.com/angelmondragon/storefront/pkg/types"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

type stubFetcher struct {
	products []catalog.Product
}

func (s stubFetcher) FetchProducts(context.Context) ([]catalog.Product, error) {
	return s.products, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "test"},
		Catalog: config.CatalogConfig{PageSize: 6},
		Cart:    config.CartConfig{StorageKey: "cart", LoginKey: "isLoggedIn", ShippingFee: "2.00"},
		Notify:  config.NotifyConfig{DismissAfter: time.Hour, FadeFor: time.Hour},
		Session: config.SessionConfig{CookieName: "sf_session", Secret: "secret", Issuer: "storefront", TTL: time.Hour},
	}
}

func testProducts(n int) []catalog.Product {
	products := make([]catalog.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, catalog.Product{
			ID:       types.ProductID(i),
			Title:    "Product " + types.ProductID(i).String(),
			Price:    decimal.NewFromInt(int64(i)),
			Category: "misc",
			Rating:   catalog.Rating{Rate: 3.7, Count: 10},
		})
	}
	return products
}

func newTestRouter(t *testing.T, pingers map[string]controllers.Pinger) http.Handler {
	t.Helper()
	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	builder, err := storefront.NewBuilder(storefront.Deps{
		Config:  cfg,
		Logger:  logg,
		Storage: storage.NewMemoryStore(),
		Loader:  catalog.NewLoader(stubFetcher{products: testProducts(20)}, logg),
	})
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	reg := prometheus.NewRegistry()
	return NewRouter(Params{
		Config:      cfg,
		Logger:      logg,
		Builder:     builder,
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
		Gatherer:    reg,
		Pingers:     pingers,
	})
}

type visitor struct {
	t       *testing.T
	router  http.Handler
	cookies []*http.Cookie
}

func (v *visitor) do(method, path, body string) *httptest.ResponseRecorder {
	v.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range v.cookies {
		req.AddCookie(c)
	}
	resp := httptest.NewRecorder()
	v.router.ServeHTTP(resp, req)
	if set := resp.Result().Cookies(); len(set) > 0 {
		v.cookies = set
	}
	return resp
}

type cartEnvelope struct {
	Data struct {
		Items []struct {
			ID       types.ProductID `json:"id"`
			Quantity int             `json:"quantity"`
		} `json:"items"`
		Count    int    `json:"count"`
		Subtotal string `json:"subtotal"`
		Total    string `json:"total"`
		Banners  []struct {
			Message string `json:"message"`
			Kind    string `json:"kind"`
		} `json:"banners"`
		CartHTML string `json:"cart_html"`
	} `json:"data"`
}

func decodeCart(t *testing.T, resp *httptest.ResponseRecorder) cartEnvelope {
	t.Helper()
	var body cartEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	return body
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, map[string]controllers.Pinger{"storage": stubPinger{}})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected live 200 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected ready 200 got %d", resp.Code)
	}
}

func TestReadyReportsFailingDependency(t *testing.T) {
	router := newTestRouter(t, map[string]controllers.Pinger{"storage": stubPinger{err: errors.New("down")}})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "storefront_http_requests_total") {
		t.Fatal("expected http request counter in exposition")
	}
}

func TestHomePagePaginates(t *testing.T) {
	v := &visitor{t: t, router: newTestRouter(t, nil)}

	resp := v.do(http.MethodGet, "/", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(v.cookies) == 0 {
		t.Fatal("expected a session cookie")
	}
	body := resp.Body.String()
	if got := strings.Count(body, `class="product-card"`); got != 6 {
		t.Fatalf("expected 6 cards got %d", got)
	}
	if !strings.Contains(body, `href="/?page=2"`) {
		t.Fatal("expected load more link to page 2")
	}

	body = v.do(http.MethodGet, "/?page=4", "").Body.String()
	if got := strings.Count(body, `class="product-card"`); got != 20 {
		t.Fatalf("expected 20 cards got %d", got)
	}

	body = v.do(http.MethodGet, "/?all=1", "").Body.String()
	if got := strings.Count(body, `class="product-card"`); got != 20 {
		t.Fatalf("expected all 20 cards got %d", got)
	}
}

func TestHomePageRejectsBadPage(t *testing.T) {
	v := &visitor{t: t, router: newTestRouter(t, nil)}
	if resp := v.do(http.MethodGet, "/?page=abc", ""); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSearchPageWithoutMatches(t *testing.T) {
	v := &visitor{t: t, router: newTestRouter(t, nil)}
	resp := v.do(http.MethodGet, "/search?q=zzzz", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), `class="product-card"`) {
		t.Fatal("expected an empty grid")
	}
}

func TestProductPage(t *testing.T) {
	v := &visitor{t: t, router: newTestRouter(t, nil)}
	resp := v.do(http.MethodGet, "/products/3", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Product 3") {
		t.Fatal("expected product title in detail page")
	}

	if resp := v.do(http.MethodGet, "/products/999", ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if resp := v.do(http.MethodGet, "/products/abc", ""); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductListJSON(t *testing.T) {
	v := &visitor{t: t, router: newTestRouter(t, nil)}
	resp := v.do(http.MethodGet, "/api/v1/products?page=2", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var body struct {
		Data struct {
			Products []struct {
				ID types.ProductID `json:"id"`
			} `json:"products"`
			HasMore bool `json:"has_more"`
			Total   int  `json:"total"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data.Products) != 12 || !body.Data.HasMore || body.Data.Total != 20 {
		t.Fatalf("unexpected listing %+v", body.Data)
	}
}

func TestCartFlow(t *testing.T) {
	v := &visitor{t: t, router: newTestRouter(t, nil)}

	resp := v.do(http.MethodPost, "/api/v1/cart/items", `{"product_id":2}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	added := decodeCart(t, resp)
	if added.Data.Count != 1 || len(added.Data.Banners) != 1 || added.Data.Banners[0].Kind != "success" {
		t.Fatalf("unexpected add response %+v", added.Data)
	}

	v.do(http.MethodPost, "/api/v1/cart/items", `{"product_id":"2"}`)
	cart := decodeCart(t, v.do(http.MethodGet, "/api/v1/cart", ""))
	if len(cart.Data.Items) != 1 || cart.Data.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %+v", cart.Data.Items)
	}
	if cart.Data.Subtotal != "$4.00" || cart.Data.Total != "$6.00" {
		t.Fatalf("unexpected totals %s / %s", cart.Data.Subtotal, cart.Data.Total)
	}

	updated := decodeCart(t, v.do(http.MethodPatch, "/api/v1/cart/items/2?view=cart", `{"quantity":5}`))
	if updated.Data.Count != 5 {
		t.Fatalf("expected count 5 got %d", updated.Data.Count)
	}
	if !strings.Contains(updated.Data.CartHTML, `data-id="2"`) {
		t.Fatalf("expected rendered cart fragment, got %q", updated.Data.CartHTML)
	}

	removed := decodeCart(t, v.do(http.MethodPatch, "/api/v1/cart/items/2", `{"quantity":0}`))
	if removed.Data.Count != 0 || len(removed.Data.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", removed.Data)
	}

	resp = v.do(http.MethodDelete, "/api/v1/cart/items/9", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected removing absent item to succeed, got %d", resp.Code)
	}
}

func TestCartAddRendersFreshFragment(t *testing.T) {
	v := &visitor{t: t, router: newTestRouter(t, nil)}

	resp := v.do(http.MethodPost, "/api/v1/cart/items?view=cart", `{"product_id":7}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	added := decodeCart(t, resp)
	if len(added.Data.Items) != 1 || added.Data.Subtotal != "$7.00" {
		t.Fatalf("unexpected add response %+v", added.Data)
	}
	if !strings.Contains(added.Data.CartHTML, `data-id="7"`) {
		t.Fatalf("expected added line in cart fragment, got %q", added.Data.CartHTML)
	}
	if strings.Contains(added.Data.CartHTML, "Your cart is empty") {
		t.Fatalf("cart fragment rendered before the add: %q", added.Data.CartHTML)
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	v := &visitor{t: t, router: newTestRouter(t, nil)}
	if resp := v.do(http.MethodPost, "/api/v1/cart/items", `{"product_id":404}`); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if resp := v.do(http.MethodPost, "/api/v1/cart/items", `{}`); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartIsPerVisitor(t *testing.T) {
	router := newTestRouter(t, nil)
	alice := &visitor{t: t, router: router}
	bob := &visitor{t: t, router: router}

	alice.do(http.MethodPost, "/api/v1/cart/items", `{"product_id":1}`)
	bobCart := decodeCart(t, bob.do(http.MethodGet, "/api/v1/cart", ""))
	if bobCart.Data.Count != 0 {
		t.Fatalf("expected bob's cart to be empty, got %d", bobCart.Data.Count)
	}

	page := alice.do(http.MethodGet, "/cart", "")
	if page.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", page.Code)
	}
	if !strings.Contains(page.Body.String(), "$3.00") {
		t.Fatal("expected total of 1.00 plus 2.00 shipping on the cart page")
	}
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
