package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"zensupply/internal/catalog"
	"zensupply/internal/handlers"
	"zensupply/internal/models"
	"zensupply/internal/repositories"
	"zensupply/internal/services"
)

// setupApp builds a Fiber app over the in-memory document repository with all
// routes registered the way main does it.
func setupApp() (*fiber.App, *repositories.MemoryRepository) {
	repo := repositories.NewMemoryRepository()

	productService := services.NewProductService(repo, nil)
	feedbackService := services.NewFeedbackService(repo, nil)

	app := fiber.New()

	handlers.NewDiagnosticsHandler(nil, "zensupply-test").RegisterRoutes(app)

	api := app.Group("/api")
	handlers.NewProductHandler(productService).RegisterRoutes(api)
	handlers.NewFeedbackHandler(feedbackService).RegisterRoutes(api)

	return app, repo
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestProductCreateAndFetch(t *testing.T) {
	app, _ := setupApp()

	newProduct := map[string]interface{}{
		"title":    "Blaze Spawner",
		"price":    0.05,
		"category": "Spawners",
		"tags":     []string{"spawner", "blaze"},
	}
	resp := doJSON(t, app, http.MethodPost, "/api/products", newProduct)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var created map[string]string
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created["id"])

	resp = doJSON(t, app, http.MethodGet, "/api/products/"+created["id"], nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched map[string]interface{}
	decodeBody(t, resp, &fetched)
	assert.Equal(t, created["id"], fetched["id"])
	assert.Equal(t, "Blaze Spawner", fetched["title"])
	assert.Equal(t, 0.05, fetched["price"])
	// in_stock defaults to true when the body omits it.
	assert.Equal(t, true, fetched["in_stock"])

	resp = doJSON(t, app, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []map[string]interface{}
	decodeBody(t, resp, &listed)
	assert.Len(t, listed, 1)
}

func TestProductNotFoundAndMalformedID(t *testing.T) {
	app, _ := setupApp()

	resp := doJSON(t, app, http.MethodGet, "/api/products/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var notFound map[string]string
	decodeBody(t, resp, &notFound)
	assert.Equal(t, "Product not found", notFound["detail"])

	resp = doJSON(t, app, http.MethodGet, "/api/products/not-a-hex-id", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()
}

func TestProductValidationFailureIsFlattenedTo500(t *testing.T) {
	app, repo := setupApp()

	invalid := map[string]interface{}{
		"title":    "Bad Product",
		"price":    -2.0,
		"category": "Kits",
	}
	resp := doJSON(t, app, http.MethodPost, "/api/products", invalid)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Contains(t, body["detail"], "validation failed")

	docs, err := repo.Query(context.Background(), models.ProductCollection, repositories.Filter{}, 0)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestFeedbackEndpoints(t *testing.T) {
	app, _ := setupApp()

	resp := doJSON(t, app, http.MethodPost, "/api/feedback", map[string]interface{}{
		"stars":   5,
		"message": "fast delivery",
		"ign":     "zen_player",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var created map[string]string
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created["id"])

	// Out-of-range stars are rejected before any write.
	resp = doJSON(t, app, http.MethodPost, "/api/feedback", map[string]interface{}{"stars": 9})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/feedback", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []map[string]interface{}
	decodeBody(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "fast delivery", listed[0]["message"])
	assert.Equal(t, "zen_player", listed[0]["ign"])
}

func TestSeededCatalogOverHTTP(t *testing.T) {
	app, repo := setupApp()
	catalog.NewSeeder(repo).Seed(context.Background())

	resp := doJSON(t, app, http.MethodGet, "/api/products?category=Money", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var money []map[string]interface{}
	decodeBody(t, resp, &money)
	require.Len(t, money, 1)
	assert.Equal(t, "Money", money[0]["title"])
	assert.Equal(t, 0.03, money[0]["price"])
	assert.Len(t, money[0]["variants"], 0)

	resp = doJSON(t, app, http.MethodGet, "/api/products?q=elytra", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var matches []map[string]interface{}
	decodeBody(t, resp, &matches)
	require.Len(t, matches, 1)
	assert.Equal(t, "Elytra", matches[0]["title"])
}

func TestProductListLimit(t *testing.T) {
	app, repo := setupApp()
	catalog.NewSeeder(repo).Seed(context.Background())

	resp := doJSON(t, app, http.MethodGet, "/api/products?limit=2", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []map[string]interface{}
	decodeBody(t, resp, &listed)
	assert.Len(t, listed, 2)
}

func TestDiagnosticsEndpoints(t *testing.T) {
	app, _ := setupApp()

	resp := doJSON(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var root map[string]string
	decodeBody(t, resp, &root)
	assert.Equal(t, "ZenSupply backend is live", root["message"])

	resp = doJSON(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]interface{}
	decodeBody(t, resp, &health)
	assert.Equal(t, "healthy", health["status"])

	// With no store handle the test endpoint still answers and reports it.
	resp = doJSON(t, app, http.MethodGet, "/test", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var report map[string]interface{}
	decodeBody(t, resp, &report)
	assert.Equal(t, "running", report["backend"])
	assert.Equal(t, "not available", report["database"])
}
