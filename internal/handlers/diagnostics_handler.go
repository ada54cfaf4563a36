package handlers

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DiagnosticsHandler exposes the root, health and database test endpoints.
type DiagnosticsHandler struct {
	client *mongo.Client
	dbName string
}

// NewDiagnosticsHandler creates a new DiagnosticsHandler. The client may be
// nil when the store is unavailable; /test then reports it as such.
func NewDiagnosticsHandler(client *mongo.Client, dbName string) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		client: client,
		dbName: dbName,
	}
}

// RegisterRoutes registers the diagnostic routes on the app root.
func (h *DiagnosticsHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.HandleRoot)
	app.Get("/health", h.HandleHealth)
	app.Get("/test", h.HandleTest)
}

// HandleRoot confirms the backend is up.
func (h *DiagnosticsHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "ZenSupply backend is live",
	})
}

// HandleHealth is a liveness probe.
func (h *DiagnosticsHandler) HandleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// HandleTest reports whether the database is configured and reachable, and
// which collections exist. It never fails; problems show up in the report.
func (h *DiagnosticsHandler) HandleTest(c *fiber.Ctx) error {
	report := fiber.Map{
		"backend":           "running",
		"database":          "not available",
		"database_name":     h.dbName,
		"connection_status": "not connected",
		"collections":       []string{},
		"database_url_set":  os.Getenv("DATABASE_URL") != "",
		"database_name_set": os.Getenv("DATABASE_NAME") != "",
	}

	if h.client == nil {
		return c.JSON(report)
	}

	if err := h.client.Ping(c.Context(), nil); err != nil {
		report["database"] = "error: " + err.Error()
		return c.JSON(report)
	}
	report["database"] = "available"
	report["connection_status"] = "connected"

	names, err := h.client.Database(h.dbName).ListCollectionNames(c.Context(), bson.M{})
	if err != nil {
		report["database"] = "connected but error: " + err.Error()
		return c.JSON(report)
	}
	if len(names) > 10 {
		names = names[:10]
	}
	report["collections"] = names
	report["database"] = "connected and working"
	return c.JSON(report)
}
