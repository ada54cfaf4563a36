package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"zensupply/internal/catalog"
	"zensupply/internal/config"
	"zensupply/internal/handlers"
	"zensupply/internal/repositories"
	"zensupply/internal/services"
	"zensupply/pkg/mongodb"
	"zensupply/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Document store ---
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	client, db, err := mongodb.Connect(connectCtx, mongodb.Config{
		URI:      cfg.DatabaseURL,
		Database: cfg.DatabaseName,
	})
	cancelConnect()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	log.Printf("Connected to MongoDB database %s", cfg.DatabaseName)

	// --- Event broker (optional) ---
	// The store is the only hard dependency; without a broker the services
	// simply skip publishing.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("RabbitMQ unavailable, continuing without events: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	repo := repositories.NewMongoRepository(db)

	// --- Catalog seeding ---
	// Best-effort: individual entry failures are logged inside Seed and must
	// not block startup.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	catalog.NewSeeder(repo).Seed(seedCtx)
	cancelSeed()

	// --- Services ---
	productService := services.NewProductService(repo, mqClient)
	feedbackService := services.NewFeedbackService(repo, mqClient)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	diagnosticsHandler := handlers.NewDiagnosticsHandler(client, cfg.DatabaseName)

	// --- Fiber app ---
	app := fiber.New()

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(cors.New())

	diagnosticsHandler.RegisterRoutes(app)

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)
	feedbackHandler.RegisterRoutes(api)

	// --- Storefront event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting storefront event consumer...")
			consumerErr := mqClient.ConsumeStorefrontEvents(func(msg amqp.Delivery) error {
				log.Printf("Storefront event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			})
			if consumerErr != nil {
				log.Printf("Failed to start storefront event consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
