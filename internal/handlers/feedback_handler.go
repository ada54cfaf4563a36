package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"zensupply/internal/models"
	"zensupply/internal/services"
)

// FeedbackHandler handles HTTP requests for player feedback.
type FeedbackHandler struct {
	service *services.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(service *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
	}
}

// RegisterRoutes registers the feedback routes with the Fiber app.
func (h *FeedbackHandler) RegisterRoutes(router fiber.Router) {
	feedbackRoutes := router.Group("/feedback")
	feedbackRoutes.Get("/", h.HandleListFeedback)
	feedbackRoutes.Post("/", h.HandleCreateFeedback)
}

// HandleListFeedback lists feedback entries.
func (h *FeedbackHandler) HandleListFeedback(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	feedback, err := h.service.ListFeedback(c.Context(), int64(limit))
	if err != nil {
		log.Printf("Error listing feedback: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}
	return c.JSON(feedback)
}

// HandleCreateFeedback creates a new feedback entry and returns its id.
func (h *FeedbackHandler) HandleCreateFeedback(c *fiber.Ctx) error {
	var feedback models.Feedback
	if err := c.BodyParser(&feedback); err != nil {
		log.Printf("Error parsing feedback request body: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}

	id, err := h.service.CreateFeedback(c.Context(), &feedback)
	if err != nil {
		log.Printf("Error creating feedback: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"id": id})
}
