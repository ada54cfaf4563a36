package services

import (
	"context"
	"log"

	"zensupply/internal/models"
	"zensupply/internal/repositories"
	"zensupply/pkg/rabbitmq"
)

// FeedbackService handles business logic related to player feedback.
type FeedbackService struct {
	repo     repositories.DocumentRepository
	mqClient *rabbitmq.Client
}

// NewFeedbackService creates a new FeedbackService. A nil mqClient disables
// event publishing.
func NewFeedbackService(repo repositories.DocumentRepository, mqClient *rabbitmq.Client) *FeedbackService {
	return &FeedbackService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// ListFeedback retrieves feedback entries in insertion order.
func (s *FeedbackService) ListFeedback(ctx context.Context, limit int64) ([]repositories.Document, error) {
	return s.repo.Query(ctx, models.FeedbackCollection, repositories.Filter{}, limit)
}

// CreateFeedback stores a new feedback entry and returns its assigned id.
func (s *FeedbackService) CreateFeedback(ctx context.Context, feedback *models.Feedback) (string, error) {
	id, err := s.repo.Create(ctx, models.FeedbackCollection, feedback)
	if err != nil {
		return "", err
	}
	publishCreated(s.mqClient, models.FeedbackCollection, id)
	return id, nil
}

// publishCreated emits a storefront event when a broker is configured.
// Publishing is best-effort and never fails the originating request.
func publishCreated(client *rabbitmq.Client, collection, id string) {
	if client == nil {
		return
	}
	if err := client.PublishDocumentCreated(map[string]interface{}{
		"event":      "document_created",
		"collection": collection,
		"id":         id,
	}); err != nil {
		log.Printf("Error publishing %s created event: %v", collection, err)
	}
}
