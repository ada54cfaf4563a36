package services

import (
	"context"

	"zensupply/internal/models"
	"zensupply/internal/repositories"
	"zensupply/pkg/rabbitmq"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.DocumentRepository
	mqClient *rabbitmq.Client
}

// NewProductService creates a new ProductService. A nil mqClient disables
// event publishing.
func NewProductService(repo repositories.DocumentRepository, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// ListProducts retrieves products, optionally narrowed by an exact category
// match and a case-insensitive search term over title, description and tags.
func (s *ProductService) ListProducts(ctx context.Context, category, term string, limit int64) ([]repositories.Document, error) {
	filter := repositories.Filter{}
	if category != "" {
		filter.Match = map[string]string{"category": category}
	}
	if term != "" {
		filter.Term = term
		filter.TermFields = []string{"title", "description"}
		filter.TermArrays = []string{"tags"}
	}
	return s.repo.Query(ctx, models.ProductCollection, filter, limit)
}

// GetProductByID retrieves a single product by its identifier.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (repositories.Document, error) {
	return s.repo.GetByID(ctx, models.ProductCollection, id)
}

// CreateProduct stores a new product and returns its assigned id.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) (string, error) {
	product.ApplyDefaults()
	id, err := s.repo.Create(ctx, models.ProductCollection, product)
	if err != nil {
		return "", err
	}
	publishCreated(s.mqClient, models.ProductCollection, id)
	return id, nil
}
