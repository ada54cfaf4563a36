package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"zensupply/internal/models"
	"zensupply/internal/repositories"
)

// Seeder makes the stored catalog match the declared one on startup, keyed by
// sku. Existing documents keep their identifier and created_at; every other
// field is overwritten.
type Seeder struct {
	repo repositories.DocumentRepository
}

// NewSeeder creates a new Seeder.
func NewSeeder(repo repositories.DocumentRepository) *Seeder {
	return &Seeder{
		repo: repo,
	}
}

// Seed upserts every catalog entry. Seeding is best-effort: a failing entry
// is logged and skipped, and never aborts startup.
func (s *Seeder) Seed(ctx context.Context) {
	for _, entry := range Default() {
		if err := s.seedEntry(ctx, entry); err != nil {
			log.Printf("Error seeding product %s: %v", entry.SKU, err)
			continue
		}
		log.Printf("Seeded product: %s (sku: %s)", entry.Product.Title, entry.SKU)
	}
}

func (s *Seeder) seedEntry(ctx context.Context, entry Entry) error {
	product := entry.Product
	product.SKU = entry.SKU
	product.UpdatedAt = time.Now().UTC()

	existing, err := s.repo.FindOne(ctx, models.ProductCollection, repositories.Filter{
		Match: map[string]string{"sku": entry.SKU},
	})
	if errors.Is(err, repositories.ErrNotFound) {
		product.CreatedAt = product.UpdatedAt
		_, err := s.repo.Create(ctx, models.ProductCollection, product)
		return err
	}
	if err != nil {
		return err
	}

	id, ok := existing["id"].(string)
	if !ok {
		return errors.New("existing catalog document has no id")
	}

	// CreatedAt stays zero here, so its omitempty bson tag keeps it out of
	// the update and the original creation timestamp survives.
	fields, err := repositories.ToDocument(product)
	if err != nil {
		return err
	}
	return s.repo.UpdateByID(ctx, models.ProductCollection, id, fields)
}
