package catalog

import (
	"zensupply/internal/models"
)

// Entry pairs a natural key (sku) with the authoritative product definition.
// The declared catalog always wins over whatever is stored.
type Entry struct {
	SKU     string
	Product models.Product
}

// Default returns the catalog of well-known products seeded at every startup.
// The skus, prices and variants are part of the store's external contract.
func Default() []Entry {
	const (
		spawnerUnit     = 0.025
		shulkerPrice    = 40.0
		moneyPerMillion = 0.03
		elytraPrice     = 10.0
	)

	return []Entry{
		{
			SKU: "SPAWNER-SKELETON",
			Product: models.Product{
				Title:       "Skeleton Spawner",
				Description: "Farm bones and arrows. Choose single units or grab a full shulker.",
				Price:       spawnerUnit,
				Category:    "Spawners",
				ImageURL:    "https://images.unsplash.com/photo-1542751371-adc38448a05e?q=80&w=1200&auto=format&fit=crop",
				Tags:        []string{"spawner", "skeleton", "farm", "shulker"},
				InStock:     true,
				Variants: []models.Variant{
					{Name: "Single", Type: "option", Price: floatPtr(spawnerUnit)},
					{Name: "Shulker (27x)", Type: "bundle", BundleQty: intPtr(27), Price: floatPtr(shulkerPrice)},
				},
			},
		},
		{
			SKU: "MONEY-PACK",
			Product: models.Product{
				Title:       "Money",
				Description: "Boost your balance instantly with IRL store credits.",
				Price:       moneyPerMillion,
				Category:    "Money",
				ImageURL:    "https://images.unsplash.com/photo-1611974789855-9c2a0a7236a3?q=80&w=1200&auto=format&fit=crop",
				Tags:        []string{"money", "cash", "balance"},
				InStock:     true,
				// No variants; purchase quantity represents millions.
				Variants: []models.Variant{},
			},
		},
		{
			SKU: "ELYTRA-BASE",
			Product: models.Product{
				Title:       "Elytra",
				Description: "Soar across the server with an Elytra.",
				Price:       elytraPrice,
				Category:    "Kits",
				ImageURL:    "https://images.unsplash.com/photo-1606117331651-0c9f0c1f2b2e?q=80&w=1200&auto=format&fit=crop",
				Tags:        []string{"elytra", "flight", "wings"},
				InStock:     true,
				Variants: []models.Variant{
					{Name: "Standard", Type: "option", Price: floatPtr(elytraPrice)},
					{Name: "Elytra Shulker Box", Type: "bundle", Price: floatPtr(50.0)},
				},
			},
		},
	}
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
