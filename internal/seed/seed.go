// Package seed loads the demo catalog so a fresh instance has something to
// sell. The in-memory stores start empty on every boot, so seeding runs at
// startup unless disabled.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/meridianhome/storefront/internal/service"
)

type seedProduct struct {
	name        string
	description string
	price       string
	salePrice   string
	image       string
	stock       int
	category    string
	featured    bool
}

var categories = []service.CreateCategoryInput{
	{Name: "Living Room", Description: "Sofas, tables, and accents for the heart of the home", Image: "/images/categories/living-room.jpg"},
	{Name: "Bedroom", Description: "Beds, wardrobes, and calm essentials", Image: "/images/categories/bedroom.jpg"},
	{Name: "Kitchen & Dining", Description: "Tableware and dining furniture", Image: "/images/categories/kitchen-dining.jpg"},
	{Name: "Office", Description: "Desks, chairs, and focus-friendly lighting", Image: "/images/categories/office.jpg"},
}

var products = []seedProduct{
	{name: "Linen Sofa", description: "Three-seater sofa in washed linen with oak legs", price: "1299.00", salePrice: "1099.00", image: "/images/products/linen-sofa.jpg", stock: 4, category: "living-room", featured: true},
	{name: "Walnut Coffee Table", description: "Solid walnut coffee table with rounded edges", price: "420.00", image: "/images/products/walnut-coffee-table.jpg", stock: 12, category: "living-room", featured: true},
	{name: "Wool Throw Blanket", description: "Chunky-knit merino wool throw", price: "89.00", image: "/images/products/wool-throw.jpg", stock: 30, category: "living-room"},
	{name: "Oak Bed Frame", description: "Queen-size bed frame in solid oak", price: "950.00", image: "/images/products/oak-bed-frame.jpg", stock: 6, category: "bedroom", featured: true},
	{name: "Linen Duvet Set", description: "Stonewashed linen duvet cover with two pillowcases", price: "159.00", salePrice: "129.00", image: "/images/products/linen-duvet.jpg", stock: 25, category: "bedroom"},
	{name: "Bedside Lamp", description: "Frosted glass bedside lamp with brass base", price: "75.00", image: "/images/products/bedside-lamp.jpg", stock: 18, category: "bedroom"},
	{name: "Stoneware Dinner Set", description: "16-piece glazed stoneware dinner set", price: "140.00", image: "/images/products/stoneware-set.jpg", stock: 20, category: "kitchen-dining", featured: true},
	{name: "Ceramic Mug", description: "Hand-thrown ceramic mug, 350ml", price: "12.50", image: "/images/products/ceramic-mug.jpg", stock: 60, category: "kitchen-dining"},
	{name: "Oak Dining Table", description: "Extendable dining table seating six to eight", price: "1100.00", image: "/images/products/oak-dining-table.jpg", stock: 3, category: "kitchen-dining"},
	{name: "Standing Desk", description: "Electric sit-stand desk with bamboo top", price: "549.00", salePrice: "499.00", image: "/images/products/standing-desk.jpg", stock: 10, category: "office", featured: true},
	{name: "Ergonomic Chair", description: "Mesh-back task chair with adjustable lumbar support", price: "389.00", image: "/images/products/ergonomic-chair.jpg", stock: 14, category: "office"},
	{name: "Desk Lamp", description: "Articulated desk lamp in matte black", price: "35.00", image: "/images/products/desk-lamp.jpg", stock: 40, category: "office"},
}

// Catalog populates the categories and products. It is idempotent enough for
// a fresh in-memory store; rerunning against populated stores returns
// already-exists errors.
func Catalog(ctx context.Context, catalog *service.CatalogService, l *slog.Logger) error {
	for _, input := range categories {
		if _, err := catalog.CreateCategory(ctx, input); err != nil {
			return fmt.Errorf("seed category %q: %w", input.Name, err)
		}
	}

	for _, sp := range products {
		c, err := catalog.GetCategory(ctx, sp.category)
		if err != nil {
			return fmt.Errorf("seed product %q: category %q: %w", sp.name, sp.category, err)
		}

		input := service.CreateProductInput{
			Name:        sp.name,
			Description: sp.description,
			Price:       decimal.RequireFromString(sp.price),
			Image:       sp.image,
			Stock:       sp.stock,
			CategoryID:  c.ID,
			Featured:    sp.featured,
		}
		if sp.salePrice != "" {
			sale := decimal.RequireFromString(sp.salePrice)
			input.SalePrice = &sale
		}

		if _, err := catalog.CreateProduct(ctx, input); err != nil {
			return fmt.Errorf("seed product %q: %w", sp.name, err)
		}
	}

	l.Info("catalog seeded",
		slog.Int("categories", len(categories)),
		slog.Int("products", len(products)),
	)

	return nil
}
