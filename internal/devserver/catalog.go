package devserver

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/pkannaiyan/sk-organic-farms/internal/domain"
)

// Catalog is the stand-in's immutable product data.
type Catalog struct {
	Collections []domain.Collection
	Products    []domain.Product
}

// FindVariant resolves a variant id to its product and variant.
func (c Catalog) FindVariant(variantID string) (domain.Product, domain.Variant, bool) {
	for _, p := range c.Products {
		for _, v := range p.Variants {
			if v.ID == variantID {
				return p, v, true
			}
		}
	}
	return domain.Product{}, domain.Variant{}, false
}

// ProductByKey resolves a product by its key.
func (c Catalog) ProductByKey(key string) (domain.Product, bool) {
	for _, p := range c.Products {
		if p.Key == key {
			return p, true
		}
	}
	return domain.Product{}, false
}

// ProductsByCollection filters products; an empty key returns everything.
func (c Catalog) ProductsByCollection(collectionKey string) []domain.Product {
	if collectionKey == "" {
		return c.Products
	}
	var out []domain.Product
	for _, p := range c.Products {
		if p.CollectionKey == collectionKey {
			out = append(out, p)
		}
	}
	return out
}

type catalogFile struct {
	Collections []struct {
		Key         string `toml:"key"`
		Name        string `toml:"name"`
		Description string `toml:"description"`
		ImageURL    string `toml:"image_url"`
	} `toml:"collections"`
	Products []struct {
		Key         string `toml:"key"`
		Name        string `toml:"name"`
		Description string `toml:"description"`
		Collection  string `toml:"collection"`
		ImageURL    string `toml:"image_url"`
		Variants    []struct {
			ID         string `toml:"id"`
			SKU        string `toml:"sku"`
			Title      string `toml:"title"`
			PriceCents int64  `toml:"price_cents"`
			Currency   string `toml:"currency"`
		} `toml:"variants"`
	} `toml:"products"`
}

// LoadCatalog reads a TOML catalog file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var cf catalogFile
	if err := toml.Unmarshal(data, &cf); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	var catalog Catalog
	for i, c := range cf.Collections {
		if c.Key == "" {
			return Catalog{}, fmt.Errorf("catalog %s: collection %d missing key", path, i)
		}
		catalog.Collections = append(catalog.Collections, domain.Collection{
			ID:          c.Key,
			Key:         c.Key,
			Name:        c.Name,
			Description: c.Description,
			ImageURL:    c.ImageURL,
		})
	}
	for i, p := range cf.Products {
		if p.Key == "" {
			return Catalog{}, fmt.Errorf("catalog %s: product %d missing key", path, i)
		}
		product := domain.Product{
			ID:            p.Key,
			Key:           p.Key,
			Name:          p.Name,
			Description:   p.Description,
			CollectionKey: p.Collection,
			ImageURL:      p.ImageURL,
		}
		for _, v := range p.Variants {
			currency := v.Currency
			if currency == "" {
				currency = "INR"
			}
			product.Variants = append(product.Variants, domain.Variant{
				ID:         v.ID,
				SKU:        v.SKU,
				Title:      v.Title,
				PriceCents: v.PriceCents,
				Currency:   currency,
			})
		}
		catalog.Products = append(catalog.Products, product)
	}
	return catalog, nil
}

// SeedCatalog returns the built-in organic produce catalog used when no
// catalog file is configured.
func SeedCatalog() Catalog {
	return Catalog{
		Collections: []domain.Collection{
			{ID: "vegetables", Key: "vegetables", Name: "Farm Vegetables", Description: "Naturally grown, harvested to order"},
			{ID: "greens", Key: "greens", Name: "Native Greens", Description: "Traditional keerai varieties"},
			{ID: "fruits", Key: "fruits", Name: "Seasonal Fruits"},
			{ID: "staples", Key: "staples", Name: "Staples & Grains"},
		},
		Products: []domain.Product{
			{
				ID: "country-tomato", Key: "country-tomato", Name: "Country Tomato",
				Description: "Open-pollinated nattu thakkali, tangier than hybrids", CollectionKey: "vegetables",
				Variants: []domain.Variant{
					{ID: "country-tomato-500g", SKU: "SKF-TOM-500", Title: "500 g", PriceCents: 3000, Currency: "INR"},
					{ID: "country-tomato-1kg", SKU: "SKF-TOM-1000", Title: "1 kg", PriceCents: 5500, Currency: "INR"},
				},
			},
			{
				ID: "okra", Key: "okra", Name: "Ladies Finger",
				Description: "Tender okra, picked young", CollectionKey: "vegetables",
				Variants: []domain.Variant{
					{ID: "okra-250g", SKU: "SKF-OKR-250", Title: "250 g", PriceCents: 2500, Currency: "INR"},
					{ID: "okra-500g", SKU: "SKF-OKR-500", Title: "500 g", PriceCents: 4500, Currency: "INR"},
				},
			},
			{
				ID: "moringa-greens", Key: "moringa-greens", Name: "Moringa Greens",
				Description: "Murungai keerai bunch", CollectionKey: "greens",
				Variants: []domain.Variant{
					{ID: "moringa-bunch", SKU: "SKF-MOR-B", Title: "1 bunch", PriceCents: 2000, Currency: "INR"},
				},
			},
			{
				ID: "amaranth-greens", Key: "amaranth-greens", Name: "Red Amaranth",
				Description: "Sivappu thandu keerai bunch", CollectionKey: "greens",
				Variants: []domain.Variant{
					{ID: "amaranth-bunch", SKU: "SKF-AMA-B", Title: "1 bunch", PriceCents: 1800, Currency: "INR"},
				},
			},
			{
				ID: "banana-hill", Key: "banana-hill", Name: "Hill Banana",
				Description: "Malai vazhapazham, dozen", CollectionKey: "fruits",
				Variants: []domain.Variant{
					{ID: "banana-hill-6", SKU: "SKF-BAN-6", Title: "6 pieces", PriceCents: 4200, Currency: "INR"},
					{ID: "banana-hill-12", SKU: "SKF-BAN-12", Title: "12 pieces", PriceCents: 8000, Currency: "INR"},
				},
			},
			{
				ID: "guava", Key: "guava", Name: "Pink Guava",
				CollectionKey: "fruits",
				Variants: []domain.Variant{
					{ID: "guava-500g", SKU: "SKF-GUA-500", Title: "500 g", PriceCents: 5000, Currency: "INR"},
				},
			},
			{
				ID: "red-rice", Key: "red-rice", Name: "Mapillai Samba Red Rice",
				Description: "Heritage rice variety, hand-pounded", CollectionKey: "staples",
				Variants: []domain.Variant{
					{ID: "red-rice-1kg", SKU: "SKF-RIC-1000", Title: "1 kg", PriceCents: 14000, Currency: "INR"},
					{ID: "red-rice-5kg", SKU: "SKF-RIC-5000", Title: "5 kg", PriceCents: 65000, Currency: "INR"},
				},
			},
			{
				ID: "cold-pressed-sesame-oil", Key: "cold-pressed-sesame-oil", Name: "Cold-Pressed Sesame Oil",
				Description: "Wood-pressed nallennai", CollectionKey: "staples",
				Variants: []domain.Variant{
					{ID: "sesame-oil-500ml", SKU: "SKF-OIL-500", Title: "500 ml", PriceCents: 32000, Currency: "INR"},
				},
			},
		},
	}
}
