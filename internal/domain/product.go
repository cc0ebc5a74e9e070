package domain

// Collection groups products for the storefront's catalog screens.
type Collection struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Product is a catalog entry with one or more purchasable variants.
type Product struct {
	ID            string    `json:"id"`
	Key           string    `json:"key"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	CollectionKey string    `json:"collectionKey,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	Variants      []Variant `json:"variants"`
}

// Variant is a specific purchasable configuration of a product, e.g. a pack
// size. Variant ids are what cart lines reference.
type Variant struct {
	ID         string `json:"id"`
	SKU        string `json:"sku,omitempty"`
	Title      string `json:"title"`
	PriceCents int64  `json:"priceCents"`
	Currency   string `json:"currency"`
}
