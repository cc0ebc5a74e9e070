package domain

// Cart mirrors the commerce platform's cart entity as last reported by the
// server. It is never assembled locally; every instance is decoded from a
// server response.
type Cart struct {
	ID         string     `json:"id"`
	Currency   string     `json:"currency"`
	TotalCents int64      `json:"totalCents"`
	Lines      []CartLine `json:"lineItems,omitempty"`
}

// CartLine is one entry in a cart: a quantity of one purchasable variant.
// Line ids are assigned by the cart service and stay stable across quantity
// updates.
type CartLine struct {
	ID             string `json:"id"`
	VariantID      string `json:"variantId"`
	Title          string `json:"title"`
	VariantTitle   string `json:"variantTitle,omitempty"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	ImageURL       string `json:"imageUrl,omitempty"`
}

// TotalQuantity sums the line quantities.
func (c Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}
