package commerce

import (
	"fmt"

	"github.com/pkannaiyan/sk-organic-farms/internal/domain"
)

// Wire shapes for the platform's JSON payloads. Amounts are cent-precision;
// the client never computes prices, it only projects what the server quotes.

type wirePrice struct {
	CurrencyCode   string `json:"currencyCode"`
	CentAmount     int64  `json:"centAmount"`
	FractionDigits int    `json:"fractionDigits"`
}

type wireLineItem struct {
	ID           string    `json:"id"`
	VariantID    string    `json:"variantId"`
	Name         string    `json:"name"`
	VariantTitle string    `json:"variantTitle,omitempty"`
	Quantity     int       `json:"quantity"`
	Price        wirePrice `json:"price"`
	TotalPrice   wirePrice `json:"totalPrice"`
	ImageURL     string    `json:"imageUrl,omitempty"`
}

type wireCart struct {
	ID                    string         `json:"id"`
	Version               int            `json:"version"`
	Currency              string         `json:"currency"`
	CartState             string         `json:"cartState"`
	TotalPrice            wirePrice      `json:"totalPrice"`
	LineItems             []wireLineItem `json:"lineItems"`
	TotalLineItemQuantity int            `json:"totalLineItemQuantity,omitempty"`
}

func (w wireCart) toDomain() (*domain.Cart, error) {
	if w.ID == "" {
		return nil, fmt.Errorf("cart response missing id")
	}
	cart := &domain.Cart{
		ID:         w.ID,
		Currency:   w.Currency,
		TotalCents: w.TotalPrice.CentAmount,
	}
	for _, li := range w.LineItems {
		if li.ID == "" {
			return nil, fmt.Errorf("cart %s: line item missing id", w.ID)
		}
		cart.Lines = append(cart.Lines, domain.CartLine{
			ID:             li.ID,
			VariantID:      li.VariantID,
			Title:          li.Name,
			VariantTitle:   li.VariantTitle,
			UnitPriceCents: li.Price.CentAmount,
			Quantity:       li.Quantity,
			ImageURL:       li.ImageURL,
		})
	}
	return cart, nil
}

type wireCustomer struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

func (w wireCustomer) toDomain() (*domain.Customer, error) {
	if w.ID == "" {
		return nil, fmt.Errorf("customer response missing id")
	}
	return &domain.Customer{
		ID:        w.ID,
		Email:     w.Email,
		FirstName: w.FirstName,
		LastName:  w.LastName,
	}, nil
}
