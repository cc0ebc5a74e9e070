package commerce

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pkannaiyan/sk-organic-farms/internal/domain"
)

// LineInput identifies a variant and quantity to add to a cart.
type LineInput struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type cartAction struct {
	Action     string `json:"action"`
	VariantID  string `json:"variantId,omitempty"`
	LineItemID string `json:"lineItemId,omitempty"`
	Quantity   int    `json:"quantity"`
}

type cartUpdateRequest struct {
	Actions []cartAction `json:"actions"`
}

// CreateCart creates an empty remote cart in the given currency.
func (c *Client) CreateCart(ctx context.Context, currency string) (*domain.Cart, error) {
	var out wireCart
	in := map[string]string{"currency": currency}
	if err := c.doJSON(ctx, http.MethodPost, c.url("/carts"), "", in, &out); err != nil {
		return nil, fmt.Errorf("create cart: %w", mapCartErr(err))
	}
	return out.toDomain()
}

// AddLines appends lines to the cart and returns the authoritative cart.
func (c *Client) AddLines(ctx context.Context, cartID string, lines []LineInput) (*domain.Cart, error) {
	actions := make([]cartAction, 0, len(lines))
	for _, l := range lines {
		actions = append(actions, cartAction{Action: "addLineItem", VariantID: l.VariantID, Quantity: l.Quantity})
	}
	return c.updateCart(ctx, cartID, actions)
}

// UpdateLine changes a line's quantity. The server decides zero-quantity
// semantics; this platform removes the line.
func (c *Client) UpdateLine(ctx context.Context, cartID, lineID string, quantity int) (*domain.Cart, error) {
	return c.updateCart(ctx, cartID, []cartAction{{
		Action:     "changeLineItemQuantity",
		LineItemID: lineID,
		Quantity:   quantity,
	}})
}

// RemoveLines deletes lines from the cart and returns the authoritative cart.
func (c *Client) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error) {
	actions := make([]cartAction, 0, len(lineIDs))
	for _, id := range lineIDs {
		actions = append(actions, cartAction{Action: "removeLineItem", LineItemID: id})
	}
	return c.updateCart(ctx, cartID, actions)
}

func (c *Client) updateCart(ctx context.Context, cartID string, actions []cartAction) (*domain.Cart, error) {
	if cartID == "" {
		return nil, fmt.Errorf("update cart: %w", domain.ErrNotFound)
	}
	if len(actions) == 0 {
		return nil, errors.New("update cart: actions required")
	}
	var out wireCart
	in := cartUpdateRequest{Actions: actions}
	if err := c.doJSON(ctx, http.MethodPost, c.url("/carts/"+cartID), "", in, &out); err != nil {
		return nil, fmt.Errorf("update cart %s: %w", cartID, mapCartErr(err))
	}
	return out.toDomain()
}

func mapCartErr(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return err
}
