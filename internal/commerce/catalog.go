package commerce

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkannaiyan/sk-organic-farms/internal/domain"
)

type collectionList struct {
	Results []domain.Collection `json:"results"`
	Total   int                 `json:"total"`
}

type productList struct {
	Results []domain.Product `json:"results"`
	Total   int              `json:"total"`
}

// Collections lists the storefront's product collections.
func (c *Client) Collections(ctx context.Context) ([]domain.Collection, error) {
	var out collectionList
	if err := c.doJSON(ctx, http.MethodGet, c.url("/collections"), "", nil, &out); err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return out.Results, nil
}

// Products lists products, optionally filtered by collection key.
func (c *Client) Products(ctx context.Context, collectionKey string) ([]domain.Product, error) {
	path := "/products"
	if collectionKey != "" {
		path += "?collection=" + url.QueryEscape(collectionKey)
	}
	var out productList
	if err := c.doJSON(ctx, http.MethodGet, c.url(path), "", nil, &out); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out.Results, nil
}

// ProductByKey fetches a single product.
func (c *Client) ProductByKey(ctx context.Context, key string) (*domain.Product, error) {
	var out domain.Product
	if err := c.doJSON(ctx, http.MethodGet, c.url("/products/"+url.PathEscape(key)), "", nil, &out); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", key, err)
	}
	return &out, nil
}
