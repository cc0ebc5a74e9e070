package commerce

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkannaiyan/sk-organic-farms/internal/domain"
)

// SignupInput captures the fields for account creation.
type SignupInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// CreateAccessToken exchanges credentials for an opaque bearer token.
func (c *Client) CreateAccessToken(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", email)
	form.Set("password", password)
	form.Set("scope", "manage_project:"+c.projectKey)

	var out tokenResponse
	tokenURL := c.baseURL + "/oauth/" + c.projectKey + "/customers/token"
	if err := c.doForm(ctx, tokenURL, "", form, &out); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("create access token: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}
	return out.AccessToken, nil
}

// GetCustomer fetches the profile bound to an access token.
func (c *Client) GetCustomer(ctx context.Context, accessToken string) (*domain.Customer, error) {
	var out wireCustomer
	if err := c.doJSON(ctx, http.MethodGet, c.url("/me"), accessToken, nil, &out); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return out.toDomain()
}

// CreateCustomer registers a new account and returns the created profile.
func (c *Client) CreateCustomer(ctx context.Context, in SignupInput) (*domain.Customer, error) {
	var out wireCustomer
	if err := c.doJSON(ctx, http.MethodPost, c.url("/me/signup"), "", in, &out); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
			return nil, domain.ErrAlreadyExists
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return out.toDomain()
}
