// Package devserver is an in-process stand-in for the commerce platform:
// the same wire contract the client consumes, backed by memory. It exists
// for local development and as an httptest backend in integration tests.
package devserver

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkannaiyan/sk-organic-farms/internal/commerce"
	"github.com/pkannaiyan/sk-organic-farms/internal/domain"
)

const (
	accessTokenTTL  = 48 * time.Hour
	passwordMinimum = 8
)

// Backend holds all stand-in state. Everything is process-lifetime; restarts
// start clean, which is the point of a dev fixture.
type Backend struct {
	mu         sync.Mutex
	projectKey string
	catalog    Catalog

	carts     map[string]*domain.Cart
	customers map[string]*customerRecord // keyed by lowercased email
	byID      map[string]*customerRecord
	tokens    map[string]tokenRecord

	createdCarts int
}

type customerRecord struct {
	domain.Customer
	passwordHash []byte
}

type tokenRecord struct {
	customerID string
	expiresAt  time.Time
}

// NewBackend builds a Backend serving the given project key and catalog.
func NewBackend(projectKey string, catalog Catalog) *Backend {
	return &Backend{
		projectKey: projectKey,
		catalog:    catalog,
		carts:      make(map[string]*domain.Cart),
		customers:  make(map[string]*customerRecord),
		byID:       make(map[string]*customerRecord),
		tokens:     make(map[string]tokenRecord),
	}
}

// CreatedCarts reports how many carts were created, for tests.
func (b *Backend) CreatedCarts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.createdCarts
}

func (b *Backend) createCart(currency string) (*domain.Cart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if strings.TrimSpace(currency) == "" {
		return nil, errors.New("currency required")
	}
	cart := &domain.Cart{
		ID:       uuid.NewString(),
		Currency: currency,
	}
	b.carts[cart.ID] = cart
	b.createdCarts++
	return cloneCart(cart), nil
}

func (b *Backend) getCart(id string) (*domain.Cart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cart, ok := b.carts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneCart(cart), nil
}

type cartAction struct {
	Action     string `json:"action"`
	VariantID  string `json:"variantId"`
	LineItemID string `json:"lineItemId"`
	Quantity   int    `json:"quantity"`
}

func (b *Backend) updateCart(id string, actions []cartAction) (*domain.Cart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cart, ok := b.carts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if len(actions) == 0 {
		return nil, errors.New("actions required")
	}
	for _, action := range actions {
		switch strings.ToLower(strings.TrimSpace(action.Action)) {
		case "addlineitem":
			if err := b.addLineItem(cart, action.VariantID, action.Quantity); err != nil {
				return nil, err
			}
		case "changelineitemquantity":
			if err := changeLineQuantity(cart, action.LineItemID, action.Quantity); err != nil {
				return nil, err
			}
		case "removelineitem":
			if err := removeLine(cart, action.LineItemID); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unsupported action %q", action.Action)
		}
	}
	retotal(cart)
	return cloneCart(cart), nil
}

// addLineItem merges into an existing line for the same variant, as the real
// platform does.
func (b *Backend) addLineItem(cart *domain.Cart, variantID string, quantity int) error {
	if strings.TrimSpace(variantID) == "" {
		return errors.New("variantId required")
	}
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	product, variant, ok := b.catalog.FindVariant(variantID)
	if !ok {
		return fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
	}
	for i := range cart.Lines {
		if cart.Lines[i].VariantID == variantID {
			cart.Lines[i].Quantity += quantity
			return nil
		}
	}
	cart.Lines = append(cart.Lines, domain.CartLine{
		ID:             uuid.NewString(),
		VariantID:      variantID,
		Title:          product.Name,
		VariantTitle:   variant.Title,
		UnitPriceCents: variant.PriceCents,
		Quantity:       quantity,
		ImageURL:       product.ImageURL,
	})
	return nil
}

// changeLineQuantity removes the line at quantity zero or below.
func changeLineQuantity(cart *domain.Cart, lineID string, quantity int) error {
	if strings.TrimSpace(lineID) == "" {
		return errors.New("lineItemId required")
	}
	for i := range cart.Lines {
		if cart.Lines[i].ID == lineID {
			if quantity <= 0 {
				cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
			} else {
				cart.Lines[i].Quantity = quantity
			}
			return nil
		}
	}
	return fmt.Errorf("line %s: %w", lineID, domain.ErrNotFound)
}

func removeLine(cart *domain.Cart, lineID string) error {
	if strings.TrimSpace(lineID) == "" {
		return errors.New("lineItemId required")
	}
	for i := range cart.Lines {
		if cart.Lines[i].ID == lineID {
			cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("line %s: %w", lineID, domain.ErrNotFound)
}

func retotal(cart *domain.Cart) {
	var total int64
	for _, line := range cart.Lines {
		total += line.UnitPriceCents * int64(line.Quantity)
	}
	cart.TotalCents = total
}

func cloneCart(cart *domain.Cart) *domain.Cart {
	dup := *cart
	if len(cart.Lines) > 0 {
		dup.Lines = make([]domain.CartLine, len(cart.Lines))
		copy(dup.Lines, cart.Lines)
	}
	return &dup
}

func (b *Backend) signup(in commerce.SignupInput) (*domain.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, errors.New("email required")
	}
	if len(strings.TrimSpace(in.Password)) < passwordMinimum {
		return nil, fmt.Errorf("password must be at least %d characters", passwordMinimum)
	}
	if _, exists := b.customers[email]; exists {
		return nil, domain.ErrAlreadyExists
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(in.Password)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	rec := &customerRecord{
		Customer: domain.Customer{
			ID:        uuid.NewString(),
			Email:     email,
			FirstName: in.FirstName,
			LastName:  in.LastName,
		},
		passwordHash: hashed,
	}
	b.customers[email] = rec
	b.byID[rec.ID] = rec
	c := rec.Customer
	return &c, nil
}

func (b *Backend) issueToken(email, password string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.customers[strings.TrimSpace(strings.ToLower(email))]
	if !ok {
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(strings.TrimSpace(password))); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	token, err := randomToken()
	if err != nil {
		return "", err
	}
	b.tokens[token] = tokenRecord{customerID: rec.ID, expiresAt: time.Now().Add(accessTokenTTL)}
	return token, nil
}

func (b *Backend) customerByToken(token string) (*domain.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	meta, ok := b.tokens[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	if time.Now().After(meta.expiresAt) {
		delete(b.tokens, token)
		return nil, domain.ErrInvalidToken
	}
	rec, ok := b.byID[meta.customerID]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	c := rec.Customer
	return &c, nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
