// Package store owns the shopper's cart and identity state. Every state
// change goes through the remote commerce API; the in-memory snapshot is
// always either the default empty state or a faithful mirror of the last
// successful server response.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/pkannaiyan/sk-organic-farms/internal/commerce"
	"github.com/pkannaiyan/sk-organic-farms/internal/domain"
	"github.com/pkannaiyan/sk-organic-farms/internal/persist"
)

// CartAPI is the slice of the commerce client the store needs for carts.
type CartAPI interface {
	CreateCart(ctx context.Context, currency string) (*domain.Cart, error)
	AddLines(ctx context.Context, cartID string, lines []commerce.LineInput) (*domain.Cart, error)
	UpdateLine(ctx context.Context, cartID, lineID string, quantity int) (*domain.Cart, error)
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error)
}

// IdentityAPI is the slice of the commerce client the store needs for auth.
type IdentityAPI interface {
	CreateAccessToken(ctx context.Context, email, password string) (string, error)
	GetCustomer(ctx context.Context, accessToken string) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, in commerce.SignupInput) (*domain.Customer, error)
}

// ProductInfo is display context from the screen issuing an add. Lines are
// never synthesized from it; the server response is the source of truth. It
// only enriches logs.
type ProductInfo struct {
	Title    string
	ImageURL string
}

// Store is the single session store instance. Construct it once at process
// start and hand it to every consumer; no other component mutates its state.
type Store struct {
	mu   sync.Mutex
	cart CartSnapshot
	user *UserSession
	busy bool

	carts     CartAPI
	identity  IdentityAPI
	persister persist.Persister
	currency  string
	logger    *zap.Logger
}

// New builds a Store and rehydrates it once from the persister. A missing or
// unusable snapshot seeds the default empty state.
func New(carts CartAPI, identity IdentityAPI, persister persist.Persister, currency string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		carts:     carts,
		identity:  identity,
		persister: persister,
		currency:  currency,
		logger:    logger,
	}
	if persister != nil {
		proj, ok, err := persister.Load()
		if err != nil {
			logger.Warn("load snapshot", zap.Error(err))
		} else if ok {
			s.cart, s.user = stateFromProjection(proj)
		}
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Cart: s.cart,
		Busy: s.busy,
	}
	st.Cart.Lines = cloneLines(s.cart.Lines)
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

// Busy reports whether an action is in flight.
func (s *Store) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// InitializeCart ensures a remote cart exists. On network failure the cart id
// stays unset; the error is logged, not returned.
func (s *Store) InitializeCart(ctx context.Context) {
	s.setBusy(true)
	defer s.setBusy(false)
	if _, err := s.ensureCart(ctx); err != nil {
		s.logger.Warn("initialize cart", zap.Error(err))
	}
}

// AddToCart adds quantity of a variant, creating the remote cart first if
// needed, then replaces the local snapshot from the server's cart. On any
// failure the snapshot is left unchanged.
func (s *Store) AddToCart(ctx context.Context, variantID string, quantity int, info ProductInfo) {
	if variantID == "" || quantity < 1 {
		s.logger.Warn("add to cart: invalid input",
			zap.String("variantId", variantID), zap.Int("quantity", quantity))
		return
	}
	s.setBusy(true)
	defer s.setBusy(false)

	cartID, err := s.ensureCart(ctx)
	if err != nil {
		s.logger.Error("add to cart: ensure cart", zap.Error(err))
		return
	}
	cart, err := s.carts.AddLines(ctx, cartID, []commerce.LineInput{{VariantID: variantID, Quantity: quantity}})
	if err != nil {
		s.logger.Error("add to cart",
			zap.String("variantId", variantID),
			zap.String("product", info.Title),
			zap.Error(err))
		return
	}
	s.applyCart(cart)
}

// UpdateQuantity changes an existing line's quantity. No-op when no cart
// exists. Zero-quantity semantics are the server's call.
func (s *Store) UpdateQuantity(ctx context.Context, lineID string, quantity int) {
	cartID := s.cartID()
	if cartID == "" {
		return
	}
	s.setBusy(true)
	defer s.setBusy(false)

	cart, err := s.carts.UpdateLine(ctx, cartID, lineID, quantity)
	if err != nil {
		s.logger.Error("update quantity",
			zap.String("lineId", lineID), zap.Int("quantity", quantity), zap.Error(err))
		return
	}
	s.applyCart(cart)
}

// RemoveFromCart deletes a line. No-op when no cart exists.
func (s *Store) RemoveFromCart(ctx context.Context, lineID string) {
	cartID := s.cartID()
	if cartID == "" {
		return
	}
	s.setBusy(true)
	defer s.setBusy(false)

	cart, err := s.carts.RemoveLines(ctx, cartID, []string{lineID})
	if err != nil {
		s.logger.Error("remove from cart", zap.String("lineId", lineID), zap.Error(err))
		return
	}
	s.applyCart(cart)
}

// ClearCart resets the local cart to the default empty state. The remote cart
// entity is left alone; this is the only transition that discards the cart id.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = CartSnapshot{}
	s.persistLocked()
}

// Login exchanges credentials for a token, fetches the profile, and installs
// the session. On failure the session is unchanged and the error is returned.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.setBusy(true)
	defer s.setBusy(false)

	token, err := s.identity.CreateAccessToken(ctx, email, password)
	if err != nil {
		s.logger.Warn("login", zap.String("email", email), zap.Error(err))
		return err
	}
	customer, err := s.identity.GetCustomer(ctx, token)
	if err != nil {
		s.logger.Warn("login: fetch profile", zap.String("email", email), zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &UserSession{
		ID:          customer.ID,
		Email:       customer.Email,
		FirstName:   customer.FirstName,
		LastName:    customer.LastName,
		AccessToken: token,
	}
	s.persistLocked()
	return nil
}

// Logout clears the session locally. It never fails.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.persistLocked()
}

// Register creates the account, then logs in with the same credentials.
func (s *Store) Register(ctx context.Context, email, password, firstName, lastName string) error {
	s.setBusy(true)
	_, err := s.identity.CreateCustomer(ctx, commerce.SignupInput{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	s.setBusy(false)
	if err != nil {
		s.logger.Warn("register", zap.String("email", email), zap.Error(err))
		return err
	}
	return s.Login(ctx, email, password)
}

func (s *Store) cartID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.CartID
}

// ensureCart returns the current cart id, creating a remote cart when none
// exists yet. Idempotent for sequential callers.
func (s *Store) ensureCart(ctx context.Context) (string, error) {
	if id := s.cartID(); id != "" {
		return id, nil
	}
	cart, err := s.carts.CreateCart(ctx, s.currency)
	if err != nil {
		return "", err
	}
	s.applyCart(cart)
	return cart.ID, nil
}

// applyCart replaces lines, total, and count in one transition so observers
// never see a partially updated cart. Count is recomputed from the returned
// lines to stay aligned with server-side merging or adjustments.
func (s *Store) applyCart(cart *domain.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = CartSnapshot{
		CartID:     cart.ID,
		Lines:      cloneLines(cart.Lines),
		TotalCents: cart.TotalCents,
		Count:      cart.TotalQuantity(),
	}
	s.persistLocked()
}

func (s *Store) setBusy(b bool) {
	s.mu.Lock()
	s.busy = b
	s.mu.Unlock()
}

func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(projectionFromState(s.cart, s.user)); err != nil {
		s.logger.Warn("persist snapshot", zap.Error(err))
	}
}
