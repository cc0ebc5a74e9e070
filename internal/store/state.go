package store

import (
	"github.com/pkannaiyan/sk-organic-farms/internal/domain"
	"github.com/pkannaiyan/sk-organic-farms/internal/persist"
)

// CartSnapshot is the locally held mirror of the remote cart. TotalCents is
// always the server-quoted total; Count is derived as the sum of line
// quantities and recomputed on every sync, never adjusted incrementally.
type CartSnapshot struct {
	CartID     string
	Lines      []domain.CartLine
	TotalCents int64
	Count      int
}

// UserSession is the authenticated customer, if any. AccessToken is opaque:
// it is stored and attached to requests, never parsed.
type UserSession struct {
	ID          string
	Email       string
	FirstName   string
	LastName    string
	AccessToken string
}

// State is a read-only view of the store handed to UI consumers.
type State struct {
	Cart CartSnapshot
	User *UserSession
	Busy bool
}

// Authenticated reports whether a user session is present.
func (s State) Authenticated() bool {
	return s.User != nil
}

func projectionFromState(cart CartSnapshot, user *UserSession) persist.Projection {
	p := persist.Projection{
		CartID:     cart.CartID,
		Lines:      cloneLines(cart.Lines),
		TotalCents: cart.TotalCents,
		Count:      cart.Count,
	}
	if user != nil {
		p.User = &domain.Customer{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		}
		p.AccessToken = user.AccessToken
		p.IsAuthenticated = true
	}
	return p
}

func stateFromProjection(p persist.Projection) (CartSnapshot, *UserSession) {
	cart := CartSnapshot{
		CartID:     p.CartID,
		Lines:      cloneLines(p.Lines),
		TotalCents: p.TotalCents,
	}
	// A snapshot with lines but no cart id cannot be resynced; start empty.
	if cart.CartID == "" {
		cart = CartSnapshot{}
	}
	cart.Count = 0
	for _, line := range cart.Lines {
		cart.Count += line.Quantity
	}

	var user *UserSession
	if p.IsAuthenticated && p.User != nil && p.AccessToken != "" {
		user = &UserSession{
			ID:          p.User.ID,
			Email:       p.User.Email,
			FirstName:   p.User.FirstName,
			LastName:    p.User.LastName,
			AccessToken: p.AccessToken,
		}
	}
	return cart, user
}

func cloneLines(lines []domain.CartLine) []domain.CartLine {
	if len(lines) == 0 {
		return nil
	}
	dup := make([]domain.CartLine, len(lines))
	copy(dup, lines)
	return dup
}
