// Package persist stores the session store's durable snapshot projection.
package persist

import (
	"sync"

	"github.com/pkannaiyan/sk-organic-farms/internal/domain"
)

// Projection is the restricted subset of store state written to durable
// storage. The busy flag is transient and deliberately absent.
type Projection struct {
	CartID          string            `json:"cartId,omitempty"`
	Lines           []domain.CartLine `json:"lines,omitempty"`
	TotalCents      int64             `json:"totalCents"`
	Count           int               `json:"count"`
	User            *domain.Customer  `json:"user,omitempty"`
	AccessToken     string            `json:"accessToken,omitempty"`
	IsAuthenticated bool              `json:"isAuthenticated"`
}

// Persister saves and restores the snapshot projection. Load reports ok=false
// when no usable snapshot exists; missing or corrupt data is not an error.
type Persister interface {
	Save(p Projection) error
	Load() (Projection, bool, error)
}

// Memory is an in-process Persister for tests.
type Memory struct {
	mu    sync.Mutex
	proj  Projection
	ok    bool
	saves int
}

func (m *Memory) Save(p Projection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.proj = p
	m.ok = true
	m.saves++
	return nil
}

func (m *Memory) Load() (Projection, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.proj, m.ok, nil
}

// Saves reports how many times Save has been called.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
