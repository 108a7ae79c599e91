package services

import (
	"sync"

	"github.com/google/uuid"
)

// Ticket identifies one in-flight dashboard load.
type Ticket struct {
	UserID string
	ID     uuid.UUID
}

// FetchGuard tracks the newest load per user. Starting a new load for the
// same user, or signing the user out, makes older tickets stale so their
// results are never delivered.
type FetchGuard struct {
	mu     sync.Mutex
	latest map[string]uuid.UUID
}

func NewFetchGuard() *FetchGuard {
	return &FetchGuard{latest: make(map[string]uuid.UUID)}
}

func (g *FetchGuard) Begin(userID string) Ticket {
	t := Ticket{UserID: userID, ID: uuid.New()}
	g.mu.Lock()
	g.latest[userID] = t.ID
	g.mu.Unlock()
	return t
}

func (g *FetchGuard) Valid(t Ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, ok := g.latest[t.UserID]
	return ok && id == t.ID
}

// Invalidate drops every in-flight load of the user.
func (g *FetchGuard) Invalidate(userID string) {
	g.mu.Lock()
	delete(g.latest, userID)
	g.mu.Unlock()
}

// Finish releases the ticket if it is still the newest one.
func (g *FetchGuard) Finish(t Ticket) {
	g.mu.Lock()
	if id, ok := g.latest[t.UserID]; ok && id == t.ID {
		delete(g.latest, t.UserID)
	}
	g.mu.Unlock()
}

// InFlight is the number of users with a load running.
func (g *FetchGuard) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.latest)
}
