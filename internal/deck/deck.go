// Package deck holds the ordered recipe cards being swiped and the cursor
// pointing at the top one.
package deck

import (
	"sync"

	"github.com/pageza/recipeswipe/internal/client"
)

// State of a Deck
type State int

const (
	Loading State = iota
	Active
	Exhausted
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Active:
		return "active"
	default:
		return "exhausted"
	}
}

// Deck is a cursor over a fetched recipe collection. The cursor is view
// state only: the server has no copy of it and every Load starts again at 0.
// Invariant: 0 <= cursor <= len(recipes).
type Deck struct {
	mu      sync.RWMutex
	recipes []client.Recipe
	cursor  int
	loaded  bool
}

func New() *Deck {
	return &Deck{}
}

// Load replaces the collection and resets the cursor
func (d *Deck) Load(recipes []client.Recipe) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.recipes = append([]client.Recipe(nil), recipes...)
	d.cursor = 0
	d.loaded = true
}

func (d *Deck) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state()
}

func (d *Deck) state() State {
	switch {
	case !d.loaded:
		return Loading
	case d.cursor < len(d.recipes):
		return Active
	default:
		return Exhausted
	}
}

// Current is the top card, or nil unless Active
func (d *Deck) Current() *client.Recipe {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.at(d.cursor)
}

// Next is the card rendered beneath the top one, or nil if there is none
func (d *Deck) Next() *client.Recipe {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.state() != Active {
		return nil
	}
	return d.at(d.cursor + 1)
}

func (d *Deck) at(i int) *client.Recipe {
	if !d.loaded || i >= len(d.recipes) {
		return nil
	}
	r := d.recipes[i]
	return &r
}

// Advance moves the cursor past the top card. It reports false, and does
// nothing, unless the deck is Active.
func (d *Deck) Advance() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state() != Active {
		return false
	}
	d.cursor++
	return true
}

func (d *Deck) Cursor() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cursor
}

func (d *Deck) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.recipes)
}
