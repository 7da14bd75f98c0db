// Package feed drives the swipe screen: it fetches the discover feed into a
// deck, turns gestures, buttons and keys into decisions, and advances the
// deck once the API has recorded each one.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/pageza/recipeswipe/internal/client"
	"github.com/pageza/recipeswipe/internal/deck"
	"github.com/pageza/recipeswipe/internal/reporter"
	"github.com/pageza/recipeswipe/internal/swipe"
)

// DefaultReauthDelay is how long the logged-out toast shows before re-authentication
const DefaultReauthDelay = 500 * time.Millisecond

// ErrBusy is returned when an action arrives while an interaction is in flight
var ErrBusy = errors.New("an interaction is still being recorded")

// ErrNoCard is returned when there is no recipe on top of the deck
var ErrNoCard = errors.New("no recipe to swipe")

// ErrNotExhausted is returned by Refresh while cards remain
var ErrNotExhausted = errors.New("feed still has recipes to swipe")

// Source fetches the discover feed
type Source interface {
	Discover(ctx context.Context, refresh bool) ([]client.Recipe, error)
}

// Authenticator signs the user in again after the API rejected the credential
type Authenticator func(ctx context.Context) error

// Scheduler runs f after d. time.AfterFunc is the default.
type Scheduler func(d time.Duration, f func())

type Config struct {
	Source   Source
	Reporter *reporter.Reporter
	Notifier reporter.Notifier
	Reauth   Authenticator

	ReauthDelay time.Duration
	Schedule    Scheduler
	Logger      *slog.Logger
}

// Controller serialises every state change behind one mutex. Network calls
// run on the reporter's goroutines and report back through callbacks.
type Controller struct {
	mu       sync.Mutex
	ctx      context.Context
	deck     *deck.Deck
	source   Source
	reporter *reporter.Reporter
	notifier reporter.Notifier
	reauth   Authenticator
	delay    time.Duration
	schedule Scheduler
	logger   *slog.Logger

	// card is the draggable top card, created on first Grab and dropped
	// whenever the top of the deck may have changed
	card *swipe.Card

	pending   bool
	reauthing bool
	closed    bool
}

// New builds a Controller. ctx bounds every call it issues.
func New(ctx context.Context, cfg Config) *Controller {
	c := &Controller{
		ctx:      ctx,
		deck:     deck.New(),
		source:   cfg.Source,
		reporter: cfg.Reporter,
		notifier: cfg.Notifier,
		reauth:   cfg.Reauth,
		delay:    cfg.ReauthDelay,
		schedule: cfg.Schedule,
		logger:   cfg.Logger,
	}
	if c.delay <= 0 {
		c.delay = DefaultReauthDelay
	}
	if c.schedule == nil {
		c.schedule = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Deck exposes the card stack for rendering
func (c *Controller) Deck() *deck.Deck {
	return c.deck
}

// Pending reports whether an interaction is waiting on the API
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Load fetches the feed into the deck
func (c *Controller) Load() error {
	return c.fetch(false)
}

// Refresh starts over with a freshly ranked feed. It is only offered once
// every card has been swiped. A failed fetch leaves the deck exhausted so
// the user can try again.
func (c *Controller) Refresh() error {
	if c.deck.State() != deck.Exhausted {
		return ErrNotExhausted
	}
	return c.fetch(true)
}

func (c *Controller) fetch(refresh bool) error {
	recipes, err := c.source.Discover(c.ctx, refresh)
	if err != nil {
		c.logger.Error("failed to load recipes", "refresh", refresh, "error", err)
		if client.IsUnauthorized(err) {
			c.notifyError(reporter.MsgLoggedOut)
			c.scheduleReauth()
		}
		return err
	}
	c.deck.Load(recipes)
	c.mu.Lock()
	c.card = nil
	c.mu.Unlock()
	c.logger.Info("feed loaded", "recipes", len(recipes), "refresh", refresh)
	return nil
}

func (c *Controller) Pass() error {
	return c.decide(false, false)
}

func (c *Controller) Like() error {
	return c.decide(true, false)
}

// SuperLike is only reachable from a button or key, never from a drag
func (c *Controller) SuperLike() error {
	return c.decide(true, true)
}

// Grab starts dragging the top card. It refuses while an interaction is
// pending or when there is no card.
func (c *Controller) Grab(at time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.pending {
		return false
	}
	if c.card == nil {
		if c.deck.Current() == nil {
			return false
		}
		c.card = &swipe.Card{Top: true}
	}
	return c.card.Grab(at)
}

// Drag moves the grabbed card to offset px from where it was grabbed
func (c *Controller) Drag(offset float64, at time.Time) {
	if card := c.Card(); card != nil {
		card.Drag(offset, at)
	}
}

// Card is the top card as last dragged, or nil before the first Grab
func (c *Controller) Card() *swipe.Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.card
}

// Release lets go of the grabbed card. A like or pass is reported like the
// matching button; None springs the card back to the center.
func (c *Controller) Release() (swipe.Decision, error) {
	card := c.Card()
	if card == nil {
		return swipe.None, nil
	}

	var err error
	card.OnSwipeRight = func() { err = c.Like() }
	card.OnSwipeLeft = func() { err = c.Pass() }
	d := card.Release()
	if err != nil {
		c.mu.Lock()
		if c.card == card {
			c.card = nil
		}
		c.mu.Unlock()
	}
	return d, err
}

// HandleKey maps keyboard shortcuts onto actions. It reports whether the key
// was bound; ignored keys and keys pressed while busy return false.
func (c *Controller) HandleKey(key string) bool {
	var action func() error
	switch key {
	case "ArrowLeft", "x", "X":
		action = c.Pass
	case "ArrowRight", "l", "L", " ":
		action = c.Like
	case "ArrowUp", "s", "S":
		action = c.SuperLike
	default:
		return false
	}
	return action() == nil
}

func (c *Controller) decide(liked, superLiked bool) error {
	c.mu.Lock()
	if c.closed || c.pending {
		c.mu.Unlock()
		return ErrBusy
	}
	current := c.deck.Current()
	if current == nil {
		c.mu.Unlock()
		return ErrNoCard
	}
	c.pending = true
	c.mu.Unlock()

	c.logger.Debug("reporting decision", "recipe", current.ID, "liked", liked, "superLiked", superLiked)
	c.reporter.Report(c.ctx, current.ID, liked, superLiked, c.onOutcome)
	return nil
}

func (c *Controller) onOutcome(o reporter.Outcome) {
	if o.Unauthorized() {
		c.scheduleReauth()
	}
	if o.Call != reporter.CallInteract {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false
	// On failure the card comes back to the center; on success a new top
	c.card = nil
	if c.closed || o.Err != nil {
		return
	}
	c.deck.Advance()
}

// scheduleReauth runs the authenticator once after the delay, however many
// calls were rejected together.
func (c *Controller) scheduleReauth() {
	c.mu.Lock()
	if c.reauthing || c.closed || c.reauth == nil {
		c.mu.Unlock()
		return
	}
	c.reauthing = true
	c.mu.Unlock()

	c.schedule(c.delay, func() {
		defer func() {
			c.mu.Lock()
			c.reauthing = false
			c.mu.Unlock()
		}()
		if err := c.reauth(c.ctx); err != nil {
			c.logger.Error("re-authentication failed", "error", err)
		}
	})
}

func (c *Controller) notifyError(msg string) {
	if c.notifier != nil {
		c.notifier.Error(msg)
	}
}

// Wait blocks until in-flight calls have reported back
func (c *Controller) Wait() {
	c.reporter.Wait()
}

// Close discards the results of calls still in flight
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
