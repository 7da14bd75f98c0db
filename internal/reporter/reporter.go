// Package reporter sends each swipe decision to the API as two independent
// calls, recording the interaction and saving liked recipes.
package reporter

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/pageza/recipeswipe/internal/client"
)

// Toast messages shown to the user
const (
	MsgSaved        = "Recipe Saved!"
	MsgInteractFail = "Failed to record your choice. Please try again."
	MsgSaveFail     = "Failed to save recipe. Please try again."
	MsgLoggedOut    = "You are logged out. Logging in again..."
)

// API is the part of the client the reporter calls
type API interface {
	Interact(ctx context.Context, recipeID uuid.UUID, liked, superLiked bool) error
	Save(ctx context.Context, recipeID uuid.UUID) error
}

// Notifier shows transient messages to the user
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Call identifies which of the two requests an Outcome belongs to
type Call int

const (
	CallInteract Call = iota
	CallSave
)

func (c Call) String() string {
	if c == CallSave {
		return "save"
	}
	return "interact"
}

// Outcome is the result of one call
type Outcome struct {
	RecipeID uuid.UUID
	Call     Call
	Err      error
}

// Unauthorized reports whether the call failed because the credential was rejected
func (o Outcome) Unauthorized() bool {
	return client.IsUnauthorized(o.Err)
}

type Reporter struct {
	api      API
	notifier Notifier
	logger   *slog.Logger
	wg       sync.WaitGroup
}

func New(api API, notifier Notifier, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{api: api, notifier: notifier, logger: logger}
}

// Report issues the interact call and, for likes and super-likes, the save
// call. Both run on their own goroutine and done (which may be nil) is
// invoked once per call, in whatever order they finish. Neither waits for
// or undoes the other, and nothing is retried or deduplicated.
func (r *Reporter) Report(ctx context.Context, recipeID uuid.UUID, liked, superLiked bool, done func(Outcome)) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		err := r.api.Interact(ctx, recipeID, liked, superLiked)
		r.finish(Outcome{RecipeID: recipeID, Call: CallInteract, Err: err}, done)
	}()

	if !liked && !superLiked {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		err := r.api.Save(ctx, recipeID)
		r.finish(Outcome{RecipeID: recipeID, Call: CallSave, Err: err}, done)
	}()
}

func (r *Reporter) finish(o Outcome, done func(Outcome)) {
	switch {
	case o.Err == nil:
		r.logger.Debug("call succeeded", "call", o.Call, "recipe", o.RecipeID)
		if o.Call == CallSave {
			r.notify(true, MsgSaved)
		}
	case o.Unauthorized():
		r.logger.Warn("credential rejected", "call", o.Call, "recipe", o.RecipeID)
		r.notify(false, MsgLoggedOut)
	default:
		r.logger.Error("call failed", "call", o.Call, "recipe", o.RecipeID, "error", o.Err)
		if o.Call == CallSave {
			r.notify(false, MsgSaveFail)
		} else {
			r.notify(false, MsgInteractFail)
		}
	}

	if done != nil {
		done(o)
	}
}

func (r *Reporter) notify(ok bool, msg string) {
	if r.notifier == nil {
		return
	}
	if ok {
		r.notifier.Success(msg)
	} else {
		r.notifier.Error(msg)
	}
}

// Wait blocks until every call issued so far has finished
func (r *Reporter) Wait() {
	r.wg.Wait()
}
