package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pageza/recipeswipe/internal/client"
	"github.com/pageza/recipeswipe/internal/deck"
	"github.com/pageza/recipeswipe/internal/feed"
	"github.com/pageza/recipeswipe/internal/reporter"
	"github.com/pageza/recipeswipe/internal/swipe"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "Path to the client settings file")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	settings, err := client.LoadSettings(*configPath)
	if err != nil {
		logger.Error("failed to load settings", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &app{
		api:      client.New(settings, client.NewFileTokenStore(settings.TokenFile), client.WithLogger(logger)),
		settings: settings,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		logger:   logger,
	}

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "feed"
	}
	if err := app.run(ctx, cmd); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "recipeswipe.yaml"
	}
	return filepath.Join(home, ".recipeswipe", "config.yaml")
}

type app struct {
	api      *client.Client
	settings client.Settings
	in       *bufio.Reader
	out      io.Writer
	logger   *slog.Logger

	needLogin atomic.Bool
}

func (a *app) run(ctx context.Context, cmd string) error {
	switch cmd {
	case "login":
		return a.login(ctx)
	case "register":
		return a.register(ctx)
	case "logout":
		return a.api.Logout(ctx)
	case "saved":
		return a.saved(ctx)
	case "feed":
		return a.feed(ctx)
	default:
		return fmt.Errorf("unknown command %q (want feed, login, register, logout or saved)", cmd)
	}
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) login(ctx context.Context) error {
	username, err := a.prompt("username: ")
	if err != nil {
		return err
	}
	password, err := a.prompt("password: ")
	if err != nil {
		return err
	}
	resp, err := a.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome back, %s!\n", resp.User.Username)
	return nil
}

func (a *app) register(ctx context.Context) error {
	var reg client.Registration
	var err error
	if reg.Username, err = a.prompt("username: "); err != nil {
		return err
	}
	if reg.Password, err = a.prompt("password: "); err != nil {
		return err
	}
	if reg.Email, err = a.prompt("email (optional): "); err != nil {
		return err
	}
	user, err := a.api.Register(ctx, reg)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created account %s. Run 'swipe login' to start.\n", user.Username)
	return nil
}

func (a *app) saved(ctx context.Context) error {
	if err := a.ensureLogin(ctx); err != nil {
		return err
	}
	me, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	recipes, err := a.api.SavedRecipes(ctx, me.ID)
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		fmt.Fprintln(a.out, "No saved recipes yet.")
	}
	for _, r := range recipes {
		fmt.Fprintf(a.out, "- %s (%s, %s)\n", r.Title, r.Difficulty, r.CookTime)
	}
	return nil
}

func (a *app) ensureLogin(ctx context.Context) error {
	if a.api.LoggedIn() && !a.needLogin.Load() {
		return nil
	}
	if err := a.login(ctx); err != nil {
		return err
	}
	a.needLogin.Store(false)
	return nil
}

// reauth tries the refresh token first and falls back to asking for the
// password at the next prompt.
func (a *app) reauth(ctx context.Context) error {
	err := a.api.Refresh(ctx)
	if err == nil {
		a.logger.Info("access token refreshed")
		return nil
	}
	a.logger.Warn("refresh failed, login required", "error", err)
	a.needLogin.Store(true)
	return nil
}

func (a *app) feed(ctx context.Context) error {
	if err := a.ensureLogin(ctx); err != nil {
		return err
	}

	toasts := &terminalNotifier{out: a.out}
	ctrl := feed.New(ctx, feed.Config{
		Source:      a.api,
		Reporter:    reporter.New(a.api, toasts, a.logger),
		Notifier:    toasts,
		Reauth:      a.reauth,
		ReauthDelay: a.settings.ReauthDelay,
		Logger:      a.logger,
	})
	defer ctrl.Close()

	if err := ctrl.Load(); err != nil && !client.IsUnauthorized(err) {
		return err
	}

	for {
		if a.needLogin.Load() {
			if err := a.ensureLogin(ctx); err != nil {
				return err
			}
			if err := ctrl.Load(); err != nil {
				fmt.Fprintln(a.out, "Failed to load recipes:", err)
			}
		}

		render(a.out, ctrl.Deck())
		line, err := a.prompt("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch fields := strings.Fields(line); {
		case line == "q" || line == "quit":
			return nil
		case line == "r" || line == "refresh":
			if err := ctrl.Refresh(); errors.Is(err, feed.ErrNotExhausted) {
				fmt.Fprintln(a.out, "Keep swiping, there are recipes left.")
			} else if err != nil {
				fmt.Fprintln(a.out, "Failed to load recipes:", err)
			}
		case len(fields) > 1 && fields[0] == "drag":
			offsets, err := parseOffsets(fields[1:])
			if err != nil {
				fmt.Fprintln(a.out, "usage: drag <offset px> [<offset px> ...], one sample per 50ms")
				continue
			}
			a.drag(ctrl, offsets)
		default:
			if !ctrl.HandleKey(keyFor(line)) {
				fmt.Fprintln(a.out, "keys: x/left pass, l/right/space like, s/up super-like, drag <px> [<px> ...], r refresh, q quit")
			}
		}
		ctrl.Wait()
	}
}

// dragFrame is the time between two typed drag samples
const dragFrame = 50 * time.Millisecond

// drag replays typed offsets as a drag on the top card, showing the card
// after every sample, and lets go after the last one
func (a *app) drag(ctrl *feed.Controller, offsets []float64) {
	at := time.Now()
	if !ctrl.Grab(at) {
		fmt.Fprintln(a.out, "Nothing to drag right now.")
		return
	}
	card := ctrl.Card()
	for _, o := range offsets {
		at = at.Add(dragFrame)
		ctrl.Drag(o, at)
		renderCard(a.out, card)
	}

	d, err := ctrl.Release()
	switch {
	case err != nil:
		fmt.Fprintln(a.out, err)
	case d == swipe.None:
		fmt.Fprintln(a.out, "The card springs back.")
	default:
		fmt.Fprintf(a.out, "Swiped %s, the card flies to %+.0f.\n", d, card.X())
	}
}

func parseOffsets(fields []string) ([]float64, error) {
	offsets := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		offsets[i] = v
	}
	return offsets, nil
}

// renderCard draws the dragged card's position, tilt and badges
func renderCard(w io.Writer, card *swipe.Card) {
	x := card.X()
	fmt.Fprintf(w, "  ~ x %+4.0f  tilt %+5.1f°  opacity %.2f  scale %.2f", x, card.Rotation(), card.Opacity(), card.Scale())
	if o := swipe.LikeBadgeOpacity(x); o > 0 {
		fmt.Fprintf(w, "  [LIKE %.0f%% x%.2f]", o*100, swipe.LikeBadgeScale(x))
	}
	if o := swipe.PassBadgeOpacity(x); o > 0 {
		fmt.Fprintf(w, "  [PASS %.0f%% x%.2f]", o*100, swipe.PassBadgeScale(x))
	}
	fmt.Fprintln(w)
}

// keyFor maps typed words onto the key names the controller understands
func keyFor(line string) string {
	switch line {
	case "left":
		return "ArrowLeft"
	case "right":
		return "ArrowRight"
	case "up":
		return "ArrowUp"
	case "space":
		return " "
	default:
		return line
	}
}

func render(w io.Writer, d *deck.Deck) {
	switch d.State() {
	case deck.Loading:
		fmt.Fprintln(w, "Loading delicious recipes...")
		return
	case deck.Exhausted:
		fmt.Fprintln(w, "No more recipes! Type r to refresh.")
		return
	}

	r := d.Current()
	fmt.Fprintf(w, "\n[%d/%d] %s\n", d.Cursor()+1, d.Len(), r.Title)
	if r.Creator != nil {
		fmt.Fprintf(w, "  by @%s\n", r.Creator.Username)
	}
	fmt.Fprintf(w, "  %s | %s | serves %s | %d likes\n", cases.Title(language.English).String(orDash(r.Difficulty)), orDash(r.CookTime), orDash(r.Servings), r.LikesCount)
	if r.Description != "" {
		fmt.Fprintf(w, "  %s\n", r.Description)
	}
	if next := d.Next(); next != nil {
		fmt.Fprintf(w, "  (up next at %.0f%%: %s)\n", swipe.BackgroundScale*100, next.Title)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type terminalNotifier struct {
	out io.Writer
}

func (n *terminalNotifier) Success(msg string) {
	fmt.Fprintln(n.out, "✓", msg)
}

func (n *terminalNotifier) Error(msg string) {
	fmt.Fprintln(n.out, "✗", msg)
}
