package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Client calls the recipe swipe API and attaches the stored bearer token
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	limiter *rate.Limiter
	logger  *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a Client from settings. tokens may be nil for an in-memory store.
func New(settings Settings, tokens TokenStore, opts ...Option) *Client {
	if tokens == nil {
		tokens = &MemoryTokenStore{}
	}
	c := &Client{
		baseURL: strings.TrimRight(settings.APIBaseURL, "/"),
		http:    &http.Client{Timeout: settings.Timeout},
		tokens:  tokens,
		logger:  slog.Default(),
	}
	if settings.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(settings.RequestsPerSecond), 5)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokens returns the stored credential
func (c *Client) Tokens() (Tokens, error) {
	return c.tokens.Load()
}

// LoggedIn reports whether an access token is stored
func (c *Client) LoggedIn() bool {
	t, err := c.tokens.Load()
	return err == nil && t.Access != ""
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login/", false, body, &resp); err != nil {
		return nil, err
	}
	if err := c.tokens.Save(Tokens{Access: resp.Access, Refresh: resp.Refresh, Username: username}); err != nil {
		return nil, err
	}
	c.logger.Info("logged in", "username", username)
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, reg Registration) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register/", false, reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Refresh trades the stored refresh token for a new access token
func (c *Client) Refresh(ctx context.Context) error {
	t, err := c.tokens.Load()
	if err != nil {
		return err
	}
	if t.Refresh == "" {
		return ErrNotLoggedIn
	}

	var resp struct {
		Access string `json:"access"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh/", false, map[string]string{"refresh": t.Refresh}, &resp); err != nil {
		return err
	}
	t.Access = resp.Access
	return c.tokens.Save(t)
}

// Logout revokes the session on the server and forgets the local tokens
// even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/logout", true, nil, nil)
	if clearErr := c.tokens.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}

func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/me/", true, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Discover fetches the candidate recipes. refresh skips the server-side feed cache.
func (c *Client) Discover(ctx context.Context, refresh bool) ([]Recipe, error) {
	path := "/api/recipes/discover"
	if refresh {
		path += "?refresh=true"
	}
	var recipes []Recipe
	if err := c.do(ctx, http.MethodGet, path, true, nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *Client) Interact(ctx context.Context, recipeID uuid.UUID, liked, superLiked bool) error {
	body := map[string]bool{"liked": liked, "superLiked": superLiked}
	return c.do(ctx, http.MethodPost, "/api/recipes/"+recipeID.String()+"/interact/", true, body, nil)
}

func (c *Client) Save(ctx context.Context, recipeID uuid.UUID) error {
	return c.do(ctx, http.MethodPost, "/api/recipes/"+recipeID.String()+"/save/", true, nil, nil)
}

func (c *Client) CreateRecipe(ctx context.Context, r NewRecipe) (*Recipe, error) {
	var created Recipe
	if err := c.do(ctx, http.MethodPost, "/api/recipes/create/", true, r, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UserRecipes(ctx context.Context, username string) ([]Recipe, error) {
	var recipes []Recipe
	if err := c.do(ctx, http.MethodGet, "/api/"+url.PathEscape(username)+"/recipes/", true, nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *Client) SavedRecipes(ctx context.Context, userID uuid.UUID) ([]Recipe, error) {
	var recipes []Recipe
	if err := c.do(ctx, http.MethodGet, "/api/recipes/"+userID.String()+"/saved-recipes/", true, nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *Client) Follow(ctx context.Context, userID uuid.UUID) error {
	return c.do(ctx, http.MethodPost, "/api/users/"+userID.String()+"/follow/", true, nil, nil)
}

func (c *Client) Unfollow(ctx context.Context, userID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+userID.String()+"/follow/", true, nil, nil)
}

// UploadImage posts a recipe photo and returns the URL to put in NewRecipe.ImageURL
func (c *Client) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/recipes/images/", true, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var resp struct {
		ImageURL string `json:"image_url"`
	}
	if err := c.send(req, &resp); err != nil {
		return "", err
	}
	return resp.ImageURL, nil
}

func (c *Client) do(ctx context.Context, method, path string, authed bool, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, method, path, authed, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, authed bool, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if authed {
		t, err := c.tokens.Load()
		if err != nil {
			return nil, err
		}
		if t.Access == "" {
			return nil, ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+t.Access)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return err
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("api error", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
