package server

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipeswipe/config"
	"github.com/pageza/recipeswipe/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:       "localhost",
		ServerPort:       "8080",
		CORSOrigins:      []string{"http://localhost:5173"},
		JWTSecret:        "test-secret",
		AccessTokenTTL:   time.Hour,
		RefreshTokenTTL:  24 * time.Hour,
		DiscoverLimit:    50,
		DiscoverCacheTTL: time.Minute,
	}
}

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDatabase(t)

	server := New(testConfig(), db, nil, nil)
	require.NotNil(t, server)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNoRouteAndCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := New(testConfig(), testhelpers.SetupTestDatabase(t), nil, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/does-not-exist/at/all", nil)
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodOptions, "/api/auth/login/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestImageUploadDisabledWithoutStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDatabase(t)
	server := New(testConfig(), db, nil, nil)
	testhelpers.CreateTestUser(t, db, "chef")

	tokens, err := server.auth.Login(context.Background(), "chef", testhelpers.TestPassword)
	require.NoError(t, err)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("image", "dish.png")
	require.NoError(t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, form.Close())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/recipes/images/", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tokens.Access)
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStartAndShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := New(testConfig(), testhelpers.SetupTestDatabase(t), nil, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Start(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
