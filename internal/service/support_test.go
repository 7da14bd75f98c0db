package service_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipeswipe/internal/mocks"
	"github.com/pageza/recipeswipe/internal/models"
	"github.com/pageza/recipeswipe/internal/service"
	"github.com/pageza/recipeswipe/internal/testhelpers"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageUpload(t *testing.T) {
	store := new(mocks.MockObjectStore)
	imageSvc := service.NewImageService(store)
	userID := uuid.New()
	data := pngBytes(t)

	store.On("PutObject", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "recipes/"+userID.String()+"/") && strings.HasSuffix(key, ".png")
	}), data, "image/png").Return("https://bucket.s3.us-east-1.amazonaws.com/recipes/x.png", nil)

	url, err := imageSvc.Upload(context.Background(), userID, "dish.png", "image/png", data)
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.s3.us-east-1.amazonaws.com/recipes/x.png", url)
	store.AssertExpectations(t)
}

func TestImageUploadRejects(t *testing.T) {
	store := new(mocks.MockObjectStore)
	imageSvc := service.NewImageService(store)
	ctx := context.Background()

	_, err := imageSvc.Upload(ctx, uuid.New(), "notes.txt", "text/plain", []byte("just some text"))
	assert.ErrorIs(t, err, service.ErrInvalidImage)

	_, err = imageSvc.Upload(ctx, uuid.New(), "empty.png", "image/png", nil)
	assert.ErrorIs(t, err, service.ErrInvalidImage)

	big := append(pngBytes(t), make([]byte, service.MaxImageSize)...)
	_, err = imageSvc.Upload(ctx, uuid.New(), "big.png", "image/png", big)
	assert.ErrorIs(t, err, service.ErrImageTooLarge)

	store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	_, err = service.NewImageService(nil).Upload(ctx, uuid.New(), "dish.png", "image/png", pngBytes(t))
	assert.ErrorIs(t, err, service.ErrStorageDisabled)
}

func TestImageUploadStoreFailure(t *testing.T) {
	store := new(mocks.MockObjectStore)
	store.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("access denied"))

	_, err := service.NewImageService(store).Upload(context.Background(), uuid.New(), "dish.png", "", pngBytes(t))
	assert.EqualError(t, err, "access denied")
}

func TestCentroid(t *testing.T) {
	_, ok := service.Centroid(nil)
	assert.False(t, ok)

	a := make([]float32, models.EmbeddingDims)
	b := make([]float32, models.EmbeddingDims)
	a[0], b[0] = 1, 0
	a[1], b[1] = 0, 1

	c, ok := service.Centroid([]pgvector.Vector{pgvector.NewVector(a), pgvector.NewVector(b), pgvector.NewVector([]float32{1})})
	require.True(t, ok)
	assert.InDelta(t, 0.5, c.Slice()[0], 1e-6)
	assert.InDelta(t, 0.5, c.Slice()[1], 1e-6)
}

func TestMemoryDenyList(t *testing.T) {
	denyList := service.NewMemoryDenyList()
	ctx := context.Background()

	require.NoError(t, denyList.Revoke(ctx, "live", time.Now().Add(time.Hour)))
	require.NoError(t, denyList.Revoke(ctx, "stale", time.Now().Add(-time.Hour)))

	revoked, err := denyList.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = denyList.IsRevoked(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryFeedCacheExpires(t *testing.T) {
	cache := service.NewMemoryFeedCache(-time.Second)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, cache.Set(ctx, userID, []uuid.UUID{uuid.New()}))
	_, ok, err := cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisBackedStores(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)
	ctx := context.Background()

	cache := service.NewFeedCache(client, time.Minute)
	userID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	require.NoError(t, cache.Set(ctx, userID, ids))
	got, ok, err := cache.Get(ctx, userID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ids, got)

	require.NoError(t, cache.Invalidate(ctx, userID))
	_, ok, err = cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.False(t, ok)

	denyList := service.NewTokenDenyList(client)
	require.NoError(t, denyList.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))
	revoked, err := denyList.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = denyList.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}
