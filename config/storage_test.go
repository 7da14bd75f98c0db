package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3ConfigDisabled(t *testing.T) {
	_, err := NewS3Config(context.Background(), &Config{S3Region: "us-east-1"})
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestNewS3Config(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	store, err := NewS3Config(context.Background(), &Config{
		S3Bucket:     "recipe-images",
		S3Region:     "eu-west-1",
		S3PresignTTL: 15 * time.Minute,
	})
	require.NoError(t, err)
	assert.Equal(t, "recipe-images", store.BucketName)
	assert.Equal(t, "eu-west-1", store.Region)
	assert.Equal(t, 15*time.Minute, store.PresignTTL)
	assert.NotNil(t, store.Client)
}

func TestGeneratePresignedURL(t *testing.T) {
	store := &S3Config{
		Client: s3.New(s3.Options{
			Region:      "us-east-1",
			Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
		}),
		BucketName: "recipe-images",
		Region:     "us-east-1",
	}

	url, err := store.GeneratePresignedURL(context.Background(), "recipes/u/dish.png", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "recipe-images")
	assert.Contains(t, url, "recipes/u/dish.png")
	assert.Contains(t, url, "X-Amz-Expires=900")
	assert.Contains(t, url, "X-Amz-Signature=")
}
