package service

import (
	"testing"

	"github.com/pageza/recipeswipe/internal/models"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dryRunPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=recipeswipe dbname=recipeswipe sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestOrderByDistanceKeepsVectorOrdering(t *testing.T) {
	db := dryRunPostgres(t)
	vec := make([]float32, models.EmbeddingDims)
	vec[0] = 1
	centroid := pgvector.NewVector(vec)

	var recipes []models.Recipe
	stmt := orderByDistance(db.Model(&models.Recipe{}).Limit(DefaultDiscoverLimit), centroid).
		Find(&recipes).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "ORDER BY recipes.embedding <-> $1, recipes.created_at DESC")
	require.NotEmpty(t, stmt.Vars)
	assert.Equal(t, centroid, stmt.Vars[0])
}
