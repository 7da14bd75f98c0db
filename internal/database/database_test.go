package database_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pageza/recipeswipe/config"
	"github.com/pageza/recipeswipe/internal/database"
	"github.com/pageza/recipeswipe/internal/models"
	"github.com/pageza/recipeswipe/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "swipe.db"),
	}

	db, err := database.New(cfg)
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, database.Migrate(db, ""))
	assert.NoError(t, database.HealthCheck(context.Background(), db))
	assert.True(t, db.Migrator().HasTable(&models.UserFollow{}))
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := database.New(&config.Config{DBDriver: "mysql"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestRedisDisabled(t *testing.T) {
	client, err := database.NewRedisClient(&config.Config{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000002_second.sql",
		"000001_first.sql",
		"000001_first_rollback.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}

	files, err := database.MigrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_first.sql", "000002_second.sql"}, files)
	assert.Equal(t, "000002", database.Version(files[1]))

	rollback, err := database.RollbackFile(dir, "000001_first.sql")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "000001_first_rollback.sql"), rollback)

	_, err = database.RollbackFile(dir, "000002_second.sql")
	assert.Error(t, err)
}

func TestRecipeDefaults(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, "chef")

	recipe := &models.Recipe{
		Title:        "Toast",
		Description:  "Bread, but warmer",
		Ingredients:  "bread",
		Instructions: "Toast it.",
		CreatorID:    user.ID,
	}
	require.NoError(t, db.Create(recipe).Error)

	var stored models.Recipe
	require.NoError(t, db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, models.DifficultyEasy, stored.Difficulty)
	assert.Len(t, stored.Embedding.Slice(), models.EmbeddingDims)
	assert.Zero(t, stored.LikesCount)
}

func TestDifficultyCheckConstraint(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, "chef")

	err := db.Create(&models.Recipe{
		Title:        "Soufflé",
		Description:  "Tricky",
		Ingredients:  "eggs",
		Instructions: "Whisk.",
		Difficulty:   "impossible",
		CreatorID:    user.ID,
	}).Error
	assert.Error(t, err)
}

func TestFollowUniqueness(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	a := testhelpers.CreateTestUser(t, db, "alice")
	b := testhelpers.CreateTestUser(t, db, "bob")

	require.NoError(t, db.Create(&models.UserFollow{FollowerID: a.ID, FollowingID: b.ID}).Error)
	assert.Error(t, db.Create(&models.UserFollow{FollowerID: a.ID, FollowingID: b.ID}).Error)
}

func TestPostgresMigrations(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t, filepath.Join("..", "..", "migrations"))

	var applied int64
	require.NoError(t, db.Table("schema_migrations").Count(&applied).Error)
	assert.EqualValues(t, 2, applied)

	// Running again is a no-op
	require.NoError(t, database.RunMigrations(db, filepath.Join("..", "..", "migrations")))
}
