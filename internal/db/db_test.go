package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/amgrenovation/ops-dashboard/internal/auth"
	"github.com/amgrenovation/ops-dashboard/internal/config"
	"github.com/amgrenovation/ops-dashboard/internal/models"
)

func openSQLite(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DBDriver: "sqlite",
		DBUrl:    "file:" + t.Name() + "?mode=memory&cache=shared",
	}
}

func TestNewDB_SQLiteMigrates(t *testing.T) {
	db, err := NewDB(openSQLite(t))
	require.NoError(t, err)

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestSeedAdmin(t *testing.T) {
	db, err := NewDB(openSQLite(t))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, SeedAdmin(ctx, db, "", "", zap.NewNop()))
	assert.Error(t, SeedAdmin(ctx, db, "boss@amg.fr", "", zap.NewNop()))

	require.NoError(t, SeedAdmin(ctx, db, "boss@amg.fr", "s3cret!", zap.NewNop()))
	require.NoError(t, SeedAdmin(ctx, db, "boss@amg.fr", "other", zap.NewNop()))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.True(t, auth.CheckPassword(users[0].PasswordHash, "s3cret!"))

	var p models.Profile
	require.NoError(t, db.First(&p, "id = ?", users[0].ID).Error)
	assert.True(t, p.IsAdmin())
}
