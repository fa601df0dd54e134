package repositories_test

import (
	"context"
	"testing"

	"lightsout/internal/campaign"
	"lightsout/internal/database"
	"lightsout/internal/models"
	"lightsout/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_RoundTrip(t *testing.T) {
	db := database.DB{
		Cache: database.Cache{Sessions: database.NewMemoryKV()},
	}
	repo := repositories.NewSessionRepository(db)
	ctx := context.Background()

	_, found, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	session := campaign.NewSession("abc", "2026-03-02", "จันทร์")
	session.Toggles["b1-101"] = models.DeviceStates{Lights: true, Fan: true}
	session.Saved["b1-101"] = true
	require.NoError(t, repo.Save(ctx, session))

	got, found, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, campaign.PhaseSelectingInspector, got.Phase)
	assert.Equal(t, "2026-03-02", got.Date)
	assert.True(t, got.Toggles["b1-101"].Lights)
	assert.True(t, got.Saved["b1-101"])

	require.NoError(t, repo.Delete(ctx, "abc"))

	_, found, err = repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, found)
}
