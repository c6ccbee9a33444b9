package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/priyanshuguptaiit99/pronetwork/internal/models"
)

func TestStatusRepositoryListActiveFiltersExpired(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStatusRepository(db)

	now := time.Now().UTC()
	require.NoError(t, repo.Create(context.Background(), &models.Status{UserID: 1, Text: "fresh", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Create(context.Background(), &models.Status{UserID: 2, Text: "expired", ExpiresAt: now.Add(-time.Minute)}))

	statuses, err := repo.ListActive(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	require.Equal(t, "fresh", statuses[0].Text)
}

func TestStatusRepositoryViewsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStatusRepository(db)

	status := models.Status{UserID: 1, Text: "hello", ExpiresAt: time.Now().UTC().Add(time.Hour)}
	require.NoError(t, repo.Create(context.Background(), &status))

	status.Views = append(status.Views, 2)
	require.NoError(t, repo.Save(context.Background(), &status))

	reloaded, err := repo.FindByID(context.Background(), status.ID)
	require.NoError(t, err)
	require.True(t, reloaded.ViewedBy(2))
	require.False(t, reloaded.ViewedBy(3))
}
