package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
)

func TestFavorites(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	favorites := service.NewFavoriteService(db)
	users := service.NewUserService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "chef1")
	soup := testhelpers.CreateTestRecipe(t, db, user, "Soup")
	stew := testhelpers.CreateTestRecipe(t, db, user, "Stew")
	testhelpers.AddTestReview(t, db, soup, user, 4)

	require.NoError(t, favorites.Add(ctx, user.ID, soup.ID))
	require.NoError(t, favorites.Add(ctx, user.ID, soup.ID))
	require.NoError(t, favorites.Add(ctx, user.ID, stew.ID))

	list, err := favorites.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, stew.ID, list[0].ID)
	assert.Equal(t, soup.ID, list[1].ID)
	assert.Equal(t, float64(4), list[1].AverageRating)
	assert.Equal(t, 1, list[1].ReviewCount)

	profile, err := users.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{soup.ID, stew.ID}, profile.SavedRecipes)

	require.NoError(t, favorites.Remove(ctx, user.ID, soup.ID))
	require.NoError(t, favorites.Remove(ctx, user.ID, soup.ID))
	require.NoError(t, favorites.Remove(ctx, user.ID, uuid.New()))

	list, err = favorites.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, stew.ID, list[0].ID)
}

func TestFavoritesNotFound(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	favorites := service.NewFavoriteService(db)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "chef1")
	recipe := testhelpers.CreateTestRecipe(t, db, user, "Soup")

	_, err := favorites.List(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.ErrorIs(t, favorites.Add(ctx, uuid.New(), recipe.ID), service.ErrNotFound)
	assert.ErrorIs(t, favorites.Add(ctx, user.ID, uuid.New()), service.ErrNotFound)
	assert.ErrorIs(t, favorites.Remove(ctx, uuid.New(), recipe.ID), service.ErrNotFound)

	list, err := favorites.List(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
