package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
	"github.com/pageza/recipeshare/backend/internal/types"
)

func setupRecipes(t *testing.T) (*gorm.DB, *service.RecipeService) {
	db := testhelpers.SetupTestDB(t)
	return db, service.NewRecipeService(db, nil)
}

func soupRequest() types.CreateRecipeRequest {
	return types.CreateRecipeRequest{
		Title:        "Soup",
		Description:  "Warm soup",
		Ingredients:  []string{"water", "salt"},
		Instructions: []string{"boil", "season"},
		Category:     "Dinner",
		CookingTime:  "15",
	}
}

func TestCreateAndGetRecipe(t *testing.T) {
	db, recipes := setupRecipes(t)
	ctx := context.Background()
	chef := testhelpers.CreateTestUser(t, db, "chef1")

	created, err := recipes.Create(ctx, chef.ID, soupRequest())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, chef.ID, created.CreatedBy)
	assert.NotNil(t, created.Reviews)

	got, err := recipes.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soup", got.Title)
	assert.Equal(t, "Warm soup", got.Description)
	assert.Equal(t, models.StringArray{"water", "salt"}, got.Ingredients)
	assert.Equal(t, models.StringArray{"boil", "season"}, got.Instructions)
	assert.Equal(t, "Dinner", got.Category)
	assert.Equal(t, "15", got.CookingTime)
	assert.Equal(t, chef.ID, got.CreatedBy)
	assert.Equal(t, float64(0), got.AverageRating)
	assert.Equal(t, 0, got.ReviewCount)
	assert.Empty(t, got.Reviews)
}

func TestCreateRecipeValidation(t *testing.T) {
	db, recipes := setupRecipes(t)
	ctx := context.Background()
	chef := testhelpers.CreateTestUser(t, db, "chef1")

	servings := 0
	tests := []struct {
		name   string
		mutate func(*types.CreateRecipeRequest)
		field  string
	}{
		{"missing title", func(r *types.CreateRecipeRequest) { r.Title = " " }, "title"},
		{"long title", func(r *types.CreateRecipeRequest) { r.Title = strings.Repeat("x", 61) }, "title"},
		{"missing description", func(r *types.CreateRecipeRequest) { r.Description = "" }, "description"},
		{"no ingredients", func(r *types.CreateRecipeRequest) { r.Ingredients = []string{} }, "ingredients"},
		{"blank ingredient", func(r *types.CreateRecipeRequest) { r.Ingredients = []string{"water", ""} }, "ingredients[1]"},
		{"no instructions", func(r *types.CreateRecipeRequest) { r.Instructions = nil }, "instructions"},
		{"bad category", func(r *types.CreateRecipeRequest) { r.Category = "Italian" }, "category"},
		{"non numeric time", func(r *types.CreateRecipeRequest) { r.CookingTime = "soon" }, "cookingTime"},
		{"zero servings", func(r *types.CreateRecipeRequest) { r.Servings = &servings }, "servings"},
		{"bad image", func(r *types.CreateRecipeRequest) { r.Image = "not a url" }, "image"},
		{"long cooking time", func(r *types.CreateRecipeRequest) { r.CookingTime = strings.Repeat("9", 11) }, "cookingTime"},
		{"long image url", func(r *types.CreateRecipeRequest) { r.Image = "https://example.com/" + strings.Repeat("a", 300) }, "image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := soupRequest()
			tt.mutate(&req)
			_, err := recipes.Create(ctx, chef.ID, req)
			require.ErrorIs(t, err, service.ErrBadRequest)

			var verr *service.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRecipeUnknownCreator(t *testing.T) {
	_, recipes := setupRecipes(t)
	_, err := recipes.Create(context.Background(), uuid.New(), soupRequest())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListOrdering(t *testing.T) {
	db, recipes := setupRecipes(t)
	ctx := context.Background()
	a := testhelpers.CreateTestUser(t, db, "alice")
	b := testhelpers.CreateTestUser(t, db, "bob")

	first := testhelpers.CreateTestRecipe(t, db, a, "First")
	second := testhelpers.CreateTestRecipe(t, db, b, "Second")
	third := testhelpers.CreateTestRecipe(t, db, a, "Third")

	all, err := recipes.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{third.ID, second.ID, first.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})

	mine, err := recipes.ListByUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, third.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	none, err := recipes.ListByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGetByIDNotFound(t *testing.T) {
	_, recipes := setupRecipes(t)
	_, err := recipes.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteRecipe(t *testing.T) {
	db, recipes := setupRecipes(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "owner")
	other := testhelpers.CreateTestUser(t, db, "other")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Soup")
	testhelpers.AddTestReview(t, db, recipe, other, 4)
	require.NoError(t, db.Create(&models.SavedRecipe{UserID: other.ID, RecipeID: recipe.ID}).Error)

	err := recipes.Delete(ctx, recipe.ID, other.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)
	_, err = recipes.GetByID(ctx, recipe.ID)
	require.NoError(t, err)

	require.NoError(t, recipes.Delete(ctx, recipe.ID, owner.ID))

	all, err := recipes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	mine, err := recipes.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	var reviews, saved int64
	require.NoError(t, db.Model(&models.Review{}).Count(&reviews).Error)
	require.NoError(t, db.Model(&models.SavedRecipe{}).Count(&saved).Error)
	assert.Zero(t, reviews)
	assert.Zero(t, saved)

	assert.ErrorIs(t, recipes.Delete(ctx, recipe.ID, owner.ID), service.ErrNotFound)
}

func TestAddReview(t *testing.T) {
	db, recipes := setupRecipes(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "owner")
	r1 := testhelpers.CreateTestUser(t, db, "r1")
	r2 := testhelpers.CreateTestUser(t, db, "r2")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Soup")

	res, err := recipes.AddReview(ctx, recipe.ID, r1.ID, types.CreateReviewRequest{Rating: 5, Comment: " Great "})
	require.NoError(t, err)
	assert.Equal(t, "r1", res.Review.Username)
	assert.Equal(t, "Great", res.Review.Comment)
	assert.Equal(t, float64(5), res.AverageRating)
	assert.Equal(t, 1, res.ReviewCount)

	res, err = recipes.AddReview(ctx, recipe.ID, r2.ID, types.CreateReviewRequest{Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, 4.5, res.AverageRating)
	assert.Equal(t, 2, res.ReviewCount)

	got, err := recipes.GetByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.AverageRating)
	assert.Equal(t, 2, got.ReviewCount)
	assert.Equal(t, "r1", got.Reviews[0].Username)
}

func TestAddReviewDuplicateLeavesReviewsUnchanged(t *testing.T) {
	db, recipes := setupRecipes(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "owner")
	reviewer := testhelpers.CreateTestUser(t, db, "reviewer")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Soup")

	_, err := recipes.AddReview(ctx, recipe.ID, reviewer.ID, types.CreateReviewRequest{Rating: 3})
	require.NoError(t, err)

	_, err = recipes.AddReview(ctx, recipe.ID, reviewer.ID, types.CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, service.ErrConflict)

	got, err := recipes.GetByID(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, got.Reviews, 1)
	assert.Equal(t, 3, got.Reviews[0].Rating)
}

func TestAddReviewErrors(t *testing.T) {
	db, recipes := setupRecipes(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "owner")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Soup")

	for _, rating := range []int{0, 6, -1} {
		_, err := recipes.AddReview(ctx, recipe.ID, owner.ID, types.CreateReviewRequest{Rating: rating})
		assert.ErrorIs(t, err, service.ErrBadRequest)
	}

	_, err := recipes.AddReview(ctx, uuid.New(), owner.ID, types.CreateReviewRequest{Rating: 3})
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = recipes.AddReview(ctx, recipe.ID, uuid.New(), types.CreateReviewRequest{Rating: 3})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSeed(t *testing.T) {
	_, recipes := setupRecipes(t)
	ctx := context.Background()

	n, err := recipes.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(service.SampleRecipes()), n)

	all, err := recipes.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, n)

	_, err = recipes.Seed(ctx)
	assert.ErrorIs(t, err, service.ErrBadRequest)
}
