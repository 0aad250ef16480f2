package testhelpers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// MockTokenValidator is a mock implementation of middleware.TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) List(ctx context.Context) ([]types.RecipeResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) GetByID(ctx context.Context, id uuid.UUID) (*types.RecipeResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) ListByUser(ctx context.Context, userID uuid.UUID) ([]types.RecipeResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) Create(ctx context.Context, creator uuid.UUID, req types.CreateRecipeRequest) (*types.RecipeResponse, error) {
	args := m.Called(ctx, creator, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) Delete(ctx context.Context, id, requester uuid.UUID) error {
	args := m.Called(ctx, id, requester)
	return args.Error(0)
}

func (m *MockRecipeService) AddReview(ctx context.Context, recipeID, reviewer uuid.UUID, req types.CreateReviewRequest) (*types.ReviewResult, error) {
	args := m.Called(ctx, recipeID, reviewer, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ReviewResult), args.Error(1)
}

func (m *MockRecipeService) Seed(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockIngredientService is a mock implementation of service.IIngredientService
type MockIngredientService struct {
	mock.Mock
}

func (m *MockIngredientService) list(args mock.Arguments) (*models.IngredientList, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IngredientList), args.Error(1)
}

func (m *MockIngredientService) Get(ctx context.Context, userID uuid.UUID) (*models.IngredientList, error) {
	return m.list(m.Called(ctx, userID))
}

func (m *MockIngredientService) AddItem(ctx context.Context, userID uuid.UUID, name string) (*models.IngredientList, error) {
	return m.list(m.Called(ctx, userID, name))
}

func (m *MockIngredientService) UpdateItem(ctx context.Context, userID uuid.UUID, ref service.ItemRef, done bool) (*models.IngredientList, error) {
	return m.list(m.Called(ctx, userID, ref, done))
}

func (m *MockIngredientService) RemoveItem(ctx context.Context, userID uuid.UUID, ref service.ItemRef) (*models.IngredientList, error) {
	return m.list(m.Called(ctx, userID, ref))
}

func (m *MockIngredientService) ClearDone(ctx context.Context, userID uuid.UUID) (*models.IngredientList, error) {
	return m.list(m.Called(ctx, userID))
}

var (
	_ service.IRecipeService     = (*MockRecipeService)(nil)
	_ service.IIngredientService = (*MockIngredientService)(nil)
)
