package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Signup(ctx context.Context, req types.SignupRequest) (*types.AuthResponse, error)
	Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IUserService defines the interface for profile and follow operations
type IUserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserResponse, error)
	GetPublicProfile(ctx context.Context, userID uuid.UUID) (*types.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req types.UpdateProfileRequest) (*types.UserResponse, error)
	Search(ctx context.Context, query string) ([]types.SearchResult, error)
	Follow(ctx context.Context, current, target uuid.UUID) error
	Unfollow(ctx context.Context, current, target uuid.UUID) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	List(ctx context.Context) ([]types.RecipeResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.RecipeResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]types.RecipeResponse, error)
	Create(ctx context.Context, creator uuid.UUID, req types.CreateRecipeRequest) (*types.RecipeResponse, error)
	Delete(ctx context.Context, id, requester uuid.UUID) error
	AddReview(ctx context.Context, recipeID, reviewer uuid.UUID, req types.CreateReviewRequest) (*types.ReviewResult, error)
	Seed(ctx context.Context) (int, error)
}

// IFavoriteService defines the interface for saved recipes
type IFavoriteService interface {
	List(ctx context.Context, userID uuid.UUID) ([]types.RecipeResponse, error)
	Add(ctx context.Context, userID, recipeID uuid.UUID) error
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error
}

// IIngredientService defines the interface for the shopping list
type IIngredientService interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.IngredientList, error)
	AddItem(ctx context.Context, userID uuid.UUID, name string) (*models.IngredientList, error)
	UpdateItem(ctx context.Context, userID uuid.UUID, ref ItemRef, done bool) (*models.IngredientList, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, ref ItemRef) (*models.IngredientList, error)
	ClearDone(ctx context.Context, userID uuid.UUID) (*models.IngredientList, error)
}

var (
	_ IAuthService       = (*AuthService)(nil)
	_ IUserService       = (*UserService)(nil)
	_ IRecipeService     = (*RecipeService)(nil)
	_ IFavoriteService   = (*FavoriteService)(nil)
	_ IIngredientService = (*IngredientService)(nil)
)
