package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// UserResponse is the sanitized view of a user. Email is omitted on public profiles.
type UserResponse struct {
	ID           uuid.UUID   `json:"_id"`
	Username     string      `json:"username"`
	Email        string      `json:"email,omitempty"`
	Bio          string      `json:"bio"`
	Tags         []string    `json:"tags"`
	SavedRecipes []uuid.UUID `json:"savedRecipes"`
	Followers    []uuid.UUID `json:"followers"`
	Following    []uuid.UUID `json:"following"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// SearchResult is a user as returned by search; never carries email.
type SearchResult struct {
	ID       uuid.UUID `json:"_id"`
	Username string    `json:"username"`
	Bio      string    `json:"bio"`
	Tags     []string  `json:"tags"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

// RecipeResponse is a recipe annotated with its derived rating fields.
type RecipeResponse struct {
	models.Recipe
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// ReviewResult is returned after a review is stored.
type ReviewResult struct {
	Review        models.Review `json:"review"`
	AverageRating float64       `json:"averageRating"`
	ReviewCount   int           `json:"reviewCount"`
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Message string `json:"message"`
}
