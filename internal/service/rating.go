package service

import (
	"math"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// AverageRating returns the mean rating rounded to one decimal, or 0 with no reviews.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10
}

func annotate(recipe models.Recipe) types.RecipeResponse {
	if recipe.Reviews == nil {
		recipe.Reviews = []models.Review{}
	}
	return types.RecipeResponse{
		Recipe:        recipe,
		AverageRating: AverageRating(recipe.Reviews),
		ReviewCount:   len(recipe.Reviews),
	}
}

func annotateAll(recipes []models.Recipe) []types.RecipeResponse {
	out := make([]types.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, annotate(r))
	}
	return out
}
