package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// List returns the user's saved recipes, most recently saved first.
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]types.RecipeResponse, error) {
	db := s.db.WithContext(ctx)
	if _, err := findUser(db, userID); err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	if err := withReviews(db).
		Joins("JOIN user_saved_recipes ON user_saved_recipes.recipe_id = recipes.id").
		Where("user_saved_recipes.user_id = ?", userID).
		Order("user_saved_recipes.created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return annotateAll(recipes), nil
}

// Add saves recipeID for userID. Saving twice keeps a single entry.
func (s *FavoriteService) Add(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, userID); err != nil {
			return err
		}
		if _, err := findRecipe(tx, recipeID); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.SavedRecipe{UserID: userID, RecipeID: recipeID}).Error
	})
}

// Remove drops recipeID from the user's favorites. Absent entries are ignored.
func (s *FavoriteService) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	db := s.db.WithContext(ctx)
	if _, err := findUser(db, userID); err != nil {
		return err
	}
	return db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.SavedRecipe{}).Error
}
