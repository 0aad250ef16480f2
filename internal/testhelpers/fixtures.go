package testhelpers

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// TestPassword is the plain-text password of users made by CreateTestUser.
const TestPassword = "pw123"

// CreateTestUser inserts a user whose password is TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Bio:          models.DefaultBio,
		Tags:         models.DefaultTags(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// CreateTestRecipe inserts a valid recipe owned by owner.
func CreateTestRecipe(t *testing.T, db *gorm.DB, owner *models.User, title string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Title:        title,
		Description:  "Warm " + title,
		Ingredients:  models.StringArray{"water", "salt"},
		Instructions: models.StringArray{"boil", "season"},
		Category:     "Dinner",
		CookingTime:  "15",
		CreatedBy:    owner.ID,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}
	return recipe
}

// AddTestReview stores a review of recipe by user.
func AddTestReview(t *testing.T, db *gorm.DB, recipe *models.Recipe, user *models.User, rating int) *models.Review {
	t.Helper()
	review := &models.Review{
		RecipeID: recipe.ID,
		UserID:   user.ID,
		Username: user.Username,
		Rating:   rating,
	}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	return review
}
