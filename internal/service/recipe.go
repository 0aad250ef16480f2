package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

const maxCommentLength = 500

type RecipeService struct {
	db       *gorm.DB
	validate *validator.Validate
}

// NewRecipeValidator returns a validator that reports fields by their JSON names.
func NewRecipeValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func NewRecipeService(db *gorm.DB, validate *validator.Validate) *RecipeService {
	if validate == nil {
		validate = NewRecipeValidator()
	}
	return &RecipeService{db: db, validate: validate}
}

func withReviews(db *gorm.DB) *gorm.DB {
	return db.Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return db.Order("reviews.created_at ASC")
	})
}

// List returns every recipe, newest first.
func (s *RecipeService) List(ctx context.Context) ([]types.RecipeResponse, error) {
	var recipes []models.Recipe
	if err := withReviews(s.db.WithContext(ctx)).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return annotateAll(recipes), nil
}

func (s *RecipeService) GetByID(ctx context.Context, id uuid.UUID) (*types.RecipeResponse, error) {
	recipe, err := findRecipe(withReviews(s.db.WithContext(ctx)), id)
	if err != nil {
		return nil, err
	}
	resp := annotate(*recipe)
	return &resp, nil
}

// ListByUser returns the recipes created by userID, newest first.
func (s *RecipeService) ListByUser(ctx context.Context, userID uuid.UUID) ([]types.RecipeResponse, error) {
	var recipes []models.Recipe
	if err := withReviews(s.db.WithContext(ctx)).
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return annotateAll(recipes), nil
}

// Create stores a new recipe owned by creator.
func (s *RecipeService) Create(ctx context.Context, creator uuid.UUID, req types.CreateRecipeRequest) (*types.RecipeResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	req.CookingTime = strings.TrimSpace(req.CookingTime)
	req.Image = strings.TrimSpace(req.Image)
	if err := s.validate.Struct(req); err != nil {
		return nil, toValidationError(err)
	}

	recipe := models.Recipe{
		Title:        req.Title,
		Description:  req.Description,
		Servings:     req.Servings,
		Ingredients:  models.StringArray(req.Ingredients),
		Instructions: models.StringArray(req.Instructions),
		Category:     req.Category,
		Image:        req.Image,
		CookingTime:  req.CookingTime,
		CreatedBy:    creator,
	}

	db := s.db.WithContext(ctx)
	if _, err := findUser(db, creator); err != nil {
		return nil, err
	}
	if err := db.Create(&recipe).Error; err != nil {
		return nil, err
	}
	resp := annotate(recipe)
	return &resp, nil
}

// Delete removes a recipe together with its reviews and any favorites
// pointing at it. Only the creator may delete.
func (s *RecipeService) Delete(ctx context.Context, id, requester uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := findRecipe(tx, id)
		if err != nil {
			return err
		}
		if recipe.CreatedBy != requester {
			return newError(ErrForbidden, "Not authorized")
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.SavedRecipe{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

// AddReview appends reviewer's review. Each user may review a recipe once.
func (s *RecipeService) AddReview(ctx context.Context, recipeID, reviewer uuid.UUID, req types.CreateReviewRequest) (*types.ReviewResult, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, badRequest("Rating must be between 1 and 5")
	}
	comment := strings.TrimSpace(req.Comment)
	if len([]rune(comment)) > maxCommentLength {
		return nil, badRequest("Comment must be %d characters or less", maxCommentLength)
	}

	var result types.ReviewResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findRecipe(tx, recipeID); err != nil {
			return err
		}
		user, err := findUser(tx, reviewer)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Review{}).
			Where("recipe_id = ? AND user_id = ?", recipeID, reviewer).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflict("You have already reviewed this recipe")
		}

		review := models.Review{
			RecipeID: recipeID,
			UserID:   reviewer,
			Username: user.Username,
			Rating:   req.Rating,
			Comment:  comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("You have already reviewed this recipe")
			}
			return err
		}

		var reviews []models.Review
		if err := tx.Where("recipe_id = ?", recipeID).Find(&reviews).Error; err != nil {
			return err
		}
		result = types.ReviewResult{
			Review:        review,
			AverageRating: AverageRating(reviews),
			ReviewCount:   len(reviews),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SampleRecipes are inserted by Seed into an empty store.
func SampleRecipes() []models.Recipe {
	return []models.Recipe{
		{
			Title:        "Classic Margherita Pizza",
			Description:  "An Italian pizza with tomato sauce, mozzarella, and basil.",
			Ingredients:  models.StringArray{"Pizza dough", "Tomato sauce", "Mozzarella", "Basil"},
			Instructions: models.StringArray{"Spread sauce", "Add mozzarella", "Bake"},
			Category:     "Dinner",
			CookingTime:  "20",
			CreatedBy:    uuid.Nil,
		},
		{
			Title:        "Chicken Biryani",
			Description:  "A savory Indian rice and chicken dish.",
			Ingredients:  models.StringArray{"Chicken", "Rice", "Yogurt", "Spices"},
			Instructions: models.StringArray{"Marinate", "Layer", "Cook"},
			Category:     "Lunch",
			CookingTime:  "60",
			CreatedBy:    uuid.Nil,
		},
	}
}

// Seed inserts the sample recipes and reports how many were added.
func (s *RecipeService) Seed(ctx context.Context) (int, error) {
	samples := SampleRecipes()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Recipe{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return badRequest("Already seeded")
		}
		return tx.Create(&samples).Error
	})
	if err != nil {
		return 0, err
	}
	return len(samples), nil
}

func findRecipe(db *gorm.DB, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Recipe not found")
		}
		return nil, err
	}
	return &recipe, nil
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return badRequest("Invalid recipe")
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe)] = describeFieldError(fe)
	}
	return &ValidationError{Fields: fields}
}

// fieldName trims the struct prefix and keeps dive indexes, e.g. ingredients[1].
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at least %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "numeric":
		return "must be a number of minutes"
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
