package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Categories lists the values accepted for Recipe.Category.
var Categories = []string{
	"Breakfast",
	"Lunch",
	"Dinner",
	"Snacks",
	"Dessert",
	"Beverage",
	"Healthy",
	"Vegetarian",
	"Vegan",
}

type Recipe struct {
	ID           uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"_id"`
	Title        string      `gorm:"size:60;not null" json:"title"`
	Description  string      `gorm:"size:300;not null" json:"description"`
	Servings     *int        `json:"servings,omitempty"`
	Ingredients  StringArray `gorm:"type:jsonb;not null" json:"ingredients"`
	Instructions StringArray `gorm:"type:jsonb;not null" json:"instructions"`
	Category     string      `gorm:"size:30;not null;index" json:"category"`
	Image        string      `gorm:"size:300" json:"image"`
	CookingTime  string      `gorm:"size:10;not null" json:"cookingTime"`
	CreatedBy    uuid.UUID   `gorm:"type:varchar(36);not null;index" json:"createdBy"`
	Reviews      []Review    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"reviews"`
	CreatedAt    time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Review is stored in its own table but only ever read through its recipe.
type Review struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_recipe_user" json:"-"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_recipe_user" json:"userId"`
	Username  string    `gorm:"size:50;not null" json:"username"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"size:500" json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
