package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultBio is assigned to every new account.
const DefaultBio = "Home Chef and Food Enthusiast | Sharing My Favorite Recipe and Cooking Tips | Making Cooking Easier For Everyone"

// Limits match the column sizes in the schema.
const (
	MaxUsernameLength = 50
	MaxEmailLength    = 255
	MaxBioLength      = 200
	MaxTags           = 5
)

// DefaultTags returns the tags a new account starts with.
func DefaultTags() StringArray {
	return StringArray{"Italian Cuisine", "Baking", "Healthy"}
}

type User struct {
	ID           uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"_id"`
	Username     string      `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email        string      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string      `gorm:"not null" json:"-"`
	Bio          string      `gorm:"size:200" json:"bio"`
	Tags         StringArray `gorm:"type:jsonb;not null" json:"tags"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Tags == nil {
		u.Tags = StringArray{}
	}
	return nil
}

// Follow is a single follower -> followee edge. Both a user's "following" and
// "followers" sets are read from this table, so the two sides cannot diverge.
type Follow struct {
	FollowerID uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	FolloweeID uuid.UUID `gorm:"type:varchar(36);primaryKey;index"`
	CreatedAt  time.Time
}

func (Follow) TableName() string {
	return "user_follows"
}

// SavedRecipe records a recipe in a user's favorites.
type SavedRecipe struct {
	UserID    uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);primaryKey;index"`
	CreatedAt time.Time
}

func (SavedRecipe) TableName() string {
	return "user_saved_recipes"
}
