package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxItemNameLength matches the ingredient_items.name column.
const MaxItemNameLength = 200

// IngredientList is a user's shopping list. Each user owns at most one.
type IngredientList struct {
	ID        uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"_id"`
	UserID    uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex" json:"userId"`
	Items     []IngredientItem `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func (l *IngredientList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// IngredientItem keeps a stable ID; Position only orders items for display.
type IngredientItem struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"_id"`
	ListID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Done      bool      `gorm:"not null;default:false" json:"done"`
	Position  int       `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"-"`
}

func (i *IngredientItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
