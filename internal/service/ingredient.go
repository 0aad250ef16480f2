package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// ItemRef addresses a shopping list item by ID. Index is the fallback for
// clients that still send positions; it is resolved against the current order.
type ItemRef struct {
	ID    uuid.UUID
	Index *int
}

type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// Get returns the user's list, or an empty one if nothing was ever added.
func (s *IngredientService) Get(ctx context.Context, userID uuid.UUID) (*models.IngredientList, error) {
	list, err := loadList(s.db.WithContext(ctx), userID)
	if errors.Is(err, ErrNotFound) {
		return &models.IngredientList{UserID: userID, Items: []models.IngredientItem{}}, nil
	}
	return list, err
}

// AddItem appends an unchecked item, creating the list on first use.
func (s *IngredientService) AddItem(ctx context.Context, userID uuid.UUID, name string) (*models.IngredientList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, badRequest("Ingredient name is required")
	}
	if utf8.RuneCountInString(name) > models.MaxItemNameLength {
		return nil, badRequest("Ingredient name must be %d characters or less", models.MaxItemNameLength)
	}

	var list *models.IngredientList
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A concurrent first add may create the list too; the conflict is
		// ignored and both callers then lock the same row.
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&models.IngredientList{UserID: userID}).Error; err != nil {
			return err
		}
		var l models.IngredientList
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&l).Error; err != nil {
			return err
		}

		var last int
		if err := tx.Model(&models.IngredientItem{}).
			Where("list_id = ?", l.ID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&last).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.IngredientItem{ListID: l.ID, Name: name, Position: last + 1}).Error; err != nil {
			return err
		}

		var err error
		list, err = loadList(tx, userID)
		return err
	})
	return list, err
}

// UpdateItem sets the done flag of one item.
func (s *IngredientService) UpdateItem(ctx context.Context, userID uuid.UUID, ref ItemRef, done bool) (*models.IngredientList, error) {
	var list *models.IngredientList
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := resolveItem(tx, userID, ref)
		if err != nil {
			return err
		}
		if err := tx.Model(item).Update("done", done).Error; err != nil {
			return err
		}
		list, err = loadList(tx, userID)
		return err
	})
	return list, err
}

// RemoveItem deletes one item. The others keep their IDs and order.
func (s *IngredientService) RemoveItem(ctx context.Context, userID uuid.UUID, ref ItemRef) (*models.IngredientList, error) {
	var list *models.IngredientList
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := resolveItem(tx, userID, ref)
		if err != nil {
			return err
		}
		if err := tx.Delete(item).Error; err != nil {
			return err
		}
		list, err = loadList(tx, userID)
		return err
	})
	return list, err
}

// ClearDone deletes every checked item.
func (s *IngredientService) ClearDone(ctx context.Context, userID uuid.UUID) (*models.IngredientList, error) {
	var list *models.IngredientList
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l, err := loadList(tx, userID)
		if errors.Is(err, ErrNotFound) {
			list = &models.IngredientList{UserID: userID, Items: []models.IngredientItem{}}
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("list_id = ? AND done = ?", l.ID, true).Delete(&models.IngredientItem{}).Error; err != nil {
			return err
		}
		list, err = loadList(tx, userID)
		return err
	})
	return list, err
}

func loadList(db *gorm.DB, userID uuid.UUID) (*models.IngredientList, error) {
	var list models.IngredientList
	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return orderItems(db)
	}).Where("user_id = ?", userID).First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Ingredient list not found")
		}
		return nil, err
	}
	if list.Items == nil {
		list.Items = []models.IngredientItem{}
	}
	return &list, nil
}

func resolveItem(tx *gorm.DB, userID uuid.UUID, ref ItemRef) (*models.IngredientItem, error) {
	if ref.ID == uuid.Nil && ref.Index == nil {
		return nil, badRequest("itemId or itemIndex is required")
	}
	if ref.ID == uuid.Nil && *ref.Index < 0 {
		return nil, notFound("Item not found")
	}

	var list models.IngredientList
	if err := tx.Select("id").Where("user_id = ?", userID).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Ingredient list not found")
		}
		return nil, err
	}

	var item models.IngredientItem
	q := tx.Where("list_id = ?", list.ID)
	if ref.ID != uuid.Nil {
		q = q.Where("id = ?", ref.ID)
	} else {
		q = orderItems(q).Offset(*ref.Index)
	}
	if err := q.Limit(1).Find(&item).Error; err != nil {
		return nil, err
	}
	if item.ID == uuid.Nil {
		return nil, notFound("Item not found")
	}
	return &item, nil
}

// orderItems gives a total order even if two items share a position.
func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("created_at ASC").Order("id ASC")
}
