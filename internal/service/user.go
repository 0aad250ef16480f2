package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

const searchLimit = 20

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetProfile returns the caller's own profile, email included.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserResponse, error) {
	db := s.db.WithContext(ctx)
	user, err := findUser(db, userID)
	if err != nil {
		return nil, err
	}
	return loadUserResponse(db, user, true)
}

// GetPublicProfile returns another user's profile without the email.
func (s *UserService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*types.UserResponse, error) {
	db := s.db.WithContext(ctx)
	user, err := findUser(db, userID)
	if err != nil {
		return nil, err
	}
	return loadUserResponse(db, user, false)
}

// UpdateProfile applies the non-nil fields of req. Blank username or email
// values are ignored rather than clearing the field.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req types.UpdateProfileRequest) (*types.UserResponse, error) {
	if req.Tags != nil && len(req.Tags) > models.MaxTags {
		return nil, badRequest("You can only have up to %d tags", models.MaxTags)
	}
	if req.Bio != nil && utf8.RuneCountInString(*req.Bio) > models.MaxBioLength {
		return nil, badRequest("Bio must be %d characters or less", models.MaxBioLength)
	}
	var username, email string
	if req.Username != nil {
		username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		email = normalizeEmail(*req.Email)
	}
	if err := checkIdentityLength(username, email); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = findUser(tx, userID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		username, email := "", ""
		if req.Username != nil {
			if v := strings.TrimSpace(*req.Username); v != "" && v != user.Username {
				username = v
				updates["username"] = v
			}
		}
		if req.Email != nil {
			if v := normalizeEmail(*req.Email); v != "" && v != user.Email {
				email = v
				updates["email"] = v
			}
		}
		if req.Bio != nil {
			updates["bio"] = *req.Bio
		}
		if req.Tags != nil {
			updates["tags"] = models.StringArray(req.Tags)
		}
		if len(updates) == 0 {
			return nil
		}

		if err := checkIdentityFree(tx, userID, username, email); err != nil {
			return err
		}
		if err := tx.Model(user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("Username or email already in use")
			}
			return err
		}
		return tx.First(user, "id = ?", userID).Error
	})
	if err != nil {
		return nil, err
	}
	return loadUserResponse(s.db.WithContext(ctx), user, true)
}

// Search matches query case-insensitively against username, bio and tags.
// Matching happens here rather than in SQL: tags are stored as JSON text and
// sqlite's LOWER only folds ASCII. Rows stream in username order, so the
// first searchLimit matches are also the first alphabetically.
func (s *UserService) Search(ctx context.Context, query string) ([]types.SearchResult, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	results := []types.SearchResult{}
	if needle == "" {
		return results, nil
	}

	db := s.db.WithContext(ctx)
	rows, err := db.Model(&models.User{}).
		Select("id", "username", "bio", "tags").
		Order("LOWER(username)").
		Order("id").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var u models.User
		if err := db.ScanRows(rows, &u); err != nil {
			return nil, err
		}
		if !userMatches(u, needle) {
			continue
		}
		results = append(results, types.SearchResult{
			ID:       u.ID,
			Username: u.Username,
			Bio:      u.Bio,
			Tags:     nonNilStrings(u.Tags),
		})
		if len(results) == searchLimit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Follow records current -> target. Both directions are read from the same
// row, so a user's following set and the target's followers set change together.
func (s *UserService) Follow(ctx context.Context, current, target uuid.UUID) error {
	if current == target {
		return badRequest("You cannot follow yourself")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, current); err != nil {
			return err
		}
		if _, err := findUser(tx, target); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Follow{}).
			Where("follower_id = ? AND followee_id = ?", current, target).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflict("Already following this user")
		}

		if err := tx.Create(&models.Follow{FollowerID: current, FolloweeID: target}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("Already following this user")
			}
			return err
		}
		return nil
	})
}

// Unfollow removes current -> target. Not following is not an error.
func (s *UserService) Unfollow(ctx context.Context, current, target uuid.UUID) error {
	if current == target {
		return badRequest("You cannot unfollow yourself")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, target); err != nil {
			return err
		}
		return tx.Where("follower_id = ? AND followee_id = ?", current, target).
			Delete(&models.Follow{}).Error
	})
}

func findUser(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// loadUserResponse builds the sanitized user view with its relationship sets.
func loadUserResponse(db *gorm.DB, user *models.User, includeEmail bool) (*types.UserResponse, error) {
	resp := &types.UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Bio:          user.Bio,
		Tags:         nonNilStrings(user.Tags),
		SavedRecipes: []uuid.UUID{},
		Followers:    []uuid.UUID{},
		Following:    []uuid.UUID{},
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if includeEmail {
		resp.Email = user.Email
	}

	if err := db.Model(&models.SavedRecipe{}).
		Where("user_id = ?", user.ID).
		Order("created_at").
		Pluck("recipe_id", &resp.SavedRecipes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Follow{}).
		Where("followee_id = ?", user.ID).
		Order("created_at").
		Pluck("follower_id", &resp.Followers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Follow{}).
		Where("follower_id = ?", user.ID).
		Order("created_at").
		Pluck("followee_id", &resp.Following).Error; err != nil {
		return nil, err
	}
	return resp, nil
}

func userMatches(u models.User, needle string) bool {
	if strings.Contains(strings.ToLower(u.Username), needle) || strings.Contains(strings.ToLower(u.Bio), needle) {
		return true
	}
	for _, tag := range u.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
