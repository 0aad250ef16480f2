package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

const (
	// DefaultTokenTTL applies when no expiry is configured.
	DefaultTokenTTL   = 24 * time.Hour
	minPasswordLength = 5
	tokenIssuer       = "recipeshare"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Signup creates an account with the default bio and tags and returns it with a fresh token.
func (s *AuthService) Signup(ctx context.Context, req types.SignupRequest) (*types.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, badRequest("Username, email and password are required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, badRequest("Password must be at least %d characters", minPasswordLength)
	}
	if err := checkIdentityLength(username, email); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Bio:          models.DefaultBio,
		Tags:         models.DefaultTags(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkIdentityFree(tx, uuid.Nil, username, email); err != nil {
			return err
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("User already exists")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.authResponse(ctx, &user)
}

// Login checks the credentials and returns the account with a fresh token.
func (s *AuthService) Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, badRequest("Email and password are required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrUnauthorized, "Invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, newError(ErrUnauthorized, "Invalid credentials")
	}

	return s.authResponse(ctx, &user)
}

// GenerateToken signs an HS256 token for the user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken verifies signature, algorithm and expiry.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	if tokenString == "" {
		return nil, newError(ErrUnauthorized, "No token provided")
	}

	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, newError(ErrUnauthorized, "Invalid token")
	}
	if claims.UserID == uuid.Nil {
		return nil, newError(ErrUnauthorized, "Invalid token")
	}
	return claims, nil
}

func (s *AuthService) authResponse(ctx context.Context, user *models.User) (*types.AuthResponse, error) {
	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	resp, err := loadUserResponse(s.db.WithContext(ctx), user, true)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{User: resp, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkIdentityLength rejects usernames and emails that do not fit their columns.
func checkIdentityLength(username, email string) error {
	if utf8.RuneCountInString(username) > models.MaxUsernameLength {
		return badRequest("Username must be %d characters or less", models.MaxUsernameLength)
	}
	if utf8.RuneCountInString(email) > models.MaxEmailLength {
		return badRequest("Email must be %d characters or less", models.MaxEmailLength)
	}
	return nil
}

// checkIdentityFree reports a conflict when another account already uses the
// username or email. Empty values are not checked.
func checkIdentityFree(tx *gorm.DB, self uuid.UUID, username, email string) error {
	if username != "" {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ? AND id <> ?", username, self).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflict("Username already taken")
		}
	}
	if email != "" {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", email, self).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflict("Email already in use")
		}
	}
	return nil
}
