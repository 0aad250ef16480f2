package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
	"github.com/pageza/recipeshare/backend/internal/types"
)

const testSecret = "test-secret"

func newAuthService(t *testing.T) (*service.AuthService, *service.UserService) {
	db := testhelpers.SetupTestDB(t)
	return service.NewAuthService(db, testSecret, time.Hour), service.NewUserService(db)
}

func TestSignupAndLogin(t *testing.T) {
	auth, users := newAuthService(t)
	ctx := context.Background()

	signup, err := auth.Signup(ctx, types.SignupRequest{Username: "chef1", Email: "c@x.com", Password: "pw123"})
	require.NoError(t, err)
	assert.NotEmpty(t, signup.Token)
	assert.Equal(t, "chef1", signup.User.Username)
	assert.Equal(t, "c@x.com", signup.User.Email)
	assert.Equal(t, models.DefaultBio, signup.User.Bio)
	assert.Equal(t, []string{"Italian Cuisine", "Baking", "Healthy"}, signup.User.Tags)
	assert.Empty(t, signup.User.Followers)

	login, err := auth.Login(ctx, types.LoginRequest{Email: "c@x.com", Password: "pw123"})
	require.NoError(t, err)

	claims, err := auth.ValidateToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, claims.UserID)

	profile, err := users.GetProfile(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "chef1", profile.Username)
}

func TestSignupValidation(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  types.SignupRequest
	}{
		{"missing username", types.SignupRequest{Email: "a@x.com", Password: "secret"}},
		{"missing email", types.SignupRequest{Username: "a", Password: "secret"}},
		{"missing password", types.SignupRequest{Username: "a", Email: "a@x.com"}},
		{"short password", types.SignupRequest{Username: "a", Email: "a@x.com", Password: "1234"}},
		{"long username", types.SignupRequest{Username: strings.Repeat("a", 51), Email: "a@x.com", Password: "secret"}},
		{"long email", types.SignupRequest{Username: "a", Email: strings.Repeat("a", 250) + "@x.com", Password: "secret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Signup(ctx, tt.req)
			assert.ErrorIs(t, err, service.ErrBadRequest)
		})
	}
}

func TestSignupLengthCountsCharacters(t *testing.T) {
	auth, _ := newAuthService(t)

	// 50 two-byte characters fit a 50 character column.
	resp, err := auth.Signup(context.Background(), types.SignupRequest{
		Username: strings.Repeat("é", 50),
		Email:    "e@x.com",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 50), resp.User.Username)
}

func TestSignupConflicts(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Signup(ctx, types.SignupRequest{Username: "chef1", Email: "c@x.com", Password: "pw123"})
	require.NoError(t, err)

	_, err = auth.Signup(ctx, types.SignupRequest{Username: "chef1", Email: "other@x.com", Password: "pw123"})
	assert.ErrorIs(t, err, service.ErrConflict)

	_, err = auth.Signup(ctx, types.SignupRequest{Username: "chef2", Email: "C@X.com", Password: "pw123"})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestLoginFailures(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Signup(ctx, types.SignupRequest{Username: "chef1", Email: "c@x.com", Password: "pw123"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, types.LoginRequest{Email: "c@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = auth.Login(ctx, types.LoginRequest{Email: "nobody@x.com", Password: "pw123"})
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = auth.Login(ctx, types.LoginRequest{Email: "c@x.com"})
	assert.ErrorIs(t, err, service.ErrBadRequest)
}

func TestValidateTokenRejects(t *testing.T) {
	auth, _ := newAuthService(t)
	user := &models.User{ID: uuid.New(), Username: "chef1", Email: "c@x.com"}

	sign := func(method jwt.SigningMethod, key interface{}, exp time.Time) string {
		claims := &types.TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
			UserID:           user.ID,
		}
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	valid, err := auth.GenerateToken(user)
	require.NoError(t, err)
	_, err = auth.ValidateToken(valid)
	require.NoError(t, err)

	tests := map[string]string{
		"empty":         "",
		"garbage":       "not-a-token",
		"expired":       sign(jwt.SigningMethodHS256, []byte(testSecret), time.Now().Add(-time.Minute)),
		"wrong secret":  sign(jwt.SigningMethodHS256, []byte("other"), time.Now().Add(time.Hour)),
		"wrong alg":     sign(jwt.SigningMethodHS512, []byte(testSecret), time.Now().Add(time.Hour)),
		"unsigned none": sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, time.Now().Add(time.Hour)),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := auth.ValidateToken(token)
			assert.ErrorIs(t, err, service.ErrUnauthorized)

			var svcErr *service.Error
			assert.True(t, errors.As(err, &svcErr))
		})
	}
}

func TestTokenExpiryDefault(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db, testSecret, 0)

	token, err := auth.GenerateToken(&models.User{ID: uuid.New(), Username: "chef1"})
	require.NoError(t, err)
	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, service.DefaultTokenTTL, ttl)
}
