package main

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

const testPassword = "testpassword123"

var testUsers = []struct {
	username string
	email    string
	bio      string
	tags     []string
}{
	{"johndoe", "john.doe@example.com", "Weeknight pasta person.", []string{"Italian", "Quick"}},
	{"janesmith", "jane.smith@example.com", "Baking on Sundays.", []string{"Dessert", "Breakfast"}},
	{"bobwilson", "bob.wilson@example.com", "", nil},
	{"alicecooper", "alice.cooper@example.com", "Spice first, ask later.", []string{"Indian", "Vegan", "Curry"}},
}

// Creates a handful of development accounts that follow each other and have
// something on their shopping lists. Accounts that already exist are reused.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	db, err := database.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	ctx := context.Background()
	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTExpiry)
	users := service.NewUserService(db)
	ingredients := service.NewIngredientService(db)

	var ids []uuid.UUID
	for _, u := range testUsers {
		id, err := ensureUser(ctx, auth, u.username, u.email)
		if err != nil {
			logrus.WithError(err).WithField("email", u.email).Error("Failed to create user")
			continue
		}
		ids = append(ids, id)

		if u.bio != "" || len(u.tags) > 0 {
			bio := u.bio
			if _, err := users.UpdateProfile(ctx, id, types.UpdateProfileRequest{Bio: &bio, Tags: u.tags}); err != nil {
				logrus.WithError(err).WithField("username", u.username).Warn("Failed to update profile")
			}
		}
		if _, err := ingredients.AddItem(ctx, id, "olive oil"); err != nil {
			logrus.WithError(err).WithField("username", u.username).Warn("Failed to add shopping item")
		}
		logrus.Infof("Ready: %s (%s)", u.username, u.email)
	}

	// Everyone follows the first account.
	for _, id := range ids[min(1, len(ids)):] {
		if err := users.Follow(ctx, id, ids[0]); err != nil && !errors.Is(err, service.ErrConflict) {
			logrus.WithError(err).Warn("Failed to follow")
		}
	}

	logrus.Infof("Created %d test users, password: %s", len(ids), testPassword)
}

func ensureUser(ctx context.Context, auth *service.AuthService, username, email string) (uuid.UUID, error) {
	resp, err := auth.Signup(ctx, types.SignupRequest{Username: username, Email: email, Password: testPassword})
	if err == nil {
		return resp.User.ID, nil
	}
	if !errors.Is(err, service.ErrConflict) {
		return uuid.Nil, err
	}
	login, err := auth.Login(ctx, types.LoginRequest{Email: email, Password: testPassword})
	if err != nil {
		return uuid.Nil, err
	}
	return login.User.ID, nil
}
