package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// Without flags the built-in sample recipes are inserted once. With -file,
// recipes are read from a JSON array of create-recipe bodies and attributed
// to the user named by -owner.
func main() {
	file := flag.String("file", "", "JSON file with recipes to import")
	owner := flag.String("owner", "", "Username that imported recipes are credited to")
	flag.Parse()

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
	recipes := service.NewRecipeService(db, service.NewRecipeValidator())

	if *file == "" {
		n, err := recipes.Seed(ctx)
		if errors.Is(err, service.ErrBadRequest) {
			logrus.Info("Recipes already seeded, nothing to do")
			return
		}
		if err != nil {
			logrus.WithError(err).Fatal("Failed to seed recipes")
		}
		logrus.Infof("Successfully seeded %d recipes", n)
		return
	}

	if *owner == "" {
		logrus.Fatal("-owner is required with -file")
	}
	var user models.User
	if err := db.Where("username = ?", *owner).First(&user).Error; err != nil {
		logrus.WithError(err).Fatalf("Failed to find user %q", *owner)
	}

	reqs, err := readRecipes(*file)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to read recipes")
	}
	created := importRecipes(ctx, recipes, user.ID, reqs)
	logrus.Infof("Imported %d of %d recipes", created, len(reqs))
}

func readRecipes(path string) ([]types.CreateRecipeRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reqs []types.CreateRecipeRequest
	if err := json.Unmarshal(data, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func importRecipes(ctx context.Context, recipes service.IRecipeService, owner uuid.UUID, reqs []types.CreateRecipeRequest) int {
	created := 0
	for _, req := range reqs {
		recipe, err := recipes.Create(ctx, owner, req)
		if err != nil {
			logrus.WithError(err).WithField("title", req.Title).Warn("Skipping recipe")
			continue
		}
		logrus.Infof("Created recipe: %s", recipe.Title)
		created++
	}
	return created
}
