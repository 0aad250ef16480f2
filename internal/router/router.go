package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// Dependencies are the shared resources the routes are built from. Redis may
// be nil, which disables rate limiting and reports redis as disabled in /health.
type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *logrus.Logger
}

// SetupRouter wires services and handlers into a gin engine.
func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	authService := service.NewAuthService(deps.DB, cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(deps.DB)
	recipeService := service.NewRecipeService(deps.DB, service.NewRecipeValidator())
	favoriteService := service.NewFavoriteService(deps.DB)
	ingredientService := service.NewIngredientService(deps.DB)

	authLimiter := middleware.NewAuthRateLimiter(deps.Redis, cfg.AuthRateLimit, cfg.AuthRateWindow)
	recipeLimiter := middleware.NewRecipeCreationRateLimiter(deps.Redis, cfg.RecipeRateLimit, cfg.RecipeRateWindow)

	router := gin.New()
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.NoRoute(middleware.NoRoute())

	handlers := []interface{ RegisterRoutes(gin.IRouter) }{
		api.NewHealthHandler(deps.DB, deps.Redis),
		api.NewAuthHandler(authService, authLimiter),
		api.NewUserHandler(userService, authService),
		api.NewRecipeHandler(recipeService, authService, recipeLimiter),
		api.NewFavoriteHandler(favoriteService, authService),
		api.NewIngredientHandler(ingredientService, authService),
	}
	for _, h := range handlers {
		h.RegisterRoutes(router)
	}

	return router
}
