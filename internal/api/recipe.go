package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type RecipeHandler struct {
	recipeService service.IRecipeService
	validator     middleware.TokenValidator
	limiter       *middleware.RateLimiter
}

func NewRecipeHandler(recipeService service.IRecipeService, validator middleware.TokenValidator, limiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		validator:     validator,
		limiter:       limiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router gin.IRouter) {
	requireAuth := middleware.RequireAuth(h.validator)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/seed", h.SeedRecipes)
		recipes.GET("/user/:userId", h.ListUserRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", requireAuth, h.limiter.Middleware(), h.CreateRecipe)
		recipes.DELETE("/:id", requireAuth, h.DeleteRecipe)
		recipes.POST("/:id/reviews", requireAuth, h.AddReview)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := entityID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	recipe, err := h.recipeService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) ListUserRecipes(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	recipes, err := h.recipeService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	var req types.CreateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), me, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	id, ok := entityID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	if err := h.recipeService.Delete(c.Request.Context(), id, me); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Recipe deleted."})
}

func (h *RecipeHandler) AddReview(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	id, ok := entityID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	var req types.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.recipeService.AddReview(c.Request.Context(), id, me, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg":           "Review added successfully!",
		"review":        result.Review,
		"averageRating": result.AverageRating,
		"reviewCount":   result.ReviewCount,
	})
}

func (h *RecipeHandler) SeedRecipes(c *gin.Context) {
	n, err := h.recipeService.Seed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Recipes seeded.", "count": n})
}
