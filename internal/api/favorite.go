package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type FavoriteHandler struct {
	favoriteService service.IFavoriteService
	validator       middleware.TokenValidator
}

func NewFavoriteHandler(favoriteService service.IFavoriteService, validator middleware.TokenValidator) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		validator:       validator,
	}
}

// RegisterRoutes mounts the favorites routes under both /favorites and
// /favorites/api, which older clients still call.
func (h *FavoriteHandler) RegisterRoutes(router gin.IRouter) {
	optionalAuth := middleware.OptionalAuth(h.validator)
	requireAuth := middleware.RequireAuth(h.validator)

	for _, prefix := range []string{"/favorites", "/favorites/api"} {
		favorites := router.Group(prefix)
		favorites.GET("/:userId", optionalAuth, h.ListFavorites)
		favorites.POST("/:userId", requireAuth, h.AddFavorite)
		favorites.DELETE("/:userId", requireAuth, h.RemoveFavorite)
	}
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	recipes, err := h.favoriteService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, recipeID, ok := h.favoriteRequest(c)
	if !ok {
		return
	}
	if err := h.favoriteService.Add(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Recipe added to favorites")
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, recipeID, ok := h.favoriteRequest(c)
	if !ok {
		return
	}
	if err := h.favoriteService.Remove(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Recipe removed from favorites")
}

func (h *FavoriteHandler) favoriteRequest(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := ownerCaller(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	var req types.FavoriteRequest
	if !bindJSON(c, &req) {
		return uuid.Nil, uuid.Nil, false
	}
	if strings.TrimSpace(req.RecipeID) == "" {
		respondMessage(c, http.StatusBadRequest, "recipeId is required")
		return uuid.Nil, uuid.Nil, false
	}
	recipeID, err := uuid.Parse(strings.TrimSpace(req.RecipeID))
	if err != nil {
		respondMessage(c, http.StatusNotFound, "Recipe not found")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, recipeID, true
}
