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

type IngredientHandler struct {
	ingredientService service.IIngredientService
	validator         middleware.TokenValidator
}

func NewIngredientHandler(ingredientService service.IIngredientService, validator middleware.TokenValidator) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
		validator:         validator,
	}
}

func (h *IngredientHandler) RegisterRoutes(router gin.IRouter) {
	requireAuth := middleware.RequireAuth(h.validator)

	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("/:userId", middleware.OptionalAuth(h.validator), h.GetList)
		ingredients.POST("/:userId", requireAuth, h.AddItem)
		ingredients.PUT("/:userId", requireAuth, h.UpdateItem)
		ingredients.DELETE("/:userId", requireAuth, h.RemoveItem)
		ingredients.PUT("/:userId/items/:itemId", requireAuth, h.UpdateItemByID)
		ingredients.DELETE("/:userId/items/:itemId", requireAuth, h.RemoveItemByID)
		ingredients.DELETE("/:userId/done", requireAuth, h.ClearDone)
	}
}

func (h *IngredientHandler) GetList(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	list, err := h.ingredientService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *IngredientHandler) AddItem(c *gin.Context) {
	userID, ok := ownerCaller(c)
	if !ok {
		return
	}
	var req types.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}
	list, err := h.ingredientService.AddItem(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *IngredientHandler) UpdateItem(c *gin.Context) {
	userID, ok := ownerCaller(c)
	if !ok {
		return
	}
	var req types.ItemRequest
	if !bindJSON(c, &req) {
		return
	}
	ref, ok := itemRef(c, req)
	if !ok {
		return
	}
	if req.Done == nil {
		respondMessage(c, http.StatusBadRequest, "done is required")
		return
	}
	list, err := h.ingredientService.UpdateItem(c.Request.Context(), userID, ref, *req.Done)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *IngredientHandler) RemoveItem(c *gin.Context) {
	userID, ok := ownerCaller(c)
	if !ok {
		return
	}
	var req types.ItemRequest
	if !bindJSON(c, &req) {
		return
	}
	ref, ok := itemRef(c, req)
	if !ok {
		return
	}
	list, err := h.ingredientService.RemoveItem(c.Request.Context(), userID, ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *IngredientHandler) UpdateItemByID(c *gin.Context) {
	userID, ok := ownerCaller(c)
	if !ok {
		return
	}
	itemID, ok := entityID(c, "itemId", "Item not found")
	if !ok {
		return
	}
	var req types.ItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Done == nil {
		respondMessage(c, http.StatusBadRequest, "done is required")
		return
	}
	list, err := h.ingredientService.UpdateItem(c.Request.Context(), userID, service.ItemRef{ID: itemID}, *req.Done)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *IngredientHandler) RemoveItemByID(c *gin.Context) {
	userID, ok := ownerCaller(c)
	if !ok {
		return
	}
	itemID, ok := entityID(c, "itemId", "Item not found")
	if !ok {
		return
	}
	list, err := h.ingredientService.RemoveItem(c.Request.Context(), userID, service.ItemRef{ID: itemID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *IngredientHandler) ClearDone(c *gin.Context) {
	userID, ok := ownerCaller(c)
	if !ok {
		return
	}
	list, err := h.ingredientService.ClearDone(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// itemRef prefers itemId and falls back to itemIndex.
func itemRef(c *gin.Context, req types.ItemRequest) (service.ItemRef, bool) {
	if id := strings.TrimSpace(req.ItemID); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			respondMessage(c, http.StatusNotFound, "Item not found")
			return service.ItemRef{}, false
		}
		return service.ItemRef{ID: parsed}, true
	}
	if req.ItemIndex != nil {
		return service.ItemRef{Index: req.ItemIndex}, true
	}
	respondMessage(c, http.StatusBadRequest, "itemId or itemIndex is required")
	return service.ItemRef{}, false
}
