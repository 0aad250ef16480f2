package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type UserHandler struct {
	userService service.IUserService
	validator   middleware.TokenValidator
}

func NewUserHandler(userService service.IUserService, validator middleware.TokenValidator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *UserHandler) RegisterRoutes(router gin.IRouter) {
	requireAuth := middleware.RequireAuth(h.validator)

	users := router.Group("/users")
	{
		users.GET("/profile", requireAuth, h.GetProfile)
		users.PUT("/profile", requireAuth, h.UpdateProfile)
		users.GET("/search", h.Search)
		users.POST("/:id/follow", requireAuth, h.Follow)
		users.DELETE("/:id/follow", requireAuth, h.Unfollow)
		users.GET("/:id", h.GetUser)
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	user, err := h.userService.GetProfile(c.Request.Context(), me)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	var req types.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), me, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func (h *UserHandler) Search(c *gin.Context) {
	results, err := h.userService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := entityID(c, "id", "User not found")
	if !ok {
		return
	}
	user, err := h.userService.GetPublicProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Follow(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	target, ok := entityID(c, "id", "User not found")
	if !ok {
		return
	}
	if err := h.userService.Follow(c.Request.Context(), me, target); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "User followed successfully")
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	target, ok := entityID(c, "id", "User not found")
	if !ok {
		return
	}
	if err := h.userService.Unfollow(c.Request.Context(), me, target); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "User unfollowed successfully")
}
