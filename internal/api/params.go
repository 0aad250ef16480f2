package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/middleware"
)

// entityID parses a path id naming a recipe or user. A malformed id cannot
// match anything, so it is reported as notFoundMsg.
func entityID(c *gin.Context, param, notFoundMsg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		respondMessage(c, http.StatusNotFound, notFoundMsg)
		return uuid.Nil, false
	}
	return id, true
}

// ownerID parses the :userId segment of per-user collections.
func ownerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid user id")
		return uuid.Nil, false
	}
	return id, true
}

// caller returns the authenticated user. Routes behind RequireAuth always have one.
func caller(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "No token, authorization denied")
		return uuid.Nil, false
	}
	return id, true
}

// ownerCaller parses :userId and checks that it belongs to the caller.
func ownerCaller(c *gin.Context) (uuid.UUID, bool) {
	owner, ok := ownerID(c)
	if !ok {
		return uuid.Nil, false
	}
	me, ok := caller(c)
	if !ok {
		return uuid.Nil, false
	}
	if me != owner {
		respondMessage(c, http.StatusForbidden, "Not authorized")
		return uuid.Nil, false
	}
	return owner, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
