package api

import (
	"errors"
	"net/http"

	"shootbook/internal/domain/user"
	"shootbook/internal/handler/httperr"
	"shootbook/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errUnauthenticated = errors.New("actor missing from request context")

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func requireActor(c *gin.Context) (user.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return user.Actor{}, false
	}
	return actor, true
}
