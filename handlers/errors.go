package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"termbingo/services"
)

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// unrecognized is treated as a bad request, matching how the service layer
// reports rule violations as plain errors.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var persistenceErr *services.PersistenceError

	status := http.StatusBadRequest
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrNoActiveRound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInsufficientPool):
		status = http.StatusBadRequest
	case errors.As(err, &persistenceErr):
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
