package api

import (
	"coachplus/coachlog/internal/repository"
	"coachplus/coachlog/internal/service"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// statusFor maps service and repository errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidSections),
		errors.Is(err, service.ErrInvalidKind),
		errors.Is(err, service.ErrInvalidTemplate),
		errors.Is(err, service.ErrInvalidBlock),
		errors.Is(err, service.ErrInvalidFocus):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrBlockNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// abortWithServiceError keeps backend causes out of 5xx responses; clients only
// see the repository category.
func abortWithServiceError(c *gin.Context, err error) {
	code := statusFor(err)
	if code != http.StatusInternalServerError {
		abortWithError(c, code, err.Error())
		return
	}
	log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
	var repoErr repository.RepositoryError
	if errors.As(err, &repoErr) {
		abortWithError(c, code, "Storage error: "+string(repoErr))
		return
	}
	abortWithError(c, code, "Internal server error")
}
