package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/shared/errors"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, errors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, err error) {
	if apiErr, ok := err.(*errors.APIError); ok {
		c.JSON(http.StatusUnprocessableEntity, apiErr)
		return
	}
	c.JSON(http.StatusUnprocessableEntity, errors.NewValidationError(err.Error()))
}

// respondDomainError maps a service error onto its status and envelope.
// Server-side failures are logged; client-side outcomes are not.
func respondDomainError(c *gin.Context, err error, fields ...zap.Field) {
	status, apiErr := errors.FromDomain(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err, fields...)
	}
	c.JSON(status, apiErr)
}
