package handlers

import (
	"errors"
	"net/http"

	"grambazaar/middleware"
	"grambazaar/models"
	"grambazaar/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a service error to its HTTP status. Internal causes are
// logged and replaced with a generic message.
func respondError(c *gin.Context, err error) {
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		appErr = utils.Internal("Internal server error", err)
	}
	if appErr.Kind == utils.KindInternal {
		getLogger(c).Error(appErr.Message, zap.Error(appErr.Err), zap.String("path", c.FullPath()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "Internal server error"})
		return
	}
	c.AbortWithStatusJSON(appErr.Status(), utils.ErrorResponse{Error: appErr.Message, Issues: appErr.Issues})
}

// bindJSON binds the request body and writes a 400 on failure.
func bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		getLogger(c).Debug("Invalid request body", zap.Error(err))
		respondError(c, utils.BindingError(err))
		return false
	}
	return true
}

// identity returns the caller stored by the auth middleware.
func identity(c *gin.Context) (models.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Authentication required"})
	}
	return id, ok
}
