package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mahasultan/resouq-backend/pkg/apperrors"
	"github.com/mahasultan/resouq-backend/pkg/logger"
)

// respondError hands a service error to the error middleware, which maps it
// onto the response. Typed errors carry their own status code so callers can
// tell bad input (4xx, safe to correct and resubmit) from transient backend
// failures (5xx, retryable). Backend failures are logged with the request ID.
func respondError(ctx *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.Error); ok && appErr.Code >= http.StatusInternalServerError {
		logger.Error(ctx, "Request failed", appErr.Err)
	}
	_ = ctx.Error(err)
	ctx.Abort()
}
