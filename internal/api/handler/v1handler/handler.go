// Package v1handler implements the v1 HTTP handlers: profile link listings
// plus the bearer-token security middleware guarding them.
package v1handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"instagrab/internal/fetcher"
	"instagrab/pkg/logger"
	"instagrab/pkg/serrors"
)

// Deps groups the services the handlers depend on.
type Deps struct {
	Fetcher fetcher.Fetcher
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// RegisterRoutes mounts the v1 endpoints on the given router, all guarded by
// the security middleware.
func (h *Handler) RegisterRoutes(r gin.IRouter, sec *SecHandler) {
	r.GET("/getPhotos", sec.Middleware(), h.GetPhotos)
	r.GET("/getClips", sec.Middleware(), h.GetClips)
	r.GET("/getPosts", sec.Middleware(), h.GetPosts)
}

// errorResponse is the error payload shape for every failed request.
type errorResponse struct {
	Detail string `json:"detail"`
}

// writeError translates an error into an HTTP status and the error payload.
// Unknown profiles map to 400 rather than 404: the resource being requested
// is the listing, and a bad username is a client mistake.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, serrors.ErrBadRequest), errors.Is(err, serrors.ErrNotFound):
		status = http.StatusBadRequest
	case errors.Is(err, serrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, serrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, serrors.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, serrors.ErrUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, serrors.ErrTimeout):
		status = http.StatusGatewayTimeout
	}

	detail := err.Error()
	if status == http.StatusInternalServerError {
		// don't leak internals to the client
		detail = "internal error"
		logger.Error(c.Request.Context(), "request failed", zap.Error(err))
	}

	c.AbortWithStatusJSON(status, errorResponse{Detail: detail})
}
