package http

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

// Checked in order; the first sentinel the error carries wins.
var errorStatus = []struct {
	target error
	code   int
}{
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrInvalidTransition, http.StatusConflict},
	{domain.ErrLocationUnavailable, http.StatusUnprocessableEntity},
	{domain.ErrNoResult, http.StatusNotFound},
	{domain.ErrProviderUnavailable, http.StatusServiceUnavailable},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrPersistence, http.StatusInternalServerError},
}

func statusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.target) {
			return e.code
		}
	}
	return http.StatusInternalServerError
}

// abortWithError writes err as a JSON error body. Server-side failures are
// logged and their detail is kept out of the response.
func abortWithError(c *gin.Context, log *zap.SugaredLogger, err error) {
	code := statusFor(err)
	resp := errorResponse{Error: err.Error(), Hint: errors.FlattenHints(err)}

	switch code {
	case http.StatusInternalServerError:
		log.Errorw("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		resp.Error = "internal error"
	case http.StatusServiceUnavailable:
		log.Warnw("request degraded", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(code, resp)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg})
}
