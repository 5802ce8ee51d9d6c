package http

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const vendorIDKey = "vendor_id"

type sessionProvider interface {
	CurrentVendorID(ctx context.Context, token string) (string, error)
}

// RequireVendor resolves the bearer token to a vendor id and stores it on the
// context for the handlers behind it.
func RequireVendor(sessions sessionProvider, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, err := sessions.CurrentVendorID(c.Request.Context(), bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		c.Set(vendorIDKey, vendorID)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
