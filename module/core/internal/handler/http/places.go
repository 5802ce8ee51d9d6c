package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

type placesSearcher interface {
	Search(ctx context.Context, query string) (*domain.AddressResult, error)
}

type PlacesHandler struct {
	places placesSearcher
	log    *zap.SugaredLogger
}

func NewPlacesHandler(places placesSearcher, log *zap.SugaredLogger) *PlacesHandler {
	return &PlacesHandler{places: places, log: log}
}

func (h *PlacesHandler) Register(r *gin.RouterGroup) {
	r.GET("/places/search", h.Search)
}

func (h *PlacesHandler) Search(c *gin.Context) {
	res, err := h.places.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toAddressResponse(res))
}
