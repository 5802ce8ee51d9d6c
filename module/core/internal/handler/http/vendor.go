package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

type nearbySearcher interface {
	Nearby(ctx context.Context, q domain.NearbyQuery) (*domain.NearbyResult, error)
}

type statusReader interface {
	Current(ctx context.Context, vendorID string) (*domain.VendorStatus, *domain.Location, error)
}

type VendorHandler struct {
	search nearbySearcher
	status statusReader
	log    *zap.SugaredLogger
}

func NewVendorHandler(search nearbySearcher, status statusReader, log *zap.SugaredLogger) *VendorHandler {
	return &VendorHandler{search: search, status: status, log: log}
}

func (h *VendorHandler) Register(r *gin.RouterGroup) {
	r.GET("/vendors/nearby", h.Nearby)
	r.GET("/vendors/:vendor_id/status", h.GetStatus)
}

func (h *VendorHandler) Nearby(c *gin.Context) {
	q, msg := parseNearbyQuery(c)
	if msg != "" {
		badRequest(c, msg)
		return
	}

	res, err := h.search.Nearby(c.Request.Context(), q)
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toNearbyResponse(res))
}

func (h *VendorHandler) GetStatus(c *gin.Context) {
	st, loc, err := h.status.Current(c.Request.Context(), c.Param("vendor_id"))
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toStatusResponse(st, loc))
}

// parseNearbyQuery returns a non-empty message when a parameter is malformed.
// An origin is set only when both lat and lon are given.
func parseNearbyQuery(c *gin.Context) (domain.NearbyQuery, string) {
	var q domain.NearbyQuery

	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if (latStr == "") != (lonStr == "") {
		return q, "lat and lon must be given together"
	}
	if latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return q, "invalid lat parameter"
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return q, "invalid lon parameter"
		}
		q.Origin = &domain.Coordinate{Lat: lat, Lon: lon}
	}

	if s := c.Query("live_only"); s != "" {
		liveOnly, err := strconv.ParseBool(s)
		if err != nil {
			return q, "invalid live_only parameter"
		}
		q.Filter.LiveOnly = liveOnly
	}

	if s := c.Query("cuisine"); s != "" {
		q.Filter.Cuisines = lo.Compact(lo.Map(strings.Split(s, ","), func(tag string, _ int) string {
			return strings.TrimSpace(tag)
		}))
	}

	if s := c.Query("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 0 {
			return q, "invalid limit parameter"
		}
		q.Limit = limit
	}

	return q, ""
}
