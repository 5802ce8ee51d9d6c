package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

type statusController interface {
	statusReader
	Transition(ctx context.Context, vendorID string, req domain.TransitionRequest) (*domain.VendorStatus, *domain.Location, error)
}

type coordinateRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type selectionRequest struct {
	FormattedAddress string   `json:"formatted_address"`
	Latitude         *float64 `json:"latitude" binding:"required"`
	Longitude        *float64 `json:"longitude" binding:"required"`
	Locality         string   `json:"locality"`
	Region           string   `json:"region"`
	PostalCode       string   `json:"postal_code"`
}

type statusRequest struct {
	State     string             `json:"state" binding:"required,oneof=offline live closing_soon"`
	Device    *coordinateRequest `json:"device"`
	Selection *selectionRequest  `json:"selection"`
	Query     string             `json:"query" binding:"max=256"`
	Notes     string             `json:"notes" binding:"max=500"`
}

func (r *statusRequest) toDomain() domain.TransitionRequest {
	req := domain.TransitionRequest{
		To:    domain.OperationalState(r.State),
		Query: r.Query,
		Notes: r.Notes,
	}
	if r.Device != nil {
		req.Device = &domain.Coordinate{Lat: *r.Device.Latitude, Lon: *r.Device.Longitude}
	}
	if r.Selection != nil {
		req.Selection = &domain.AddressResult{
			FormattedAddress: r.Selection.FormattedAddress,
			Coordinate:       domain.Coordinate{Lat: *r.Selection.Latitude, Lon: *r.Selection.Longitude},
			Locality:         r.Selection.Locality,
			Region:           r.Selection.Region,
			PostalCode:       r.Selection.PostalCode,
		}
	}
	return req
}

// StatusHandler serves the signed-in vendor's own status. Its routes must sit
// behind RequireVendor.
type StatusHandler struct {
	controller statusController
	log        *zap.SugaredLogger
}

func NewStatusHandler(controller statusController, log *zap.SugaredLogger) *StatusHandler {
	return &StatusHandler{controller: controller, log: log}
}

func (h *StatusHandler) Register(r *gin.RouterGroup) {
	r.GET("/me/status", h.GetStatus)
	r.POST("/me/status", h.UpdateStatus)
}

func (h *StatusHandler) GetStatus(c *gin.Context) {
	st, loc, err := h.controller.Current(c.Request.Context(), c.GetString(vendorIDKey))
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toStatusResponse(st, loc))
}

func (h *StatusHandler) UpdateStatus(c *gin.Context) {
	var body statusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	st, loc, err := h.controller.Transition(c.Request.Context(), c.GetString(vendorIDKey), body.toDomain())
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toStatusResponse(st, loc))
}
