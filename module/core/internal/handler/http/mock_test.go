package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

type mockSearcher struct {
	nearbyFn func(ctx context.Context, q domain.NearbyQuery) (*domain.NearbyResult, error)
}

func (m *mockSearcher) Nearby(ctx context.Context, q domain.NearbyQuery) (*domain.NearbyResult, error) {
	return m.nearbyFn(ctx, q)
}

type mockController struct {
	currentFn    func(ctx context.Context, vendorID string) (*domain.VendorStatus, *domain.Location, error)
	transitionFn func(ctx context.Context, vendorID string, req domain.TransitionRequest) (*domain.VendorStatus, *domain.Location, error)
}

func (m *mockController) Current(ctx context.Context, vendorID string) (*domain.VendorStatus, *domain.Location, error) {
	return m.currentFn(ctx, vendorID)
}

func (m *mockController) Transition(ctx context.Context, vendorID string, req domain.TransitionRequest) (*domain.VendorStatus, *domain.Location, error) {
	return m.transitionFn(ctx, vendorID, req)
}

type mockPlaces struct {
	searchFn func(ctx context.Context, query string) (*domain.AddressResult, error)
}

func (m *mockPlaces) Search(ctx context.Context, query string) (*domain.AddressResult, error) {
	return m.searchFn(ctx, query)
}

type mockSessions struct {
	currentVendorIDFn func(ctx context.Context, token string) (string, error)
}

func (m *mockSessions) CurrentVendorID(ctx context.Context, token string) (string, error) {
	return m.currentVendorIDFn(ctx, token)
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func setupVendorRouter(search nearbySearcher, status statusReader) *gin.Engine {
	r := newTestEngine()
	NewVendorHandler(search, status, zap.NewNop().Sugar()).Register(r.Group(""))
	return r
}

func setupStatusRouter(sessions sessionProvider, ctrl statusController) *gin.Engine {
	r := newTestEngine()
	log := zap.NewNop().Sugar()
	NewStatusHandler(ctrl, log).Register(r.Group("", RequireVendor(sessions, log)))
	return r
}

func setupPlacesRouter(places placesSearcher) *gin.Engine {
	r := newTestEngine()
	NewPlacesHandler(places, zap.NewNop().Sugar()).Register(r.Group(""))
	return r
}
