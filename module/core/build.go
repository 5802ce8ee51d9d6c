package core

import (
	"time"

	"github.com/cockroachdb/errors"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/nedpals/supabase-go"
	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/nandanugg/vendor-radar/module/core/domain"
	"github.com/nandanugg/vendor-radar/module/core/internal/auth"
	"github.com/nandanugg/vendor-radar/module/core/internal/geocoder"
	handler "github.com/nandanugg/vendor-radar/module/core/internal/handler/http"
	"github.com/nandanugg/vendor-radar/module/core/internal/handler/subscriber"
	"github.com/nandanugg/vendor-radar/module/core/internal/metrics"
	"github.com/nandanugg/vendor-radar/module/core/internal/position"
	"github.com/nandanugg/vendor-radar/module/core/internal/repository/database/postgres"
	"github.com/nandanugg/vendor-radar/module/core/internal/repository/publisher/rabbitmq"
	"github.com/nandanugg/vendor-radar/module/core/service"
)

type Options struct {
	PositionTTL   time.Duration
	DefaultOrigin domain.Coordinate

	GeocoderURL      string
	GeocoderAPIKey   string
	GeocoderRetryMax int
}

type Module struct {
	Status *service.StatusController
	Search *service.SearchService
	Places *service.PlacesService

	log           *zap.SugaredLogger
	sessions      *auth.SessionProvider
	vendorHandler *handler.VendorHandler
	statusHandler *handler.StatusHandler
	placesHandler *handler.PlacesHandler
	subscriber    *subscriber.PositionSubscriber
}

// Build wires the core module. authClient may be nil, in which case the
// signed-in vendor routes are not registered.
func Build(
	db *sqlx.DB,
	amqpConn *amqp.Connection,
	mqttClient mqtt.Client,
	authClient *supabase.Client,
	opts Options,
	reg prometheus.Registerer,
	log *zap.SugaredLogger,
) (*Module, error) {
	store := postgres.NewStore(db)
	m := metrics.New(reg)

	statusPub, err := rabbitmq.NewStatusPublisher(amqpConn)
	if err != nil {
		return nil, errors.Wrap(err, "status publisher")
	}

	tracker := position.NewTracker(opts.PositionTTL)
	places := service.NewPlacesService(
		geocoder.New(opts.GeocoderURL, opts.GeocoderAPIKey, opts.GeocoderRetryMax),
		m,
	)
	if !places.Ready() {
		log.Warn("address search disabled: GEOCODER_API_KEY is not set")
	}

	statusSvc := service.NewStatusController(store, tracker, places, statusPub, m, log.Named("status"))
	searchSvc := service.NewSearchService(store, opts.DefaultOrigin, m, log.Named("search"))

	mod := &Module{
		Status:        statusSvc,
		Search:        searchSvc,
		Places:        places,
		log:           log,
		vendorHandler: handler.NewVendorHandler(searchSvc, statusSvc, log.Named("http")),
		statusHandler: handler.NewStatusHandler(statusSvc, log.Named("http")),
		placesHandler: handler.NewPlacesHandler(places, log.Named("http")),
		subscriber:    subscriber.NewPositionSubscriber(mqttClient, tracker, log.Named("position")),
	}
	if authClient != nil {
		mod.sessions = auth.NewSupabaseSessionProvider(authClient, store)
	}
	return mod, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.vendorHandler.Register(r)
	m.placesHandler.Register(r)

	if m.sessions == nil {
		m.log.Warn("vendor session routes disabled: supabase is not configured")
		return
	}
	m.statusHandler.Register(r.Group("", handler.RequireVendor(m.sessions, m.log.Named("http"))))
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}
