package main

import (
	"log"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nandanugg/vendor-radar/config"
	"github.com/nandanugg/vendor-radar/module/core"
	"github.com/nandanugg/vendor-radar/module/core/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := config.NewPostgres(cfg)
	if err != nil {
		logger.Fatalw("postgres", "error", err)
	}
	defer func() { _ = db.Close() }()

	amqpConn, err := config.NewRabbitMQ(cfg, logger)
	if err != nil {
		logger.Fatalw("rabbitmq", "error", err)
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg)
	if err != nil {
		logger.Fatalw("mqtt", "error", err)
	}
	defer mqttClient.Disconnect(250)

	authClient, err := config.NewSupabase(cfg)
	if err != nil && !errors.Is(err, config.ErrSupabaseNotConfigured) {
		logger.Fatalw("supabase", "error", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	coreModule, err := core.Build(db, amqpConn, mqttClient, authClient, core.Options{
		PositionTTL:      cfg.PositionTTL,
		DefaultOrigin:    domain.Coordinate{Lat: cfg.DefaultLatitude, Lon: cfg.DefaultLongitude},
		GeocoderURL:      cfg.GeocoderURL,
		GeocoderAPIKey:   cfg.GeocoderAPIKey,
		GeocoderRetryMax: cfg.GeocoderRetryMax,
	}, reg, logger)
	if err != nil {
		logger.Fatalw("core module", "error", err)
	}

	if err := coreModule.StartSubscribers(); err != nil {
		logger.Fatalw("start subscribers", "error", err)
	}

	r := gin.New()
	r.Use(config.RequestLogger(logger.Named("http")), gin.Recovery())

	health := config.NewHealthChecker(db, amqpConn, mqttClient, coreModule.Places)
	health.Register(r)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	coreModule.RegisterRoutes(&r.RouterGroup)

	logger.Infow("listening", "port", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		logger.Fatalw("server", "error", err)
	}
}
