package config

import (
	"context"
	"net/http"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type brokerConn interface {
	IsClosed() bool
}

// placesReadiness is the address-search capability; a provider that is not
// ready degrades search but does not take the service down.
type placesReadiness interface {
	Ready() bool
}

type HealthChecker struct {
	db       pinger
	amqpConn brokerConn
	mqtt     mqtt.Client
	places   placesReadiness
}

var _ brokerConn = (*amqp.Connection)(nil)

func NewHealthChecker(db pinger, amqpConn brokerConn, mqttClient mqtt.Client, places placesReadiness) *HealthChecker {
	return &HealthChecker{db: db, amqpConn: amqpConn, mqtt: mqttClient, places: places}
}

func (h *HealthChecker) Register(r *gin.Engine) {
	r.GET("/healthz", h.Handle)
}

func (h *HealthChecker) Handle(c *gin.Context) {
	status := http.StatusOK
	deps := gin.H{}

	if err := h.db.PingContext(c.Request.Context()); err != nil {
		deps["postgres"] = gin.H{"status": "down", "error": err.Error()}
		status = http.StatusServiceUnavailable
	} else {
		deps["postgres"] = gin.H{"status": "up"}
	}

	if h.amqpConn.IsClosed() {
		deps["rabbitmq"] = gin.H{"status": "down", "error": "connection closed"}
		status = http.StatusServiceUnavailable
	} else {
		deps["rabbitmq"] = gin.H{"status": "up"}
	}

	if !h.mqtt.IsConnected() {
		deps["mqtt"] = gin.H{"status": "down", "error": "not connected"}
		status = http.StatusServiceUnavailable
	} else {
		deps["mqtt"] = gin.H{"status": "up"}
	}

	if h.places != nil && h.places.Ready() {
		deps["places"] = gin.H{"status": "up"}
	} else {
		deps["places"] = gin.H{"status": "degraded", "error": "address search not configured"}
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": deps,
	})
}
