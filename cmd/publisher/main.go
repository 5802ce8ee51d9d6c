// Command publisher simulates vendor phones reporting their position over MQTT.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nandanugg/vendor-radar/config"
)

type positionMessage struct {
	VendorID  string  `json:"vendor_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

type simOptions struct {
	broker   string
	vendors  []string
	interval time.Duration
	lat      float64
	lon      float64
	drift    float64
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts simOptions

	cmd := &cobra.Command{
		Use:   "publisher --vendor <id> [--vendor <id>...]",
		Short: "Publish simulated vendor device positions",
		Long: `Publish simulated device positions to /vendors/{id}/position.

Each tick one vendor from the pool reports a position that wanders around
the centre point. Readings are picked up by the server's position tracker
and used when that vendor goes live without sending a coordinate.

Examples:
  publisher --vendor 6f1c... --interval 2s
  publisher --vendor a --vendor b --lat 39.77 --lon -86.16 --drift 0.01
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.broker, "broker", "", "MQTT broker URL (defaults to MQTT_BROKER)")
	cmd.Flags().StringSliceVar(&opts.vendors, "vendor", nil, "vendor id to simulate (repeatable)")
	cmd.Flags().DurationVar(&opts.interval, "interval", 5*time.Second, "time between readings")
	cmd.Flags().Float64Var(&opts.lat, "lat", 39.7684, "centre latitude")
	cmd.Flags().Float64Var(&opts.lon, "lon", -86.1581, "centre longitude")
	cmd.Flags().Float64Var(&opts.drift, "drift", 0.005, "maximum offset from the centre, in degrees")
	_ = cmd.MarkFlagRequired("vendor")

	return cmd
}

func run(ctx context.Context, opts simOptions) error {
	if opts.interval <= 0 {
		return errors.New("interval must be positive")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.broker != "" {
		cfg.MQTTBroker = opts.broker
	}
	cfg.MQTTClientID = "vendor-radar-simulator"

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client, err := config.NewMQTT(cfg)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infow("publishing positions", "broker", cfg.MQTTBroker, "interval", opts.interval, "vendors", opts.vendors)

	ticker := time.NewTicker(opts.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return nil
		case <-ticker.C:
			if err := publishOne(client, opts, logger); err != nil {
				logger.Warnw("publish failed", "error", err)
			}
		}
	}
}

func publishOne(client mqtt.Client, opts simOptions, logger *zap.SugaredLogger) error {
	vid := opts.vendors[rand.Intn(len(opts.vendors))]

	msg := positionMessage{
		VendorID:  vid,
		Latitude:  clamp(opts.lat+(rand.Float64()*2-1)*opts.drift, -90, 90),
		Longitude: clamp(opts.lon+(rand.Float64()*2-1)*opts.drift, -180, 180),
		Timestamp: time.Now().Unix(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal position")
	}
	topic := fmt.Sprintf("/vendors/%s/position", vid)

	token := client.Publish(topic, 1, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return errors.Wrapf(err, "publish to %s", topic)
	}

	logger.Debugw("published", "topic", topic, "payload", string(payload))
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
