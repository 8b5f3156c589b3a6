// cmd/parmair-gw/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oskari/Hassio-Parmair/internal/config"
	"github.com/oskari/Hassio-Parmair/internal/coordinator"
	"github.com/oskari/Hassio-Parmair/internal/detect"
	"github.com/oskari/Hassio-Parmair/internal/gateway"
	"github.com/oskari/Hassio-Parmair/internal/metrics"
	"github.com/oskari/Hassio-Parmair/internal/registers"
	"github.com/oskari/Hassio-Parmair/internal/transport"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: parmair-gw <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)

	metrics.MustRegister()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn := cfg.Connection

	// --------------------
	// Transport (fail fast at startup)
	// --------------------

	raw, err := transport.DialTCP(conn.Host, conn.Port, time.Duration(conn.TimeoutMs)*time.Millisecond)
	if err != nil {
		log.Fatalf("transport build failed: %v", err)
	}
	if err := raw.Open(); err != nil {
		log.Fatalf("connect to %s:%d failed: %v", conn.Host, conn.Port, err)
	}
	defer raw.Close()

	tc := transport.New(raw, conn.UnitID,
		transport.WithPace(time.Duration(conn.PaceMs)*time.Millisecond),
		transport.WithSettle(time.Duration(conn.SettleMs)*time.Millisecond),
	)
	tc.MarkConnected()

	// --------------------
	// Firmware detection (hint speeds up logging only, never skips it)
	// --------------------

	hint, err := config.LoadHint(cfg.StateFile)
	if err != nil {
		log.Printf("detection hint unavailable: %v", err)
	}

	result := detect.New().Detect(tc)
	if errors.Is(lastProbeError(tc), transport.ErrIncompatibleClient) {
		log.Fatalf("incompatible transport library: %v", transport.ErrIncompatibleClient)
	}
	metrics.ProbeAttempts.Set(float64(tc.ProbeAttempts()))
	log.Printf("transport: unit-id convention %q", tc.Convention())

	if hint != nil && hint.Generation != string(result.Generation) && !result.Defaulted {
		log.Printf("detection disagrees with persisted hint (%s -> %s); trusting fresh detection",
			hint.Generation, result.Generation)
	}
	if result.Defaulted && hint != nil {
		// Detection failed outright; the persisted result from the last
		// good run beats the blind default.
		log.Printf("detection inconclusive, using persisted hint: generation=%s heater=%s",
			hint.Generation, hint.Heater)
		result.Generation = registers.Generation(hint.Generation)
		result.Heater = registers.HeaterType(hint.Heater)
		result.SoftwareVersion = hint.SoftwareVersion
		result.Model = hint.Model
	}
	if !result.Defaulted {
		if err := config.SaveHint(cfg.StateFile, config.DetectionHint{
			Generation:      string(result.Generation),
			SoftwareVersion: result.SoftwareVersion,
			Heater:          string(result.Heater),
			Model:           result.Model,
			DetectedAt:      time.Now(),
		}); err != nil {
			log.Printf("persisting detection failed: %v", err)
		}
	}

	// --------------------
	// Coordinator + HTTP surface
	// --------------------

	catalog := registers.ForGeneration(result.Generation)
	coord := coordinator.New(catalog, tc, coordinator.Summary{
		Generation:      result.Generation,
		SoftwareVersion: result.SoftwareVersion,
		Heater:          result.Heater,
		Model:           result.Model,
	}, coordinator.WithReconnect(tc.Reconnect))

	go coord.Run(ctx, time.Duration(conn.ScanIntervalS)*time.Second)

	srv := &http.Server{
		Addr:    cfg.HTTP.Listen,
		Handler: gateway.New(coord).Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("parmair-gw: polling %s:%d unit %d every %ds, serving on %s",
		conn.Host, conn.Port, conn.UnitID, conn.ScanIntervalS, cfg.HTTP.Listen)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server failed: %v", err)
	}
}

// lastProbeError reports the terminal probe state as an error, nil while the
// probe is unresolved or resolved.
func lastProbeError(tc *transport.Client) error {
	if tc.Convention() == "exhausted" {
		return transport.ErrIncompatibleClient
	}
	return nil
}
