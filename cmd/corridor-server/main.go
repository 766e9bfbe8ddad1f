// Command corridor-server serves stored corridor analysis runs over HTTP:
// JSON endpoints for run summaries, stations, obstacles and envelopes, and
// rendered chart pages.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/convoi-data/corridor.report/internal/api"
	"github.com/convoi-data/corridor.report/internal/db"
	"github.com/convoi-data/corridor.report/internal/units"
	"github.com/convoi-data/corridor.report/internal/version"
)

var (
	listen        = flag.String("listen", ":8080", "Listen address")
	dbPath        = flag.String("db", "corridor_runs.db", "sqlite run database")
	distanceUnits = flag.String("units", units.Metres, "distance units for chart labels (m, km)")
)

func main() {
	flag.Parse()

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	database, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open run database: %v", err)
	}
	defer database.Close()

	mux := api.NewServer(database, *distanceUnits).ServeMux()
	server := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(mux),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("corridor-server %s listening on %s (db %s)", version.String(), *listen, *dbPath)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
}
