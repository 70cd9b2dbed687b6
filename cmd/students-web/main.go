// main is the entry point of the student records web front end: a form
// for creating and updating students and a listing with edit and delete
// actions, backed by the records API.
//
// RUNNING THE SERVER:
//
//	go run ./cmd/students-web --config=config/local.yaml
//
// The records API (cmd/students-api) must be reachable at web.api_base_url.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/student-records/internal/client"
	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/logging"
	"github.com/aanand-mishra/student-records/internal/ui"
	"github.com/aanand-mishra/student-records/internal/web"
)

func main() {
	cfg := config.MustLoad()
	log := logging.Setup(cfg.Env)

	log.Info("starting students-web",
		slog.String("env", cfg.Env),
		slog.String("api", cfg.Web.APIBaseURL),
	)

	// No client timeout: a request to the records API always runs to
	// completion or failure.
	api := client.New(cfg.Web.APIBaseURL, nil)
	server := web.NewServer(ui.NewController(api))

	go func() {
		if err := server.Start(cfg.Web.Addr); err != nil {
			log.Error("server encountered an error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
