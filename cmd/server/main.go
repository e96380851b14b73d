// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/bgkien/hypergen-dashboard/internal/client"
	"github.com/bgkien/hypergen-dashboard/internal/db"
	"github.com/bgkien/hypergen-dashboard/internal/handler"
	"github.com/bgkien/hypergen-dashboard/internal/queue"
	"github.com/bgkien/hypergen-dashboard/internal/repository"
	"github.com/bgkien/hypergen-dashboard/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Init DB (reference stats backend)
	db.Init()

	campaignStore := &repository.CampaignStore{DB: db.DB}
	workspaceStore := &repository.WorkspaceStore{DB: db.DB}

	backendHandler := &handler.BackendHandler{
		Campaigns:  campaignStore,
		Workspaces: workspaceStore,
	}

	// Refresh events go to RabbitMQ when configured, otherwise to the
	// in-process queue with a logging subscriber.
	var events queue.Queue
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		amqpQueue, err := queue.NewAMQPQueue(amqpURL)
		if err != nil {
			log.Fatal("failed to connect to RabbitMQ:", err)
		}
		defer amqpQueue.Close()
		events = amqpQueue
	} else {
		memQueue := queue.NewInMemoryQueue()
		queue.StartRefreshLogSubscriber(memQueue)
		events = memQueue
	}

	upstreamURL := os.Getenv("UPSTREAM_URL")
	if upstreamURL == "" {
		upstreamURL = "http://localhost:" + port
	}
	statsClient := client.New(client.Options{BaseURL: upstreamURL})

	debounce := 300 * time.Millisecond
	if raw := os.Getenv("DEBOUNCE_MS"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			debounce = time.Duration(ms) * time.Millisecond
		}
	}

	orchestrator := service.NewOrchestrator(statsClient, service.Options{
		Debounce: debounce,
		Events:   events,
	})

	dashboardHandler := &handler.DashboardHandler{
		Orchestrator: orchestrator,
		Workspaces:   statsClient,
	}

	r := chi.NewRouter()

	// Reference stats backend
	r.Get("/api/workspaces", backendHandler.ListWorkspacesHandler)
	r.Get("/api/campaign-stats", backendHandler.GetCampaignStatsHandler)

	// Dashboard surface
	r.Get("/api/dashboard/workspaces", dashboardHandler.ListWorkspacesHandler)
	r.Get("/api/dashboard/summary", dashboardHandler.GetSummaryHandler)
	r.Get("/api/dashboard/diagnostics", dashboardHandler.GetDiagnosticsHandler)

	log.Println("🚀 Server running on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
