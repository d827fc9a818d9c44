// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/agenciacriadores/crm-backend/internal/controller"
	"github.com/agenciacriadores/crm-backend/internal/db"
	"github.com/agenciacriadores/crm-backend/internal/handler"
	"github.com/agenciacriadores/crm-backend/internal/queue"
	"github.com/agenciacriadores/crm-backend/internal/repository"
	"github.com/agenciacriadores/crm-backend/internal/service"
	"github.com/agenciacriadores/crm-backend/internal/sheets"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()

	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	creatorRepo := &repository.CreatorRepository{DB: db.DB}
	auditRepo := &repository.AuditLogRepository{DB: db.DB}

	// Audit sink: RabbitMQ when configured (cmd/worker persists), otherwise
	// in-process queue with a local subscriber.
	var auditQueue queue.Queue
	if url := os.Getenv("AMQP_URL"); url != "" {
		amqpQueue, err := queue.DialAMQP(url)
		if err != nil {
			log.Fatal("failed to connect to RabbitMQ:", err)
		}
		defer amqpQueue.Close()
		auditQueue = amqpQueue
	} else {
		memQueue := queue.NewInMemoryQueue()
		queue.StartAuditLogSubscriber(memQueue, auditRepo)
		auditQueue = memQueue
	}

	manager := service.NewCampaignManager(campaignRepo, auditQueue)

	slotsController := &controller.SlotsController{
		Manager:     manager,
		CreatorRepo: creatorRepo,
		AuditRepo:   auditRepo,
	}

	// Legacy spreadsheet path. The in-memory gateway is a stand-in until
	// the sheet transport is wired; businesses migrated to the relational
	// store never hit this route.
	legacyHandler := handler.NewLegacySwapHandler(sheets.NewInMemorySheet())

	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Slot engine routes
	r.Get("/api/campaigns/slots", slotsController.GetSlots)
	r.Post("/api/campaigns/{id}/creators", slotsController.AddCreator)
	r.Post("/api/campaigns/{id}/creators/remove", slotsController.RemoveCreator)
	r.Post("/api/campaigns/{id}/creators/swap", slotsController.SwapCreator)
	r.Post("/api/campaigns/{id}/fix", slotsController.FixCampaign)
	r.Get("/api/campaigns/{id}/audit-log", slotsController.GetAuditLog)
	r.Get("/api/campaigns/{id}/stats", slotsController.GetStats)

	// Legacy spreadsheet route
	r.Post("/api/legacy/trocar-criador", legacyHandler.SwapCreatorHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
