package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-crm/internal/cache"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/infra/remote"
	"github.com/xavierca1/ligue-crm/internal/infra/worker"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	dataServiceURL := os.Getenv("DATA_SERVICE_URL")
	if dataServiceURL == "" {
		dataServiceURL = "http://localhost:8081"
	}

	// 1. Cliente do data service + repositórios tipados
	client := remote.NewClient(dataServiceURL, os.Getenv("DATA_SERVICE_API_KEY"))
	leadRepo := remote.NewLeadRepository(client)
	noteRepo := remote.NewNoteRepository(client)
	followUpRepo := remote.NewFollowUpRepository(client)

	// 2. Cache de queries: um por processo, injetado em quem precisa.
	queryCache := cache.NewQueryCache()

	// 3. Engine do funil
	engine := usecase.NewPipelineEngine(leadRepo, noteRepo, followUpRepo, queryCache)

	// 4. Fila de lembretes (opcional: só sobe com RABBITMQ_HOST setado)
	var rabbitConn *amqp.Connection
	if host := os.Getenv("RABBITMQ_HOST"); host != "" {
		rabbitMQ, err := queue.NewRabbitMQ(
			os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
			host, os.Getenv("RABBITMQ_PORT"),
		)
		if err != nil {
			log.Fatalf("❌ RabbitMQ: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		rabbitConn = rabbitMQ.Conn

		mailSender := mail.NewEmailSender(
			os.Getenv("MAIL_HOST"), 587,
			os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			os.Getenv("MAIL_FROM"),
		)

		// Consumer: fila -> email
		emailWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
		go emailWorker.Start(queue.QueueName)

		// Scanner: follow-ups vencidos -> fila
		producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
		reminderWorker := worker.NewReminderWorker(
			leadRepo, followUpRepo, producer,
			os.Getenv("REMINDER_PRINCIPAL_ID"), os.Getenv("REMINDER_OWNER_EMAIL"),
		)
		go reminderWorker.Start(context.Background())
	}

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(engine)
	pipelineHandler := handlers.NewPipelineHandler(engine)
	dashboardHandler := handlers.NewDashboardHandler(engine)
	noteHandler := handlers.NewNoteHandler(engine)
	followUpHandler := handlers.NewFollowUpHandler(engine)
	healthHandler := handlers.NewHealthHandler(dataServiceURL, rabbitConn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.Principal)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Principal-Id"},
	}))

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", leadHandler.HandleList)
		r.Post("/", leadHandler.HandleCreate)
		r.Get("/{id}", leadHandler.HandleGet)
		r.Put("/{id}", leadHandler.HandleUpdate)
		r.Patch("/{id}/stage", leadHandler.HandleSetStage)
		r.Delete("/{id}", leadHandler.HandleDelete)
		r.Get("/{id}/notes", noteHandler.HandleList)
		r.Post("/{id}/notes", noteHandler.HandleCreate)
	})
	r.Get("/pipeline", pipelineHandler.HandleBoard)
	r.Get("/dashboard", dashboardHandler.HandleDashboard)
	r.Route("/follow-ups", func(r chi.Router) {
		r.Get("/", followUpHandler.HandleList)
		r.Post("/", followUpHandler.HandleCreate)
		r.Patch("/{id}", followUpHandler.HandleSetCompleted)
	})
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🔥 Ligue CRM rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}
