package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/xavierca1/ligue-crm/internal/infra/database"
)

// Stand-in de desenvolvimento do data service remoto: implementa o
// mesmo protocolo de quatro operações que o front consome, em cima de
// Postgres. Em produção quem atende é o serviço de verdade.
func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("❌ Falha ao criar schema: %v", err)
	}

	h := &EntityHandler{
		Leads:     &database.LeadStore{DB: db},
		Notes:     &database.NoteStore{DB: db},
		FollowUps: &database.FollowUpStore{DB: db},
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			http.Error(w, "db unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/entities/{kind}", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleInsert)
		r.Patch("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})

	port := os.Getenv("DATA_SERVICE_PORT")
	if port == "" {
		port = "8081"
	}
	log.Printf("🗄️ Data service rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}
