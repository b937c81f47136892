package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/securesite/lead-conversion-job/internal/config"
	"github.com/securesite/lead-conversion-job/internal/infra/database"
	"github.com/securesite/lead-conversion-job/internal/infra/http/handlers"
	custommw "github.com/securesite/lead-conversion-job/internal/infra/http/middleware"
	"github.com/securesite/lead-conversion-job/internal/infra/integration/salesforce"
	"github.com/securesite/lead-conversion-job/internal/infra/mail"
	"github.com/securesite/lead-conversion-job/internal/infra/queue"
	"github.com/securesite/lead-conversion-job/internal/usecase"
)

// Superfície HTTP do job: gatilho manual, healthcheck e /metrics.
// É o equivalente das rotas da Azure Function original.
func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuração inválida: %v", err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no banco: %v", err)
	}
	defer db.Close()

	leadRepo := database.NewPendingLeadRepository(db)
	errorRepo := database.NewConversionErrorRepository(db)

	sfClient := salesforce.NewClient(cfg.SFLoginURL, cfg.SFUsername, cfg.SFPassword, cfg.SFSecurityToken)

	var producer usecase.QueueProducerInterface
	var rabbitConn *amqp.Connection
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("❌ Falha ao conectar no RabbitMQ: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
		rabbitConn = rabbitMQ.Conn
	}

	var reporter usecase.ReportService
	if cfg.MailHost != "" && cfg.MailReportTo != "" {
		reporter = mail.NewReportSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailReportTo)
	}

	loop := usecase.NewConvertPendingLeadsUseCase(
		leadRepo, errorRepo, sfClient, producer, reporter, cfg.CreateOpportunity,
	)
	job := usecase.NewLeadConversionJob(sfClient, loop)

	jobHandler := handlers.NewJobHandler(job)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(custommw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Post("/jobs/lead-conversion/run", jobHandler.Handle)
	r.Get("/healthz", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	log.Printf("🔥 Lead conversion trigger ouvindo em %s", addr)
	http.ListenAndServe(addr, r)
}
