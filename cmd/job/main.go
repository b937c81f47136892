package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/securesite/lead-conversion-job/internal/config"
	"github.com/securesite/lead-conversion-job/internal/infra/database"
	"github.com/securesite/lead-conversion-job/internal/infra/integration/salesforce"
	"github.com/securesite/lead-conversion-job/internal/infra/mail"
	"github.com/securesite/lead-conversion-job/internal/infra/queue"
	"github.com/securesite/lead-conversion-job/internal/usecase"
)

// Entrada agendada: o scheduler chama sem argumentos, o processo roda um
// run completo e encerra. Erro fatal de Init sai com status != 0 sem
// processar nenhum item.
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

	// Eventos e relatório são opcionais: sem config, seguem desligados
	var producer usecase.QueueProducerInterface
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("❌ Falha ao conectar no RabbitMQ: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	}

	var reporter usecase.ReportService
	if cfg.MailHost != "" && cfg.MailReportTo != "" {
		reporter = mail.NewReportSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailReportTo)
	}

	loop := usecase.NewConvertPendingLeadsUseCase(
		leadRepo, errorRepo, sfClient, producer, reporter, cfg.CreateOpportunity,
	)
	job := usecase.NewLeadConversionJob(sfClient, loop)

	summary, err := job.Execute(context.Background(), cfg.DryRun)
	if err != nil {
		log.Fatalf("❌ Run abortado: %v", err)
	}

	log.Printf("✔️ Run %s: %d pendente(s), %d convertido(s), %d com erro, %d não resolvido(s)",
		summary.RunID, summary.Pending, summary.Converted, summary.Failed, summary.Unresolved)
}
