package usecase

import (
	"context"
	"log"
	"time"

	"github.com/securesite/lead-conversion-job/internal/entity"
	"github.com/securesite/lead-conversion-job/internal/infra/metrics"
	"github.com/securesite/lead-conversion-job/internal/infra/queue"
)

func NewConvertPendingLeadsUseCase(
	leads entity.PendingLeadRepositoryInterface,
	errors entity.ConversionErrorRepositoryInterface,
	converter LeadConverter,
	producer QueueProducerInterface,
	reporter ReportService,
	createOpportunity bool,
) *ConvertPendingLeadsUseCase {
	return &ConvertPendingLeadsUseCase{
		Leads:             leads,
		Errors:            errors,
		Converter:         converter,
		Producer:          producer,
		Reporter:          reporter,
		CreateOpportunity: createOpportunity,
	}
}

type ConvertPendingLeadsUseCase struct {
	Leads     entity.PendingLeadRepositoryInterface
	Errors    entity.ConversionErrorRepositoryInterface
	Converter LeadConverter

	// Opcionais (nil desliga, como o EmailService do checkout)
	Producer QueueProducerInterface
	Reporter ReportService

	CreateOpportunity bool
}

// RunSummary é o que um run devolve para logs, trigger HTTP e relatório.
// Pending = Converted + Failed + Unresolved, sempre: nenhum lead some sem
// deixar rastro.
type RunSummary struct {
	RunID      string `json:"run_id"`
	Pending    int    `json:"pending"`
	Converted  int    `json:"converted"`
	Failed     int    `json:"failed"`
	Unresolved int    `json:"unresolved"`
	DryRun     bool   `json:"dry_run,omitempty"`
}

// Execute roda uma reconciliação completa sobre um snapshot da fila:
// snapshot -> resolve status convertido (uma vez) -> converte item a item,
// sequencial -> remove da fila ou grava o erro. Falha de item nunca aborta
// o restante; falha de mutação deixa o lead pendente para o próximo run.
func (uc *ConvertPendingLeadsUseCase) Execute(ctx context.Context, dryRun bool) (*RunSummary, error) {
	runID := newRunID()

	leads, err := uc.Leads.FetchPending(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "QUEUE_READ_ERROR",
			Message: "falha ao ler fila de leads pendentes: " + err.Error(),
		}
	}

	summary := &RunSummary{RunID: runID, Pending: len(leads), DryRun: dryRun}

	if len(leads) == 0 {
		log.Printf("📭 [%s] Nenhum lead pendente de conversão", runID)
		return summary, nil
	}

	log.Printf("🚀 [%s] %d lead(s) pendente(s) de conversão", runID, len(leads))

	if dryRun {
		for _, lead := range leads {
			log.Printf("👀 [%s] dry-run: lead %s (cliente %s, criado %s)",
				runID, lead.LeadID, lead.ClientID, lead.CreatedDate.Format(time.RFC3339))
		}
		return summary, nil
	}

	convertedStatus, err := uc.Converter.ResolveConvertedStatus(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "SALESFORCE_METADATA_ERROR",
			Message: "falha ao resolver status de lead convertido: " + err.Error(),
		}
	}

	for _, lead := range leads {
		uc.processLead(ctx, runID, lead, convertedStatus, summary)
	}

	log.Printf("🏁 [%s] Run concluído: %d convertido(s), %d com erro, %d não resolvido(s)",
		runID, summary.Converted, summary.Failed, summary.Unresolved)

	if summary.Failed > 0 && uc.Reporter != nil {
		if err := uc.Reporter.SendRunReport(runID, summary.Converted, summary.Failed, summary.Unresolved); err != nil {
			log.Printf("⚠️ [%s] Falha ao enviar relatório por email: %v", runID, err)
		}
	}

	return summary, nil
}

// processLead resolve o destino de um único lead. O resultado é sempre um
// destes: removido da fila, registrado na tabela de erros, ou mantido
// pendente quando a própria mutação falha.
func (uc *ConvertPendingLeadsUseCase) processLead(
	ctx context.Context,
	runID string,
	lead entity.PendingLead,
	convertedStatus string,
	summary *RunSummary,
) {
	result, callErr := uc.Converter.ConvertLead(ctx, lead.LeadID, convertedStatus, uc.CreateOpportunity)
	outcome := ClassifyOutcome(result, callErr)

	if !outcome.Converted {
		log.Printf("❌ [%s] Lead %s não convertido: %s", runID, lead.LeadID, outcome.Reason)

		convErr := &entity.ConversionError{
			LeadID:      lead.LeadID,
			ClientID:    lead.ClientID,
			CreatedDate: lead.CreatedDate,
			ErrorDate:   time.Now(),
			Message:     outcome.Reason,
		}
		if err := uc.Errors.Insert(ctx, convErr); err != nil {
			// Lead fica na fila; o próximo run tenta de novo
			log.Printf("⚠️ [%s] Falha ao gravar erro do lead %s, mantido pendente: %v", runID, lead.LeadID, err)
			summary.Unresolved++
			metrics.RecordLeadUnresolved()
			return
		}

		summary.Failed++
		metrics.RecordLeadFailed()
		return
	}

	if err := uc.Leads.Delete(ctx, lead.LeadID); err != nil {
		// Convertido no Salesforce mas ainda na fila: o delete idempotente
		// resolve no próximo run
		log.Printf("⚠️ [%s] Lead %s convertido mas não removido da fila: %v", runID, lead.LeadID, err)
		summary.Unresolved++
		metrics.RecordLeadUnresolved()
		return
	}

	log.Printf("✅ [%s] Lead %s convertido: account=%s contact=%s opportunity=%s",
		runID, lead.LeadID, outcome.AccountID, outcome.ContactID, outcome.OpportunityID)
	summary.Converted++
	metrics.RecordLeadConverted()

	if uc.Producer != nil {
		payload := queue.LeadConvertedPayload{
			RunID:         runID,
			LeadID:        lead.LeadID,
			ClientID:      lead.ClientID,
			AccountID:     outcome.AccountID,
			ContactID:     outcome.ContactID,
			OpportunityID: outcome.OpportunityID,
			ConvertedAt:   time.Now(),
		}
		if err := uc.Producer.PublishLeadConverted(ctx, payload); err != nil {
			log.Printf("⚠️ [%s] Evento lead.converted não publicado para %s: %v", runID, lead.LeadID, err)
			metrics.RecordPublishError()
		}
	}
}
