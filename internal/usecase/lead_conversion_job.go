package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/securesite/lead-conversion-job/internal/infra/metrics"
)

// LeadConversionJob é o Run Driver: abre a sessão Salesforce, executa o loop
// de reconciliação uma vez e garante o teardown, com ou sem erro.
type LeadConversionJob struct {
	Salesforce SalesforceGateway
	Loop       *ConvertPendingLeadsUseCase
}

func NewLeadConversionJob(salesforce SalesforceGateway, loop *ConvertPendingLeadsUseCase) *LeadConversionJob {
	return &LeadConversionJob{
		Salesforce: salesforce,
		Loop:       loop,
	}
}

func (j *LeadConversionJob) Execute(ctx context.Context, dryRun bool) (*RunSummary, error) {
	started := time.Now()

	// Dry-run não toca no Salesforce, só lista o snapshot
	if dryRun {
		summary, err := j.Loop.Execute(ctx, true)
		j.record(err, started)
		return summary, err
	}

	if err := j.Salesforce.Login(ctx); err != nil {
		metrics.RecordRun("fatal", time.Since(started))
		return nil, &TechnicalError{
			Code:    "SALESFORCE_LOGIN_ERROR",
			Message: err.Error(),
		}
	}
	defer func() {
		if err := j.Salesforce.Logout(ctx); err != nil {
			log.Printf("⚠️ Logout do Salesforce falhou: %v", err)
		}
	}()

	summary, err := j.Loop.Execute(ctx, false)
	j.record(err, started)
	return summary, err
}

func (j *LeadConversionJob) record(err error, started time.Time) {
	status := "completed"
	if err != nil {
		status = "fatal"
	}
	metrics.RecordRun(status, time.Since(started))
}

// newRunID gera o identificador curto que correlaciona logs, eventos e
// relatório de um mesmo run.
func newRunID() string {
	return strings.SplitN(uuid.New().String(), "-", 2)[0]
}
