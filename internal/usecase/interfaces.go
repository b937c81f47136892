package usecase

import (
	"context"

	"github.com/securesite/lead-conversion-job/internal/infra/integration/salesforce"
	"github.com/securesite/lead-conversion-job/internal/infra/queue"
)

// LeadConverter é o que o loop precisa do Salesforce depois da sessão aberta.
type LeadConverter interface {
	ResolveConvertedStatus(ctx context.Context) (string, error)
	ConvertLead(ctx context.Context, leadID, convertedStatus string, createOpportunity bool) (*salesforce.ConversionResult, error)
}

// SalesforceGateway acrescenta o ciclo de sessão, usado pelo Run Driver.
type SalesforceGateway interface {
	LeadConverter
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
}

type QueueProducerInterface interface {
	PublishLeadConverted(ctx context.Context, payload queue.LeadConvertedPayload) error
}

type ReportService interface {
	SendRunReport(runID string, converted, failed, unresolved int) error
}
