package entity

import (
	"context"
	"time"
)

// PendingLead é uma linha da fila JOBS.SF_Leads_Pending_Conversion:
// um lead já criado no Salesforce aguardando conversão em Account/Contact.
type PendingLead struct {
	LeadID      string    `json:"sf_lead_id"` // Id Salesforce de 18 caracteres
	ClientID    string    `json:"client_id"`  // SecureSite_ClientId__c (pode ser vazio)
	CreatedDate time.Time `json:"created_date"`
}

type PendingLeadRepositoryInterface interface {

	// FetchPending lê o snapshot completo da fila, em ordem de Created_Date.
	FetchPending(ctx context.Context) ([]PendingLead, error)

	// Delete remove o lead da fila. Idempotente: chave inexistente não é erro.
	Delete(ctx context.Context, leadID string) error
}
