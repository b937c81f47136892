package entity

import (
	"context"
	"time"
)

// ConversionError é uma linha de JOBS.SF_Leads_Conversion_Errors.
// Carrega os campos identificadores do lead original mais o motivo da falha.
// Append-only: nunca é atualizada nem removida por este sistema.
type ConversionError struct {
	LeadID      string    `json:"sf_lead_id"`
	ClientID    string    `json:"client_id"`
	CreatedDate time.Time `json:"created_date"`
	ErrorDate   time.Time `json:"error_date"` // momento em que a falha foi observada
	Message     string    `json:"message"`
}

type ConversionErrorRepositoryInterface interface {
	Insert(ctx context.Context, convErr *ConversionError) error
}
