package usecase

import (
	"strings"

	"github.com/securesite/lead-conversion-job/internal/infra/integration/salesforce"
)

const unrecognizedShapeReason = "unrecognized response shape"

// ConversionOutcome é o veredito de um item: convertido (com os ids criados
// no Salesforce) ou falho (com o motivo que vai para a tabela de erros).
type ConversionOutcome struct {
	Converted     bool
	AccountID     string
	ContactID     string
	OpportunityID string // vazio quando o run roda sem criar Opportunity
	Reason        string
}

// ClassifyOutcome é função pura: decide o destino do item a partir do
// resultado bruto e/ou do erro de transporte. Nenhuma outra forma de saída
// existe; formato irreconhecível vira falha diagnóstica, nunca panic.
func ClassifyOutcome(result *salesforce.ConversionResult, callErr error) ConversionOutcome {
	if callErr != nil {
		return ConversionOutcome{Reason: callErr.Error()}
	}

	if result == nil {
		return ConversionOutcome{Reason: unrecognizedShapeReason}
	}

	if result.Success {
		return ConversionOutcome{
			Converted:     true,
			AccountID:     result.AccountID,
			ContactID:     result.ContactID,
			OpportunityID: result.OpportunityID,
		}
	}

	messages := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		if e.Message != "" {
			messages = append(messages, e.Message)
		}
	}
	if len(messages) == 0 {
		// success=false sem mensagem nenhuma: registra algo diagnosticável
		return ConversionOutcome{Reason: unrecognizedShapeReason}
	}

	return ConversionOutcome{Reason: strings.Join(messages, "; ")}
}
