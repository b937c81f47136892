package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/securesite/lead-conversion-job/internal/infra/integration/salesforce"
	"github.com/securesite/lead-conversion-job/internal/usecase"
)

// TestClassifySuccess - resultado com success=true vira conversão com os ids
func TestClassifySuccess(t *testing.T) {
	result := &salesforce.ConversionResult{
		Success:   true,
		AccountID: "A1",
		ContactID: "C1",
	}

	outcome := usecase.ClassifyOutcome(result, nil)

	assert.True(t, outcome.Converted)
	assert.Equal(t, "A1", outcome.AccountID)
	assert.Equal(t, "C1", outcome.ContactID)
	assert.Empty(t, outcome.OpportunityID)
	assert.Empty(t, outcome.Reason)
}

// TestClassifySuccessWithOpportunity - opportunityId é opcional mas preservado
func TestClassifySuccessWithOpportunity(t *testing.T) {
	result := &salesforce.ConversionResult{
		Success:       true,
		AccountID:     "A1",
		ContactID:     "C1",
		OpportunityID: "O1",
	}

	outcome := usecase.ClassifyOutcome(result, nil)

	assert.True(t, outcome.Converted)
	assert.Equal(t, "O1", outcome.OpportunityID)
}

// TestClassifyBusinessRejection - success=false junta as mensagens com "; "
func TestClassifyBusinessRejection(t *testing.T) {
	result := &salesforce.ConversionResult{
		Success: false,
		Errors: []salesforce.ResultError{
			{Message: "already converted"},
		},
	}

	outcome := usecase.ClassifyOutcome(result, nil)

	assert.False(t, outcome.Converted)
	assert.Equal(t, "already converted", outcome.Reason)
}

func TestClassifyMultipleErrorMessages(t *testing.T) {
	result := &salesforce.ConversionResult{
		Success: false,
		Errors: []salesforce.ResultError{
			{Message: "Invalid Lead Status"},
			{Message: "field integrity exception"},
		},
	}

	outcome := usecase.ClassifyOutcome(result, nil)

	assert.False(t, outcome.Converted)
	assert.Equal(t, "Invalid Lead Status; field integrity exception", outcome.Reason)
}

// TestClassifyTransportError - erro de transporte vale o texto do erro
func TestClassifyTransportError(t *testing.T) {
	outcome := usecase.ClassifyOutcome(nil, errors.New("timeout"))

	assert.False(t, outcome.Converted)
	assert.Equal(t, "timeout", outcome.Reason)
}

// TestClassifyUnrecognizedShape - resposta sem formato conhecido nunca propaga
func TestClassifyUnrecognizedShape(t *testing.T) {
	outcome := usecase.ClassifyOutcome(nil, nil)

	assert.False(t, outcome.Converted)
	assert.Equal(t, "unrecognized response shape", outcome.Reason)
}

func TestClassifyRejectionWithoutMessages(t *testing.T) {
	result := &salesforce.ConversionResult{Success: false}

	outcome := usecase.ClassifyOutcome(result, nil)

	assert.False(t, outcome.Converted)
	assert.Equal(t, "unrecognized response shape", outcome.Reason)
}
