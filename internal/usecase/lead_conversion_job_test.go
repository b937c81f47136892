package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/securesite/lead-conversion-job/internal/entity"
	"github.com/securesite/lead-conversion-job/internal/usecase"
)

func newJob(mockLeads *MockPendingLeadRepository, mockErrors *MockConversionErrorRepository, mockSF *MockSalesforceGateway) *usecase.LeadConversionJob {
	loop := usecase.NewConvertPendingLeadsUseCase(mockLeads, mockErrors, mockSF, nil, nil, true)
	return usecase.NewLeadConversionJob(mockSF, loop)
}

// TestJobLoginFailureIsFatal - falha de login: nenhum item processado,
// nenhuma mutação, erro de run observável.
func TestJobLoginFailureIsFatal(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockPendingLeadRepository)
	mockErrors := new(MockConversionErrorRepository)
	mockSF := new(MockSalesforceGateway)

	mockSF.On("Login", ctx).Return(errors.New("INVALID_LOGIN: Invalid username, password, security token"))

	job := newJob(mockLeads, mockErrors, mockSF)

	summary, err := job.Execute(ctx, false)

	assert.Error(t, err)
	assert.Nil(t, summary)
	assert.True(t, usecase.IsTechnicalError(err))
	mockLeads.AssertNotCalled(t, "FetchPending")
	mockSF.AssertNotCalled(t, "ConvertLead")
	mockSF.AssertNotCalled(t, "Logout")
}

// TestJobLogoutAlwaysRuns - teardown acontece mesmo com o loop falhando
func TestJobLogoutAlwaysRuns(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockPendingLeadRepository)
	mockErrors := new(MockConversionErrorRepository)
	mockSF := new(MockSalesforceGateway)

	mockSF.On("Login", ctx).Return(nil)
	mockSF.On("Logout", ctx).Return(nil)
	mockLeads.On("FetchPending", ctx).Return(nil, errors.New("connection refused"))

	job := newJob(mockLeads, mockErrors, mockSF)

	summary, err := job.Execute(ctx, false)

	assert.Error(t, err)
	assert.Nil(t, summary)
	mockSF.AssertCalled(t, "Logout", ctx)
}

func TestJobHappyPath(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockPendingLeadRepository)
	mockErrors := new(MockConversionErrorRepository)
	mockSF := new(MockSalesforceGateway)

	mockSF.On("Login", ctx).Return(nil)
	mockSF.On("Logout", ctx).Return(nil)
	mockLeads.On("FetchPending", ctx).Return([]entity.PendingLead{
		{LeadID: "00Q1", CreatedDate: time.Now()},
	}, nil)
	mockSF.On("ResolveConvertedStatus", ctx).Return("Closed - Converted", nil)
	mockSF.On("ConvertLead", ctx, "00Q1", "Closed - Converted", true).
		Return(successResult("001A", "003C"), nil)
	mockLeads.On("Delete", ctx, "00Q1").Return(nil)

	job := newJob(mockLeads, mockErrors, mockSF)

	summary, err := job.Execute(ctx, false)

	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Converted)
	assert.NotEmpty(t, summary.RunID)
	mockSF.AssertCalled(t, "Login", ctx)
	mockSF.AssertCalled(t, "Logout", ctx)
}

// TestJobDryRunSkipsLogin - dry-run não abre sessão no Salesforce
func TestJobDryRunSkipsLogin(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockPendingLeadRepository)
	mockErrors := new(MockConversionErrorRepository)
	mockSF := new(MockSalesforceGateway)

	mockLeads.On("FetchPending", ctx).Return([]entity.PendingLead{
		{LeadID: "00Q1", CreatedDate: time.Now()},
	}, nil)

	job := newJob(mockLeads, mockErrors, mockSF)

	summary, err := job.Execute(ctx, true)

	assert.NoError(t, err)
	assert.True(t, summary.DryRun)
	mockSF.AssertNotCalled(t, "Login")
	mockSF.AssertNotCalled(t, "ConvertLead")
	mockSF.AssertNotCalled(t, "Logout")
}

// Garante que logout com erro não vira erro do run
func TestJobLogoutErrorIsIgnored(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockPendingLeadRepository)
	mockErrors := new(MockConversionErrorRepository)
	mockSF := new(MockSalesforceGateway)

	mockSF.On("Login", ctx).Return(nil)
	mockSF.On("Logout", ctx).Return(errors.New("session already expired"))
	mockLeads.On("FetchPending", ctx).Return([]entity.PendingLead{}, nil)

	job := newJob(mockLeads, mockErrors, mockSF)

	summary, err := job.Execute(ctx, false)

	assert.NoError(t, err)
	assert.Equal(t, 0, summary.Pending)
	mockSF.AssertExpectations(t)
}
