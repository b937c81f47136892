package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/securesite/lead-conversion-job/internal/infra/http/handlers"
	"github.com/securesite/lead-conversion-job/internal/usecase"
)

type fakeJobRunner struct {
	summary *usecase.RunSummary
	err     error
	delay   time.Duration
	calls   int
	dryRuns []bool
	mu      sync.Mutex
}

func (f *fakeJobRunner) Execute(ctx context.Context, dryRun bool) (*usecase.RunSummary, error) {
	f.mu.Lock()
	f.calls++
	f.dryRuns = append(f.dryRuns, dryRun)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.summary, f.err
}

func TestManualTriggerReturnsSummary(t *testing.T) {
	runner := &fakeJobRunner{
		summary: &usecase.RunSummary{RunID: "ab12cd34", Pending: 2, Converted: 1, Failed: 1},
	}
	handler := handlers.NewJobHandler(runner)

	req := httptest.NewRequest(http.MethodPost, "/jobs/lead-conversion/run", nil)
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body usecase.RunSummary
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ab12cd34", body.RunID)
	assert.Equal(t, 2, body.Pending)
	assert.Equal(t, 1, body.Converted)
	assert.Equal(t, 1, body.Failed)
	assert.Equal(t, []bool{false}, runner.dryRuns)
}

func TestManualTriggerDryRunFlag(t *testing.T) {
	runner := &fakeJobRunner{summary: &usecase.RunSummary{RunID: "ab12cd34", DryRun: true}}
	handler := handlers.NewJobHandler(runner)

	req := httptest.NewRequest(http.MethodPost, "/jobs/lead-conversion/run?dry_run=true", nil)
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []bool{true}, runner.dryRuns)
}

func TestManualTriggerFatalError(t *testing.T) {
	runner := &fakeJobRunner{err: errors.New("login no Salesforce falhou")}
	handler := handlers.NewJobHandler(runner)

	req := httptest.NewRequest(http.MethodPost, "/jobs/lead-conversion/run", nil)
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "login no Salesforce falhou")
}

// TestConcurrentTriggerRejected - dois disparos simultâneos: o segundo leva
// 409 e o runner roda uma vez só.
func TestConcurrentTriggerRejected(t *testing.T) {
	runner := &fakeJobRunner{
		summary: &usecase.RunSummary{RunID: "ab12cd34"},
		delay:   200 * time.Millisecond,
	}
	handler := handlers.NewJobHandler(runner)

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		req := httptest.NewRequest(http.MethodPost, "/jobs/lead-conversion/run", nil)
		rec := httptest.NewRecorder()
		handler.Handle(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}()

	time.Sleep(50 * time.Millisecond) // garante o primeiro dentro do Execute

	req := httptest.NewRequest(http.MethodPost, "/jobs/lead-conversion/run", nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	<-firstDone
	assert.Equal(t, 1, runner.calls)
}
