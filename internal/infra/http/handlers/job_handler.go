package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/securesite/lead-conversion-job/internal/usecase"
)

type JobRunnerInterface interface {
	Execute(ctx context.Context, dryRun bool) (*usecase.RunSummary, error)
}

// JobHandler é o gatilho manual do job, equivalente ao disparo HTTP da
// function original. Um run por vez: disparo concorrente leva 409.
type JobHandler struct {
	Job JobRunnerInterface
	mu  sync.Mutex
}

func NewJobHandler(job JobRunnerInterface) *JobHandler {
	return &JobHandler{Job: job}
}

func (h *JobHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if !h.mu.TryLock() {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": "já existe um run em andamento",
		})
		return
	}
	defer h.mu.Unlock()

	dryRun := r.URL.Query().Get("dry_run") == "true"

	log.Printf("🔔 Run disparado manualmente (dry_run=%v)", dryRun)

	summary, err := h.Job.Execute(r.Context(), dryRun)
	if err != nil {
		log.Printf("❌ Run manual falhou: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
