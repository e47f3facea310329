package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-escrow/internal/repository"
)

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	ledger *repository.Ledger
}

// NewHealthHandler создаёт новый health handler.
func NewHealthHandler(ledger *repository.Ledger) *HealthHandler {
	return &HealthHandler{ledger: ledger}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// Сверяем эскроу-леджер с удерживаемым балансом
	var integrityErr error
	h.ledger.View(func(st *repository.State) {
		integrityErr = st.CheckEscrowIntegrity()
	})
	if integrityErr != nil {
		checks["escrow_ledger"] = "unhealthy: " + integrityErr.Error()
		status = "unhealthy"
	} else {
		checks["escrow_ledger"] = "healthy"
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
	})
}
