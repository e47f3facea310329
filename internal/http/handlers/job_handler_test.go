package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-escrow/internal/http/middleware"
	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/repository"
	"github.com/ignatzorin/freelance-escrow/internal/service"
)

const (
	testOwner  = models.Address("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	testClient = models.Address("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
)

type nopSink struct{}

func (nopSink) Emit(event string, data any) {}

func newTestRouter(t *testing.T) (*gin.Engine, *service.TokenManager, *service.IdentityService, *service.JobService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ledger := repository.NewLedger(testOwner, models.DefaultPlatformFeeBps)
	events := nopSink{}
	sink := service.NewWalletSink()

	tokens := service.NewTokenManager("handler-test-secret", 15*time.Minute)
	identity := service.NewIdentityService(ledger, events)
	jobs := service.NewJobService(ledger, events)
	proposals := service.NewProposalService(ledger, events)
	escrow := service.NewEscrowService(ledger, events, sink)

	jobHandler := NewJobHandler(jobs, proposals, escrow)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/api/jobs", jobHandler.ListJobs)
	r.GET("/api/jobs/batch", jobHandler.BatchJobs)
	r.GET("/api/jobs/:id", jobHandler.GetJob)

	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(tokens))
	protected.POST("/jobs", jobHandler.PostJob)

	return r, tokens, identity, jobs
}

func bearer(t *testing.T, tokens *service.TokenManager, addr models.Address) string {
	t.Helper()
	issued, _, err := tokens.Issue(addr)
	require.NoError(t, err)
	return "Bearer " + issued.AccessToken
}

func TestJobHandler_PostJob(t *testing.T) {
	r, tokens, identity, _ := newTestRouter(t)
	_, err := identity.Register(testClient, "cafe01")
	require.NoError(t, err)

	body, _ := json.Marshal(gin.H{
		"title":            "Build backend",
		"description_hash": "beef02",
		"skills_required":  []string{"go"},
		"budget":           50000,
		"deadline_at":      time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader(body))
	req.Header.Set("Authorization", bearer(t, tokens, testClient))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var job models.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Equal(t, uint64(1), job.ID)
	assert.Equal(t, models.JobStatusOpen, job.Status)
}

func TestJobHandler_PostJob_Unauthorized(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader([]byte("{}")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJobHandler_PostJob_NotRegistered(t *testing.T) {
	r, tokens, _, _ := newTestRouter(t)

	body, _ := json.Marshal(gin.H{
		"title":            "Build backend",
		"description_hash": "beef02",
		"budget":           50000,
		"deadline_at":      time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader(body))
	req.Header.Set("Authorization", bearer(t, tokens, testClient))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// Доменная ошибка транслируется в 403 с текстом контрактной версии
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "User not registered or inactive")
}

func TestJobHandler_GetJob_NotFound(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJobHandler_BatchJobs(t *testing.T) {
	r, _, identity, jobs := newTestRouter(t)
	_, err := identity.Register(testClient, "cafe01")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := jobs.Post(testClient, fmt.Sprintf("Job %d", i), "beef02", nil, 100, time.Now().Add(time.Hour))
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/batch?ids=2,42,1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var batch []models.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &batch))
	require.Len(t, batch, 3)
	assert.Equal(t, uint64(2), batch[0].ID)
	// Неизвестный идентификатор даёт нулевую заглушку на своей позиции
	assert.Zero(t, batch[1].ID)
	assert.Equal(t, uint64(1), batch[2].ID)
}

func TestJobHandler_BatchJobs_BadIDs(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	for _, query := range []string{"", "ids=", "ids=1,abc", "ids=0"} {
		req := httptest.NewRequest(http.MethodGet, "/api/jobs/batch?"+query, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestJobHandler_ListJobs(t *testing.T) {
	r, _, identity, jobs := newTestRouter(t)
	_, err := identity.Register(testClient, "cafe01")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := jobs.Post(testClient, fmt.Sprintf("Job %d", i), "beef02", nil, 100, time.Now().Add(time.Hour))
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/jobs?limit=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data       []models.Job `json:"data"`
		Pagination struct {
			HasMore bool `json:"has_more"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.True(t, resp.Pagination.HasMore)
}
