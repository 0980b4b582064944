package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"legalaid-backend/models"
	"legalaid-backend/normalizer"
	"legalaid-backend/repository"
	"legalaid-backend/service"
	"legalaid-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	reply string
	err   error
}

func (g fakeGenerator) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	return g.reply, g.err
}

type fakeStore struct {
	mu       sync.Mutex
	analyses map[uuid.UUID]*models.Analysis
}

func newFakeStore() *fakeStore {
	return &fakeStore{analyses: make(map[uuid.UUID]*models.Analysis)}
}

func (s *fakeStore) Create(ctx context.Context, a *models.Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.analyses[a.ID] = &cp
	return nil
}

func (s *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.analyses[id]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (s *fakeStore) List(ctx context.Context, filter repository.ListFilter) ([]*models.Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Analysis, 0, len(s.analyses))
	for _, a := range s.analyses {
		out = append(out, a)
	}
	return out, nil
}

func (s *fakeStore) Complete(ctx context.Context, id uuid.UUID, record *models.NormalizedRecord, archivePath *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.analyses[id]
	a.Status = models.AnalysisStatusCompleted
	a.Record = models.StoredRecord{NormalizedRecord: record}
	a.ArchivePath = archivePath
	return nil
}

func (s *fakeStore) Fail(ctx context.Context, id uuid.UUID, errorMessage string) error {
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T, opts ...service.AnalysisServiceOption) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.NewAnalysisService(opts...)
	return NewRouter(NewAnalysisHandler(svc, zap.NewNop()), zap.NewNop())
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAssessLegality(t *testing.T) {
	archive, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	router := newTestRouter(t,
		service.WithGenerator(fakeGenerator{reply: "Sure!\n```json\n{\"status\": \"VOID\", \"examples\": [\"A v. B\"]}\n```"}),
		service.WithArchive(archive),
	)

	w, env := doJSON(t, router, http.MethodPost, "/api/analyses/legality", gin.H{"description": "A contract with a minor"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var data struct {
		AnalysisID string                 `json:"analysis_id"`
		Hint       string                 `json:"hint"`
		Source     string                 `json:"source"`
		Archived   bool                   `json:"archived"`
		Persisted  bool                   `json:"persisted"`
		Record     models.LegalAssessment `json:"record"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.AnalysisID)
	assert.Equal(t, "legal-status", data.Hint)
	assert.Equal(t, "json", data.Source)
	assert.True(t, data.Archived)
	assert.False(t, data.Persisted)
	assert.Equal(t, models.LegalStatusVoid, data.Record.Status)
	assert.Equal(t, []string{"A v. B"}, data.Record.Examples)
	assert.Equal(t, []string{}, data.Record.NextSteps)
}

func TestAssessLegality_MissingDescription(t *testing.T) {
	router := newTestRouter(t, service.WithGenerator(fakeGenerator{}))

	w, env := doJSON(t, router, http.MethodPost, "/api/analyses/legality", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
}

func TestAnalyzeDocument_JSON(t *testing.T) {
	router := newTestRouter(t, service.WithGenerator(fakeGenerator{
		reply: `{"fileNumber": "112/2024", "station": "Hazratganj", "status": "Pending investigation"}`,
	}))

	w, env := doJSON(t, router, http.MethodPost, "/api/analyses/documents", gin.H{
		"document_type": "fir",
		"content":       "FIR text",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		StatusCategory string                  `json:"status_category"`
		Record         models.DocumentAnalysis `json:"record"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "pending", data.StatusCategory)
	assert.Equal(t, "112/2024", data.Record.FileNumber)
	assert.Equal(t, "Hazratganj", data.Record.Station)
}

func multipartDocument(t *testing.T, docType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("document_type", docType))
	fw, err := mw.CreateFormFile("file", "judgment.txt")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyses/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAnalyzeDocument_MultipartUpload(t *testing.T) {
	router := newTestRouter(t, service.WithGenerator(fakeGenerator{
		reply: "Status: Appeal dismissed\n\nSummary: The appeal failed.",
	}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartDocument(t, "judgment", []byte("IN THE HIGH COURT...")))
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var data struct {
		Source         string                  `json:"source"`
		StatusCategory string                  `json:"status_category"`
		Record         models.DocumentAnalysis `json:"record"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "heuristic", data.Source)
	assert.Equal(t, "Court Judgment", data.Record.DocumentType)
	assert.Equal(t, "The appeal failed.", data.Record.JudgmentSummary)
	assert.Equal(t, "rejected", data.StatusCategory)
}

func TestAnalyzeDocument_RejectsBinaryUpload(t *testing.T) {
	router := newTestRouter(t, service.WithGenerator(fakeGenerator{reply: "{}"}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartDocument(t, "fir", []byte{0xff, 0xfe, 0x00, 0x80}))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestAnalyzeDocument_ServiceValidation(t *testing.T) {
	router := newTestRouter(t, service.WithGenerator(fakeGenerator{reply: "{}"}))

	w, env := doJSON(t, router, http.MethodPost, "/api/analyses/documents", gin.H{"document_type": "fir", "content": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestPredictPenalty(t *testing.T) {
	router := newTestRouter(t, service.WithGenerator(fakeGenerator{
		reply: `{"severityScore": 8, "minFine": 5000, "recommendedFine": 10000, "maxFine": 25000, "riskLevel": "high"}`,
	}))

	w, env := doJSON(t, router, http.MethodPost, "/api/analyses/penalty", gin.H{
		"country": "India",
		"region":  "Maharashtra",
		"offense": "Drunk driving",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		SeverityBand  string            `json:"severity_band"`
		FineBreakdown []models.FineBand `json:"fine_breakdown"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "high", data.SeverityBand)
	assert.Equal(t, []models.FineBand{
		{Name: "Minimum Fine", Value: 5000},
		{Name: "Recommended Fine", Value: 10000},
		{Name: "Maximum Fine", Value: 25000},
	}, data.FineBreakdown)
}

func TestPredictPenalty_GenerationFailure(t *testing.T) {
	router := newTestRouter(t, service.WithGenerator(fakeGenerator{err: errors.New("upstream down")}))

	w, env := doJSON(t, router, http.MethodPost, "/api/analyses/penalty", gin.H{"country": "India", "offense": "Littering"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "GENERATION_FAILED", env.Error.Code)
}

func TestModelRoutesWithoutGenerator(t *testing.T) {
	router := newTestRouter(t)

	w, env := doJSON(t, router, http.MethodPost, "/api/analyses/legality", gin.H{"description": "x"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "UNAVAILABLE", env.Error.Code)
}

func TestNormalize(t *testing.T) {
	router := newTestRouter(t)

	w, env := doJSON(t, router, http.MethodPost, "/api/normalize", gin.H{
		"raw":         `{"status": "Bail granted", "keyPoints": ["Surety furnished"]}`,
		"schema_hint": "judgment",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		AnalysisID     *string                 `json:"analysis_id"`
		Source         string                  `json:"source"`
		StatusCategory string                  `json:"status_category"`
		Record         models.DocumentAnalysis `json:"record"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Nil(t, data.AnalysisID)
	assert.Equal(t, "json", data.Source)
	assert.Equal(t, "resolved", data.StatusCategory)
	assert.Equal(t, []string{"Surety furnished"}, data.Record.KeyPoints)
}

func TestNormalize_TooLarge(t *testing.T) {
	router := newTestRouter(t)

	w, env := doJSON(t, router, http.MethodPost, "/api/normalize", gin.H{
		"raw": strings.Repeat("a", normalizer.MaxInputBytes+1),
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "INPUT_TOO_LARGE", env.Error.Code)
}

func TestGetAnalysis(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(t,
		service.WithGenerator(fakeGenerator{reply: `{"status": "VALID"}`}),
		service.WithAnalysisRepository(store),
	)

	_, env := doJSON(t, router, http.MethodPost, "/api/analyses/legality", gin.H{"description": "Gift deed"})
	var created struct {
		AnalysisID string `json:"analysis_id"`
		Persisted  bool   `json:"persisted"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.True(t, created.Persisted)

	w, env := doJSON(t, router, http.MethodGet, "/api/analyses/"+created.AnalysisID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Analysis
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, models.AnalysisStatusCompleted, got.Status)
	require.NotNil(t, got.Record.NormalizedRecord)
	assert.Equal(t, models.LegalStatusValid, got.Record.Assessment.Status)

	w, env = doJSON(t, router, http.MethodGet, "/api/analyses/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	w, env = doJSON(t, router, http.MethodGet, "/api/analyses/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", env.Error.Code)
}

func TestGetAnalysis_WithoutRepository(t *testing.T) {
	router := newTestRouter(t)

	w, env := doJSON(t, router, http.MethodGet, "/api/analyses/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "UNAVAILABLE", env.Error.Code)
}

func TestListAnalyses(t *testing.T) {
	router := newTestRouter(t, service.WithAnalysisRepository(newFakeStore()))

	w, env := doJSON(t, router, http.MethodGet, "/api/analyses?kind=penalty&limit=5&offset=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Analyses []models.Analysis `json:"analyses"`
		Limit    int               `json:"limit"`
		Offset   int               `json:"offset"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Empty(t, data.Analyses)
	assert.Equal(t, 5, data.Limit)
	assert.Equal(t, 10, data.Offset)

	w, env = doJSON(t, router, http.MethodGet, "/api/analyses?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_LIMIT", env.Error.Code)

	w, env = doJSON(t, router, http.MethodGet, "/api/analyses?kind=contract", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}
