package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"legalaid-backend/logging"
	"legalaid-backend/models"
	"legalaid-backend/normalizer"
	"legalaid-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalysisHandler handles HTTP requests for analyses
type AnalysisHandler struct {
	analysisService *service.AnalysisService
	logger          *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService, logger *zap.Logger) *AnalysisHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisHandler{
		analysisService: analysisService,
		logger:          logger,
	}
}

// RegisterRoutes mounts the analysis endpoints on api
func (h *AnalysisHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/analyses/documents", h.AnalyzeDocument)
	api.POST("/analyses/legality", h.AssessLegality)
	api.POST("/analyses/penalty", h.PredictPenalty)
	api.GET("/analyses/:id", h.GetAnalysis)
	api.GET("/analyses", h.ListAnalyses)
	api.POST("/normalize", h.Normalize)
}

// AnalyzeDocumentRequest represents the request body for analyzing a document
type AnalyzeDocumentRequest struct {
	DocumentType string `json:"document_type" form:"document_type"`
	Content      string `json:"content" form:"content"`
}

// AssessLegalityRequest represents the request body for a legality assessment
type AssessLegalityRequest struct {
	Description string `json:"description" binding:"required"`
}

// PredictPenaltyRequest represents the request body for a penalty prediction
type PredictPenaltyRequest struct {
	Country string `json:"country" binding:"required"`
	Region  string `json:"region"`
	Offense string `json:"offense" binding:"required"`
}

// NormalizeRequest represents the request body for normalizing a reply
type NormalizeRequest struct {
	Raw        string `json:"raw"`
	SchemaHint string `json:"schema_hint"`
}

// AnalysisResponse is the data payload returned for every analysis
type AnalysisResponse struct {
	AnalysisID     *uuid.UUID            `json:"analysis_id,omitempty"`
	Hint           models.SchemaHint     `json:"hint"`
	Source         models.RecordSource   `json:"source"`
	Record         any                   `json:"record"`
	Archived       bool                  `json:"archived"`
	Persisted      bool                  `json:"persisted"`
	StatusCategory models.StatusCategory `json:"status_category,omitempty"`
	SeverityBand   models.RiskLevel      `json:"severity_band,omitempty"`
	FineBreakdown  []models.FineBand     `json:"fine_breakdown,omitempty"`
}

func newAnalysisResponse(record *models.NormalizedRecord) AnalysisResponse {
	resp := AnalysisResponse{
		Hint:   record.Hint,
		Source: record.Source,
		Record: record.Payload(),
	}
	switch {
	case record.Document != nil:
		resp.StatusCategory = models.DocumentStatusCategory(record.Document.Status)
	case record.Penalty != nil:
		resp.SeverityBand = record.Penalty.SeverityBand()
		resp.FineBreakdown = record.Penalty.FineBreakdown()
	}
	return resp
}

func fromResult(result *service.AnalysisResult) AnalysisResponse {
	resp := newAnalysisResponse(result.Record)
	id := result.AnalysisID
	resp.AnalysisID = &id
	resp.Archived = result.ArchivePath != ""
	resp.Persisted = result.Persisted
	return resp
}

// AnalyzeDocument handles POST /api/analyses/documents. The document is sent
// either as JSON or as a multipart text file in the "file" field.
func (h *AnalysisHandler) AnalyzeDocument(c *gin.Context) {
	var req AnalyzeDocumentRequest
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		content, ok := h.readUploadedDocument(c)
		if !ok {
			return
		}
		req.DocumentType = c.PostForm("document_type")
		req.Content = content
	} else if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.analysisService.AnalyzeDocument(c.Request.Context(), service.AnalyzeDocumentRequest{
		DocumentType: req.DocumentType,
		Content:      req.Content,
	})
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    fromResult(result),
	})
}

// readUploadedDocument reads the "file" form field as UTF-8 text
func (h *AnalysisHandler) readUploadedDocument(c *gin.Context) (string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "File is required")
		return "", false
	}

	if fileHeader.Size > normalizer.MaxInputBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
			fmt.Sprintf("File size exceeds maximum of %d bytes", normalizer.MaxInputBytes))
		return "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_OPEN_ERROR", err.Error())
		return "", false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, normalizer.MaxInputBytes+1))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_READ_ERROR", err.Error())
		return "", false
	}
	if !utf8.Valid(data) {
		respondError(c, http.StatusUnsupportedMediaType, "INVALID_FILE_TYPE", "Only plain text documents are supported")
		return "", false
	}
	return string(data), true
}

// AssessLegality handles POST /api/analyses/legality
func (h *AnalysisHandler) AssessLegality(c *gin.Context) {
	var req AssessLegalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.analysisService.AssessLegality(c.Request.Context(), service.AssessLegalityRequest{
		Description: req.Description,
	})
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    fromResult(result),
	})
}

// PredictPenalty handles POST /api/analyses/penalty
func (h *AnalysisHandler) PredictPenalty(c *gin.Context) {
	var req PredictPenaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.analysisService.PredictPenalty(c.Request.Context(), service.PredictPenaltyRequest{
		Country: req.Country,
		Region:  req.Region,
		Offense: req.Offense,
	})
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    fromResult(result),
	})
}

// Normalize handles POST /api/normalize
func (h *AnalysisHandler) Normalize(c *gin.Context) {
	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.analysisService.NormalizeReply(c.Request.Context(), service.NormalizeReplyRequest{
		Raw:  req.Raw,
		Hint: req.SchemaHint,
	})
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newAnalysisResponse(result.Record),
	})
}

// GetAnalysis handles GET /api/analyses/:id
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid analysis ID format")
		return
	}

	result, err := h.analysisService.GetAnalysis(c.Request.Context(), service.GetAnalysisRequest{ID: id})
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Analysis,
	})
}

// ListAnalyses handles GET /api/analyses?kind=&limit=&offset=
func (h *AnalysisHandler) ListAnalyses(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer")
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_OFFSET", "offset must be an integer")
		return
	}

	result, err := h.analysisService.ListAnalyses(c.Request.Context(), service.ListAnalysesRequest{
		Kind:   c.Query("kind"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"analyses": result.Analyses,
			"limit":    result.Limit,
			"offset":   result.Offset,
		},
	})
}

func queryInt(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// respondServiceError maps service errors onto status codes
func (h *AnalysisHandler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, service.ErrInputTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, "INPUT_TOO_LARGE", err.Error())
	case errors.Is(err, service.ErrAnalysisNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Analysis not found")
	case errors.Is(err, service.ErrGenerationFailed):
		respondError(c, http.StatusBadGateway, "GENERATION_FAILED", "Failed to generate analysis. Please try again.")
	case errors.Is(err, service.ErrRepositoryNotSet), errors.Is(err, service.ErrGeneratorNotSet):
		respondError(c, http.StatusServiceUnavailable, "UNAVAILABLE", err.Error())
	default:
		logging.WithContext(c.Request.Context(), h.logger).Error("analysis request failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
	_ = c.Error(err)
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
