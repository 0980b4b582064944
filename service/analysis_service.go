package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"legalaid-backend/models"
	"legalaid-backend/normalizer"
	"legalaid-backend/repository"
	"legalaid-backend/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalysisStore persists analyses. *repository.AnalysisRepository implements it.
type AnalysisStore interface {
	Create(ctx context.Context, a *models.Analysis) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Analysis, error)
	List(ctx context.Context, filter repository.ListFilter) ([]*models.Analysis, error)
	Complete(ctx context.Context, id uuid.UUID, record *models.NormalizedRecord, archivePath *string) error
	Fail(ctx context.Context, id uuid.UUID, errorMessage string) error
}

// AnalysisService sends legal questions to the model and normalizes the replies
type AnalysisService struct {
	generator Generator
	repo      AnalysisStore
	archive   storage.Storage
	logger    *zap.Logger
}

// AnalysisServiceOption is a functional option for AnalysisService
type AnalysisServiceOption func(*AnalysisService)

// WithGenerator sets the model client
func WithGenerator(g Generator) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.generator = g
	}
}

// WithAnalysisRepository sets the analysis repository
func WithAnalysisRepository(repo AnalysisStore) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.repo = repo
	}
}

// WithArchive sets the storage that raw replies are archived to
func WithArchive(archive storage.Storage) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.archive = archive
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) AnalysisServiceOption {
	return func(s *AnalysisService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(opts ...AnalysisServiceOption) *AnalysisService {
	s := &AnalysisService{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInputTooLarge     = errors.New("input too large")
	ErrGenerationFailed  = errors.New("failed to generate content")
	ErrAnalysisNotFound  = errors.New("analysis not found")
	ErrRepositoryNotSet  = errors.New("analysis repository not set")
	ErrGeneratorNotSet   = errors.New("generator not set")
	errEmptyDocument     = fmt.Errorf("%w: document content is required", ErrInvalidInput)
	errNotDocumentType   = fmt.Errorf("%w: document_type must be fir, judgment, petition, contract or other", ErrInvalidInput)
	errEmptyDescription  = fmt.Errorf("%w: description is required", ErrInvalidInput)
	errEmptyOffense      = fmt.Errorf("%w: offense is required", ErrInvalidInput)
	errEmptyCountry      = fmt.Errorf("%w: country is required", ErrInvalidInput)
	errUnknownKind       = fmt.Errorf("%w: kind must be document, legality or penalty", ErrInvalidInput)
	errInputTooLargeSize = fmt.Errorf("%w: limit is %d bytes", ErrInputTooLarge, normalizer.MaxInputBytes)
)

const (
	generationTemperature = 0.2
	inputSummaryRunes     = 200
	unspecifiedRegion     = "Not specified"
	replyArchiveName      = "reply.txt"
)

// AnalyzeDocumentRequest represents a request to analyze a legal document
type AnalyzeDocumentRequest struct {
	DocumentType string // fir, judgment, petition, contract or other
	Content      string
}

// AssessLegalityRequest represents a request to assess a described situation
type AssessLegalityRequest struct {
	Description string
}

// PredictPenaltyRequest represents a request to predict penalties for an offense
type PredictPenaltyRequest struct {
	Country string
	Region  string // Optional
	Offense string
}

// AnalysisResult represents the result of a model-backed analysis
type AnalysisResult struct {
	AnalysisID  uuid.UUID
	Record      *models.NormalizedRecord
	ArchivePath string // Empty when archiving is disabled or failed
	Persisted   bool
}

// NormalizeReplyRequest represents a request to normalize an existing reply
type NormalizeReplyRequest struct {
	Raw  string
	Hint string
}

// NormalizeReplyResult represents the result of normalizing a reply
type NormalizeReplyResult struct {
	Record *models.NormalizedRecord
}

// GetAnalysisRequest represents a request to get a stored analysis
type GetAnalysisRequest struct {
	ID uuid.UUID
}

// GetAnalysisResult represents the result of getting a stored analysis
type GetAnalysisResult struct {
	Analysis *models.Analysis
}

// ListAnalysesRequest represents a request to list stored analyses
type ListAnalysesRequest struct {
	Kind   string // Optional
	Limit  int
	Offset int
}

// ListAnalysesResult represents the result of listing stored analyses
type ListAnalysesResult struct {
	Analyses []*models.Analysis
	Limit    int
	Offset   int
}

// AnalyzeDocument extracts the structured fields of an uploaded document
func (s *AnalysisService) AnalyzeDocument(ctx context.Context, req AnalyzeDocumentRequest) (*AnalysisResult, error) {
	hint := models.ParseSchemaHint(req.DocumentType)
	if !hint.IsDocument() {
		return nil, errNotDocumentType
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, errEmptyDocument
	}
	if len(req.Content) > normalizer.MaxInputBytes {
		return nil, errInputTooLargeSize
	}

	prompt := BuildDocumentPrompt(hint, req.Content)
	return s.run(ctx, models.KindDocument, hint, prompt, req.Content)
}

// AssessLegality decides whether a situation is VALID, VOID or VOIDABLE
func (s *AnalysisService) AssessLegality(ctx context.Context, req AssessLegalityRequest) (*AnalysisResult, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, errEmptyDescription
	}
	if len(req.Description) > normalizer.MaxInputBytes {
		return nil, errInputTooLargeSize
	}

	prompt := BuildLegalityPrompt(req.Description)
	return s.run(ctx, models.KindLegality, models.HintLegalStatus, prompt, req.Description)
}

// PredictPenalty estimates fines and imprisonment for an offense in a jurisdiction
func (s *AnalysisService) PredictPenalty(ctx context.Context, req PredictPenaltyRequest) (*AnalysisResult, error) {
	country := strings.TrimSpace(req.Country)
	offense := strings.TrimSpace(req.Offense)
	region := strings.TrimSpace(req.Region)
	if offense == "" {
		return nil, errEmptyOffense
	}
	if country == "" {
		return nil, errEmptyCountry
	}
	if len(offense)+len(country)+len(region) > normalizer.MaxInputBytes {
		return nil, errInputTooLargeSize
	}
	if region == "" {
		region = unspecifiedRegion
	}

	prompt := BuildPenaltyPrompt(country, region, offense)
	summary := fmt.Sprintf("%s (%s, %s)", offense, country, region)
	return s.run(ctx, models.KindPenalty, models.HintPenalty, prompt, summary)
}

// NormalizeReply normalizes a reply the caller already has, without calling the model
func (s *AnalysisService) NormalizeReply(ctx context.Context, req NormalizeReplyRequest) (*NormalizeReplyResult, error) {
	if len(req.Raw) > normalizer.MaxInputBytes {
		return nil, errInputTooLargeSize
	}
	record := normalizer.Normalize(req.Raw, models.ParseSchemaHint(req.Hint))
	return &NormalizeReplyResult{Record: record}, nil
}

// GetAnalysis retrieves a stored analysis
func (s *AnalysisService) GetAnalysis(ctx context.Context, req GetAnalysisRequest) (*GetAnalysisResult, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotSet
	}

	analysis, err := s.repo.GetByID(ctx, req.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	return &GetAnalysisResult{Analysis: analysis}, nil
}

// ListAnalyses returns stored analyses, newest first
func (s *AnalysisService) ListAnalyses(ctx context.Context, req ListAnalysesRequest) (*ListAnalysesResult, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotSet
	}

	kind := models.AnalysisKind(strings.ToLower(strings.TrimSpace(req.Kind)))
	switch kind {
	case "", models.KindDocument, models.KindLegality, models.KindPenalty:
	default:
		return nil, errUnknownKind
	}

	filter := repository.ListFilter{Kind: kind, Limit: req.Limit, Offset: req.Offset}.Normalize()
	analyses, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	return &ListAnalysesResult{Analyses: analyses, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// run generates a reply for prompt, archives and normalizes it. Persistence
// and archiving are best effort: their failures are logged and the record is
// still returned.
func (s *AnalysisService) run(ctx context.Context, kind models.AnalysisKind, hint models.SchemaHint, prompt, input string) (*AnalysisResult, error) {
	if s.generator == nil {
		return nil, ErrGeneratorNotSet
	}

	analysis := &models.Analysis{
		ID:           uuid.New(),
		Kind:         kind,
		Hint:         hint,
		InputSummary: summarize(input, inputSummaryRunes),
		Status:       models.AnalysisStatusPending,
	}
	log := s.logger.With(
		zap.String("analysis_id", analysis.ID.String()),
		zap.String("kind", string(kind)),
		zap.String("hint", string(hint)),
	)

	persisted := s.persistPending(ctx, log, analysis)

	raw, err := s.generator.Generate(ctx, prompt, generationTemperature)
	if err != nil {
		log.Error("generation failed", zap.Error(err))
		if persisted {
			if ferr := s.repo.Fail(context.WithoutCancel(ctx), analysis.ID, err.Error()); ferr != nil {
				log.Warn("failed to mark analysis failed", zap.Error(ferr))
			}
		}
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	archivePath := s.archiveReply(ctx, log, analysis.ID, raw)
	record := normalizer.Normalize(raw, hint)
	log.Info("analysis normalized",
		zap.String("source", string(record.Source)),
		zap.Int("reply_bytes", len(raw)),
	)

	if persisted {
		var path *string
		if archivePath != "" {
			path = &archivePath
		}
		if err := s.repo.Complete(context.WithoutCancel(ctx), analysis.ID, record, path); err != nil {
			log.Warn("failed to store analysis result", zap.Error(err))
			persisted = false
		}
	}

	return &AnalysisResult{
		AnalysisID:  analysis.ID,
		Record:      record,
		ArchivePath: archivePath,
		Persisted:   persisted,
	}, nil
}

func (s *AnalysisService) persistPending(ctx context.Context, log *zap.Logger, analysis *models.Analysis) bool {
	if s.repo == nil {
		return false
	}
	if err := s.repo.Create(ctx, analysis); err != nil {
		log.Warn("failed to create analysis", zap.Error(err))
		return false
	}
	return true
}

func (s *AnalysisService) archiveReply(ctx context.Context, log *zap.Logger, id uuid.UUID, raw string) string {
	if s.archive == nil {
		return ""
	}
	path, err := s.archive.Upload(ctx, id, replyArchiveName, []byte(raw))
	if err != nil {
		log.Warn("failed to archive reply", zap.Error(err))
		return ""
	}
	return path
}

// summarize flattens s onto one line and cuts it to at most n runes
func summarize(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
