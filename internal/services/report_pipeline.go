package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/miyannishar/eco-logic-backend/internal/domain"
	"github.com/miyannishar/eco-logic-backend/internal/platform/gemini"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
	"github.com/miyannishar/eco-logic-backend/internal/prompts"
	"github.com/miyannishar/eco-logic-backend/internal/store"
)

// supportedReportFormats are the file extensions the hosted model accepts for
// document extraction. Checked case-insensitively against the uploaded name.
var supportedReportFormats = []string{"pdf", "jpg", "jpeg", "png"}

// ValidationError rejects a request before any external call or persistence
// write happens. Handlers render it as a 400 {detail} body.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

type ReportUploadInput struct {
	UserID      string
	Filename    string
	ContentType string
	Data        []byte
}

// ReportUploadResult is the analyse-and-upload response: the stored record
// plus absolute URLs the frontend can use directly.
type ReportUploadResult struct {
	domain.ReportRecord
	ViewURL     string `json:"view_url"`
	DownloadURL string `json:"download_url"`
}

// UserReportsResult is the fetch-user-reports-url response.
type UserReportsResult struct {
	Message string             `json:"message"`
	Reports []domain.ReportURL `json:"reports"`
}

// ReportAnalysisService analyses uploaded medical reports and persists both
// the raw file and the extracted record.
type ReportAnalysisService interface {
	AnalyzeAndStore(ctx context.Context, input ReportUploadInput) (*ReportUploadResult, error)
	FetchUserReportURLs(ctx context.Context, userID string) (*UserReportsResult, error)
}

type reportAnalysisService struct {
	log        *logger.Logger
	extractor  Extractor
	reports    store.ReportStore
	backendURL string
}

func NewReportAnalysisService(log *logger.Logger, extractor Extractor, reports store.ReportStore, backendURL string) ReportAnalysisService {
	return &reportAnalysisService{
		log:        log.With("service", "ReportAnalysisService"),
		extractor:  extractor,
		reports:    reports,
		backendURL: strings.TrimRight(backendURL, "/"),
	}
}

// AnalyzeAndStore validates the upload, extracts the report structure with
// the hosted model and only then writes the file and record. Nothing is
// persisted on any failure path.
func (s *reportAnalysisService) AnalyzeAndStore(ctx context.Context, input ReportUploadInput) (*ReportUploadResult, error) {
	ext, err := reportExtension(input.Filename)
	if err != nil {
		return nil, err
	}

	// Stage the upload in a request-scoped temp file. The extraction runs on
	// the in-memory bytes; the staged copy exists so a crashed request can be
	// inspected and never collides with a concurrent upload.
	tmp, err := os.CreateTemp("", "report-*."+ext)
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.Write(input.Data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	doc := &gemini.DocumentInput{
		Bytes:    input.Data,
		MimeType: reportMimeType(ext, input.ContentType),
	}
	outcome := s.extractor.ExtractStructured(ctx, prompts.ReportExtraction, "medical_report_content", ReportContentSchema(), doc)
	switch outcome.Kind {
	case OutcomeServiceFailure:
		return nil, fmt.Errorf("failed to analyze the document: the model could not process this file")
	case OutcomeParseFailure:
		return nil, fmt.Errorf("failed to parse the model response for this document")
	}

	reportType, _ := outcome.Value["report_type"].(string)
	if reportType == "" {
		return nil, fmt.Errorf("model response is missing the report type")
	}
	rawContent, ok := outcome.Value["report_content"]
	if !ok {
		return nil, fmt.Errorf("model response is missing the report content")
	}
	// A sparse report with no extractable facts is still a valid report;
	// only a malformed field is an error.
	content, err := coerceStringList(rawContent)
	if err != nil {
		return nil, fmt.Errorf("model response has malformed report content: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%s.%s", input.UserID, reportType, shortCode(), ext)
	stored, err := s.reports.StoreFile(ctx, input.Data, input.ContentType, filename, map[string]string{
		"user_id":     input.UserID,
		"report_type": reportType,
	})
	if err != nil {
		return nil, fmt.Errorf("store report file: %w", err)
	}

	rec := domain.ReportRecord{
		UserID:         input.UserID,
		ReportCategory: reportType,
		FileID:         stored.FileID,
		FileURL:        stored.URL,
		Filename:       filename,
		ReportContent:  content,
	}
	recordID, err := s.reports.StoreRecord(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("store report record: %w", err)
	}
	s.log.Info("Stored analysed report",
		"user_id", input.UserID,
		"report_type", reportType,
		"file_id", stored.FileID,
		"record_id", recordID,
	)

	return &ReportUploadResult{
		ReportRecord: rec,
		ViewURL:      s.absoluteURL("/report-storage/files/" + stored.FileID),
		DownloadURL:  s.absoluteURL("/report-storage/download/" + stored.FileID + "/" + filename),
	}, nil
}

func (s *reportAnalysisService) FetchUserReportURLs(ctx context.Context, userID string) (*UserReportsResult, error) {
	urls, err := s.reports.UserReportURLs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user reports: %w", err)
	}
	if len(urls) == 0 {
		return &UserReportsResult{
			Message: fmt.Sprintf("No reports found for user ID: %s", userID),
			Reports: []domain.ReportURL{},
		}, nil
	}
	for i := range urls {
		urls[i].URL = s.absoluteURL(urls[i].URL)
		urls[i].DownloadURL = s.absoluteURL(urls[i].DownloadURL)
	}
	return &UserReportsResult{
		Message: fmt.Sprintf("Found %d reports for user ID: %s", len(urls), userID),
		Reports: urls,
	}, nil
}

func (s *reportAnalysisService) absoluteURL(path string) string {
	if s.backendURL == "" {
		return path
	}
	return s.backendURL + path
}

// reportExtension validates the uploaded filename against the supported
// formats and returns the lowercased extension.
func reportExtension(filename string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return "", &ValidationError{
			Detail: fmt.Sprintf("File must have an extension. Supported formats: %s.", strings.Join(supportedReportFormats, ", ")),
		}
	}
	lower := strings.ToLower(ext)
	for _, supported := range supportedReportFormats {
		if lower == supported {
			return lower, nil
		}
	}
	return "", &ValidationError{
		Detail: fmt.Sprintf("File format .%s is not supported. Supported formats: %s", ext, strings.Join(supportedReportFormats, ", ")),
	}
}

func reportMimeType(ext, fallback string) string {
	switch ext {
	case "pdf":
		return "application/pdf"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	}
	return fallback
}

// shortCode is the unique filename component: 12 hex chars derived from a
// random uuid.
func shortCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
