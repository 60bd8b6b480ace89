package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/miyannishar/eco-logic-backend/internal/domain"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
	"github.com/miyannishar/eco-logic-backend/internal/services"
	"github.com/miyannishar/eco-logic-backend/internal/store"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type fakeProductService struct {
	result map[string]any
	err    *services.PipelineError
	input  services.ProductAnalysisInput
}

func (f *fakeProductService) Analyze(_ context.Context, input services.ProductAnalysisInput) (map[string]any, *services.PipelineError) {
	f.input = input
	return f.result, f.err
}

type fakeReportService struct {
	uploadResult *services.ReportUploadResult
	uploadErr    error
	uploadInput  services.ReportUploadInput
	uploadCalls  int

	fetchResult *services.UserReportsResult
	fetchErr    error
	fetchUserID string
}

func (f *fakeReportService) AnalyzeAndStore(_ context.Context, input services.ReportUploadInput) (*services.ReportUploadResult, error) {
	f.uploadCalls++
	f.uploadInput = input
	return f.uploadResult, f.uploadErr
}

func (f *fakeReportService) FetchUserReportURLs(_ context.Context, userID string) (*services.UserReportsResult, error) {
	f.fetchUserID = userID
	return f.fetchResult, f.fetchErr
}

type fakeFileStore struct {
	files map[string]*domain.FileHandle
}

func (f *fakeFileStore) GetFile(_ context.Context, fileID string) (*domain.FileHandle, error) {
	file, ok := f.files[fileID]
	if !ok {
		return nil, store.ErrFileNotFound
	}
	return file, nil
}

func (f *fakeFileStore) StoreFile(_ context.Context, _ []byte, _, _ string, _ map[string]string) (domain.StoredFile, error) {
	return domain.StoredFile{}, errors.New("not implemented")
}

func (f *fakeFileStore) StoreRecord(_ context.Context, _ domain.ReportRecord) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeFileStore) ListRecordsForUser(_ context.Context, _ string) ([]domain.ReportRecord, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeFileStore) UserReportContent(_ context.Context, _ string) ([]string, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeFileStore) UserReportURLs(_ context.Context, _ string) ([]domain.ReportURL, error) {
	return nil, errors.New("not implemented")
}

// multipartBody builds a multipart form with one file part plus extra fields.
func multipartBody(t *testing.T, fileField, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
