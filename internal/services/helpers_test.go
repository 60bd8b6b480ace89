package services

import (
	"context"
	"errors"
	"testing"

	"github.com/miyannishar/eco-logic-backend/internal/domain"
	"github.com/miyannishar/eco-logic-backend/internal/platform/gemini"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

// fakeGemini answers each GenerateJSON call from a queue of canned replies
// and records the schema and document of every call.
type fakeGemini struct {
	replies []fakeReply
	calls   []string
	docs    []*gemini.DocumentInput
}

type fakeReply struct {
	text string
	err  error
}

func (f *fakeGemini) GenerateJSON(_ context.Context, _ string, schemaName string, _ map[string]any, doc *gemini.DocumentInput) (string, error) {
	f.calls = append(f.calls, schemaName)
	f.docs = append(f.docs, doc)
	if len(f.replies) == 0 {
		return "", errors.New("no reply queued")
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply.text, reply.err
}

// fakeSearch returns fixed snippets per query, or an error for queries in
// the fail set.
type fakeSearch struct {
	snippets map[string][]string
	fail     map[string]bool
	queries  []string
}

func (f *fakeSearch) Search(_ context.Context, query string) ([]string, error) {
	f.queries = append(f.queries, query)
	if f.fail[query] {
		return nil, errors.New("search unavailable")
	}
	return f.snippets[query], nil
}

// fakeReportStore records writes and serves canned reads.
type fakeReportStore struct {
	content    []string
	contentErr error
	urls       []domain.ReportURL
	urlsErr    error

	storedFiles   []storedFileCall
	storedRecords []domain.ReportRecord
	storeFileErr  error
}

type storedFileCall struct {
	data        []byte
	contentType string
	filename    string
	metadata    map[string]string
}

func (f *fakeReportStore) StoreFile(_ context.Context, data []byte, contentType, filename string, metadata map[string]string) (domain.StoredFile, error) {
	if f.storeFileErr != nil {
		return domain.StoredFile{}, f.storeFileErr
	}
	f.storedFiles = append(f.storedFiles, storedFileCall{
		data:        data,
		contentType: contentType,
		filename:    filename,
		metadata:    metadata,
	})
	return domain.StoredFile{FileID: "abc123", URL: "/report-storage/files/abc123"}, nil
}

func (f *fakeReportStore) GetFile(_ context.Context, fileID string) (*domain.FileHandle, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeReportStore) StoreRecord(_ context.Context, rec domain.ReportRecord) (string, error) {
	f.storedRecords = append(f.storedRecords, rec)
	return "rec123", nil
}

func (f *fakeReportStore) ListRecordsForUser(_ context.Context, _ string) ([]domain.ReportRecord, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeReportStore) UserReportContent(_ context.Context, _ string) ([]string, error) {
	return f.content, f.contentErr
}

func (f *fakeReportStore) UserReportURLs(_ context.Context, _ string) ([]domain.ReportURL, error) {
	return f.urls, f.urlsErr
}
