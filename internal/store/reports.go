package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/miyannishar/eco-logic-backend/internal/domain"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
)

const reportsCollection = "reports"

var ErrFileNotFound = errors.New("file not found")

// ReportStore is the persistence gateway for report records and their raw
// file bytes (GridFS).
type ReportStore interface {
	StoreFile(ctx context.Context, data []byte, contentType, filename string, metadata map[string]string) (domain.StoredFile, error)
	GetFile(ctx context.Context, fileID string) (*domain.FileHandle, error)
	StoreRecord(ctx context.Context, rec domain.ReportRecord) (string, error)
	ListRecordsForUser(ctx context.Context, userID string) ([]domain.ReportRecord, error)
	UserReportContent(ctx context.Context, userID string) ([]string, error)
	UserReportURLs(ctx context.Context, userID string) ([]domain.ReportURL, error)
}

type reportStore struct {
	log    *logger.Logger
	db     *mongo.Database
	bucket *gridfs.Bucket
}

func NewReportStore(log *logger.Logger, db *mongo.Database) (ReportStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if db == nil {
		return nil, fmt.Errorf("mongo database required")
	}
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		return nil, fmt.Errorf("init gridfs bucket: %w", err)
	}
	return &reportStore{
		log:    log.With("store", "ReportStore"),
		db:     db,
		bucket: bucket,
	}, nil
}

func (s *reportStore) StoreFile(ctx context.Context, data []byte, contentType, filename string, metadata map[string]string) (domain.StoredFile, error) {
	meta := bson.M{"content_type": contentType}
	for k, v := range metadata {
		meta[k] = v
	}
	id, err := s.bucket.UploadFromStream(filename, bytes.NewReader(data), options.GridFSUpload().SetMetadata(meta))
	if err != nil {
		return domain.StoredFile{}, fmt.Errorf("gridfs upload: %w", err)
	}
	fileID := id.Hex()
	return domain.StoredFile{
		FileID: fileID,
		URL:    "/report-storage/files/" + fileID,
	}, nil
}

func (s *reportStore) GetFile(ctx context.Context, fileID string) (*domain.FileHandle, error) {
	objID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, ErrFileNotFound
	}
	ds, err := s.bucket.OpenDownloadStream(objID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("gridfs open: %w", err)
	}
	defer ds.Close()

	data, err := io.ReadAll(ds)
	if err != nil {
		return nil, fmt.Errorf("gridfs read: %w", err)
	}

	file := ds.GetFile()
	contentType := "application/octet-stream"
	filename := ""
	if file != nil {
		filename = file.Name
		if len(file.Metadata) > 0 {
			var meta struct {
				ContentType string `bson:"content_type"`
			}
			if err := bson.Unmarshal(file.Metadata, &meta); err == nil && meta.ContentType != "" {
				contentType = meta.ContentType
			}
		}
	}
	return &domain.FileHandle{
		Data:        data,
		ContentType: contentType,
		Filename:    filename,
	}, nil
}

func (s *reportStore) StoreRecord(ctx context.Context, rec domain.ReportRecord) (string, error) {
	res, err := s.db.Collection(reportsCollection).InsertOne(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("insert report record: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		return id.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

// userFilter matches the canonical user_id key, plus the legacy "user-id"
// spelling still present in documents written before the key migration
// (cmd/backfill-user-id). New records always use the canonical key.
func userFilter(userID string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"user_id": userID},
		bson.M{"user-id": userID},
	}}
}

func (s *reportStore) ListRecordsForUser(ctx context.Context, userID string) ([]domain.ReportRecord, error) {
	cur, err := s.db.Collection(reportsCollection).Find(ctx, userFilter(userID))
	if err != nil {
		return nil, fmt.Errorf("find reports: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.ReportRecord
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		out = append(out, recordFromDoc(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}

func (s *reportStore) UserReportContent(ctx context.Context, userID string) ([]string, error) {
	records, err := s.ListRecordsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var content []string
	for _, rec := range records {
		content = append(content, rec.ReportContent...)
	}
	return content, nil
}

func (s *reportStore) UserReportURLs(ctx context.Context, userID string) ([]domain.ReportURL, error) {
	records, err := s.ListRecordsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	urls := make([]domain.ReportURL, 0, len(records))
	for _, rec := range records {
		if rec.FileID == "" {
			continue
		}
		urls = append(urls, domain.ReportURL{
			URL:         "/report-storage/files/" + rec.FileID,
			DownloadURL: "/report-storage/download/" + rec.FileID + "/" + rec.Filename,
			ReportType:  rec.ReportCategory,
			Filename:    rec.Filename,
			FileID:      rec.FileID,
		})
	}
	return urls, nil
}

// recordFromDoc reads a report document tolerating both the canonical snake
// case keys and the legacy dash-separated ones.
func recordFromDoc(doc bson.M) domain.ReportRecord {
	rec := domain.ReportRecord{
		UserID:         docString(doc, "user_id", "user-id"),
		ReportCategory: docString(doc, "report_category", "report-category"),
		FileID:         docString(doc, "file_id", "file-id"),
		FileURL:        docString(doc, "file_url"),
		Filename:       docString(doc, "filename"),
		ReportContent:  docStrings(doc, "report_content", "report-content"),
	}
	if id, ok := doc["_id"].(primitive.ObjectID); ok {
		rec.ID = id
	}
	return rec
}

func docString(doc bson.M, keys ...string) string {
	for _, k := range keys {
		if v, ok := doc[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func docStrings(doc bson.M, keys ...string) []string {
	for _, k := range keys {
		raw, ok := doc[k]
		if !ok {
			continue
		}
		switch arr := raw.(type) {
		case bson.A:
			out := make([]string, 0, len(arr))
			for _, item := range arr {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return arr
		}
	}
	return nil
}
