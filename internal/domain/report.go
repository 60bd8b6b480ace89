package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportRecord is one analysed medical report persisted in the `reports`
// collection. Records are immutable once created; they are looked up by
// user, never updated or deleted by this backend.
//
// The file referenced by FileID existed at creation time. Nothing enforces
// that it keeps existing: GridFS content has an independent lifecycle and an
// out-of-band delete leaves a dangling record.
type ReportRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID         string             `bson:"user_id" json:"user_id"`
	ReportCategory string             `bson:"report_category" json:"report_category"`
	FileID         string             `bson:"file_id" json:"file_id"`
	FileURL        string             `bson:"file_url" json:"file_url"`
	Filename       string             `bson:"filename" json:"filename"`
	ReportContent  []string           `bson:"report_content" json:"report_content"`
}

// StoredFile is the result of persisting raw bytes in the blob store.
type StoredFile struct {
	FileID string `json:"file_id"`
	URL    string `json:"url"`
}

// FileHandle is a retrieved blob: content plus the attributes it was stored
// with.
type FileHandle struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ReportURL is one entry of the per-user report listing.
type ReportURL struct {
	URL         string `json:"url"`
	DownloadURL string `json:"download_url"`
	ReportType  string `json:"report_type"`
	Filename    string `json:"filename"`
	FileID      string `json:"file_id"`
}
