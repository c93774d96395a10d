package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Document is a stored document record. The document store is an external
// collaborator of the dispatch core; docparse only reads it to verify
// existence at submit time and to feed content to parsing backends.
type Document struct {
	ID          string          `json:"id"           db:"id"`
	Filename    string          `json:"filename"     db:"filename"`
	ContentType string          `json:"content_type" db:"content_type"`
	Content     []byte          `json:"content"      db:"content"`
	Metadata    json.RawMessage `json:"metadata"     db:"metadata"`
	CreatedAt   time.Time       `json:"created_at"   db:"created_at"`
}

// CreateDocumentRequest represents a request to store a document. Used by
// dev seeding and tests; ingestion itself is out of scope for the core.
type CreateDocumentRequest struct {
	ID          string          `json:"id,omitempty"`
	Filename    string          `json:"filename"`
	ContentType string          `json:"content_type"`
	Content     []byte          `json:"content"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

// Validate validates the CreateDocumentRequest fields.
func (r *CreateDocumentRequest) Validate() error {
	if strings.TrimSpace(r.Filename) == "" {
		return errors.New("filename is required")
	}
	if len(r.Content) == 0 {
		return errors.New("content is required")
	}
	return nil
}
