package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/simbadocs/docparse/internal/data"
	"github.com/simbadocs/docparse/internal/domain/model"
)

// devDocuments are sample documents inserted in development mode so the parse
// API has something to dispatch against. Seeding is idempotent: documents that
// already exist are skipped.
var devDocuments = []model.CreateDocumentRequest{
	{
		Filename:    "welcome.md",
		ContentType: "text/markdown",
		Content:     []byte("# Welcome\n\nThis is a seeded sample document.\n\n## Usage\n\nSubmit it to /api/parse."),
		Metadata:    json.RawMessage(`{"seed":true}`),
	},
	{
		Filename:    "notes.txt",
		ContentType: "text/plain",
		Content:     []byte("Plain text sample.\n\nTwo paragraphs, no structure."),
		Metadata:    json.RawMessage(`{"seed":true}`),
	},
}

// SeedDevDocuments inserts the sample documents. Call only when IsDev is set.
func SeedDevDocuments(ctx context.Context, documents *data.DocumentRepo, logger *slog.Logger) error {
	if documents == nil {
		return errors.New("document repository is required")
	}

	for i := range devDocuments {
		req := devDocuments[i]
		doc, err := documents.Create(ctx, &req)
		if err != nil {
			if errors.Is(err, data.ErrDocumentFilenameExists) {
				continue
			}
			return err
		}
		if logger != nil {
			logger.InfoContext(ctx, "seeded dev document", "id", doc.ID, "filename", doc.Filename)
		}
	}
	return nil
}
