package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/simbadocs/docparse/internal/data/pgxutil"
	"github.com/simbadocs/docparse/internal/domain/model"
)

// DocumentRepo provides database operations for stored documents.
type DocumentRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewDocumentRepo creates a new DocumentRepo with real time provider.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewDocumentRepoWithTimeProvider creates a new DocumentRepo with a custom time provider (useful for tests).
func NewDocumentRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *DocumentRepo {
	return &DocumentRepo{DB: db, timeProvider: tp}
}

const documentColumns = `id, filename, content_type, content, metadata, created_at`

const (
	documentGetByIDQuery = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1`

	documentListQuery = `
		SELECT ` + documentColumns + `
		FROM documents
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
)

// Create inserts a new document.
func (r *DocumentRepo) Create(ctx context.Context, req *model.CreateDocumentRequest) (*model.Document, error) {
	if req == nil {
		return nil, errors.New("create document request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	contentType := strings.TrimSpace(req.ContentType)
	if contentType == "" {
		contentType = "text/plain"
	}
	metadata := req.Metadata
	if len(metadata) == 0 {
		metadata = []byte(`{}`)
	}

	var out model.Document
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO documents (id, filename, content_type, content, metadata, created_at)
			VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6)
			RETURNING `+documentColumns,
			strings.TrimSpace(req.ID),
			strings.TrimSpace(req.Filename),
			contentType,
			req.Content,
			metadata,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Document])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err)
	}
	return &out, nil
}

// GetByID retrieves a document by ID. Returns ErrDocumentNotFound when no row
// matches; a malformed UUID is treated the same way since no document can have it.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*model.Document, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrDocumentNotFound
	}

	var doc model.Document
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, documentGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		doc, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Document])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document by ID: %w", err)
	}
	return &doc, nil
}

// List retrieves documents with pagination.
func (r *DocumentRepo) List(ctx context.Context, limit, offset int) ([]*model.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.Document
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, documentListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Document])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	res := make([]*model.Document, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

func (r *DocumentRepo) mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrDocumentFilenameExists
	}
	return err
}

func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}
