package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simbadocs/docparse/internal/domain/model"
	"github.com/simbadocs/docparse/internal/testutil"
)

func TestDocumentRepo_CreateAndGet(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewDocumentRepo(db)
		ctx := context.Background()

		created, err := repo.Create(ctx, &model.CreateDocumentRequest{
			Filename:    "report.md",
			ContentType: "text/markdown",
			Content:     []byte("# Report\n\nbody"),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "report.md", created.Filename)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, []byte("# Report\n\nbody"), got.Content)
	})
}

func TestDocumentRepo_Create_Defaults(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewDocumentRepo(db)

		created, err := repo.Create(context.Background(), &model.CreateDocumentRequest{
			Filename: "plain.txt",
			Content:  []byte("hello"),
		})
		require.NoError(t, err)
		assert.Equal(t, "text/plain", created.ContentType)
		assert.JSONEq(t, `{}`, string(created.Metadata))
	})
}

func TestDocumentRepo_Create_DuplicateFilename(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewDocumentRepo(db)
		ctx := context.Background()

		_, err := repo.Create(ctx, &model.CreateDocumentRequest{
			Filename: "dup.txt", Content: []byte("a"),
		})
		require.NoError(t, err)

		_, err = repo.Create(ctx, &model.CreateDocumentRequest{
			Filename: "dup.txt", Content: []byte("b"),
		})
		assert.ErrorIs(t, err, ErrDocumentFilenameExists)
	})
}

func TestDocumentRepo_GetByID_NotFound(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewDocumentRepo(db)
		ctx := context.Background()

		// absent row
		_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, ErrDocumentNotFound)

		// malformed identifier is indistinguishable from absent
		_, err = repo.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrDocumentNotFound)

		// blank identifier
		_, err = repo.GetByID(ctx, "  ")
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})
}

func TestDocumentRepo_List(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewDocumentRepo(db)
		ctx := context.Background()

		for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
			_, err := repo.Create(ctx, &model.CreateDocumentRequest{
				Filename: name, Content: []byte(name),
			})
			require.NoError(t, err)
		}

		docs, err := repo.List(ctx, 2, 0)
		require.NoError(t, err)
		assert.Len(t, docs, 2)

		rest, err := repo.List(ctx, 10, 2)
		require.NoError(t, err)
		assert.Len(t, rest, 1)
	})
}
