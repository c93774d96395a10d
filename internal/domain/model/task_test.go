package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskState_Valid(t *testing.T) {
	for _, s := range []TaskState{TaskStatePending, TaskStateStarted, TaskStateSuccess, TaskStateFailure} {
		assert.True(t, s.Valid(), "state %s should be valid", s)
	}
	assert.False(t, TaskStateUnknown.Valid(), "UNKNOWN is never written to the store")
	assert.False(t, TaskState("running").Valid())
}

func TestTaskState_Terminal(t *testing.T) {
	assert.True(t, TaskStateSuccess.Terminal())
	assert.True(t, TaskStateFailure.Terminal())
	assert.False(t, TaskStatePending.Terminal())
	assert.False(t, TaskStateStarted.Terminal())
	assert.False(t, TaskStateUnknown.Terminal())
}

func TestParserName_Valid(t *testing.T) {
	assert.True(t, ParserMarkitdown.Valid())
	assert.True(t, ParserDocling.Valid())
	assert.False(t, ParserName("").Valid())
	assert.False(t, ParserName("pdfminer").Valid())
}

func TestParserName_UnmarshalText(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		var p ParserName
		require.NoError(t, p.UnmarshalText([]byte("  MarkItDown ")))
		assert.Equal(t, ParserMarkitdown, p)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		var p ParserName
		err := p.UnmarshalText([]byte("unknown-parser"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid ParserName")
	})

	t.Run("rejects unknown names in JSON", func(t *testing.T) {
		var req SubmitRequest
		err := json.Unmarshal([]byte(`{"document_id":"doc-1","parser":"typo"}`), &req)
		require.Error(t, err)
	})
}

func TestSubmitRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := SubmitRequest{DocumentID: "doc-1", Parser: ParserMarkitdown}
		require.NoError(t, req.Validate())
	})

	t.Run("missing document id", func(t *testing.T) {
		req := SubmitRequest{Parser: ParserMarkitdown}
		assert.EqualError(t, req.Validate(), "document id is required")
	})

	t.Run("blank document id", func(t *testing.T) {
		req := SubmitRequest{DocumentID: "   ", Parser: ParserDocling}
		assert.EqualError(t, req.Validate(), "document id is required")
	})

	t.Run("missing parser", func(t *testing.T) {
		req := SubmitRequest{DocumentID: "doc-1"}
		assert.EqualError(t, req.Validate(), "parser is required")
	})
}

func TestCreateDocumentRequest_Validate(t *testing.T) {
	valid := CreateDocumentRequest{Filename: "a.md", Content: []byte("# hi")}
	require.NoError(t, valid.Validate())

	missingName := CreateDocumentRequest{Content: []byte("x")}
	assert.Error(t, missingName.Validate())

	empty := CreateDocumentRequest{Filename: "a.md"}
	assert.Error(t, empty.Validate())
}
