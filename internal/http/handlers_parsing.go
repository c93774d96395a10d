// Package httpx provides HTTP handlers and utilities for the docparse API.
package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/simbadocs/docparse/internal/domain/model"
	"github.com/simbadocs/docparse/internal/service"
)

// ParsingHandlers provides HTTP handlers for parse dispatch and status lookup.
type ParsingHandlers struct {
	Dispatch *service.DispatchService
	Status   *service.StatusService
}

// ListParsers handles HTTP requests to list the registered parsing backends.
func (h *ParsingHandlers) ListParsers(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string][]model.Capability{
		"parsers": h.Dispatch.Capabilities(),
	})
}

// submitBody is the wire shape of a parse submission. Parser is decoded as a
// plain string so unknown names reach the dispatcher's registry check instead
// of failing at the JSON layer; the dispatcher's validation order depends on
// document lookup running first.
type submitBody struct {
	DocumentID string     `json:"document_id"`
	Parser     string     `json:"parser"`
	NotBefore  *time.Time `json:"not_before,omitempty"`
}

// SubmitParse handles HTTP requests to dispatch a parse task. A successful
// dispatch is acknowledged with 202 before any parsing work happens.
func (h *ParsingHandlers) SubmitParse(w http.ResponseWriter, r *http.Request) {
	var body submitBody
	if !DecodeJSON(w, r, &body) {
		return
	}

	req := &model.SubmitRequest{
		DocumentID: strings.TrimSpace(body.DocumentID),
		Parser:     model.ParserName(strings.ToLower(strings.TrimSpace(body.Parser))),
		NotBefore:  body.NotBefore,
	}

	receipt, err := h.Dispatch.Submit(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	w.Header().Set("Location", "/api/"+receipt.StatusLocation)
	WriteJSON(w, http.StatusAccepted, receipt)
}

// GetTaskStatus handles HTTP requests for the status of a single parse task.
// Unknown identifiers are a 200 with state UNKNOWN, not a 404.
func (h *ParsingHandlers) GetTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathValueOr(w, r, "id")
	if !ok {
		return
	}

	status, err := h.Status.GetStatus(r.Context(), service.StatusQuery{
		TaskID: taskID,
		Select: r.URL.Query().Get("select"),
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, status)
}
