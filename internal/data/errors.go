package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Document repository sentinels.
	ErrDocumentNotFound       = errors.New("document not found")
	ErrDocumentFilenameExists = errors.New("document filename already exists")

	// Task repository sentinels.
	ErrTaskIDRequired = errors.New("task_id is required")
	ErrWorkerRequired = errors.New("worker name is required")
)
