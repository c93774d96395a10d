// Package mocks provides mock implementations for testing the docparse dispatch system.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// port interfaces in internal/core. The mocks are generated using go:generate
// directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockQueue := mocks.NewMockTaskQueue(ctrl)
//	mockQueue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)
package mocks

// Generate mock for DocumentRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=document_repository_mock.go github.com/simbadocs/docparse/internal/core DocumentRepository

// Generate mock for TaskQueue interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=task_queue_mock.go github.com/simbadocs/docparse/internal/core TaskQueue

// Generate mock for StatusStore interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=status_store_mock.go github.com/simbadocs/docparse/internal/core StatusStore

// Generate mock for WorkerQueue interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=worker_queue_mock.go github.com/simbadocs/docparse/internal/core WorkerQueue

// Generate mock for WorkerRegistry interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=worker_registry_mock.go github.com/simbadocs/docparse/internal/core WorkerRegistry

// Generate mock for FleetSource interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=fleet_source_mock.go github.com/simbadocs/docparse/internal/core FleetSource
