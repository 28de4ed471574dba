// Package testutil holds shared test fixtures for conduit.
//
// Only *_test.go files import it. Keeping the mock sentinels here lets
// tests in different packages assert on the same error identities.
package testutil

import "errors"

// Mock errors simulating failure scenarios across test suites.
var (
	// ErrMockSpawnFailed indicates a mock process launch failed (used in tests).
	ErrMockSpawnFailed = errors.New("spawn failed")

	// ErrMockTerminateFailed indicates a mock process refused to terminate (used in tests).
	ErrMockTerminateFailed = errors.New("terminate failed")

	// ErrMockExecutorFailed indicates a mock task executor failed (used in tests).
	ErrMockExecutorFailed = errors.New("executor failed")

	// ErrMockNotFound indicates a mock resource was not found (used in tests).
	ErrMockNotFound = errors.New("not found")

	// ErrMockNetwork indicates a mock network error occurred (used in tests).
	ErrMockNetwork = errors.New("network error")
)
