// Package testutil provides testing utilities for rulesync.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockNetwork indicates a mock network error occurred (used in tests).
	ErrMockNetwork = errors.New("network error")

	// ErrMockGitFailed indicates a mock git command failed (used in tests).
	ErrMockGitFailed = errors.New("git command failed")

	// ErrMockNotFound indicates a mock resource was not found (used in tests).
	ErrMockNotFound = errors.New("not found")

	// ErrMockDenied indicates a mock permission failure (used in tests).
	ErrMockDenied = errors.New("permission denied")
)
