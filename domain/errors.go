// ABOUTME: Domain-level sentinel errors for the curation pipeline
// ABOUTME: These errors are used with errors.Is() for error type checking
package domain

import "errors"

// Ingestion errors
var (
	// ErrSourceFetch indicates a single feed could not be fetched or parsed
	ErrSourceFetch = errors.New("feed source fetch failed")

	// ErrNoArticles indicates no source produced a relevant, fresh article
	ErrNoArticles = errors.New("no articles collected")
)

// Completion backend errors
var (
	// ErrBackendQuota indicates the candidate hit a rate limit or quota (HTTP 429)
	ErrBackendQuota = errors.New("completion backend quota exceeded")

	// ErrBackendUnavailable indicates a transport or non-2xx failure that is not quota related
	ErrBackendUnavailable = errors.New("completion backend unavailable")

	// ErrMalformedResponse indicates the backend text did not contain the expected JSON value
	ErrMalformedResponse = errors.New("malformed completion response")

	// ErrBackendUnconfigured indicates no completion backend is configured
	ErrBackendUnconfigured = errors.New("completion backend not configured")
)

// Persistence and publication errors
var (
	// ErrSnapshotWrite indicates the archive or latest pointer could not be written
	ErrSnapshotWrite = errors.New("snapshot write failed")

	// ErrPublish indicates rendering or pushing the page failed
	ErrPublish = errors.New("publish failed")

	// ErrRunInProgress indicates another run holds the run lock
	ErrRunInProgress = errors.New("another run is in progress")
)

// Archive read errors
var (
	// ErrSnapshotNotFound indicates the archive has no latest snapshot yet
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
