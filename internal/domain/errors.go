package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrTitleNotFound indicates the catalog has no title with the requested ID
	ErrTitleNotFound = errors.New("title not found")

	// ErrCatalogUnavailable indicates the remote catalog could not be reached
	ErrCatalogUnavailable = errors.New("catalog service is unreachable")

	// ErrAuthFailed indicates the catalog rejected the API credentials
	ErrAuthFailed = errors.New("catalog credentials are invalid")

	// ErrInvalidKind indicates an unknown film/series kind
	ErrInvalidKind = errors.New("invalid kind")

	// ErrNotAuthenticated indicates an admin operation without a valid session
	ErrNotAuthenticated = errors.New("admin session required")

	// ErrInvalidCredentials indicates a failed admin login
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrAdminNotConfigured indicates no admin password hash is configured
	ErrAdminNotConfigured = errors.New("admin credentials are not configured")
)
