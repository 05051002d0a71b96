// Package v1 provides the booking business logic for API version 1:
// authentication, registration, the participation state machine and the
// account-deletion guard.
//
// Error Handling:
// This package defines sentinel errors for every expected outcome. They are
// wrapped with context using fmt.Errorf("%w") when returned from business
// logic methods. Anything that does not match a sentinel is a store failure
// and maps to 500.
//
// Example Usage:
//
//	if session == nil {
//	    return nil, fmt.Errorf("participate session %d: %w", id, ErrSessionNotFound)
//	}
//
// Error Checking (in handlers):
//
//	switch {
//	case errors.Is(err, logicv1.ErrSessionNotFound), errors.Is(err, logicv1.ErrUserNotFound):
//	    c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
//	case errors.Is(err, logicv1.ErrAlreadyParticipant):
//	    c.JSON(http.StatusBadRequest, gin.H{"error": "Already participating"})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
//	}
package v1

import "errors"

// Sentinel errors for booking operations.
// These errors should be wrapped with context using fmt.Errorf("%w") when returned.
var (
	// ErrInvalidCredentials indicates an unknown email or a wrong password.
	// Both cases share this error so callers cannot probe for accounts.
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates a malformed, tampered or expired token.
	// HTTP Status: 401 Unauthorized
	ErrInvalidToken = errors.New("invalid token")

	// ErrEmailTaken indicates the email is already registered.
	// HTTP Status: 400 Bad Request
	ErrEmailTaken = errors.New("email already taken")

	// ErrSessionNotFound indicates the session does not exist.
	// HTTP Status: 404 Not Found
	ErrSessionNotFound = errors.New("session not found")

	// ErrUserNotFound indicates the user does not exist.
	// HTTP Status: 404 Not Found
	ErrUserNotFound = errors.New("user not found")

	// ErrTeacherNotFound indicates the teacher does not exist.
	// HTTP Status: 404 Not Found
	ErrTeacherNotFound = errors.New("teacher not found")

	// ErrAlreadyParticipant indicates the user already joined the session.
	// HTTP Status: 400 Bad Request
	ErrAlreadyParticipant = errors.New("user already participates")

	// ErrNotParticipant indicates the user is not in the session.
	// HTTP Status: 400 Bad Request
	ErrNotParticipant = errors.New("user does not participate")

	// ErrTargetNotFound indicates the account to delete does not exist.
	// HTTP Status: 404 Not Found
	ErrTargetNotFound = errors.New("target account not found")

	// ErrDeleteDenied indicates the principal may not delete the account.
	// HTTP Status: 401 Unauthorized (kept for compatibility with existing clients)
	ErrDeleteDenied = errors.New("account deletion denied")
)
