package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a looked-up row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidProgress is returned when a progress value is outside the vocabulary.
	ErrInvalidProgress = errors.New("invalid progress value")
	// ErrCoachProfileMissing is returned when a coach-role user has no coach row.
	ErrCoachProfileMissing = errors.New("coach profile not found")
	// ErrPlayerProfileMissing is returned when a player-role user has no player row.
	ErrPlayerProfileMissing = errors.New("player profile not found")
	// ErrJerseyNumberTaken is returned when a jersey number is already assigned.
	ErrJerseyNumberTaken = errors.New("jersey number already taken")
	// ErrUsernameTaken is returned when a username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrPlayerNotAssigned is returned when a coach targets a player outside their roster.
	ErrPlayerNotAssigned = errors.New("player is not assigned to this coach")
)

// PermissionError is a denial carrying diagnostics about who was refused and
// which rows were involved, so a 403 can say more than "no".
type PermissionError struct {
	Reason        string `json:"error"`
	Role          string `json:"user_role"`
	GoalPlayerID  *uint  `json:"goal_player_id,omitempty"`
	UserProfileID *uint  `json:"user_profile_id,omitempty"`
}

func (e *PermissionError) Error() string {
	return e.Reason
}

// Denied builds a plain permission denial for the given role.
func Denied(role string) *PermissionError {
	return &PermissionError{Reason: "Permission denied", Role: role}
}

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var perm *PermissionError
	if errors.As(err, &perm) {
		return NewHTTPError(http.StatusForbidden, perm.Reason, "PERMISSION_DENIED")
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrInvalidProgress):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PROGRESS")
	case errors.Is(err, ErrCoachProfileMissing):
		return NewHTTPError(http.StatusForbidden, err.Error(), "COACH_PROFILE_MISSING")
	case errors.Is(err, ErrPlayerProfileMissing):
		return NewHTTPError(http.StatusForbidden, err.Error(), "PLAYER_PROFILE_MISSING")
	case errors.Is(err, ErrJerseyNumberTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "JERSEY_NUMBER_TAKEN")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrPlayerNotAssigned):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PLAYER_NOT_ASSIGNED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
