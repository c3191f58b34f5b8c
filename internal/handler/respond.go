package handler

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"teamgoals/internal/access"
	"teamgoals/internal/errors"
	"teamgoals/internal/repository"
)

// principalContextKey is where the auth middleware stores the loaded principal.
const principalContextKey = "principal"

// PaginationMeta describes one page of a listing.
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func paginationMeta(page repository.Page, total int64) PaginationMeta {
	totalPages := int((total + int64(page.Size) - 1) / int64(page.Size))
	return PaginationMeta{
		Page:       page.Number,
		Limit:      page.Size,
		Total:      total,
		TotalPages: totalPages,
	}
}

func pageParam(c echo.Context) repository.Page {
	number, _ := strconv.Atoi(c.QueryParam("page"))
	return repository.NewPage(number)
}

func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

func principalFrom(c echo.Context) (*access.Principal, error) {
	principal, ok := c.Get(principalContextKey).(*access.Principal)
	if !ok || principal == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHORIZED",
		})
	}
	return principal, nil
}

// respondError maps a domain error to the HTTP response. Permission denials
// keep their diagnostics payload instead of the generic error envelope.
func respondError(c echo.Context, err error) error {
	var echoErr *echo.HTTPError
	if stderrors.As(err, &echoErr) {
		return echoErr
	}
	var perm *errors.PermissionError
	if stderrors.As(err, &perm) {
		return c.JSON(http.StatusForbidden, perm)
	}
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// parseDate parses a yyyy-mm-dd value, returning nil for the empty string.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid date, expected YYYY-MM-DD",
			Code:  "INVALID_DATE",
		})
	}
	return &parsed, nil
}

// requireAJAX enforces the same-origin asynchronous marker used by the two
// progress endpoints.
func requireAJAX(c echo.Context) error {
	if c.Request().Header.Get("X-Requested-With") != "XMLHttpRequest" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	return nil
}
