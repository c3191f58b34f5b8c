package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"teamgoals/internal/model"
	"teamgoals/internal/service"
)

// UserHandler handles user administration and profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest creates a user and its role profile in one call.
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"required,oneof=admin coach player"`
	Email       string `json:"email" validate:"omitempty,email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=15"`
	DateOfBirth string `json:"date_of_birth"`

	// Coach profile fields
	Specialization  string `json:"specialization"`
	ExperienceYears uint   `json:"experience_years"`
	Bio             string `json:"bio"`

	// Player profile fields
	CoachID      *uint   `json:"coach_id"`
	Position     string  `json:"position"`
	JerseyNumber *uint   `json:"jersey_number"`
	HeightCm     *string `json:"height_cm"`
	WeightKg     *string `json:"weight_kg"`
}

// CreateUser godoc
// @Summary Create a user with its role profile (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dateOfBirth, err := parseDate(req.DateOfBirth)
	if err != nil {
		return err
	}

	input := service.CreateUserInput{
		Username:        req.Username,
		Password:        req.Password,
		Role:            model.Role(req.Role),
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		PhoneNumber:     req.PhoneNumber,
		DateOfBirth:     dateOfBirth,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		Bio:             req.Bio,
		CoachID:         req.CoachID,
		Position:        req.Position,
		JerseyNumber:    req.JerseyNumber,
	}
	if req.HeightCm != nil {
		height, err := decimal.NewFromString(*req.HeightCm)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid height")
		}
		input.HeightCm = &height
	}
	if req.WeightKg != nil {
		weight, err := decimal.NewFromString(*req.WeightKg)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid weight")
		}
		input.WeightKg = &weight
	}

	user, err := h.userService.Create(c.Request().Context(), principal, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// GetProfile godoc
// @Summary Get the caller's role-appropriate profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Profile
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.Profile(c.Request().Context(), principal)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}
