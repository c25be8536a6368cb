package handler

import (
	"encoding/json"
	"net/http"

	"clinic-admin-api/internal/delivery/dto"
	"clinic-admin-api/internal/delivery/http/middleware"
	"clinic-admin-api/internal/usecase"
	"clinic-admin-api/pkg/response"
	"clinic-admin-api/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// Login handles admin login
// @Summary Login admin
// @Description Exchange admin credentials for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 429 {object} response.ErrorBody
// @Router /admin/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	token, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.BadRequest(w, "Invalid credentials")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.JSON(w, http.StatusOK, token)
}

// Logout handles admin logout
// @Summary Logout admin
// @Description Revoke the presented token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.MessageBody
// @Failure 401 {object} response.ErrorBody
// @Router /admin/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok || claims.ExpiresAt == nil {
		response.Forbidden(w, "Invalid token")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), claims.AdminID, claims.TokenID, claims.ExpiresAt.Time); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Message(w, http.StatusOK, "Logout successful")
}

// Me handles getting the logged in admin
// @Summary Get current admin
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.AdminResponse
// @Failure 401 {object} response.ErrorBody
// @Router /admin/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Invalid token")
		return
	}

	admin, err := h.authUsecase.GetCurrentAdmin(r.Context(), adminID)
	if err != nil {
		switch err {
		case usecase.ErrAdminNotFound:
			response.NotFound(w, "Admin not found")
		default:
			response.InternalServerError(w, "Failed to get admin info")
		}
		return
	}

	response.JSON(w, http.StatusOK, admin)
}
