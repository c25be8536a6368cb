package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"clinic-admin-api/internal/delivery/dto"
	"clinic-admin-api/internal/usecase"
	"clinic-admin-api/pkg/response"
	"clinic-admin-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type FingerprintHandler struct {
	fingerprintUsecase usecase.FingerprintUsecase
	validator          *validator.CustomValidator
}

func NewFingerprintHandler(fingerprintUsecase usecase.FingerprintUsecase, validator *validator.CustomValidator) *FingerprintHandler {
	return &FingerprintHandler{
		fingerprintUsecase: fingerprintUsecase,
		validator:          validator,
	}
}

func writeFingerprintError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrEnrollmentNotFound:
		response.NotFound(w, "Fingerprint enrollment not found")
	case usecase.ErrNoPendingEnrollment:
		response.Conflict(w, "No pending fingerprint enrollment")
	case usecase.ErrSlotMismatch:
		response.Conflict(w, "Fingerprint slot does not match")
	default:
		response.InternalServerError(w, fallback)
	}
}

// Start handles starting a fingerprint enrollment
// @Summary Enroll a patient fingerprint
// @Description Switch the scanner into signup mode for the patient
// @Tags Fingerprint
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 202 {object} dto.EnrollmentResponse
// @Failure 404 {object} response.ErrorBody
// @Router /patients/{id}/fingerprint [post]
func (h *FingerprintHandler) Start(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	enrollment, err := h.fingerprintUsecase.StartEnrollment(r.Context(), patientID)
	if err != nil {
		writeFingerprintError(w, err, "Failed to start fingerprint enrollment")
		return
	}

	response.JSON(w, http.StatusAccepted, enrollment)
}

// Get handles reading an enrollment, optionally waiting for the scanner
// @Summary Get fingerprint enrollment status
// @Tags Fingerprint
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Param wait query string false "How long to wait for completion, e.g. 30s"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 404 {object} response.ErrorBody
// @Router /patients/{id}/fingerprint [get]
func (h *FingerprintHandler) Get(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	var wait time.Duration
	if raw := r.URL.Query().Get("wait"); raw != "" {
		wait, err = time.ParseDuration(raw)
		if err != nil || wait < 0 {
			response.BadRequest(w, "Invalid wait duration")
			return
		}
	}

	enrollment, err := h.fingerprintUsecase.GetEnrollment(r.Context(), patientID, wait)
	if err != nil {
		writeFingerprintError(w, err, "Failed to get fingerprint enrollment")
		return
	}

	response.JSON(w, http.StatusOK, enrollment)
}

// DeviceMode tells the scanner what to do next.
func (h *FingerprintHandler) DeviceMode(w http.ResponseWriter, r *http.Request) {
	mode, err := h.fingerprintUsecase.GetDeviceMode(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get device mode")
		return
	}

	response.JSON(w, http.StatusOK, mode)
}

// DeviceResult receives the scanner's enrollment outcome.
func (h *FingerprintHandler) DeviceResult(w http.ResponseWriter, r *http.Request) {
	var req dto.DeviceEnrollmentResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	enrollment, err := h.fingerprintUsecase.CompleteEnrollment(r.Context(), &req)
	if err != nil {
		writeFingerprintError(w, err, "Failed to record fingerprint enrollment")
		return
	}

	response.JSON(w, http.StatusOK, enrollment)
}
