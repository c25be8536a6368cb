package handler

import (
	"encoding/json"
	"net/http"

	"clinic-admin-api/internal/delivery/dto"
	"clinic-admin-api/internal/usecase"
	"clinic-admin-api/pkg/response"
	"clinic-admin-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// writeAppointmentError maps appointment use case errors onto responses.
func writeAppointmentError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrAppointmentPatientNotFound:
		response.BadRequest(w, "Patient not found")
	case usecase.ErrInvalidDateFormat:
		response.BadRequest(w, "Invalid date format")
	case usecase.ErrInvalidTimeFormat:
		response.BadRequest(w, "Invalid time format")
	case usecase.ErrInvalidAppointmentType:
		response.BadRequest(w, "Invalid appointment type")
	default:
		response.InternalServerError(w, fallback)
	}
}

// Create handles appointment creation
// @Summary Create a new appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} dto.AppointmentResponse
// @Failure 400 {object} response.ErrorBody
// @Router /appointments [post]
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to create appointment")
		return
	}

	response.Created(w, "Appointment created successfully", "appointment", appointment)
}

func (h *AppointmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.JSON(w, http.StatusOK, appointments)
}

func (h *AppointmentHandler) Search(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.Search(r.Context(), mux.Vars(r)["patientName"])
	if err != nil {
		response.InternalServerError(w, "Failed to search appointments")
		return
	}

	response.JSON(w, http.StatusOK, appointments)
}

func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointment")
		return
	}

	response.JSON(w, http.StatusOK, appointment)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to update appointment")
		return
	}

	response.JSON(w, http.StatusOK, appointment)
}

// UpdateLink sets or clears the remote meeting link
// @Summary Update the appointment link
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentLinkRequest true "Link"
// @Success 200 {object} dto.AppointmentResponse
// @Router /appointments/{id}/link [put]
func (h *AppointmentHandler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateLink(r.Context(), id, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to update appointment link")
		return
	}

	response.JSON(w, http.StatusOK, appointment)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), id); err != nil {
		writeAppointmentError(w, err, "Failed to delete appointment")
		return
	}

	response.Message(w, http.StatusOK, "Appointment deleted successfully")
}
