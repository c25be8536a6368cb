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

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// Create handles patient creation
// @Summary Create a new patient
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePatientRequest true "Create Patient Request"
// @Success 201 {object} dto.PatientResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /patients [post]
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.BadRequest(w, "Email already exists")
		default:
			response.InternalServerError(w, "Failed to create patient")
		}
		return
	}

	response.Created(w, "Patient created successfully", "patient", patient)
}

// GetAll handles listing every patient, newest first
// @Summary Get all patients
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.PatientResponse
// @Router /patients [get]
func (h *PatientHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.JSON(w, http.StatusOK, patients)
}

// Search handles case-insensitive search by patient name
// @Summary Search patients by name
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param name path string true "Name fragment"
// @Success 200 {array} dto.PatientResponse
// @Router /patients/search/{name} [get]
func (h *PatientHandler) Search(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.Search(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		response.InternalServerError(w, "Failed to search patients")
		return
	}

	response.JSON(w, http.StatusOK, patients)
}

// GetByID handles getting a patient by ID
// @Summary Get patient by ID
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} dto.PatientResponse
// @Failure 404 {object} response.ErrorBody
// @Router /patients/{id} [get]
func (h *PatientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	patient, err := h.patientUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get patient")
		}
		return
	}

	response.JSON(w, http.StatusOK, patient)
}

// Update handles partial patient update
// @Summary Update a patient
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Param request body dto.UpdatePatientRequest true "Update Patient Request"
// @Success 200 {object} dto.PatientResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /patients/{id} [put]
func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrEmailAlreadyExists:
			response.BadRequest(w, "Email already exists")
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.JSON(w, http.StatusOK, patient)
}

// Delete handles patient deletion
// @Summary Delete a patient
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody
// @Router /patients/{id} [delete]
func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	if err := h.patientUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to delete patient")
		}
		return
	}

	response.Message(w, http.StatusOK, "Patient deleted successfully")
}
