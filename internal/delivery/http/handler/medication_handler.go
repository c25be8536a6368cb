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

type MedicationHandler struct {
	medicationUsecase usecase.MedicationUsecase
	validator         *validator.CustomValidator
}

func NewMedicationHandler(medicationUsecase usecase.MedicationUsecase, validator *validator.CustomValidator) *MedicationHandler {
	return &MedicationHandler{
		medicationUsecase: medicationUsecase,
		validator:         validator,
	}
}

// Create handles medication creation
// @Summary Create a new medication
// @Tags Medications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMedicationRequest true "Create Medication Request"
// @Success 201 {object} dto.MedicationResponse
// @Failure 400 {object} response.ErrorBody
// @Router /medications [post]
func (h *MedicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	medication, err := h.medicationUsecase.Create(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create medication")
		return
	}

	response.Created(w, "Medication created successfully", "medication", medication)
}

func (h *MedicationHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	medications, err := h.medicationUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get medications")
		return
	}

	response.JSON(w, http.StatusOK, medications)
}

func (h *MedicationHandler) Search(w http.ResponseWriter, r *http.Request) {
	medications, err := h.medicationUsecase.Search(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		response.InternalServerError(w, "Failed to search medications")
		return
	}

	response.JSON(w, http.StatusOK, medications)
}

func (h *MedicationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid medication ID")
		return
	}

	medication, err := h.medicationUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrMedicationNotFound:
			response.NotFound(w, "Medication not found")
		default:
			response.InternalServerError(w, "Failed to get medication")
		}
		return
	}

	response.JSON(w, http.StatusOK, medication)
}

func (h *MedicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid medication ID")
		return
	}

	var req dto.UpdateMedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	medication, err := h.medicationUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrMedicationNotFound:
			response.NotFound(w, "Medication not found")
		default:
			response.InternalServerError(w, "Failed to update medication")
		}
		return
	}

	response.JSON(w, http.StatusOK, medication)
}

func (h *MedicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid medication ID")
		return
	}

	if err := h.medicationUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrMedicationNotFound:
			response.NotFound(w, "Medication not found")
		default:
			response.InternalServerError(w, "Failed to delete medication")
		}
		return
	}

	response.Message(w, http.StatusOK, "Medication deleted successfully")
}
