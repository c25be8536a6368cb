package converter

import (
	"clinic-admin-api/internal/delivery/dto"
	"clinic-admin-api/internal/domain/entity"
)

func MedicationToResponse(medication *entity.Medication) *dto.MedicationResponse {
	if medication == nil {
		return nil
	}

	return &dto.MedicationResponse{
		ID:        medication.ID,
		Name:      medication.Name,
		Price:     medication.Price,
		Quantity:  medication.Quantity,
		ImageURL:  medication.ImageURL,
		CreatedAt: medication.CreatedAt,
	}
}

func MedicationsToResponses(medications []entity.Medication) []dto.MedicationResponse {
	responses := make([]dto.MedicationResponse, len(medications))
	for i := range medications {
		responses[i] = *MedicationToResponse(&medications[i])
	}
	return responses
}
