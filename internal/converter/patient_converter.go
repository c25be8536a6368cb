package converter

import (
	"clinic-admin-api/internal/delivery/dto"
	"clinic-admin-api/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO.
// The password hash is never copied.
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:              patient.ID,
		Name:            patient.Name,
		Age:             patient.Age,
		Gender:          patient.Gender,
		BloodGroup:      patient.BloodGroup,
		Email:           patient.Email,
		Number:          patient.Number,
		FingerprintSlot: patient.FingerprintSlot,
		CreatedAt:       patient.CreatedAt,
	}
}

func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
