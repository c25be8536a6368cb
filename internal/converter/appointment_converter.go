package converter

import (
	"clinic-admin-api/internal/delivery/dto"
	"clinic-admin-api/internal/domain/entity"
)

const DateLayout = "2006-01-02"

func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		PatientName:     appointment.PatientName,
		Date:            appointment.Date.Format(DateLayout),
		Time:            appointment.Time,
		AppointmentType: string(appointment.AppointmentType),
		RemoteLink:      appointment.RemoteLink,
		CreatedAt:       appointment.CreatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
