package appointments

import (
	"fmt"

	"github.com/Domenick1991/medappointments/internal/domain"
)

func bookedMessage(a *domain.Appointment) string {
	return fmt.Sprintf(
		"Dear %s, your appointment with %s has been scheduled for %s at %s. Appointment ID: %d.",
		a.Patient.Name, a.Doctor.Name, a.Date, a.Time, a.ID,
	)
}

func cancelledMessage(a *domain.Appointment) string {
	return fmt.Sprintf(
		"Dear %s, your appointment with %s scheduled for %s at %s has been CANCELLED.",
		a.Patient.Name, a.Doctor.Name, a.Date, a.Time,
	)
}
