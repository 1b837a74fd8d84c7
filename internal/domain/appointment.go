package domain

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Allowed moves:
//
//	PENDING   → CONFIRMED
//	PENDING   → CANCELLED
//	CONFIRMED → CANCELLED
//
// Nothing leaves CANCELLED.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCancelled},
}

func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Appointment links one patient and one doctor to a date and a time.
// Patient and Doctor are shared references, the appointment does not own them.
type Appointment struct {
	ID      int64
	Patient *Patient
	Doctor  *Doctor
	Date    string
	Time    string
	Status  AppointmentStatus
}

func NewAppointment(id int64, patient *Patient, doctor *Doctor, date, time string) *Appointment {
	return &Appointment{
		ID:      id,
		Patient: patient,
		Doctor:  doctor,
		Date:    date,
		Time:    time,
		Status:  AppointmentStatusPending,
	}
}

// Cancel marks the appointment cancelled whatever its current status is.
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}

// SetStatus does not check the transition graph, callers do.
func (a *Appointment) SetStatus(status AppointmentStatus) {
	a.Status = status
}
