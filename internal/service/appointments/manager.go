package appointments

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Domenick1991/medappointments/internal/domain"
	"github.com/Domenick1991/medappointments/internal/logging"
	"github.com/Domenick1991/medappointments/internal/notify"
)

var (
	ErrPatientRequired     = errors.New("patient is required")
	ErrDoctorRequired      = errors.New("doctor is required")
	ErrAppointmentRequired = errors.New("appointment is required")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

type AppointmentUseCase interface {
	Book(ctx context.Context, patient *domain.Patient, doctor *domain.Doctor, date, time string) (*domain.Appointment, error)
	Confirm(ctx context.Context, appt *domain.Appointment) error
	Cancel(ctx context.Context, appt *domain.Appointment) error
	FindByID(id int64) (*domain.Appointment, bool)
	ListAll() []domain.Appointment
}

type ManagerOption func(*Manager)

func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Manager is the only owner and writer of the appointment collection.
// The collection and nextID change together; Manager is not safe for
// concurrent use and would need a single mutex around both if it were shared.
type Manager struct {
	notifier     notify.Notifier
	logger       *slog.Logger
	appointments []*domain.Appointment
	nextID       int64
}

func NewManager(notifier notify.Notifier, opts ...ManagerOption) *Manager {
	m := &Manager{
		notifier: notifier,
		logger:   logging.Discard(),
		nextID:   1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) generateID() int64 {
	id := m.nextID
	m.nextID++
	return id
}

// Book always creates a PENDING appointment. Date and time are stored as given.
func (m *Manager) Book(ctx context.Context, patient *domain.Patient, doctor *domain.Doctor, date, time string) (*domain.Appointment, error) {
	if patient == nil {
		return nil, ErrPatientRequired
	}
	if doctor == nil {
		return nil, ErrDoctorRequired
	}

	appt := domain.NewAppointment(m.generateID(), patient, doctor, date, time)
	m.appointments = append(m.appointments, appt)

	m.logger.InfoContext(ctx, "appointment booked",
		slog.Int64("appointment_id", appt.ID),
		slog.String("patient", patient.Name),
		slog.String("doctor", doctor.Name),
		slog.String("date", date),
		slog.String("time", time),
		slog.String("status", string(appt.Status)),
	)

	m.notify(ctx, appt, bookedMessage(appt))
	return appt, nil
}

// Confirm moves a PENDING appointment to CONFIRMED.
func (m *Manager) Confirm(ctx context.Context, appt *domain.Appointment) error {
	if err := m.owned(appt); err != nil {
		return err
	}
	if !domain.CanTransition(appt.Status, domain.AppointmentStatusConfirmed) {
		return ErrInvalidTransition
	}
	m.transition(ctx, appt, domain.AppointmentStatusConfirmed)
	return nil
}

// Cancel sets CANCELLED and sends the cancellation message on every call,
// including for an appointment that is already cancelled.
func (m *Manager) Cancel(ctx context.Context, appt *domain.Appointment) error {
	if err := m.owned(appt); err != nil {
		return err
	}
	from := appt.Status
	appt.Cancel()
	m.logTransition(ctx, appt, from)

	m.notify(ctx, appt, cancelledMessage(appt))
	return nil
}

func (m *Manager) FindByID(id int64) (*domain.Appointment, bool) {
	for _, a := range m.appointments {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// ListAll returns copies in booking order.
func (m *Manager) ListAll() []domain.Appointment {
	out := make([]domain.Appointment, 0, len(m.appointments))
	for _, a := range m.appointments {
		out = append(out, *a)
	}
	return out
}

func (m *Manager) owned(appt *domain.Appointment) error {
	if appt == nil {
		return ErrAppointmentRequired
	}
	if found, ok := m.FindByID(appt.ID); !ok || found != appt {
		return ErrAppointmentNotFound
	}
	return nil
}

func (m *Manager) transition(ctx context.Context, appt *domain.Appointment, to domain.AppointmentStatus) {
	from := appt.Status
	appt.SetStatus(to)
	m.logTransition(ctx, appt, from)
}

func (m *Manager) logTransition(ctx context.Context, appt *domain.Appointment, from domain.AppointmentStatus) {
	m.logger.InfoContext(ctx, "appointment status changed",
		slog.Int64("appointment_id", appt.ID),
		slog.String("from", string(from)),
		slog.String("to", string(appt.Status)),
	)
}

// notify never fails the caller, the state change has already happened.
func (m *Manager) notify(ctx context.Context, appt *domain.Appointment, message string) {
	if m.notifier == nil {
		m.logger.WarnContext(ctx, "no notifier configured", slog.Int64("appointment_id", appt.ID))
		return
	}
	if err := m.notifier.Send(ctx, appt.Patient.Email, message); err != nil {
		m.logger.WarnContext(ctx, "notification failed",
			slog.Int64("appointment_id", appt.ID),
			slog.String("to", appt.Patient.Email),
			slog.Any("err", err),
		)
	}
}

var _ AppointmentUseCase = (*Manager)(nil)
