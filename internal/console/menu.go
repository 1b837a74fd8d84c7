package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Domenick1991/medappointments/internal/domain"
	"github.com/Domenick1991/medappointments/internal/logging"
	"github.com/Domenick1991/medappointments/internal/service/appointments"
)

// The console supports one active patient and always gives it this id.
const sessionPatientID int64 = 1

// Defaults replace blank or unparsable input. The core never substitutes values itself.
type Defaults struct {
	PatientName string
	Email       string
	Date        string
	Time        string
}

type Menu struct {
	in       *bufio.Scanner
	out      io.Writer
	svc      appointments.AppointmentUseCase
	doctor   *domain.Doctor
	defaults Defaults
	logger   *slog.Logger

	patient *domain.Patient
}

func NewMenu(in io.Reader, out io.Writer, svc appointments.AppointmentUseCase, doctor *domain.Doctor, defaults Defaults, logger *slog.Logger) *Menu {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Menu{
		in:       bufio.NewScanner(in),
		out:      out,
		svc:      svc,
		doctor:   doctor,
		defaults: defaults,
		logger:   logger,
	}
}

// Run serves menu actions until the user exits, input ends or ctx is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	m.printf("========== PROGRAM START ==========\n\n")
	m.printf("[System] Available doctor: %s (%s)\n\n", m.doctor.Name, m.doctor.Specialty)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()
		option, ok := m.prompt("Select an option: ")
		if !ok {
			m.printf("\nInput closed, exiting...\n")
			break
		}

		switch option {
		case "1":
			m.registerPatient()
		case "2":
			m.bookAppointment(ctx)
		case "3":
			m.cancelAppointment(ctx)
		case "4":
			m.listAppointments()
		case "5":
			m.confirmAppointment(ctx)
		case "0":
			m.printf("\nExiting...\n")
			m.printf("\n========== PROGRAM END ==========\n\n")
			return nil
		default:
			m.printf("Invalid option.\n\n")
		}
	}

	m.printf("\n========== PROGRAM END ==========\n\n")
	return m.in.Err()
}

func (m *Menu) printMenu() {
	m.printf("==========================================\n")
	m.printf("   Medical Appointment Management System  \n")
	m.printf("==========================================\n")
	m.printf("1. Register patient\n")
	m.printf("2. Book appointment\n")
	m.printf("3. Cancel appointment\n")
	m.printf("4. List appointments\n")
	m.printf("5. Confirm appointment\n")
	m.printf("0. Exit\n")
	m.printf("==========================================\n")
}

func (m *Menu) registerPatient() {
	m.printf("\n--- Patient registration ---\n")
	name, _ := m.prompt("Patient name: ")
	ageText, _ := m.prompt("Age: ")
	email, _ := m.prompt("Email: ")

	age, err := strconv.Atoi(ageText)
	if err != nil {
		m.printf("Invalid age, using 0.\n")
		age = 0
	}
	if name == "" {
		name = m.defaults.PatientName
	}
	if email == "" {
		email = m.defaults.Email
	}

	m.patient = &domain.Patient{ID: sessionPatientID, Name: name, Age: age, Email: email}
	m.logger.Info("patient registered", slog.Int64("patient_id", m.patient.ID), slog.String("email", email))
	m.printf("[Patient] Registered patient: %s (%s)\n\n", name, email)
}

func (m *Menu) bookAppointment(ctx context.Context) {
	if m.patient == nil {
		m.printf("You must register a patient first (option 1).\n\n")
		return
	}

	m.printf("\n--- Book appointment ---\n")
	date, _ := m.prompt("Date (YYYY-MM-DD): ")
	time, _ := m.prompt("Time (HH:MM): ")
	if date == "" {
		date = m.defaults.Date
	}
	if time == "" {
		time = m.defaults.Time
	}

	appt, err := m.svc.Book(ctx, m.patient, m.doctor, date, time)
	if err != nil {
		m.printf("Could not book appointment: %v\n\n", err)
		return
	}
	m.printf("Appointment %d booked with %s on %s at %s.\n\n", appt.ID, m.doctor.Name, appt.Date, appt.Time)
}

func (m *Menu) cancelAppointment(ctx context.Context) {
	if len(m.svc.ListAll()) == 0 {
		m.printf("No appointments to cancel.\n\n")
		return
	}

	m.printf("\n--- Cancel appointment ---\n")
	appt, ok := m.lookup()
	if !ok {
		return
	}
	if err := m.svc.Cancel(ctx, appt); err != nil {
		m.printf("Could not cancel appointment %d: %v\n\n", appt.ID, err)
		return
	}
	m.printf("Appointment %d cancelled.\n\n", appt.ID)
}

func (m *Menu) confirmAppointment(ctx context.Context) {
	if len(m.svc.ListAll()) == 0 {
		m.printf("No appointments to confirm.\n\n")
		return
	}

	m.printf("\n--- Confirm appointment ---\n")
	appt, ok := m.lookup()
	if !ok {
		return
	}
	if err := m.svc.Confirm(ctx, appt); err != nil {
		if errors.Is(err, appointments.ErrInvalidTransition) {
			m.printf("Appointment %d cannot be confirmed from status %s.\n\n", appt.ID, appt.Status)
			return
		}
		m.printf("Could not confirm appointment %d: %v\n\n", appt.ID, err)
		return
	}
	m.printf("[Doctor] %s confirmed appointment %d.\n\n", appt.Doctor.Name, appt.ID)
}

func (m *Menu) lookup() (*domain.Appointment, bool) {
	text, _ := m.prompt("Enter the appointment ID: ")
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		m.printf("Invalid ID.\n\n")
		return nil, false
	}
	appt, ok := m.svc.FindByID(id)
	if !ok {
		m.printf("Appointment with ID %d not found.\n\n", id)
		return nil, false
	}
	return appt, true
}

func (m *Menu) listAppointments() {
	m.printf("\n--- Appointment list ---\n")
	list := m.svc.ListAll()
	if len(list) == 0 {
		m.printf("No appointments registered.\n\n")
		return
	}
	for _, a := range list {
		m.printf("%s\n", FormatAppointment(a))
	}
	m.printf("\n")
}

func FormatAppointment(a domain.Appointment) string {
	return fmt.Sprintf("ID: %d | Patient: %s | Doctor: %s | Date: %s %s | Status: %s",
		a.ID, a.Patient.Name, a.Doctor.Name, a.Date, a.Time, a.Status)
}

func (m *Menu) prompt(label string) (string, bool) {
	m.printf("%s", label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
