package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Domenick1991/medappointments/internal/domain"
	"github.com/Domenick1991/medappointments/internal/notify"
	"github.com/Domenick1991/medappointments/internal/service/appointments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefaults = Defaults{
	PatientName: "Unnamed Patient",
	Email:       "no.email@example.com",
	Date:        "2025-01-01",
	Time:        "09:00",
}

func runSession(t *testing.T, script ...string) (string, *appointments.Manager, *notify.Recorder) {
	t.Helper()
	rec := notify.NewRecorder()
	mgr := appointments.NewManager(rec)
	doctor := &domain.Doctor{ID: 1, Name: "Dr. X", Specialty: "General Medicine"}

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	menu := NewMenu(in, &out, mgr, doctor, testDefaults, nil)

	require.NoError(t, menu.Run(context.Background()))
	return out.String(), mgr, rec
}

func TestMenu_RegisterBookAndList(t *testing.T) {
	out, mgr, rec := runSession(t,
		"1", "Ana", "30", "ana@example.com",
		"2", "2025-03-10", "10:00",
		"4",
		"0",
	)

	list := mgr.ListAll()
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].Patient.Name)
	assert.Equal(t, 30, list[0].Patient.Age)
	assert.Equal(t, int64(1), list[0].Patient.ID)

	assert.Contains(t, out, "[System] Available doctor: Dr. X (General Medicine)")
	assert.Contains(t, out, "[Patient] Registered patient: Ana (ana@example.com)")
	assert.Contains(t, out, "Appointment 1 booked with Dr. X on 2025-03-10 at 10:00.")
	assert.Contains(t, out, "ID: 1 | Patient: Ana | Doctor: Dr. X | Date: 2025-03-10 10:00 | Status: PENDING")
	assert.Contains(t, out, "Exiting...")

	msgs := rec.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "ana@example.com", msgs[0].Recipient)
	assert.Contains(t, msgs[0].Body, "Appointment ID: 1.")
}

func TestMenu_RegisterSubstitutesDefaults(t *testing.T) {
	out, mgr, _ := runSession(t,
		"1", "", "abc", "",
		"2", "", "",
		"0",
	)

	assert.Contains(t, out, "Invalid age, using 0.")
	list := mgr.ListAll()
	require.Len(t, list, 1)
	assert.Equal(t, "Unnamed Patient", list[0].Patient.Name)
	assert.Equal(t, "no.email@example.com", list[0].Patient.Email)
	assert.Equal(t, 0, list[0].Patient.Age)
	assert.Equal(t, "2025-01-01", list[0].Date)
	assert.Equal(t, "09:00", list[0].Time)
}

func TestMenu_BookRequiresPatient(t *testing.T) {
	out, mgr, rec := runSession(t, "2", "0")

	assert.Contains(t, out, "You must register a patient first (option 1).")
	assert.Empty(t, mgr.ListAll())
	assert.Empty(t, rec.Messages())
}

func TestMenu_CancelFlow(t *testing.T) {
	out, mgr, rec := runSession(t,
		"3",
		"1", "Ana", "30", "ana@example.com",
		"2", "2025-03-10", "10:00",
		"2", "2025-03-11", "11:00",
		"3", "x",
		"3", "999",
		"3", "1",
		"4",
		"0",
	)

	assert.Contains(t, out, "No appointments to cancel.")
	assert.Contains(t, out, "Invalid ID.")
	assert.Contains(t, out, "Appointment with ID 999 not found.")
	assert.Contains(t, out, "Appointment 1 cancelled.")
	assert.Contains(t, out, "Status: CANCELLED")

	first, ok := mgr.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, domain.AppointmentStatusCancelled, first.Status)
	second, ok := mgr.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, domain.AppointmentStatusPending, second.Status)

	assert.Len(t, rec.Messages(), 3)
}

func TestMenu_ConfirmFlow(t *testing.T) {
	out, mgr, _ := runSession(t,
		"5",
		"1", "Ana", "30", "ana@example.com",
		"2", "2025-03-10", "10:00",
		"5", "1",
		"5", "1",
		"0",
	)

	assert.Contains(t, out, "No appointments to confirm.")
	assert.Contains(t, out, "[Doctor] Dr. X confirmed appointment 1.")
	assert.Contains(t, out, "Appointment 1 cannot be confirmed from status CONFIRMED.")

	appt, ok := mgr.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, domain.AppointmentStatusConfirmed, appt.Status)
}

func TestMenu_ListEmptyAndInvalidOption(t *testing.T) {
	out, _, _ := runSession(t, "4", "9", "0")

	assert.Contains(t, out, "No appointments registered.")
	assert.Contains(t, out, "Invalid option.")
}

func TestMenu_EOFEndsSession(t *testing.T) {
	rec := notify.NewRecorder()
	mgr := appointments.NewManager(rec)
	doctor := &domain.Doctor{ID: 1, Name: "Dr. X", Specialty: "General Medicine"}
	var out bytes.Buffer

	err := NewMenu(strings.NewReader("4\n"), &out, mgr, doctor, testDefaults, nil).Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Input closed, exiting...")
	assert.Contains(t, out.String(), "PROGRAM END")
}

func TestMenu_CancelledContext(t *testing.T) {
	mgr := appointments.NewManager(notify.NewRecorder())
	doctor := &domain.Doctor{ID: 1, Name: "Dr. X"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewMenu(strings.NewReader("4\n0\n"), &bytes.Buffer{}, mgr, doctor, testDefaults, nil).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatAppointment(t *testing.T) {
	a := domain.Appointment{
		ID:      3,
		Patient: &domain.Patient{Name: "Ana"},
		Doctor:  &domain.Doctor{Name: "Dr. X"},
		Date:    "2025-03-10",
		Time:    "10:00",
		Status:  domain.AppointmentStatusConfirmed,
	}
	assert.Equal(t, "ID: 3 | Patient: Ana | Doctor: Dr. X | Date: 2025-03-10 10:00 | Status: CONFIRMED", FormatAppointment(a))
}
