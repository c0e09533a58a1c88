package appointment

import (
	"context"
	"sync"

	auditRepo "medagenda/database/repository/audit"
	patientRepo "medagenda/database/repository/patient"
	practitionerRepo "medagenda/database/repository/practitioner"
	schedulerRepo "medagenda/database/repository/scheduler"
	"medagenda/models"
	"medagenda/services/scheduling"
)

// memSchedulerRepo is an in-memory SchedulerRepository with the same
// occupancy guard semantics as the Mongo implementation.
type memSchedulerRepo struct {
	schedulerRepo.SchedulerRepository
	mu           sync.Mutex
	appointments map[string]*models.Appointment
	blocked      []models.Blocked
}

func newMemSchedulerRepo() *memSchedulerRepo {
	return &memSchedulerRepo{appointments: make(map[string]*models.Appointment)}
}

func (r *memSchedulerRepo) GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.appointments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *memSchedulerRepo) occupiedLocked(practitionerID, date string, start, end int, excludeID string) bool {
	for _, a := range r.appointments {
		if a.ID == excludeID || !a.Active || a.PractitionerID != practitionerID || a.Date != date {
			continue
		}
		if scheduling.Overlaps(start, end, a.Start, a.End) {
			return true
		}
	}
	for _, b := range r.blocked {
		if b.PractitionerID != practitionerID || b.Date != date {
			continue
		}
		if scheduling.Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

func (r *memSchedulerRepo) CreateAppointmentIfFree(ctx context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.occupiedLocked(appt.PractitionerID, appt.Date, appt.Start, appt.End, "") {
		return schedulerRepo.ErrSlotTaken
	}
	cp := *appt
	r.appointments[appt.ID] = &cp
	return nil
}

func (r *memSchedulerRepo) RescheduleAppointmentIfFree(ctx context.Context, id, date string, start, end int) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	if r.occupiedLocked(a.PractitionerID, date, start, end, id) {
		return nil, schedulerRepo.ErrSlotTaken
	}
	a.Date, a.Start, a.End = date, start, end
	cp := *a
	return &cp, nil
}

func (r *memSchedulerRepo) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	a.Status = status
	a.Active = status != models.StatusCancelled
	cp := *a
	return &cp, nil
}

func (r *memSchedulerRepo) ListActiveAppointments(ctx context.Context, practitionerID, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appointments {
		if a.Active && a.PractitionerID == practitionerID && a.Date == date {
			out = append(out, *a)
		}
	}
	return out, nil
}

type memPractitionerRepo struct {
	practitionerRepo.PractitionerRepository
	practitioners map[string]*models.Practitioner
}

func (r *memPractitionerRepo) GetByID(ctx context.Context, id string) (*models.Practitioner, error) {
	if p, ok := r.practitioners[id]; ok {
		return p, nil
	}
	return nil, nil
}

type memPatientRepo struct {
	patientRepo.PatientRepository
	patients map[string]*models.Patient
}

func (r *memPatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	if p, ok := r.patients[id]; ok {
		return p, nil
	}
	return nil, nil
}

type memAuditRepo struct {
	auditRepo.AuditRepository
	mu      sync.Mutex
	entries []models.OverrideAudit
}

func (r *memAuditRepo) Append(ctx context.Context, entry *models.OverrideAudit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memAuditRepo) list() []models.OverrideAudit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.OverrideAudit(nil), r.entries...)
}

// recordingAvailability counts cache invalidations per practitioner+date.
type recordingAvailability struct {
	scheduling.AvailabilityService
	mu          sync.Mutex
	invalidated []string
}

func (a *recordingAvailability) InvalidateCache(ctx context.Context, practitionerID, date string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.invalidated = append(a.invalidated, practitionerID+"/"+date)
}

func (a *recordingAvailability) keys() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.invalidated...)
}

// recordingNotifier captures dispatched event kinds.
type recordingNotifier struct {
	mu     sync.Mutex
	events []models.AppointmentEventKind
	err    error
}

func (n *recordingNotifier) SendAppointmentEvent(ctx context.Context, kind models.AppointmentEventKind, appt *models.Appointment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, kind)
	return n.err
}

func (n *recordingNotifier) kinds() []models.AppointmentEventKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.AppointmentEventKind(nil), n.events...)
}

// recordingRealtime captures pushed events.
type recordingRealtime struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingRealtime) PushToPractitioner(practitionerID, event string, payload interface{}) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return true
}

func (r *recordingRealtime) pushed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// recordingReminders captures scheduled reminder appointment ids.
type recordingReminders struct {
	mu  sync.Mutex
	ids []string
}

func (r *recordingReminders) ScheduleAppointmentReminder(ctx context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, appt.ID)
	return nil
}

func (r *recordingReminders) scheduled() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ids...)
}

type testFixture struct {
	svc       *DefaultAppointmentService
	repo      *memSchedulerRepo
	audit     *memAuditRepo
	avail     *recordingAvailability
	notifier  *recordingNotifier
	realtime  *recordingRealtime
	reminders *recordingReminders
}

func newFixture() *testFixture {
	repo := newMemSchedulerRepo()
	audit := &memAuditRepo{}
	avail := &recordingAvailability{}
	notifier := &recordingNotifier{}
	rt := &recordingRealtime{}
	reminders := &recordingReminders{}

	svc := &DefaultAppointmentService{
		Repo: repo,
		PractitionerRepo: &memPractitionerRepo{practitioners: map[string]*models.Practitioner{
			"pr-1": {ID: "pr-1", Name: "Dra. García", SlotDuration: 30, DayStart: 480, DayEnd: 1020},
		}},
		PatientRepo: &memPatientRepo{patients: map[string]*models.Patient{
			"pa-1": {ID: "pa-1", Name: "Ana López"},
		}},
		AuditRepo:    audit,
		Availability: avail,
		Notifier:     notifier,
		Realtime:     rt,
		Reminders:    reminders,
	}
	return &testFixture{svc: svc, repo: repo, audit: audit, avail: avail, notifier: notifier, realtime: rt, reminders: reminders}
}
